package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mahmudulmahin/Zen-revenue-and-Fees/cmd/zenreport/config"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/models"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/parsers"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/reconciler"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/reporter"
	zerrors "github.com/mahmudulmahin/Zen-revenue-and-Fees/pkg/errors"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the analyze command
var (
	settlementFile    string
	authorizationFile string
	outputFormat      string
	outputFile        string
	startDate         string
	endDate           string
	countries         []string
	channels          []string
	timezoneFlag      string
	feeComponents     []string
	showProgress      bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Reconcile settlement and authorization reports into metrics",
	Long: `Analyze loads a settlement report and an authorization report, joins them
into a unified metrics table keyed by day, country and payment channel,
and renders the result with date and country breakdowns.

Both inputs are delimited text exports (tab- or comma-separated, header
line first). Rows whose timestamps cannot be resolved are dropped;
malformed amounts count as zero.

Examples:
  # Basic analysis
  zenreport analyze --settlement-file settlement.csv --authorization-file auth.csv

  # Date range and country filtering in the GMT+6 reporting zone
  zenreport analyze -s settlement.csv -b auth.csv \
    --start-date 2024-01-01 --end-date 2024-01-31 \
    --countries US,DE --timezone GMT+6

  # Restrict the fee sum to selected components, export as CSV
  zenreport analyze -s settlement.csv -b auth.csv \
    --fee-components transaction_fee,interchange_fee \
    --output-format csv --output-file breakdown.csv`,

	PreRunE: validateAnalyzeFlags,
	RunE:    runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Required flags
	analyzeCmd.Flags().StringVarP(&settlementFile, "settlement-file", "s", "", "path to settlement report file (required)")
	analyzeCmd.Flags().StringVarP(&authorizationFile, "authorization-file", "b", "", "path to authorization report file (required)")

	// Output flags
	analyzeCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "console", "output format: console, json, csv")
	analyzeCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout)")

	// Filter flags
	analyzeCmd.Flags().StringVar(&startDate, "start-date", "", "filter start date (YYYY-MM-DD, inclusive)")
	analyzeCmd.Flags().StringVar(&endDate, "end-date", "", "filter end date (YYYY-MM-DD, inclusive)")
	analyzeCmd.Flags().StringSliceVar(&countries, "countries", []string{}, "comma-separated country codes (empty = all)")
	analyzeCmd.Flags().StringSliceVar(&channels, "channels", []string{}, "comma-separated payment channels (empty = all)")
	analyzeCmd.Flags().StringVarP(&timezoneFlag, "timezone", "z", "GMT+0", "reporting timezone: GMT+0 or GMT+6")
	analyzeCmd.Flags().StringSliceVar(&feeComponents, "fee-components", []string{}, "fee components to sum (empty = transaction_fee,interchange_fee,card_scheme_fee)")

	// UI flags
	analyzeCmd.Flags().BoolVar(&showProgress, "progress", false, "log stage progress")

	// Mark required flags
	analyzeCmd.MarkFlagRequired("settlement-file")
	analyzeCmd.MarkFlagRequired("authorization-file")

	// Bind flags to viper
	viper.BindPFlag("settlement-file", analyzeCmd.Flags().Lookup("settlement-file"))
	viper.BindPFlag("authorization-file", analyzeCmd.Flags().Lookup("authorization-file"))
	viper.BindPFlag("output-format", analyzeCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output-file", analyzeCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("start-date", analyzeCmd.Flags().Lookup("start-date"))
	viper.BindPFlag("end-date", analyzeCmd.Flags().Lookup("end-date"))
	viper.BindPFlag("countries", analyzeCmd.Flags().Lookup("countries"))
	viper.BindPFlag("channels", analyzeCmd.Flags().Lookup("channels"))
	viper.BindPFlag("timezone", analyzeCmd.Flags().Lookup("timezone"))
	viper.BindPFlag("fee-components", analyzeCmd.Flags().Lookup("fee-components"))
	viper.BindPFlag("progress", analyzeCmd.Flags().Lookup("progress"))
}

func validateAnalyzeFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	settlementFile = viper.GetString("settlement-file")
	authorizationFile = viper.GetString("authorization-file")
	outputFormat = viper.GetString("output-format")
	outputFile = viper.GetString("output-file")
	startDate = viper.GetString("start-date")
	endDate = viper.GetString("end-date")
	countries = viper.GetStringSlice("countries")
	channels = viper.GetStringSlice("channels")
	timezoneFlag = viper.GetString("timezone")
	feeComponents = viper.GetStringSlice("fee-components")
	showProgress = viper.GetBool("progress")

	if settlementFile == "" {
		return zerrors.ConfigurationError(zerrors.CodeMissingConfig, "settlement-file", nil, nil)
	}
	if authorizationFile == "" {
		return zerrors.ConfigurationError(zerrors.CodeMissingConfig, "authorization-file", nil, nil)
	}

	if err := validateFileExists(settlementFile, "settlement report"); err != nil {
		return err
	}
	if err := validateFileExists(authorizationFile, "authorization report"); err != nil {
		return err
	}

	validFormats := map[string]bool{"console": true, "json": true, "csv": true}
	if !validFormats[outputFormat] {
		return zerrors.ConfigurationError(zerrors.CodeInvalidConfig, "output-format", outputFormat, nil).
			WithSuggestion("valid formats: console, json, csv")
	}

	if err := config.ValidateDay(startDate); err != nil {
		return zerrors.ValidationError(zerrors.CodeInvalidDate, "start-date", startDate, err)
	}
	if err := config.ValidateDay(endDate); err != nil {
		return zerrors.ValidationError(zerrors.CodeInvalidDate, "end-date", endDate, err)
	}
	if startDate != "" && endDate != "" && startDate > endDate {
		return zerrors.ValidationError(zerrors.CodeInvalidDate, "start-date", startDate, nil).
			WithSuggestion("start date cannot be after end date")
	}

	if _, err := config.ParseTimezone(timezoneFlag); err != nil {
		return zerrors.ValidationError(zerrors.CodeInvalidTimezone, "timezone", timezoneFlag, err)
	}
	if _, err := config.ParseFeeComponents(feeComponents); err != nil {
		return zerrors.ValidationError(zerrors.CodeInvalidComponent, "fee-components", feeComponents, err)
	}

	// Validate output file directory exists if specified
	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return zerrors.FileError(zerrors.CodeFileNotFound, dir, err).
					WithSuggestion("create the output directory first")
			}
		}
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return zerrors.FileError(zerrors.CodeFileNotFound, filePath, err)
	}
	if err != nil {
		return zerrors.FileError(zerrors.CodeFileUnreadable, filePath, err)
	}
	if info.IsDir() {
		return zerrors.FileError(zerrors.CodeFileUnreadable, filePath, fmt.Errorf("%s is a directory", description))
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.GetGlobalLogger().WithComponent("analyze")

	if verbose {
		fmt.Fprintf(os.Stderr, "Settlement file: %s\n", settlementFile)
		fmt.Fprintf(os.Stderr, "Authorization file: %s\n", authorizationFile)
		fmt.Fprintf(os.Stderr, "Output format: %s\n", outputFormat)
	}

	var tracker *logger.StageTracker
	if showProgress {
		tracker = logger.NewStageTracker(log, "analyze", 4)
	}

	settlements, err := loadSettlements(settlementFile)
	if err != nil {
		return err
	}
	if tracker != nil {
		tracker.StageDone("decode settlement report")
	}

	authorizations, err := loadAuthorizations(authorizationFile)
	if err != nil {
		return err
	}
	if tracker != nil {
		tracker.StageDone("decode authorization report")
	}

	tz, err := config.ParseTimezone(timezoneFlag)
	if err != nil {
		return zerrors.ValidationError(zerrors.CodeInvalidTimezone, "timezone", timezoneFlag, err)
	}
	components, err := config.ParseFeeComponents(feeComponents)
	if err != nil {
		return zerrors.ValidationError(zerrors.CodeInvalidComponent, "fee-components", feeComponents, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Countries present: %s\n",
			strings.Join(models.UniqueCountries(settlements, authorizations), ", "))
	}

	filters := config.CreateFilters(startDate, endDate, countries, channels, tz, components)
	rows := reconciler.Reconcile(settlements, authorizations, filters)
	if tracker != nil {
		tracker.StageDone("reconcile")
	}

	log.WithFields(logger.Fields{
		"settlements":    len(settlements),
		"authorizations": len(authorizations),
		"metrics_rows":   len(rows),
	}).Info("Reconciliation finished")

	result := reporter.BuildResult(rows)

	reportConfig := config.CreateReportConfig(outputFormat)
	generator, err := reporter.NewReportGenerator(reportConfig)
	if err != nil {
		return zerrors.ConfigurationError(zerrors.CodeInvalidConfig, "output-format", outputFormat, err)
	}

	output := os.Stdout
	if outputFile != "" {
		output, err = os.Create(outputFile)
		if err != nil {
			return zerrors.FileError(zerrors.CodeFileUnreadable, outputFile, err).
				WithSuggestion("check that the output path is writable")
		}
		defer output.Close()
	}

	if err := generator.GenerateReport(result, output); err != nil {
		return zerrors.InternalError(zerrors.CodeUnexpectedError, "report generation", err)
	}
	if tracker != nil {
		tracker.StageDone("render report")
		tracker.Done()
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "\nProcessed %d settlement and %d authorization records into %d metrics rows.\n",
			len(settlements), len(authorizations), len(rows))
	}

	return nil
}

func loadSettlements(path string) ([]*models.SettlementRecord, error) {
	rows, err := loadRows(path)
	if err != nil {
		return nil, err
	}

	records := make([]*models.SettlementRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.SettlementFromRow(row))
	}
	return records, nil
}

func loadAuthorizations(path string) ([]*models.AuthorizationRecord, error) {
	rows, err := loadRows(path)
	if err != nil {
		return nil, err
	}

	records := make([]*models.AuthorizationRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.AuthorizationFromRow(row))
	}
	return records, nil
}

func loadRows(path string) ([]parsers.Row, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, zerrors.FileError(zerrors.CodeFilePermission, path, err)
		}
		return nil, zerrors.FileError(zerrors.CodeFileUnreadable, path, err)
	}

	return parsers.Decode(string(content)), nil
}
