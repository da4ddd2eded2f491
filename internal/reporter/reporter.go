// Package reporter renders reconciliation results for the CLI.
//
// The reporter is a presentation adapter: it consumes the frozen metrics
// table and its re-aggregations and owns nothing of the engine contract.
//
// Supported output formats:
//   - Console: human-readable summary and tables for terminal display
//   - JSON: structured document for programmatic consumption
//   - CSV: detailed breakdown rows for spreadsheet applications
package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/models"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/reconciler"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/pkg/logger"
)

// OutputFormat represents the supported report output formats.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
)

// IsValid checks if the output format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatConsole, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// Result bundles the metrics table with its re-aggregations for rendering.
type Result struct {
	Rows          []*models.MetricsRow             `json:"rows"`
	DateSeries    []*reconciler.DateSeriesPoint    `json:"dateSeries"`
	CountrySeries []*reconciler.CountrySeriesPoint `json:"countrySeries"`
	Summary       reconciler.Summary               `json:"summary"`
}

// BuildResult derives the series and summary from a reconciled metrics
// table.
func BuildResult(rows []*models.MetricsRow) *Result {
	return &Result{
		Rows:          rows,
		DateSeries:    reconciler.BuildDateSeries(rows),
		CountrySeries: reconciler.BuildCountrySeries(rows),
		Summary:       reconciler.SummaryTotals(rows),
	}
}

// ReportConfig holds configuration options for report generation.
type ReportConfig struct {
	Format OutputFormat `json:"format"`

	// Section toggles for console output
	IncludeDateSeries    bool `json:"include_date_series"`
	IncludeCountrySeries bool `json:"include_country_series"`
	IncludeRows          bool `json:"include_rows"`

	// CSV options
	CSVDelimiter rune `json:"csv_delimiter"`
	CSVHeaders   bool `json:"csv_headers"`
}

// DefaultReportConfig returns a default report configuration.
func DefaultReportConfig() *ReportConfig {
	return &ReportConfig{
		Format:               FormatConsole,
		IncludeDateSeries:    true,
		IncludeCountrySeries: true,
		IncludeRows:          true,
		CSVDelimiter:         ',',
		CSVHeaders:           true,
	}
}

// Validate validates the report configuration.
func (c *ReportConfig) Validate() error {
	if !c.Format.IsValid() {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
	if c.CSVDelimiter == 0 {
		return fmt.Errorf("csv delimiter cannot be empty")
	}
	return nil
}

// ReportGenerator renders results according to its configuration.
type ReportGenerator struct {
	config *ReportConfig
	logger logger.Logger
}

// NewReportGenerator creates a generator with the given configuration.
func NewReportGenerator(config *ReportConfig) (*ReportGenerator, error) {
	if config == nil {
		config = DefaultReportConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &ReportGenerator{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("reporter"),
	}, nil
}

// GenerateReport writes the result to w in the configured format.
func (g *ReportGenerator) GenerateReport(result *Result, w io.Writer) error {
	g.logger.WithFields(logger.Fields{
		"format": string(g.config.Format),
		"rows":   len(result.Rows),
	}).Debug("Generating report")

	switch g.config.Format {
	case FormatJSON:
		return g.writeJSON(result, w)
	case FormatCSV:
		return g.writeCSV(result, w)
	default:
		return g.writeConsole(result, w)
	}
}

// jsonReport is the wire shape of the JSON output. The summary carries the
// derived mean so consumers do not have to divide themselves.
type jsonReport struct {
	Summary struct {
		TotalRevenue     string  `json:"totalRevenue"`
		TotalFees        string  `json:"totalFees"`
		AvgApprovalRatio float64 `json:"avgApprovalRatio"`
		RowCount         int     `json:"rowCount"`
	} `json:"summary"`
	Rows          []*models.MetricsRow             `json:"rows"`
	DateSeries    []*reconciler.DateSeriesPoint    `json:"dateSeries"`
	CountrySeries []*reconciler.CountrySeriesPoint `json:"countrySeries"`
}

func (g *ReportGenerator) writeJSON(result *Result, w io.Writer) error {
	var report jsonReport
	report.Summary.TotalRevenue = result.Summary.TotalRevenue.String()
	report.Summary.TotalFees = result.Summary.TotalFees.String()
	report.Summary.AvgApprovalRatio = result.Summary.MeanApprovalRatio()
	report.Summary.RowCount = result.Summary.Count
	report.Rows = result.Rows
	report.DateSeries = result.DateSeries
	report.CountrySeries = result.CountrySeries

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(&report)
}

var csvColumns = []string{
	"date", "country", "payment_channel", "revenue", "fees",
	"total_transactions", "accepted_transactions", "approval_ratio",
}

func (g *ReportGenerator) writeCSV(result *Result, w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = g.config.CSVDelimiter

	if g.config.CSVHeaders {
		if err := writer.Write(csvColumns); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	for _, row := range result.Rows {
		record := []string{
			row.Date,
			row.Country,
			row.PaymentChannel,
			row.Revenue.String(),
			row.Fees.String(),
			strconv.FormatInt(row.TotalTransactions, 10),
			strconv.FormatInt(row.AcceptedTransactions, 10),
			fmt.Sprintf("%.2f", row.ApprovalRatio),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (g *ReportGenerator) writeConsole(result *Result, w io.Writer) error {
	if len(result.Rows) == 0 {
		// An empty table is a valid terminal state, not a failure.
		_, err := fmt.Fprintln(w, "No data for the current filter selection.")
		return err
	}

	var b strings.Builder

	b.WriteString("TRANSACTION METRICS SUMMARY\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Total revenue:       %s\n", result.Summary.TotalRevenue.String())
	fmt.Fprintf(&b, "Total fees:          %s\n", result.Summary.TotalFees.String())
	fmt.Fprintf(&b, "Avg approval ratio:  %.2f%%\n", result.Summary.MeanApprovalRatio())
	fmt.Fprintf(&b, "Metrics rows:        %d\n", result.Summary.Count)

	if g.config.IncludeDateSeries && len(result.DateSeries) > 0 {
		b.WriteString("\nBY DATE\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		fmt.Fprintf(&b, "%-12s %14s %12s %10s %9s\n", "Date", "Revenue", "Fees", "Approval", "Txns")
		for _, point := range result.DateSeries {
			fmt.Fprintf(&b, "%-12s %14s %12s %9.2f%% %9d\n",
				point.Date, point.Revenue.String(), point.Fees.String(),
				point.ApprovalRatio, point.TotalTransactions)
		}
	}

	if g.config.IncludeCountrySeries && len(result.CountrySeries) > 0 {
		b.WriteString("\nBY COUNTRY\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		fmt.Fprintf(&b, "%-8s %14s %12s %10s %9s\n", "Country", "Revenue", "Fees", "Approval", "Txns")
		for _, point := range result.CountrySeries {
			fmt.Fprintf(&b, "%-8s %14s %12s %9.2f%% %9d\n",
				point.Country, point.Revenue.String(), point.Fees.String(),
				point.ApprovalRatio, point.TotalTransactions)
		}
	}

	if g.config.IncludeRows {
		b.WriteString("\nDETAILED BREAKDOWN\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		fmt.Fprintf(&b, "%-12s %-8s %-12s %14s %12s %10s\n",
			"Date", "Country", "Channel", "Revenue", "Fees", "Approval")
		for _, row := range result.Rows {
			fmt.Fprintf(&b, "%-12s %-8s %-12s %14s %12s %9.2f%%\n",
				row.Date, row.Country, row.PaymentChannel,
				row.Revenue.String(), row.Fees.String(), row.ApprovalRatio)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
