package reporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []*models.MetricsRow {
	us := models.NewMetricsRow("2024-01-05", "US", "Card")
	us.Revenue = decimal.NewFromInt(100)
	us.Fees = decimal.NewFromInt(7)
	us.TotalTransactions = 1
	us.AcceptedTransactions = 1
	us.ApprovalRatio = 100

	de := models.NewMetricsRow("2024-01-06", "DE", "Apple Pay")
	de.Revenue = decimal.NewFromInt(200)
	de.Fees = decimal.NewFromInt(14)
	de.TotalTransactions = 4
	de.AcceptedTransactions = 1
	de.ApprovalRatio = 25

	return []*models.MetricsRow{us, de}
}

func TestBuildResult(t *testing.T) {
	result := BuildResult(sampleRows())

	require.Len(t, result.Rows, 2)
	require.Len(t, result.DateSeries, 2)
	require.Len(t, result.CountrySeries, 2)
	assert.Equal(t, "300", result.Summary.TotalRevenue.String())
	assert.Equal(t, "21", result.Summary.TotalFees.String())
	assert.Equal(t, 2, result.Summary.Count)
}

func TestReportConfigValidate(t *testing.T) {
	config := DefaultReportConfig()
	assert.NoError(t, config.Validate())

	config.Format = OutputFormat("yaml")
	assert.Error(t, config.Validate())

	config = DefaultReportConfig()
	config.CSVDelimiter = 0
	assert.Error(t, config.Validate())
}

func TestNewReportGenerator(t *testing.T) {
	generator, err := NewReportGenerator(nil)
	require.NoError(t, err)
	assert.Equal(t, FormatConsole, generator.config.Format)

	_, err = NewReportGenerator(&ReportConfig{Format: OutputFormat("bogus"), CSVDelimiter: ','})
	assert.Error(t, err)
}

func TestGenerateJSONReport(t *testing.T) {
	config := DefaultReportConfig()
	config.Format = FormatJSON
	generator, err := NewReportGenerator(config)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, generator.GenerateReport(BuildResult(sampleRows()), &buf))

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	summary, ok := report["summary"].(map[string]interface{})
	require.True(t, ok, "summary section missing")
	assert.Equal(t, "300", summary["totalRevenue"])
	assert.Equal(t, "21", summary["totalFees"])
	assert.InDelta(t, 62.5, summary["avgApprovalRatio"], 0.001)
	assert.Equal(t, float64(2), summary["rowCount"])

	rows, ok := report["rows"].([]interface{})
	require.True(t, ok, "rows section missing")
	assert.Len(t, rows, 2)

	first, ok := rows[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2024-01-05", first["date"])
	assert.Equal(t, "Card", first["paymentChannel"])

	assert.Contains(t, report, "dateSeries")
	assert.Contains(t, report, "countrySeries")
}

func TestGenerateCSVReport(t *testing.T) {
	config := DefaultReportConfig()
	config.Format = FormatCSV
	generator, err := NewReportGenerator(config)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, generator.GenerateReport(BuildResult(sampleRows()), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvColumns, records[0])
	assert.Equal(t, []string{"2024-01-05", "US", "Card", "100", "7", "1", "1", "100.00"}, records[1])
	assert.Equal(t, []string{"2024-01-06", "DE", "Apple Pay", "200", "14", "4", "1", "25.00"}, records[2])
}

func TestGenerateCSVReportNoHeaders(t *testing.T) {
	config := DefaultReportConfig()
	config.Format = FormatCSV
	config.CSVHeaders = false
	generator, err := NewReportGenerator(config)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, generator.GenerateReport(BuildResult(sampleRows()), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestGenerateConsoleReport(t *testing.T) {
	generator, err := NewReportGenerator(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, generator.GenerateReport(BuildResult(sampleRows()), &buf))

	output := buf.String()
	assert.Contains(t, output, "TRANSACTION METRICS SUMMARY")
	assert.Contains(t, output, "Total revenue:       300")
	assert.Contains(t, output, "BY DATE")
	assert.Contains(t, output, "BY COUNTRY")
	assert.Contains(t, output, "DETAILED BREAKDOWN")
	assert.Contains(t, output, "Apple Pay")
}

func TestGenerateConsoleReportSectionToggles(t *testing.T) {
	config := DefaultReportConfig()
	config.IncludeDateSeries = false
	config.IncludeCountrySeries = false
	config.IncludeRows = false
	generator, err := NewReportGenerator(config)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, generator.GenerateReport(BuildResult(sampleRows()), &buf))

	output := buf.String()
	assert.Contains(t, output, "TRANSACTION METRICS SUMMARY")
	assert.NotContains(t, output, "BY DATE")
	assert.NotContains(t, output, "BY COUNTRY")
	assert.NotContains(t, output, "DETAILED BREAKDOWN")
}

func TestGenerateConsoleReportEmpty(t *testing.T) {
	generator, err := NewReportGenerator(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, generator.GenerateReport(BuildResult(nil), &buf))

	assert.Equal(t, "No data for the current filter selection.", strings.TrimSpace(buf.String()))
}

func TestOutputFormatIsValid(t *testing.T) {
	assert.True(t, FormatConsole.IsValid())
	assert.True(t, FormatJSON.IsValid())
	assert.True(t, FormatCSV.IsValid())
	assert.False(t, OutputFormat("xml").IsValid())
}
