// Package config translates CLI flag values into engine and reporter
// configurations.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/calendar"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/models"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/reconciler"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/reporter"
)

// ParseTimezone validates a timezone flag value. An empty value defaults
// to GMT+0.
func ParseTimezone(s string) (calendar.Timezone, error) {
	if strings.TrimSpace(s) == "" {
		return calendar.TimezoneGMT0, nil
	}

	tz := calendar.Timezone(strings.ToUpper(strings.TrimSpace(s)))
	if !tz.IsValid() {
		return "", fmt.Errorf("unsupported timezone '%s': use GMT+0 or GMT+6", s)
	}
	return tz, nil
}

// ParseFeeComponents validates a list of fee component names. An empty
// list is returned as nil, which the engine treats as the default
// selection.
func ParseFeeComponents(names []string) ([]models.FeeComponent, error) {
	if len(names) == 0 {
		return nil, nil
	}

	components := make([]models.FeeComponent, 0, len(names))
	for _, name := range names {
		component, err := models.ParseFeeComponent(name)
		if err != nil {
			return nil, err
		}
		components = append(components, component)
	}
	return components, nil
}

// ValidateDay checks a date flag value against the calendar-day format.
// Empty values are allowed; they disable the bound.
func ValidateDay(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(calendar.DayFormat, s); err != nil {
		return fmt.Errorf("invalid date '%s': use YYYY-MM-DD", s)
	}
	return nil
}

// CreateFilters assembles engine filters from validated flag values.
func CreateFilters(startDate, endDate string, countries, channels []string, tz calendar.Timezone, components []models.FeeComponent) *reconciler.Filters {
	return &reconciler.Filters{
		StartDate:     startDate,
		EndDate:       endDate,
		Countries:     trimAll(countries),
		Channels:      trimAll(channels),
		Timezone:      tz,
		FeeComponents: components,
	}
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// CreateReportConfig creates a report configuration for the specified
// output format.
func CreateReportConfig(format string) *reporter.ReportConfig {
	config := reporter.DefaultReportConfig()

	switch format {
	case "json":
		config.Format = reporter.FormatJSON
	case "csv":
		config.Format = reporter.FormatCSV
		config.CSVHeaders = true
		config.CSVDelimiter = ','
	default:
		config.Format = reporter.FormatConsole
		config.IncludeDateSeries = true
		config.IncludeCountrySeries = true
		config.IncludeRows = true
	}

	return config
}
