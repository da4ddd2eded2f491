package config

import (
	"testing"

	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/calendar"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/models"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/reporter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimezone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    calendar.Timezone
		wantErr bool
	}{
		{name: "empty defaults", input: "", want: calendar.TimezoneGMT0},
		{name: "GMT+0", input: "GMT+0", want: calendar.TimezoneGMT0},
		{name: "GMT+6", input: "GMT+6", want: calendar.TimezoneGMT6},
		{name: "lowercase", input: "gmt+6", want: calendar.TimezoneGMT6},
		{name: "padded", input: "  GMT+0  ", want: calendar.TimezoneGMT0},
		{name: "unsupported offset", input: "GMT+2", wantErr: true},
		{name: "IANA zone", input: "Europe/Berlin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimezone(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFeeComponents(t *testing.T) {
	components, err := ParseFeeComponents(nil)
	require.NoError(t, err)
	assert.Nil(t, components)

	components, err = ParseFeeComponents([]string{"transaction_fee", "interchange_fee"})
	require.NoError(t, err)
	assert.Equal(t, []models.FeeComponent{models.FeeTransaction, models.FeeInterchange}, components)

	_, err = ParseFeeComponents([]string{"transaction_fee", "shipping_fee"})
	assert.Error(t, err)
}

func TestValidateDay(t *testing.T) {
	assert.NoError(t, ValidateDay(""))
	assert.NoError(t, ValidateDay("2024-01-05"))
	assert.Error(t, ValidateDay("01/05/2024"))
	assert.Error(t, ValidateDay("2024-13-40"))
	assert.Error(t, ValidateDay("yesterday"))
}

func TestCreateFilters(t *testing.T) {
	filters := CreateFilters(
		"2024-01-01", "2024-01-31",
		[]string{" US ", "", "DE"},
		[]string{"Card"},
		calendar.TimezoneGMT6,
		[]models.FeeComponent{models.FeeTransaction},
	)

	assert.Equal(t, "2024-01-01", filters.StartDate)
	assert.Equal(t, "2024-01-31", filters.EndDate)
	assert.Equal(t, []string{"US", "DE"}, filters.Countries)
	assert.Equal(t, []string{"Card"}, filters.Channels)
	assert.Equal(t, calendar.TimezoneGMT6, filters.Timezone)
	assert.Equal(t, []models.FeeComponent{models.FeeTransaction}, filters.FeeComponents)
}

func TestCreateReportConfig(t *testing.T) {
	assert.Equal(t, reporter.FormatJSON, CreateReportConfig("json").Format)
	assert.Equal(t, reporter.FormatCSV, CreateReportConfig("csv").Format)
	assert.Equal(t, reporter.FormatConsole, CreateReportConfig("console").Format)
	assert.Equal(t, reporter.FormatConsole, CreateReportConfig("").Format)

	console := CreateReportConfig("console")
	assert.True(t, console.IncludeDateSeries)
	assert.True(t, console.IncludeCountrySeries)
	assert.True(t, console.IncludeRows)
}
