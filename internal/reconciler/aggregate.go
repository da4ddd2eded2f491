package reconciler

import (
	"sort"

	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/models"
	"github.com/shopspring/decimal"
)

// DateSeriesPoint is the metrics table collapsed onto one calendar day,
// summed across countries and channels.
type DateSeriesPoint struct {
	Date                 string          `json:"date"`
	Revenue              decimal.Decimal `json:"revenue"`
	Fees                 decimal.Decimal `json:"fees"`
	ApprovalRatio        float64         `json:"approvalRatio"`
	TotalTransactions    int64           `json:"totalTransactions"`
	AcceptedTransactions int64           `json:"acceptedTransactions"`
}

// CountrySeriesPoint is the metrics table collapsed onto one country,
// summed across days and channels.
type CountrySeriesPoint struct {
	Country              string          `json:"country"`
	Revenue              decimal.Decimal `json:"revenue"`
	Fees                 decimal.Decimal `json:"fees"`
	ApprovalRatio        float64         `json:"approvalRatio"`
	TotalTransactions    int64           `json:"totalTransactions"`
	AcceptedTransactions int64           `json:"acceptedTransactions"`
}

// BuildDateSeries groups metrics rows by date. The approval ratio is
// recomputed from the summed counts, not averaged across rows, so
// low-volume buckets do not skew the result. Output is sorted ascending by
// date.
func BuildDateSeries(rows []*models.MetricsRow) []*DateSeriesPoint {
	table := make(map[string]*DateSeriesPoint)
	var series []*DateSeriesPoint

	for _, row := range rows {
		point, ok := table[row.Date]
		if !ok {
			point = &DateSeriesPoint{
				Date:    row.Date,
				Revenue: decimal.Zero,
				Fees:    decimal.Zero,
			}
			table[row.Date] = point
			series = append(series, point)
		}
		point.Revenue = point.Revenue.Add(row.Revenue)
		point.Fees = point.Fees.Add(row.Fees)
		point.TotalTransactions += row.TotalTransactions
		point.AcceptedTransactions += row.AcceptedTransactions
	}

	for _, point := range series {
		point.ApprovalRatio = weightedRatio(point.AcceptedTransactions, point.TotalTransactions)
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})
	return series
}

// BuildCountrySeries groups metrics rows by country with the same weighted
// ratio recomputation. Output is sorted descending by summed revenue;
// revenue ranking is the natural order for a country breakdown.
func BuildCountrySeries(rows []*models.MetricsRow) []*CountrySeriesPoint {
	table := make(map[string]*CountrySeriesPoint)
	var series []*CountrySeriesPoint

	for _, row := range rows {
		point, ok := table[row.Country]
		if !ok {
			point = &CountrySeriesPoint{
				Country: row.Country,
				Revenue: decimal.Zero,
				Fees:    decimal.Zero,
			}
			table[row.Country] = point
			series = append(series, point)
		}
		point.Revenue = point.Revenue.Add(row.Revenue)
		point.Fees = point.Fees.Add(row.Fees)
		point.TotalTransactions += row.TotalTransactions
		point.AcceptedTransactions += row.AcceptedTransactions
	}

	for _, point := range series {
		point.ApprovalRatio = weightedRatio(point.AcceptedTransactions, point.TotalTransactions)
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Revenue.GreaterThan(series[j].Revenue)
	})
	return series
}

// weightedRatio computes accepted/total as a percentage, 0 when there were
// no transactions.
func weightedRatio(accepted, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(accepted) / float64(total) * 100
}

// Summary holds the grand totals over a metrics table. ApprovalRatioSum is
// the plain sum of per-row ratios; divide by Count for the mean, or use
// MeanApprovalRatio.
type Summary struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalFees        decimal.Decimal `json:"totalFees"`
	ApprovalRatioSum float64         `json:"approvalRatioSum"`
	Count            int             `json:"count"`
}

// SummaryTotals folds the metrics table into its grand totals.
func SummaryTotals(rows []*models.MetricsRow) Summary {
	summary := Summary{
		TotalRevenue: decimal.Zero,
		TotalFees:    decimal.Zero,
	}
	for _, row := range rows {
		summary.TotalRevenue = summary.TotalRevenue.Add(row.Revenue)
		summary.TotalFees = summary.TotalFees.Add(row.Fees)
		summary.ApprovalRatioSum += row.ApprovalRatio
		summary.Count++
	}
	return summary
}

// MeanApprovalRatio returns the unweighted mean of per-row approval
// ratios, 0 for an empty table.
func (s Summary) MeanApprovalRatio() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.ApprovalRatioSum / float64(s.Count)
}
