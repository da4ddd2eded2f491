// Package reconciler joins settlement and authorization records into a
// unified metrics table and re-aggregates it along single dimensions.
//
// The join is a single-pass fold: each record resolves to a calendar day,
// passes the active filters and lands in a (day, country, channel)-keyed
// accumulator. Settlement records add revenue and fees, authorization
// records add transaction counts; a key needs only one of the two streams
// to produce a row. After both streams are folded the approval ratio is
// computed once per row and the table is frozen in date order.
//
// Every entry point is a pure function of its inputs: no shared state, no
// clock, no I/O. Malformed numeric fields have already been coerced to
// zero during decoding, and records whose timestamps cannot be resolved
// are dropped silently, so reconciliation never fails on input shape.
package reconciler

import (
	"sort"

	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/calendar"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/models"
	"github.com/mahmudulmahin/Zen-revenue-and-Fees/pkg/logger"
)

// Filters narrows the record streams before reconciliation. Zero values
// mean unrestricted: empty date bounds disable the range check and empty
// country/channel sets allow everything. An empty fee-component selection
// sums the default components.
type Filters struct {
	StartDate     string
	EndDate       string
	Countries     []string
	Channels      []string
	Timezone      calendar.Timezone
	FeeComponents []models.FeeComponent
}

// matcher is the precomputed form of Filters used during the fold.
type matcher struct {
	startDate string
	endDate   string
	countries map[string]struct{}
	channels  map[string]struct{}
}

func newMatcher(f *Filters) *matcher {
	m := &matcher{
		startDate: f.StartDate,
		endDate:   f.EndDate,
	}
	if len(f.Countries) > 0 {
		m.countries = make(map[string]struct{}, len(f.Countries))
		for _, c := range f.Countries {
			m.countries[c] = struct{}{}
		}
	}
	if len(f.Channels) > 0 {
		m.channels = make(map[string]struct{}, len(f.Channels))
		for _, c := range f.Channels {
			m.channels[c] = struct{}{}
		}
	}
	return m
}

// allows applies the date, country and channel filters to a resolved
// record. Calendar days compare lexicographically.
func (m *matcher) allows(day, country, channel string) bool {
	if m.startDate != "" && day < m.startDate {
		return false
	}
	if m.endDate != "" && day > m.endDate {
		return false
	}
	if m.countries != nil {
		if _, ok := m.countries[country]; !ok {
			return false
		}
	}
	if m.channels != nil {
		if _, ok := m.channels[channel]; !ok {
			return false
		}
	}
	return true
}

// metricsKey is the composite grouping key of the unified table.
type metricsKey struct {
	day     string
	country string
	channel string
}

// Reconcile folds both record streams into the unified metrics table under
// the given filters. The output is sorted ascending by calendar day;
// equal-day rows keep their insertion order. Inputs are not mutated and a
// nil Filters value means no filtering.
func Reconcile(settlements []*models.SettlementRecord, authorizations []*models.AuthorizationRecord, filters *Filters) []*models.MetricsRow {
	if filters == nil {
		filters = &Filters{Timezone: calendar.TimezoneGMT0}
	}

	log := logger.GetGlobalLogger().WithComponent("reconciler")
	log.WithFields(logger.Fields{
		"settlements":    len(settlements),
		"authorizations": len(authorizations),
		"timezone":       string(filters.Timezone),
	}).Debug("Reconciling record streams")

	match := newMatcher(filters)
	table := make(map[metricsKey]*models.MetricsRow)
	var rows []*models.MetricsRow

	fetch := func(key metricsKey) *models.MetricsRow {
		if row, ok := table[key]; ok {
			return row
		}
		row := models.NewMetricsRow(key.day, key.country, key.channel)
		table[key] = row
		rows = append(rows, row)
		return row
	}

	for _, record := range settlements {
		day, ok := calendar.Normalize(record.AcceptedAt, filters.Timezone)
		if !ok {
			day, ok = calendar.Normalize(record.CreatedAt, filters.Timezone)
		}
		if !ok {
			continue
		}
		if !match.allows(day, record.Country, record.Channel) {
			continue
		}

		row := fetch(metricsKey{day: day, country: record.Country, channel: record.Channel})
		row.Revenue = row.Revenue.Add(record.Amount)
		row.Fees = row.Fees.Add(record.FeeTotal(filters.FeeComponents))
	}

	for _, record := range authorizations {
		day, ok := calendar.Normalize(record.CreatedAt, filters.Timezone)
		if !ok {
			continue
		}
		if !match.allows(day, record.Country, record.Channel) {
			continue
		}

		row := fetch(metricsKey{day: day, country: record.Country, channel: record.Channel})
		row.TotalTransactions++
		if record.IsAccepted() {
			row.AcceptedTransactions++
		}
	}

	for _, row := range rows {
		if row.TotalTransactions > 0 {
			row.ApprovalRatio = float64(row.AcceptedTransactions) / float64(row.TotalTransactions) * 100
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})

	log.WithField("metrics_rows", len(rows)).Debug("Reconciliation complete")
	return rows
}
