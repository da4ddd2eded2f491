// Package models defines the record and metrics types shared by the
// decoding, reconciliation and reporting layers.
package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mahmudulmahin/Zen-revenue-and-Fees/internal/parsers"
	"github.com/shopspring/decimal"
)

// FeeComponent identifies one fee column of a settlement record.
type FeeComponent string

const (
	FeeTransaction   FeeComponent = "transaction_fee"
	FeeInterchange   FeeComponent = "interchange_fee"
	FeeCardScheme    FeeComponent = "card_scheme_fee"
	FeeSecureDeposit FeeComponent = "secure_deposit_amount"
)

// DefaultFeeComponents returns the standard three-component fee sum used
// when no explicit selection is made.
func DefaultFeeComponents() []FeeComponent {
	return []FeeComponent{FeeTransaction, FeeInterchange, FeeCardScheme}
}

// RecognizedFeeComponents returns every fee column the engine knows how to
// read from a settlement record.
func RecognizedFeeComponents() []FeeComponent {
	return []FeeComponent{FeeTransaction, FeeInterchange, FeeCardScheme, FeeSecureDeposit}
}

// ParseFeeComponent validates a fee component name.
func ParseFeeComponent(s string) (FeeComponent, error) {
	c := FeeComponent(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range RecognizedFeeComponents() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown fee component '%s'", s)
}

// StateAccepted is the authorization state marking a successful attempt.
// The comparison is against this exact literal; any other state counts as
// not accepted.
const StateAccepted = "ACCEPTED"

// Settlement report column names read by the engine. Additional columns in
// the export are ignored.
const (
	colTransactionAmount = "transaction_amount"
	colCustomerCountry   = "customer_country"
	colPaymentChannel    = "payment_channel"
	colAcceptedAt        = "accepted_at"
	colCreatedAt         = "created_at"
	colTransactionState  = "transaction_state"
)

// SettlementRecord is one settled transaction with its revenue and fee
// amounts. Either timestamp may be empty.
type SettlementRecord struct {
	Amount     decimal.Decimal
	Fees       map[FeeComponent]decimal.Decimal
	Country    string
	Channel    string
	AcceptedAt string
	CreatedAt  string
}

// SettlementFromRow builds a SettlementRecord from a decoded row. Missing
// and malformed amounts coerce to zero; the record itself is never
// rejected here.
func SettlementFromRow(row parsers.Row) *SettlementRecord {
	fees := make(map[FeeComponent]decimal.Decimal, len(RecognizedFeeComponents()))
	for _, component := range RecognizedFeeComponents() {
		fees[component] = row.Decimal(string(component))
	}

	return &SettlementRecord{
		Amount:     row.Decimal(colTransactionAmount),
		Fees:       fees,
		Country:    row.Text(colCustomerCountry),
		Channel:    row.Text(colPaymentChannel),
		AcceptedAt: row.Text(colAcceptedAt),
		CreatedAt:  row.Text(colCreatedAt),
	}
}

// FeeTotal sums the selected fee components. A nil or empty selection sums
// the default components.
func (s *SettlementRecord) FeeTotal(components []FeeComponent) decimal.Decimal {
	if len(components) == 0 {
		components = DefaultFeeComponents()
	}

	total := decimal.Zero
	for _, component := range components {
		total = total.Add(s.Fees[component])
	}
	return total
}

// AuthorizationRecord is one authorization attempt with its outcome.
type AuthorizationRecord struct {
	State     string
	Country   string
	Channel   string
	CreatedAt string
}

// AuthorizationFromRow builds an AuthorizationRecord from a decoded row.
func AuthorizationFromRow(row parsers.Row) *AuthorizationRecord {
	return &AuthorizationRecord{
		State:     row.Text(colTransactionState),
		Country:   row.Text(colCustomerCountry),
		Channel:   row.Text(colPaymentChannel),
		CreatedAt: row.Text(colCreatedAt),
	}
}

// IsAccepted reports whether the attempt succeeded.
func (a *AuthorizationRecord) IsAccepted() bool {
	return a.State == StateAccepted
}

// MetricsRow is the unified aggregate for one (day, country, channel) key.
// Settlement records contribute revenue and fees, authorization records
// contribute the transaction counts; neither stream requires the other to
// be present for the key.
type MetricsRow struct {
	Date                 string          `json:"date"`
	Country              string          `json:"country"`
	PaymentChannel       string          `json:"paymentChannel"`
	Revenue              decimal.Decimal `json:"revenue"`
	Fees                 decimal.Decimal `json:"fees"`
	TotalTransactions    int64           `json:"totalTransactions"`
	AcceptedTransactions int64           `json:"acceptedTransactions"`
	ApprovalRatio        float64         `json:"approvalRatio"`
}

// NewMetricsRow creates a zeroed accumulator for a key.
func NewMetricsRow(date, country, channel string) *MetricsRow {
	return &MetricsRow{
		Date:           date,
		Country:        country,
		PaymentChannel: channel,
		Revenue:        decimal.Zero,
		Fees:           decimal.Zero,
	}
}

// String returns a compact representation for logs.
func (m *MetricsRow) String() string {
	return fmt.Sprintf("MetricsRow{%s %s %s revenue=%s fees=%s accepted=%d/%d}",
		m.Date, m.Country, m.PaymentChannel, m.Revenue.String(), m.Fees.String(),
		m.AcceptedTransactions, m.TotalTransactions)
}

// UniqueCountries returns the sorted distinct country codes present in
// either record stream, for discovering valid --countries filter values.
func UniqueCountries(settlements []*SettlementRecord, authorizations []*AuthorizationRecord) []string {
	seen := make(map[string]struct{})
	for _, record := range settlements {
		seen[record.Country] = struct{}{}
	}
	for _, record := range authorizations {
		seen[record.Country] = struct{}{}
	}

	countries := make([]string, 0, len(seen))
	for country := range seen {
		countries = append(countries, country)
	}
	sort.Strings(countries)
	return countries
}
