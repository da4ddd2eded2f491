// Package parsers turns delimited report text into loosely typed rows.
//
// Settlement and authorization exports arrive as tab- or comma-separated
// text whose column sets vary between acquirers. The decoder therefore does
// not bind rows to a declared schema: every line becomes a Row mapping
// header names to inferred values, and downstream code picks out the
// columns it understands.
//
// Inference rules per value:
//   - "n/a" or the empty string decodes to null
//   - anything that fully parses as a number decodes to a decimal
//   - everything else decodes to the trimmed string, quotes stripped
//
// The splitter is intentionally positional: it does not implement
// quote-aware CSV parsing, so a literal comma inside a quoted value shifts
// the remaining columns. That matches the upstream report contract, where
// values never contain the delimiter.
package parsers

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Value is a loosely typed cell value: nil, decimal.Decimal or string.
type Value interface{}

// Row maps a header name to the decoded value in that column. Headers left
// uncovered by a ragged line are absent from the map.
type Row map[string]Value

// Decode parses delimited report text into rows. Input with fewer than two
// lines (no header plus data) yields an empty slice.
func Decode(text string) []Row {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return []Row{}
	}

	delimiter := DetectDelimiter(lines[0])

	headers := splitFields(lines[0], delimiter)
	rows := make([]Row, 0, len(lines)-1)

	for _, line := range lines[1:] {
		values := splitFields(line, delimiter)

		row := make(Row, len(headers))
		for i, header := range headers {
			if i >= len(values) {
				break
			}
			row[header] = coerceValue(values[i])
		}

		rows = append(rows, row)
	}

	return rows
}

// DetectDelimiter picks the field delimiter from the header line: tab when
// the line contains one, comma otherwise.
func DetectDelimiter(headerLine string) string {
	if strings.Contains(headerLine, "\t") {
		return "\t"
	}
	return ","
}

// splitFields splits a line positionally and cleans each field the same way
// headers are cleaned: trimmed, with literal quote characters removed.
func splitFields(line, delimiter string) []string {
	parts := strings.Split(line, delimiter)
	for i, part := range parts {
		parts[i] = cleanField(part)
	}
	return parts
}

func cleanField(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `"`, "")
}

// coerceValue applies the per-value inference rules.
func coerceValue(s string) Value {
	if s == "" || s == "n/a" {
		return nil
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	return s
}

// IsNull reports whether the column is absent or decoded to null.
func (r Row) IsNull(key string) bool {
	v, ok := r[key]
	return !ok || v == nil
}

// Text returns the column as a string. Null and absent columns yield the
// empty string; numeric columns are rendered back to their decimal form.
func (r Row) Text(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case decimal.Decimal:
		return v.String()
	default:
		return ""
	}
}

// Decimal returns the column as a decimal. Null, absent and non-numeric
// columns all coerce to zero; malformed amounts never fail a row.
func (r Row) Decimal(key string) decimal.Decimal {
	if d, ok := r[key].(decimal.Decimal); ok {
		return d
	}
	return decimal.Zero
}
