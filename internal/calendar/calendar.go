// Package calendar normalizes heterogeneous report timestamps into
// calendar-day buckets.
//
// Timestamps in the source reports come in several layouts and sometimes
// carry stray characters. Normalization makes three attempts: parse as-is
// against a list of known layouts, retry after stripping everything except
// digits, hyphens, spaces and colons, and finally retry on the bare date
// before the first space. A record whose timestamp survives none of the
// attempts is dropped by the caller.
//
// Timezone handling is a flat hour shift added to the parsed instant. Only
// GMT+0 and GMT+6 are recognized; there is no DST or IANA zone awareness.
// Day bucketing uses UTC boundaries after the shift.
package calendar

import (
	"strings"
	"time"
)

// Timezone selects the flat-offset zone applied before day bucketing.
type Timezone string

const (
	TimezoneGMT0 Timezone = "GMT+0"
	TimezoneGMT6 Timezone = "GMT+6"
)

// IsValid checks if the timezone is one of the recognized zones.
func (t Timezone) IsValid() bool {
	return t == TimezoneGMT0 || t == TimezoneGMT6
}

// OffsetHours returns the flat hour shift for the zone. Unrecognized zones
// shift by zero.
func (t Timezone) OffsetHours() int {
	if t == TimezoneGMT6 {
		return 6
	}
	return 0
}

// DayFormat is the calendar-day layout used throughout the engine. Days
// compare correctly as plain strings.
const DayFormat = "2006-01-02"

// Timestamp layouts seen in settlement and authorization exports, tried in
// order. Zone-less layouts parse as UTC.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// Normalize parses a raw timestamp, applies the timezone shift and buckets
// the result to a calendar day. The second return value is false when the
// input is blank or no parse attempt succeeds.
func Normalize(raw string, tz Timezone) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	t, ok := parseTimestamp(s)
	if !ok {
		t, ok = parseTimestamp(stripNoise(s))
	}
	if !ok {
		datePart, _, _ := strings.Cut(s, " ")
		t, ok = parseTimestamp(datePart)
	}
	if !ok {
		return "", false
	}

	t = t.Add(time.Duration(tz.OffsetHours()) * time.Hour)
	return t.UTC().Format(DayFormat), true
}

// parseTimestamp tries the known layouts in order.
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// stripNoise removes every rune except digits, hyphens, spaces and colons.
func stripNoise(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '-', r == ' ', r == ':':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
