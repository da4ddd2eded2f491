package calendar

import (
	"testing"
)

func TestNormalizeFormats(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		tz   Timezone
		want string
		ok   bool
	}{
		{name: "RFC3339", raw: "2024-01-05T10:00:00Z", tz: TimezoneGMT0, want: "2024-01-05", ok: true},
		{name: "RFC3339 with offset", raw: "2024-01-05T10:00:00+02:00", tz: TimezoneGMT0, want: "2024-01-05", ok: true},
		{name: "no zone", raw: "2024-01-05T10:00:00", tz: TimezoneGMT0, want: "2024-01-05", ok: true},
		{name: "space separated", raw: "2024-01-05 10:00:00", tz: TimezoneGMT0, want: "2024-01-05", ok: true},
		{name: "bare date", raw: "2024-01-05", tz: TimezoneGMT0, want: "2024-01-05", ok: true},
		{name: "slash date", raw: "2024/01/05", tz: TimezoneGMT0, want: "2024-01-05", ok: true},
		{name: "US date", raw: "01/05/2024", tz: TimezoneGMT0, want: "2024-01-05", ok: true},
		{name: "empty", raw: "", tz: TimezoneGMT0, ok: false},
		{name: "blank", raw: "   ", tz: TimezoneGMT0, ok: false},
		{name: "garbage", raw: "not a date", tz: TimezoneGMT0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw, tt.tz)
			if ok != tt.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Normalize(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeSalvageAttempts(t *testing.T) {
	// Stray characters are stripped on the second attempt.
	got, ok := Normalize("2024-01-05 10:00:00 (UTC)", TimezoneGMT6)
	if !ok {
		t.Fatal("Expected salvage parse to succeed")
	}
	if got != "2024-01-05" {
		t.Errorf("Expected 2024-01-05, got %s", got)
	}

	// The third attempt keeps only the bare date before the first space.
	got, ok = Normalize("2024-01-05 morning", TimezoneGMT0)
	if !ok {
		t.Fatal("Expected bare-date fallback to succeed")
	}
	if got != "2024-01-05" {
		t.Errorf("Expected 2024-01-05, got %s", got)
	}
}

func TestNormalizeTimezoneShift(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		tz   Timezone
		want string
	}{
		{name: "GMT+0 keeps day", raw: "2024-01-05T22:00:00Z", tz: TimezoneGMT0, want: "2024-01-05"},
		{name: "GMT+6 crosses midnight", raw: "2024-01-05T22:00:00Z", tz: TimezoneGMT6, want: "2024-01-06"},
		{name: "GMT+6 same day", raw: "2024-01-05T10:00:00Z", tz: TimezoneGMT6, want: "2024-01-05"},
		{name: "GMT+6 year boundary", raw: "2023-12-31T19:30:00Z", tz: TimezoneGMT6, want: "2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw, tt.tz)
			if !ok {
				t.Fatalf("Normalize(%q) failed", tt.raw)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q, %s) = %s, want %s", tt.raw, tt.tz, got, tt.want)
			}
		})
	}
}

func TestTimezone(t *testing.T) {
	if !TimezoneGMT0.IsValid() || !TimezoneGMT6.IsValid() {
		t.Error("Expected recognized timezones to be valid")
	}
	if Timezone("GMT+2").IsValid() {
		t.Error("Expected GMT+2 to be invalid")
	}
	if TimezoneGMT0.OffsetHours() != 0 {
		t.Errorf("Expected GMT+0 offset 0, got %d", TimezoneGMT0.OffsetHours())
	}
	if TimezoneGMT6.OffsetHours() != 6 {
		t.Errorf("Expected GMT+6 offset 6, got %d", TimezoneGMT6.OffsetHours())
	}
}
