package models

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"rfc3339", "2026-08-30T12:04:05Z", true},
		{"local date time", "2026-08-30T12:04:05", true},
		{"fractional seconds", "2026-08-30T12:04:05.123456", true},
		{"empty", "", false},
		{"garbage", "yesterday", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tc.in)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got.Year() != 2026 {
				t.Fatalf("year = %d, want 2026", got.Year())
			}
		})
	}
}

func TestParseTimestamp_PreservesWallClock(t *testing.T) {
	got, ok := ParseTimestamp("2026-08-30T23:59:59")
	if !ok {
		t.Fatal("expected ok")
	}
	want := time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
