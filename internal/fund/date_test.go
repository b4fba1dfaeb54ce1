package fund

import (
	"testing"
	"time"
)

func TestParseMDY(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"2/2/2026", time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)},
		{"02/02/2026", time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)},
		{"12/31/2025", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"1/9/2026", time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)},
		{"2026-02-02", time.Time{}},
		{"not a date", time.Time{}},
		{"", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseMDY(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("ParseMDY(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseLongDate(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"January 30, 2026", time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)},
		{"January 30 2026", time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)},
		{"Jan 30, 2026", time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)},
		{"October 31, 2025", time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)},
		{"  February 2, 2026  ", time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)},
		{"30 January 2026", time.Time{}},
		{"", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLongDate(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("ParseLongDate(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}
