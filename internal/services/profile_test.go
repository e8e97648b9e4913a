package services

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	tests := []struct {
		name  string
		birth time.Time
		today time.Time
		want  int
	}{
		{"day before birthday", date(2000, 6, 15), date(2024, 6, 14), 23},
		{"on birthday", date(2000, 6, 15), date(2024, 6, 15), 24},
		{"day after birthday", date(2000, 6, 15), date(2024, 6, 16), 24},
		{"earlier month", date(2000, 6, 15), date(2024, 3, 1), 23},
		{"later month", date(2000, 6, 15), date(2024, 9, 1), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Age(tt.birth, tt.today); got != tt.want {
				t.Errorf("Age(%v, %v) = %d, want %d", tt.birth, tt.today, got, tt.want)
			}
		})
	}
}

func TestSkatingDuration(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		today time.Time
		want  string
	}{
		{"years and months", date(2023, 1, 1), date(2024, 3, 1), "1 years, 2 months"},
		{"whole years", date(2023, 1, 1), date(2024, 1, 1), "1 years"},
		{"months only", date(2023, 6, 1), date(2023, 9, 1), "3 months"},
		{"month borrowing", date(2023, 9, 1), date(2024, 3, 1), "6 months"},
		{"just started", date(2024, 3, 1), date(2024, 3, 1), "0 months"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SkatingDuration(tt.start, tt.today); got != tt.want {
				t.Errorf("SkatingDuration(%v, %v) = %q, want %q", tt.start, tt.today, got, tt.want)
			}
		})
	}
}
