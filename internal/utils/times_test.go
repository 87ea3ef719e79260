package utils

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	from := time.Date(2026, 3, 1, 23, 50, 0, 0, time.UTC)
	to := time.Date(2026, 3, 4, 0, 10, 0, 0, time.UTC)

	if got := DaysBetween(from, to); got != 3 {
		t.Errorf("DaysBetween = %d, want 3", got)
	}
	if got := DaysBetween(from, from); got != 0 {
		t.Errorf("DaysBetween same day = %d, want 0", got)
	}
	if got := DaysBetween(to, from); got != -3 {
		t.Errorf("DaysBetween reversed = %d, want -3", got)
	}
}

func TestFormatDateRange(t *testing.T) {
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	open := FormatDateRange(start, nil)
	if open == "" || open[len(open)-1] == '-' {
		t.Errorf("unexpected open range format: %q", open)
	}

	end := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	closed := FormatDateRange(start, &end)
	if closed == open {
		t.Error("closed range must differ from open range")
	}
}
