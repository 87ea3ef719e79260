package watering

import (
	"errors"
	"testing"
	"time"

	"grow-diary/internal/database"
)

func TestGenerateSchedule(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("AllIntervals", func(t *testing.T) {
		schedules := map[database.WateringSchedule]int{
			database.ScheduleDaily: 1,
			database.Schedule2Days: 2,
			database.Schedule3Days: 3,
			database.Schedule4Days: 4,
			database.Schedule5Days: 5,
			database.Schedule6Days: 6,
			database.Schedule7Days: 7,
		}

		for schedule, interval := range schedules {
			entries, err := GenerateSchedule(start, schedule, 10)
			if err != nil {
				t.Fatalf("GenerateSchedule(%s): unexpected error %v", schedule, err)
			}
			if len(entries) != 10 {
				t.Fatalf("GenerateSchedule(%s): expected 10 entries, got %d", schedule, len(entries))
			}
			if !entries[0].Date.Equal(start) {
				t.Errorf("GenerateSchedule(%s): first entry %v, want %v", schedule, entries[0].Date, start)
			}
			for i := 1; i < len(entries); i++ {
				want := start.AddDate(0, 0, i*interval)
				if !entries[i].Date.Equal(want) {
					t.Errorf("GenerateSchedule(%s): entry %d is %v, want %v", schedule, i, entries[i].Date, want)
				}
				if !entries[i].Date.After(entries[i-1].Date) {
					t.Errorf("GenerateSchedule(%s): entries not strictly increasing at %d", schedule, i)
				}
				if entries[i].Completed {
					t.Errorf("GenerateSchedule(%s): entry %d marked completed", schedule, i)
				}
			}
		}
	})

	t.Run("UnknownSchedule", func(t *testing.T) {
		_, err := GenerateSchedule(start, database.WateringSchedule("weekly"), 5)
		if !errors.Is(err, ErrUnknownSchedule) {
			t.Fatalf("expected ErrUnknownSchedule, got %v", err)
		}
	})

	t.Run("ZeroCount", func(t *testing.T) {
		entries, err := GenerateSchedule(start, database.Schedule3Days, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Fatalf("expected empty schedule, got %d entries", len(entries))
		}
	})

	t.Run("NegativeCount", func(t *testing.T) {
		entries, err := GenerateSchedule(start, database.ScheduleDaily, -3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Fatalf("expected empty schedule, got %d entries", len(entries))
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		first, _ := GenerateSchedule(start, database.Schedule5Days, 7)
		second, _ := GenerateSchedule(start, database.Schedule5Days, 7)
		if len(first) != len(second) {
			t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if !first[i].Date.Equal(second[i].Date) {
				t.Errorf("entry %d differs: %v vs %v", i, first[i].Date, second[i].Date)
			}
		}
	})
}

func TestNextWateringDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Date: now.AddDate(0, 0, -1)},
		{Date: now.AddDate(0, 0, 1), Completed: true},
		{Date: now.AddDate(0, 0, 3)},
		{Date: now.AddDate(0, 0, 5)},
	}

	next, ok := NextWateringDate(entries, now)
	if !ok {
		t.Fatal("expected a next watering date")
	}
	if want := now.AddDate(0, 0, 3); !next.Equal(want) {
		t.Errorf("next watering %v, want %v", next, want)
	}

	if _, ok := NextWateringDate(nil, now); ok {
		t.Error("expected no next watering date for empty schedule")
	}
}
