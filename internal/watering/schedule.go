// Package watering строит график полива по фиксированному интервалу.
package watering

import (
	"errors"
	"time"

	"grow-diary/internal/database"
)

var ErrUnknownSchedule = errors.New("неизвестный график полива")

var intervals = map[database.WateringSchedule]int{
	database.ScheduleDaily: 1,
	database.Schedule2Days: 2,
	database.Schedule3Days: 3,
	database.Schedule4Days: 4,
	database.Schedule5Days: 5,
	database.Schedule6Days: 6,
	database.Schedule7Days: 7,
}

// Entry один запланированный полив
type Entry struct {
	Date      time.Time
	Completed bool
}

// IntervalDays возвращает интервал графика в днях
func IntervalDays(schedule database.WateringSchedule) (int, error) {
	days, ok := intervals[schedule]
	if !ok {
		return 0, ErrUnknownSchedule
	}
	return days, nil
}

// GenerateSchedule строит count поливов начиная с start с шагом интервала
// графика. Первый полив совпадает с датой начала, count <= 0 дает пустой
// график.
func GenerateSchedule(start time.Time, schedule database.WateringSchedule, count int) ([]Entry, error) {
	interval, err := IntervalDays(schedule)
	if err != nil {
		return nil, err
	}

	if count <= 0 {
		return []Entry{}, nil
	}

	entries := make([]Entry, 0, count)
	for i := 0; i < count; i++ {
		entries = append(entries, Entry{
			Date:      start.AddDate(0, 0, i*interval),
			Completed: false,
		})
	}

	return entries, nil
}

// NextWateringDate ближайший невыполненный полив после now
func NextWateringDate(entries []Entry, now time.Time) (time.Time, bool) {
	var next time.Time
	found := false
	for _, e := range entries {
		if e.Completed || !e.Date.After(now) {
			continue
		}
		if !found || e.Date.Before(next) {
			next = e.Date
			found = true
		}
	}
	return next, found
}
