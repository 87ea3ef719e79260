package lunar

import (
	"errors"
	"testing"
	"time"
)

// fakeConverter считает вызовы и выводит лунный день из дня месяца
type fakeConverter struct {
	calls int
	fail  bool
}

func (f *fakeConverter) SolarToLunar(year, month, day int) (Conversion, error) {
	f.calls++
	if f.fail {
		return Conversion{}, errors.New("date out of range")
	}
	return Conversion{
		Day:       day,
		DayName:   "初一",
		MonthName: "正",
		Zodiac:    "龙",
	}, nil
}

func TestPhaseForDay(t *testing.T) {
	cases := map[int]Phase{
		1:  PhaseNewMoon,
		7:  PhaseNewMoon,
		8:  PhaseWaxing,
		14: PhaseWaxing,
		15: PhaseFullMoon,
		21: PhaseFullMoon,
		22: PhaseWaning,
		30: PhaseWaning,
	}
	for day, want := range cases {
		if got := phaseForDay(day); got != want {
			t.Errorf("phaseForDay(%d) = %s, want %s", day, got, want)
		}
	}
	if got := phaseForDay(0); got != PhaseUnknown {
		t.Errorf("phaseForDay(0) = %s, want unknown", got)
	}
}

func TestResolveDay(t *testing.T) {
	t.Run("Localized", func(t *testing.T) {
		r := NewResolver(&fakeConverter{})
		info := r.ResolveDay(time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC))

		if info.LunarDay != 3 {
			t.Errorf("lunar day %d, want 3", info.LunarDay)
		}
		if info.Phase != PhaseNewMoon {
			t.Errorf("phase %s, want newMoon", info.Phase)
		}
		if info.LunarDayName != "1-й день" {
			t.Errorf("day name %q, want localized", info.LunarDayName)
		}
		if info.LunarMonth != "Январь" {
			t.Errorf("month name %q, want localized", info.LunarMonth)
		}
		if info.Zodiac != "Дракон" {
			t.Errorf("zodiac %q, want localized", info.Zodiac)
		}
		if len(info.Suitable) == 0 {
			t.Error("expected suitable activities for newMoon")
		}
	})

	t.Run("ConverterFailureDegrades", func(t *testing.T) {
		r := NewResolver(&fakeConverter{fail: true})
		info := r.ResolveDay(time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC))

		if info.Phase != PhaseUnknown {
			t.Errorf("phase %s, want unknown", info.Phase)
		}
		if info.IsGoodDay {
			t.Error("degraded day must not be good")
		}
		if len(info.Suitable) != 0 || len(info.Unsuitable) != 0 {
			t.Error("degraded day must have empty activity lists")
		}
	})

	t.Run("GoodDayFlag", func(t *testing.T) {
		r := NewResolver(&fakeConverter{})
		// растущая луна: 5 подходящих против 3 неподходящих
		waxing := r.ResolveDay(time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))
		if !waxing.IsGoodDay {
			t.Error("waxing day expected to be good")
		}
		// новолуние: 4 против 4
		newMoon := r.ResolveDay(time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC))
		if newMoon.IsGoodDay {
			t.Error("newMoon day expected to be not good")
		}
	})
}

func TestResolveMonth(t *testing.T) {
	t.Run("EveryDayOfMonth", func(t *testing.T) {
		r := NewResolver(&fakeConverter{})
		days := r.ResolveMonth(2026, time.February)
		if len(days) != 28 {
			t.Fatalf("expected 28 days, got %d", len(days))
		}
		for i, day := range days {
			if day.Date.Day() != i+1 {
				t.Errorf("day %d has date %v", i, day.Date)
			}
		}
	})

	t.Run("Cached", func(t *testing.T) {
		conv := &fakeConverter{}
		r := NewResolver(conv)

		first := r.ResolveMonth(2026, time.March)
		callsAfterFirst := conv.calls
		if callsAfterFirst != 31 {
			t.Fatalf("expected 31 conversions, got %d", callsAfterFirst)
		}

		second := r.ResolveMonth(2026, time.March)
		if conv.calls != callsAfterFirst {
			t.Errorf("cache miss: %d extra conversions", conv.calls-callsAfterFirst)
		}
		if len(first) != len(second) {
			t.Fatalf("cached result differs in length")
		}
		for i := range first {
			if first[i].LunarDay != second[i].LunarDay || first[i].Phase != second[i].Phase {
				t.Errorf("cached day %d differs", i)
			}
		}
	})

	t.Run("DifferentMonthsCachedSeparately", func(t *testing.T) {
		conv := &fakeConverter{}
		r := NewResolver(conv)
		r.ResolveMonth(2026, time.January)
		r.ResolveMonth(2026, time.February)
		if conv.calls != 31+28 {
			t.Errorf("expected 59 conversions, got %d", conv.calls)
		}
	})
}

func TestGoodDays(t *testing.T) {
	r := NewResolver(&fakeConverter{})
	good := r.GoodDays(2026, time.March)
	for _, day := range good {
		if !day.IsGoodDay {
			t.Errorf("day %v in GoodDays is not good", day.Date)
		}
	}
	// дни 8-21 (растущая и полнолуние дают 5>3 и 4<4): растущая — да
	if len(good) == 0 {
		t.Error("expected some good days in month")
	}
}
