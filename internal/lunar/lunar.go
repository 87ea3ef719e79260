// Package lunar определяет лунный день для даты и дает рекомендации
// садовода по фазе луны. Сбой конвертера не фатален: календарь
// справочный, при ошибке возвращается пустой "неизвестный" день.
package lunar

import (
	"fmt"
	"log"
	"sync"
	"time"
)

type Phase string

const (
	PhaseNewMoon  Phase = "newMoon"
	PhaseWaxing   Phase = "waxing"
	PhaseFullMoon Phase = "fullMoon"
	PhaseWaning   Phase = "waning"
	PhaseUnknown  Phase = "unknown"
)

var PhaseNames = map[Phase]string{
	PhaseNewMoon:  "Новолуние",
	PhaseWaxing:   "Растущая луна",
	PhaseFullMoon: "Полнолуние",
	PhaseWaning:   "Убывающая луна",
	PhaseUnknown:  "Неизвестно",
}

var PhaseEmojis = map[Phase]string{
	PhaseNewMoon:  "🌑",
	PhaseWaxing:   "🌒",
	PhaseFullMoon: "🌕",
	PhaseWaning:   "🌘",
	PhaseUnknown:  "❔",
}

// Conversion результат солнечно-лунного преобразования внешней библиотеки
type Conversion struct {
	Day       int
	DayName   string
	MonthName string
	Zodiac    string
}

// Converter внешняя астрономическая процедура; может отказать
// на неподдерживаемых датах
type Converter interface {
	SolarToLunar(year, month, day int) (Conversion, error)
}

// DayInfo лунный день с рекомендациями; не персистится, считается по запросу
type DayInfo struct {
	Date         time.Time
	LunarDay     int
	LunarDayName string
	LunarMonth   string
	Zodiac       string
	Phase        Phase
	Suitable     []string
	Unsuitable   []string
	IsGoodDay    bool
}

type activities struct {
	suitable   []string
	unsuitable []string
}

var phaseActivities = map[Phase]activities{
	PhaseNewMoon: {
		suitable:   []string{"Планирование посадок", "Подготовка почвы", "Обрезка сухих веток", "Прополка"},
		unsuitable: []string{"Посадка растений", "Пересадка", "Посев семян", "Укоренение черенков"},
	},
	PhaseWaxing: {
		suitable: []string{
			"Посев листовых культур",
			"Посадка растений",
			"Подкормка органическими удобрениями",
			"Полив",
			"Прививка растений",
		},
		unsuitable: []string{"Обрезка растений", "Сбор урожая для хранения", "Деление корневищ"},
	},
	PhaseFullMoon: {
		suitable: []string{
			"Сбор урожая плодов",
			"Подкормка минеральными удобрениями",
			"Борьба с вредителями",
			"Сбор лекарственных трав",
		},
		unsuitable: []string{"Посадка растений", "Пересадка", "Обрезка", "Пасынкование"},
	},
	PhaseWaning: {
		suitable: []string{
			"Посев корнеплодов",
			"Обрезка растений",
			"Сбор корнеплодов",
			"Внесение компоста",
			"Деление многолетников",
		},
		unsuitable: []string{"Посадка листовых культур", "Подкормка", "Прививка"},
	},
}

// Resolver кеширует помесячные результаты на все время работы процесса:
// календарные факты не меняются, инвалидация не нужна
type Resolver struct {
	conv Converter

	mu    sync.Mutex
	cache map[string][]DayInfo
}

func NewResolver(conv Converter) *Resolver {
	return &Resolver{
		conv:  conv,
		cache: make(map[string][]DayInfo),
	}
}

// ResolveDay возвращает лунный день для даты; при отказе конвертера
// деградирует до "неизвестного" дня
func (r *Resolver) ResolveDay(date time.Time) DayInfo {
	data, err := r.conv.SolarToLunar(date.Year(), int(date.Month()), date.Day())
	if err != nil {
		log.Printf("⚠️ Ошибка лунного календаря для %s: %v", date.Format("2006-01-02"), err)
		return unknownDay(date)
	}
	return formatDay(date, data)
}

// ResolveMonth возвращает лунные дни для каждого дня месяца,
// результат кешируется по ключу "год-месяц"
func (r *Resolver) ResolveMonth(year int, month time.Month) []DayInfo {
	key := fmt.Sprintf("%d-%d", year, int(month))

	r.mu.Lock()
	defer r.mu.Unlock()

	if days, ok := r.cache[key]; ok {
		return days
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	total := first.AddDate(0, 1, -1).Day()

	days := make([]DayInfo, 0, total)
	for d := 1; d <= total; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		data, err := r.conv.SolarToLunar(year, int(month), d)
		if err != nil {
			log.Printf("⚠️ Ошибка лунного календаря для %s: %v", date.Format("2006-01-02"), err)
			days = append(days, unknownDay(date))
			continue
		}
		days = append(days, formatDay(date, data))
	}

	r.cache[key] = days
	return days
}

// GoodDays отбирает благоприятные дни месяца
func (r *Resolver) GoodDays(year int, month time.Month) []DayInfo {
	var good []DayInfo
	for _, day := range r.ResolveMonth(year, month) {
		if day.IsGoodDay {
			good = append(good, day)
		}
	}
	return good
}

func formatDay(date time.Time, data Conversion) DayInfo {
	phase := phaseForDay(data.Day)
	acts := phaseActivities[phase]

	return DayInfo{
		Date:         date,
		LunarDay:     data.Day,
		LunarDayName: localizeDayName(data.DayName, data.Day),
		LunarMonth:   localizeMonthName(data.MonthName),
		Zodiac:       localizeZodiac(data.Zodiac),
		Phase:        phase,
		Suitable:     acts.suitable,
		Unsuitable:   acts.unsuitable,
		IsGoodDay:    len(acts.suitable) > len(acts.unsuitable),
	}
}

func unknownDay(date time.Time) DayInfo {
	return DayInfo{
		Date:       date,
		Phase:      PhaseUnknown,
		Suitable:   []string{},
		Unsuitable: []string{},
		IsGoodDay:  false,
	}
}

// Фаза выводится только из номера лунного дня: 1-7 новолуние,
// 8-14 растущая, 15-21 полнолуние, дальше убывающая
func phaseForDay(day int) Phase {
	switch {
	case day < 1:
		return PhaseUnknown
	case day <= 7:
		return PhaseNewMoon
	case day <= 14:
		return PhaseWaxing
	case day <= 21:
		return PhaseFullMoon
	default:
		return PhaseWaning
	}
}
