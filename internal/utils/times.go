package utils

import (
	"time"
)

var moscowLocation *time.Location

func init() {
	var err error
	moscowLocation, err = time.LoadLocation("Europe/Moscow")
	if err != nil {
		// Fallback: UTC+3
		moscowLocation = time.FixedZone("MSK", 3*60*60)
	}
}

// StartOfDay обрезает время до начала суток
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween количество полных суток между датами (from до to)
func DaysBetween(from, to time.Time) int {
	return int(StartOfDay(to).Sub(StartOfDay(from)).Hours() / 24)
}

// FormatDate дата для отображения в сообщениях
func FormatDate(t time.Time) string {
	return t.In(moscowLocation).Format("02.01.2006")
}

// FormatDateTime дата и время для отображения в сообщениях
func FormatDateTime(t time.Time) string {
	return t.In(moscowLocation).Format("02.01.2006 15:04")
}

// FormatDateRange период фазы; открытая фаза длится по настоящее время
func FormatDateRange(start time.Time, end *time.Time) string {
	if end == nil {
		return FormatDate(start) + " - по настоящее время"
	}
	return FormatDate(start) + " - " + FormatDate(*end)
}

// GetCurrentMSKDate текущая дата в МСК
func GetCurrentMSKDate() string {
	return time.Now().In(moscowLocation).Format("2006-01-02")
}

var monthNames = map[time.Month]string{
	time.January:   "Январь",
	time.February:  "Февраль",
	time.March:     "Март",
	time.April:     "Апрель",
	time.May:       "Май",
	time.June:      "Июнь",
	time.July:      "Июль",
	time.August:    "Август",
	time.September: "Сентябрь",
	time.October:   "Октябрь",
	time.November:  "Ноябрь",
	time.December:  "Декабрь",
}

// MonthName русское название месяца
func MonthName(m time.Month) string {
	return monthNames[m]
}
