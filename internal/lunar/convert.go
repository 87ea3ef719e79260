package lunar

import (
	"fmt"

	"github.com/6tail/lunar-go/calendar"
)

// ChineseConverter реализует Converter поверх библиотеки lunar-go.
// Библиотека паникует на датах вне поддерживаемого диапазона,
// паника переводится в ошибку.
type ChineseConverter struct{}

func NewChineseConverter() *ChineseConverter {
	return &ChineseConverter{}
}

func (c *ChineseConverter) SolarToLunar(year, month, day int) (conv Conversion, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ошибка преобразования даты %d-%02d-%02d: %v", year, month, day, r)
		}
	}()

	solar := calendar.NewSolarFromYmd(year, month, day)
	l := solar.GetLunar()

	return Conversion{
		Day:       l.GetDay(),
		DayName:   l.GetDayInChinese(),
		MonthName: l.GetMonthInChinese(),
		Zodiac:    l.GetYearShengXiao(),
	}, nil
}
