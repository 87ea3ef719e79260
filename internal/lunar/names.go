package lunar

import "fmt"

// Русские названия лунных дней
var lunarDayNames = map[string]string{
	"初一": "1-й день",
	"初二": "2-й день",
	"初三": "3-й день",
	"初四": "4-й день",
	"初五": "5-й день",
	"初六": "6-й день",
	"初七": "7-й день",
	"初八": "8-й день",
	"初九": "9-й день",
	"初十": "10-й день",
	"十一": "11-й день",
	"十二": "12-й день",
	"十三": "13-й день",
	"十四": "14-й день",
	"十五": "15-й день",
	"十六": "16-й день",
	"十七": "17-й день",
	"十八": "18-й день",
	"十九": "19-й день",
	"二十": "20-й день",
	"廿一": "21-й день",
	"廿二": "22-й день",
	"廿三": "23-й день",
	"廿四": "24-й день",
	"廿五": "25-й день",
	"廿六": "26-й день",
	"廿七": "27-й день",
	"廿八": "28-й день",
	"廿九": "29-й день",
	"三十": "30-й день",
}

// Русские названия лунных месяцев
var lunarMonthNames = map[string]string{
	"正": "Январь",
	"二": "Февраль",
	"三": "Март",
	"四": "Апрель",
	"五": "Май",
	"六": "Июнь",
	"七": "Июль",
	"八": "Август",
	"九": "Сентябрь",
	"十": "Октябрь",
	"冬": "Ноябрь",
	"腊": "Декабрь",
}

// Русские названия знаков зодиака
var zodiacNames = map[string]string{
	"鼠": "Крыса",
	"牛": "Бык",
	"虎": "Тигр",
	"兔": "Кролик",
	"龙": "Дракон",
	"蛇": "Змея",
	"马": "Лошадь",
	"羊": "Коза",
	"猴": "Обезьяна",
	"鸡": "Петух",
	"狗": "Собака",
	"猪": "Свинья",
}

func localizeDayName(name string, day int) string {
	if ru, ok := lunarDayNames[name]; ok {
		return ru
	}
	if day > 0 {
		return fmt.Sprintf("%d-й день", day)
	}
	return name
}

func localizeMonthName(name string) string {
	if ru, ok := lunarMonthNames[name]; ok {
		return ru
	}
	return name
}

func localizeZodiac(name string) string {
	if ru, ok := zodiacNames[name]; ok {
		return ru
	}
	return name
}
