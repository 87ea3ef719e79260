package telegram

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"grow-diary/internal/database"
	"grow-diary/internal/lunar"
	"grow-diary/internal/plant"
	"grow-diary/internal/services"
	"grow-diary/internal/utils"
	"grow-diary/internal/watering"
)

// handlers.go - обработчики команд Telegram бота

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	message := `🌱 <b>Дневник растениевода</b>

Доступные команды:
/plants - Мои растения
/archive - Архив растений
/today - События на сегодня
/next [имя] - Ближайшее событие растения
/add [график] [имя] - Добавить растение
/stage [имя] - Стадия растения
/water [имя] - Отметить полив
/rate [имя] [категория]=[1-5] - Оценить растение
/schedule [имя] [график] - Изменить график полива
/lunar - Лунный календарь на сегодня
/month - Лунный календарь на месяц
/good - Благоприятные дни месяца
/note [текст] - Добавить заметку
/notes - Все заметки
/help - Помощь

Пример:
/add 3days Базилик
/rate Базилик аромат=5`

	b.SendMessageOrLogError(message)
}

func (b *Bot) handlePlants(msg *tgbotapi.Message) {
	plants, err := b.services.Plant.ActivePlants()
	if err != nil {
		b.SendMessageOrLogError("❌ Ошибка получения растений")
		return
	}

	if len(plants) == 0 {
		b.SendMessageOrLogError("📭 Растений пока нет. Добавьте: /add [график] [имя]")
		return
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf("🌱 <b>Мои растения (%d)</b>\n\n", len(plants)))

	for _, p := range plants {
		age := utils.DaysBetween(p.PlantingDate, time.Now())
		message.WriteString(fmt.Sprintf(
			"%s <b>%s</b>\n"+
				"📅 Посажено: %s (%d дн.)\n"+
				"🌿 Стадия: %s\n"+
				"💧 Полив: %s\n",
			database.StageEmojis[p.CurrentStage], p.Name,
			utils.FormatDate(p.PlantingDate), age,
			database.StageNames[p.CurrentStage],
			database.ScheduleNames[p.WateringSchedule],
		))

		if next, err := b.services.Event.NextUpcoming(p.ID, time.Now()); err == nil && next != nil {
			message.WriteString(fmt.Sprintf(
				"⏭ Следующее: %s %s — %s\n",
				database.EventTypeEmojis[next.Type], next.Title, utils.FormatDate(next.Date),
			))
		}
		message.WriteString("\n")
	}

	b.SendMessageOrLogError(message.String())
}

func (b *Bot) handleArchive(msg *tgbotapi.Message) {
	plants, err := b.services.Plant.ArchivedPlants()
	if err != nil {
		b.SendMessageOrLogError("❌ Ошибка получения архива")
		return
	}

	if len(plants) == 0 {
		b.SendMessageOrLogError("📭 Архив пуст")
		return
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf("📦 <b>Архив (%d)</b>\n\n", len(plants)))

	for _, p := range plants {
		message.WriteString(fmt.Sprintf(
			"%s <b>%s</b> — %s\n",
			database.StageEmojis[p.CurrentStage], p.Name,
			database.StageNames[p.CurrentStage],
		))
		if p.Ratings != nil && p.Ratings.OverallRating > 0 {
			message.WriteString(fmt.Sprintf("⭐ Рейтинг: %.1f/5\n", p.Ratings.OverallRating))
		}
		message.WriteString("\n")
	}

	b.SendMessageOrLogError(message.String())
}

func (b *Bot) handleToday(msg *tgbotapi.Message) {
	events, err := b.services.Event.EventsOn(time.Now())
	if err != nil {
		b.SendMessageOrLogError("❌ Ошибка получения событий")
		return
	}

	if len(events) == 0 {
		b.SendMessageOrLogError("📭 На сегодня событий нет")
		return
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf("📅 <b>События на %s</b>\n\n", utils.GetCurrentMSKDate()))

	for _, e := range events {
		status := "⬜"
		if e.Completed {
			status = "✅"
		}

		name := e.PlantID
		if p, err := b.services.Plant.GetPlant(e.PlantID); err == nil && p != nil {
			name = p.Name
		}

		message.WriteString(fmt.Sprintf(
			"%s %s <b>%s</b> — %s\n",
			status, database.EventTypeEmojis[e.Type], e.Title, name,
		))
	}

	b.SendMessageOrLogError(message.String())
}

func (b *Bot) handleNext(msg *tgbotapi.Message) {
	p, ok := b.findPlantArg(strings.TrimPrefix(msg.Text, "/next "))
	if !ok {
		return
	}

	next, err := b.services.Event.NextUpcoming(p.ID, time.Now())
	if err != nil {
		b.SendMessageOrLogError("❌ Ошибка получения событий")
		return
	}
	if next == nil {
		b.SendMessageOrLogError(fmt.Sprintf("📭 У растения %s нет предстоящих событий", p.Name))
		return
	}

	b.SendMessageOrLogError(fmt.Sprintf(
		"⏭ <b>%s</b>\n\n%s %s\n📅 %s",
		p.Name,
		database.EventTypeEmojis[next.Type], next.Title,
		utils.FormatDate(next.Date),
	))
}

func (b *Bot) handleAddPlant(msg *tgbotapi.Message) {
	text := strings.TrimPrefix(msg.Text, "/add ")
	parts := strings.SplitN(text, " ", 2)
	if len(parts) < 2 {
		b.SendMessageOrLogError("❌ Формат: /add [график] [имя]\nГрафики: daily, 2days...7days")
		return
	}

	schedule := database.WateringSchedule(strings.ToLower(parts[0]))
	name := strings.TrimSpace(parts[1])

	p, err := b.services.Plant.AddPlant(services.PlantForm{
		Name:             name,
		WateringSchedule: schedule,
		PlantingDate:     utils.StartOfDay(time.Now()),
	})
	if err != nil {
		if errors.Is(err, watering.ErrUnknownSchedule) {
			b.SendMessageOrLogError("❌ Неизвестный график. Используйте: daily, 2days, 3days, 4days, 5days, 6days, 7days")
			return
		}
		b.SendMessageOrLogError("❌ Ошибка добавления растения")
		return
	}

	b.SendMessageOrLogError(fmt.Sprintf(
		"✅ Добавлено растение:\n%s <b>%s</b>\n💧 Полив: %s\n📅 Посажено: %s",
		database.StageEmojis[p.CurrentStage], p.Name,
		database.ScheduleNames[p.WateringSchedule],
		utils.FormatDate(p.PlantingDate),
	))
}

func (b *Bot) handleStage(msg *tgbotapi.Message) {
	p, ok := b.findPlantArg(strings.TrimPrefix(msg.Text, "/stage "))
	if !ok {
		return
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf(
		"%s <b>%s</b>\n🌿 Текущая стадия: %s\n\n<b>История фаз:</b>\n",
		database.StageEmojis[p.CurrentStage], p.Name,
		database.StageNames[p.CurrentStage],
	))

	for _, phase := range p.Phases {
		message.WriteString(fmt.Sprintf(
			"%s %s: %s\n",
			database.StageEmojis[phase.Stage],
			database.StageNames[phase.Stage],
			utils.FormatDateRange(phase.StartDate, phase.EndDate),
		))
	}

	next, hasNext := plant.NextStage(p.CurrentStage)
	if !hasNext {
		message.WriteString("\n🏁 Финальная стадия достигнута")
		b.SendMessageOrLogError(message.String())
		return
	}

	reply := tgbotapi.NewMessage(b.chatID, message.String())
	reply.ParseMode = "HTML"
	reply.ReplyMarkup = b.createStageKeyboard(p.ID, database.StageNames[next])
	if _, err := b.bot.Send(reply); err != nil {
		log.Printf("❌ Ошибка отправки сообщения: %v", err)
	}
}

func (b *Bot) handleWater(msg *tgbotapi.Message) {
	p, ok := b.findPlantArg(strings.TrimPrefix(msg.Text, "/water "))
	if !ok {
		return
	}

	events, err := b.services.Event.EventsForPlant(p.ID)
	if err != nil {
		b.SendMessageOrLogError("❌ Ошибка получения событий")
		return
	}

	// первый невыполненный полив не позже сегодняшнего дня
	endOfDay := utils.StartOfDay(time.Now()).AddDate(0, 0, 1)
	for _, e := range events {
		if e.Type != database.EventWatering || e.Completed || !e.Date.Before(endOfDay) {
			continue
		}
		if err := b.services.Event.CompleteEvent(e.ID); err != nil {
			b.SendMessageOrLogError("❌ Ошибка отметки полива")
			return
		}
		b.SendMessageOrLogError(fmt.Sprintf("💧 Полив растения <b>%s</b> отмечен!", p.Name))
		return
	}

	b.SendMessageOrLogError(fmt.Sprintf("📭 У растения %s нет поливов к отметке", p.Name))
}

func (b *Bot) handleRate(msg *tgbotapi.Message) {
	text := strings.TrimPrefix(msg.Text, "/rate ")
	parts := strings.SplitN(text, " ", 2)
	if len(parts) < 2 || !strings.Contains(parts[1], "=") {
		b.SendMessageOrLogError("❌ Формат: /rate [имя] [категория]=[1-5]\nКатегории: пророст, уход, аромат, соцветия, объем, вега, цветение, урожай")
		return
	}

	p, ok := b.findPlantArg(parts[0])
	if !ok {
		return
	}

	kv := strings.SplitN(parts[1], "=", 2)
	category, known := ratingCategories[strings.ToLower(strings.TrimSpace(kv[0]))]
	if !known {
		b.SendMessageOrLogError("❌ Неизвестная категория. Используйте: пророст, уход, аромат, соцветия, объем, вега, цветение, урожай")
		return
	}

	value, err := strconv.Atoi(strings.TrimSpace(kv[1]))
	if err != nil {
		b.SendMessageOrLogError("❌ Оценка должна быть числом от 1 до 5")
		return
	}

	ratings, err := b.services.Plant.Rate(p.ID, category, value)
	if err != nil {
		if errors.Is(err, plant.ErrInvalidRating) {
			b.SendMessageOrLogError("❌ Оценка должна быть от 1 до 5")
			return
		}
		b.SendMessageOrLogError("❌ Ошибка сохранения оценки")
		return
	}

	b.SendMessageOrLogError(fmt.Sprintf(
		"✅ Оценка сохранена:\n%s: %d/5\n\n⭐ Общий рейтинг: %.1f/5",
		plant.RatingCategoryNames[category], value, ratings.OverallRating,
	))
}

func (b *Bot) handleSchedule(msg *tgbotapi.Message) {
	text := strings.TrimPrefix(msg.Text, "/schedule ")
	parts := strings.Fields(text)
	if len(parts) < 2 {
		b.SendMessageOrLogError("❌ Формат: /schedule [имя] [график]\nГрафики: daily, 2days...7days")
		return
	}

	schedule := database.WateringSchedule(strings.ToLower(parts[len(parts)-1]))
	p, ok := b.findPlantArg(strings.Join(parts[:len(parts)-1], " "))
	if !ok {
		return
	}

	if err := b.services.Plant.SetWateringSchedule(p.ID, schedule); err != nil {
		if errors.Is(err, watering.ErrUnknownSchedule) {
			b.SendMessageOrLogError("❌ Неизвестный график. Используйте: daily, 2days, 3days, 4days, 5days, 6days, 7days")
			return
		}
		b.SendMessageOrLogError("❌ Ошибка изменения графика")
		return
	}

	b.SendMessageOrLogError(fmt.Sprintf(
		"✅ График полива растения <b>%s</b>: %s\nНевыполненные поливы перестроены",
		p.Name, database.ScheduleNames[schedule],
	))
}

func (b *Bot) handleLunar(msg *tgbotapi.Message) {
	info := b.services.Lunar.ResolveDay(time.Now())

	if info.Phase == lunar.PhaseUnknown {
		b.SendMessageOrLogError("❔ Данные лунного календаря недоступны")
		return
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf(
		"%s <b>%s</b>\n\n"+
			"📅 %s\n"+
			"🌙 %s лунный день (%s)\n"+
			"🗓 Лунный месяц: %s\n"+
			"🐲 Знак года: %s\n",
		lunar.PhaseEmojis[info.Phase], lunar.PhaseNames[info.Phase],
		utils.FormatDate(info.Date),
		info.LunarDayName, strconv.Itoa(info.LunarDay),
		info.LunarMonth,
		info.Zodiac,
	))

	if len(info.Suitable) > 0 {
		message.WriteString("\n✅ <b>Благоприятно:</b>\n")
		for _, activity := range info.Suitable {
			message.WriteString("  • " + activity + "\n")
		}
	}
	if len(info.Unsuitable) > 0 {
		message.WriteString("\n🚫 <b>Неблагоприятно:</b>\n")
		for _, activity := range info.Unsuitable {
			message.WriteString("  • " + activity + "\n")
		}
	}

	b.SendMessageOrLogError(message.String())
}

func (b *Bot) handleMonth(msg *tgbotapi.Message) {
	now := time.Now()
	days := b.services.Lunar.ResolveMonth(now.Year(), now.Month())

	var message strings.Builder
	message.WriteString(fmt.Sprintf("🗓 <b>Лунный календарь: %s %d</b>\n\n",
		utils.MonthName(now.Month()), now.Year()))

	for _, day := range days {
		marker := ""
		if day.IsGoodDay {
			marker = " 🌿"
		}
		message.WriteString(fmt.Sprintf(
			"%s %02d — %s%s\n",
			lunar.PhaseEmojis[day.Phase], day.Date.Day(),
			lunar.PhaseNames[day.Phase], marker,
		))
	}

	b.SendMessageOrLogError(message.String())
}

func (b *Bot) handleGoodDays(msg *tgbotapi.Message) {
	now := time.Now()
	days := b.services.Lunar.GoodDays(now.Year(), now.Month())

	if len(days) == 0 {
		b.SendMessageOrLogError("📭 В этом месяце благоприятных дней не нашлось")
		return
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf("🌿 <b>Благоприятные дни: %s %d</b>\n\n",
		utils.MonthName(now.Month()), now.Year()))

	for _, day := range days {
		message.WriteString(fmt.Sprintf(
			"%s %s — %s\n",
			lunar.PhaseEmojis[day.Phase],
			utils.FormatDate(day.Date),
			lunar.PhaseNames[day.Phase],
		))
	}

	b.SendMessageOrLogError(message.String())
}

func (b *Bot) handleAddNote(msg *tgbotapi.Message) {
	text := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/note "))
	if text == "" {
		b.SendMessageOrLogError("❌ Формат: /note [текст]")
		return
	}

	// первая строка — заголовок, остальное — содержимое
	title := text
	content := ""
	if idx := strings.Index(text, "\n"); idx > 0 {
		title = text[:idx]
		content = strings.TrimSpace(text[idx+1:])
	}

	note, err := b.services.Note.CreateNote(title, content, nil, "")
	if err != nil {
		b.SendMessageOrLogError("❌ Ошибка сохранения заметки")
		return
	}

	b.SendMessageOrLogError(fmt.Sprintf("📝 Заметка сохранена: <b>%s</b>", note.Title))
}

func (b *Bot) handleNotes(msg *tgbotapi.Message) {
	notes, err := b.services.Note.GetNotes()
	if err != nil {
		b.SendMessageOrLogError("❌ Ошибка получения заметок")
		return
	}

	if len(notes) == 0 {
		b.SendMessageOrLogError("📭 Заметок пока нет. Добавьте: /note [текст]")
		return
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf("📝 <b>Заметки (%d)</b>\n\n", len(notes)))

	for _, note := range notes {
		message.WriteString(fmt.Sprintf(
			"<b>%s</b> — %s\n",
			note.Title, utils.FormatDate(note.CreatedAt),
		))
		if note.Content != "" {
			message.WriteString(fmt.Sprintf("<i>%s</i>\n", note.Content))
		}
		message.WriteString("\n")
	}

	b.SendMessageOrLogError(message.String())
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	message := `📚 <b>Список команд</b>

<b>Растения:</b>
/plants - Мои растения со стадиями и поливом
/archive - Архив растений
/add [график] [имя] - Добавить растение
Пример: /add 3days Базилик

/stage [имя] - Стадия растения и история фаз
/schedule [имя] [график] - Изменить график полива
Пример: /schedule Базилик 5days

<b>События:</b>
/today - Все события на сегодня
/next [имя] - Ближайшее событие растения
/water [имя] - Отметить полив выполненным

<b>Оценки:</b>
/rate [имя] [категория]=[1-5] - Оценить растение
Пример: /rate Базилик аромат=5
Категории: пророст, уход, аромат, соцветия, объем, вега, цветение, урожай

<b>Лунный календарь:</b>
/lunar - Рекомендации на сегодня
/month - Фазы луны на месяц
/good - Благоприятные дни для посадки

<b>Заметки:</b>
/note [текст] - Добавить заметку
/notes - Все заметки

<b>Графики полива:</b>
daily - каждый день
2days...7days - раз в N дней`

	b.SendMessageOrLogError(message)
}

// findPlantArg ищет растение по имени из аргумента команды
func (b *Bot) findPlantArg(arg string) (*database.Plant, bool) {
	name := strings.TrimSpace(arg)
	if name == "" {
		b.SendMessageOrLogError("❌ Укажите имя растения")
		return nil, false
	}

	p, err := b.services.Plant.FindByName(name)
	if err != nil {
		b.SendMessageOrLogError("❌ Ошибка поиска растения")
		return nil, false
	}
	if p == nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ Растение «%s» не найдено. Список: /plants", name))
		return nil, false
	}
	return p, true
}

// ratingCategories русские имена категорий для команды /rate
var ratingCategories = map[string]plant.RatingCategory{
	"пророст":  plant.RatingGerminationSpeed,
	"уход":     plant.RatingMaintenance,
	"аромат":   plant.RatingAroma,
	"соцветия": plant.RatingFlowerCount,
	"объем":    plant.RatingFlowerVolume,
	"вега":     plant.RatingVegSpeed,
	"цветение": plant.RatingBloomSpeed,
	"урожай":   plant.RatingTotalYield,
}
