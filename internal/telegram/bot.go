package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"grow-diary/internal/database"
	"grow-diary/internal/services"
)

type Bot struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	services *services.ServiceManager
	handlers map[string]func(*tgbotapi.Message)
}

func NewBot(token string, chatID int64, serviceManager *services.ServiceManager) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %v", err)
	}

	bot := &Bot{
		bot:      botAPI,
		chatID:   chatID,
		services: serviceManager,
		handlers: make(map[string]func(*tgbotapi.Message)),
	}

	bot.registerHandlers()
	log.Printf("🤖 Бот инициализирован: %s", botAPI.Self.UserName)
	return bot, nil
}

func (b *Bot) registerHandlers() {
	b.handlers["/start"] = b.handleStart
	b.handlers["/plants"] = b.handlePlants
	b.handlers["/archive"] = b.handleArchive
	b.handlers["/today"] = b.handleToday
	b.handlers["/lunar"] = b.handleLunar
	b.handlers["/month"] = b.handleMonth
	b.handlers["/good"] = b.handleGoodDays
	b.handlers["/notes"] = b.handleNotes
	b.handlers["/help"] = b.handleHelp
}

func (b *Bot) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "HTML"
	_, err := b.bot.Send(msg)
	return err
}

// SendReminder отправляет напоминание о событии с кнопкой отметки
func (b *Bot) SendReminder(reminder database.Reminder) error {
	plantName := reminder.PlantID
	if p, err := b.services.Plant.GetPlant(reminder.PlantID); err == nil && p != nil {
		plantName = p.Name
	}

	message := fmt.Sprintf(
		"🔔 <b>%s</b>\n\n🌱 Растение: %s",
		reminder.Title,
		plantName,
	)

	msg := tgbotapi.NewMessage(b.chatID, message)
	msg.ParseMode = "HTML"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Выполнено", "complete_"+reminder.EventID),
		),
	)

	_, err := b.bot.Send(msg)
	return err
}

// createStageKeyboard клавиатура перевода растения на следующую стадию
func (b *Bot) createStageKeyboard(plantID string, stageName string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🌿 Перевести: %s", stageName),
				"stage_"+plantID,
			),
		),
	)
}

func (b *Bot) GetUsername() string {
	return b.bot.Self.UserName
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.Chat.ID != b.chatID {
		b.SendMessage("⛔ Доступ запрещен")
		return
	}

	b.handleMessage(update.Message)
}

// handleMessage обрабатывает текстовые сообщения
func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	text := msg.Text
	if text == "" {
		return
	}

	// Обработка команд с аргументами
	switch {
	case strings.HasPrefix(text, "/add "):
		b.handleAddPlant(msg)
	case strings.HasPrefix(text, "/stage "):
		b.handleStage(msg)
	case strings.HasPrefix(text, "/rate "):
		b.handleRate(msg)
	case strings.HasPrefix(text, "/water "):
		b.handleWater(msg)
	case strings.HasPrefix(text, "/schedule "):
		b.handleSchedule(msg)
	case strings.HasPrefix(text, "/next "):
		b.handleNext(msg)
	case strings.HasPrefix(text, "/note "):
		b.handleAddNote(msg)
	default:
		if strings.HasPrefix(text, "/") {
			parts := strings.Fields(text)
			command := parts[0]

			if handler, exists := b.handlers[command]; exists {
				handler(msg)
			} else {
				b.SendMessageOrLogError("❌ Неизвестная команда. Используйте /help")
			}
		}
	}
}

func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	defer func(bot *tgbotapi.BotAPI, c tgbotapi.Chattable) {
		_, err := bot.Request(c)
		if err != nil {
			fmt.Printf("Telegram Bot request error: %s\n", err.Error())
		}
	}(b.bot, tgbotapi.NewCallback(callback.ID, "✅"))

	if callback.Message.Chat.ID != b.chatID {
		return
	}

	data := callback.Data
	log.Printf("Received callback: %s", data)

	switch {
	case strings.HasPrefix(data, "complete_"):
		b.handleCompleteEvent(data)
	case strings.HasPrefix(data, "stage_"):
		b.handleAdvanceStage(data)
	}
}

// handleCompleteEvent отмечает событие выполненным по кнопке напоминания
func (b *Bot) handleCompleteEvent(data string) {
	eventID := strings.TrimPrefix(data, "complete_")
	if err := b.services.Event.CompleteEvent(eventID); err != nil {
		log.Printf("❌ Ошибка отметки события %s: %v", eventID, err)
		b.SendMessageOrLogError("❌ Ошибка отметки события")
		return
	}
	b.SendMessageOrLogError("✅ Событие выполнено!")
}

// handleAdvanceStage переводит растение на следующую стадию по кнопке
func (b *Bot) handleAdvanceStage(data string) {
	plantID := strings.TrimPrefix(data, "stage_")
	p, err := b.services.Plant.AdvanceStage(plantID, time.Now())
	if err != nil {
		log.Printf("❌ Ошибка перехода стадии для %s: %v", plantID, err)
		b.SendMessageOrLogError("❌ Ошибка перехода на следующую стадию")
		return
	}
	b.SendMessageOrLogError(fmt.Sprintf(
		"%s <b>%s</b> теперь на стадии «%s»",
		database.StageEmojis[p.CurrentStage],
		p.Name,
		database.StageNames[p.CurrentStage],
	))
}
