package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"grow-diary/internal/database"
	"grow-diary/internal/lunar"
	"grow-diary/internal/utils"
)

// NotificationSender интерфейс для отправки уведомлений
type NotificationSender interface {
	SendMessage(text string) error
	SendReminder(reminder database.Reminder) error
}

type ReminderRepository interface {
	AddReminder(r database.Reminder) error
	DeleteReminder(id string) error
	GetDueReminders(now time.Time) ([]database.Reminder, error)
	MarkReminderSent(id string) error
}

// NotificationService регистрирует напоминания о событиях и рассылает
// их по крону; до вызова SetSender рассылка молча пропускается
type NotificationService struct {
	sender     NotificationSender
	repository ReminderRepository
	lunar      *lunar.Resolver
	events     *EventService
	plants     *PlantService
}

func NewNotificationService(repo ReminderRepository, resolver *lunar.Resolver) *NotificationService {
	return &NotificationService{
		repository: repo,
		lunar:      resolver,
	}
}

func (ns *NotificationService) SetSender(sender NotificationSender) {
	ns.sender = sender
}

// Schedule регистрирует напоминание за leadMinutes до события.
// Прошедшее время напоминания — не ошибка: возвращается пустой handle.
func (ns *NotificationService) Schedule(event database.PlantEvent, leadMinutes int) (string, error) {
	fireAt := event.Date.Add(-time.Duration(leadMinutes) * time.Minute)
	if !fireAt.After(time.Now()) {
		return "", nil
	}

	reminder := database.Reminder{
		ID:        uuid.NewString(),
		EventID:   event.ID,
		PlantID:   event.PlantID,
		FireAt:    fireAt,
		Title:     event.Title,
		CreatedAt: time.Now().UTC(),
	}

	if err := ns.repository.AddReminder(reminder); err != nil {
		return "", fmt.Errorf("ошибка регистрации напоминания: %w", err)
	}

	return reminder.ID, nil
}

// Cancel снимает напоминание; пустой handle игнорируется
func (ns *NotificationService) Cancel(handle string) error {
	if handle == "" {
		return nil
	}
	if err := ns.repository.DeleteReminder(handle); err != nil {
		return fmt.Errorf("ошибка отмены напоминания: %w", err)
	}
	return nil
}

// CheckAndSendReminders вызывается кроном каждую минуту
func (ns *NotificationService) CheckAndSendReminders() {
	if ns.sender == nil {
		return
	}

	due, err := ns.repository.GetDueReminders(time.Now())
	if err != nil {
		log.Printf("⚠️ Ошибка получения напоминаний: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}

	log.Printf("🔔 Напоминаний к отправке: %d", len(due))

	for _, reminder := range due {
		if err := ns.sender.SendReminder(reminder); err != nil {
			log.Printf("❌ Ошибка отправки напоминания %s: %v", reminder.ID, err)
			continue
		}
		if err := ns.repository.MarkReminderSent(reminder.ID); err != nil {
			log.Printf("⚠️ Ошибка отметки напоминания %s: %v", reminder.ID, err)
		}
	}
}

// SendLunarDigest утреннее сообщение с рекомендациями лунного календаря
func (ns *NotificationService) SendLunarDigest() {
	if ns.sender == nil || ns.lunar == nil {
		return
	}

	info := ns.lunar.ResolveDay(time.Now())

	var message strings.Builder
	message.WriteString(fmt.Sprintf("%s <b>Лунный календарь на %s</b>\n\n",
		lunar.PhaseEmojis[info.Phase], utils.FormatDate(info.Date)))

	if info.Phase == lunar.PhaseUnknown {
		message.WriteString("Данные лунного календаря недоступны")
	} else {
		message.WriteString(fmt.Sprintf("%s, %s лунный месяц, %s\n\n",
			lunar.PhaseNames[info.Phase], info.LunarMonth, info.LunarDayName))

		if len(info.Suitable) > 0 {
			message.WriteString("✅ <b>Благоприятно:</b>\n")
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
	}

	if err := ns.sender.SendMessage(message.String()); err != nil {
		log.Printf("❌ Ошибка отправки лунной сводки: %v", err)
	}
}

// SendWateringDigest вечерняя сводка поливов на завтра
func (ns *NotificationService) SendWateringDigest() {
	if ns.sender == nil || ns.events == nil || ns.plants == nil {
		return
	}

	tomorrow := time.Now().AddDate(0, 0, 1)
	events, err := ns.events.EventsOn(tomorrow)
	if err != nil {
		log.Printf("⚠️ Ошибка получения событий: %v", err)
		return
	}

	var waterings []database.PlantEvent
	for _, e := range events {
		if e.Type == database.EventWatering && !e.Completed {
			waterings = append(waterings, e)
		}
	}
	if len(waterings) == 0 {
		return
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf("💧 <b>Поливы на %s</b>\n\n", utils.FormatDate(tomorrow)))

	for _, e := range waterings {
		name := e.PlantID
		if p, err := ns.plants.GetPlant(e.PlantID); err == nil && p != nil {
			name = p.Name
		}
		message.WriteString(fmt.Sprintf("  • %s\n", name))
	}

	if err := ns.sender.SendMessage(message.String()); err != nil {
		log.Printf("❌ Ошибка отправки сводки поливов: %v", err)
	}
}
