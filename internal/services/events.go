package services

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"grow-diary/internal/database"
	"grow-diary/internal/watering"
)

// На сколько поливов вперед строится график при создании растения
const wateringHorizon = 90

type EventRepository interface {
	AddEvent(e database.PlantEvent) error
	GetEvent(id string) (*database.PlantEvent, error)
	GetPlantEvents(plantID string) ([]database.PlantEvent, error)
	GetEventsBetween(from, to time.Time) ([]database.PlantEvent, error)
	MarkEventCompleted(id string) error
	SetEventReminder(id string, minutes int, reminderID string) error
	DeleteEventsForPlant(plantID string) error
	DeletePendingWateringEvents(plantID string) error
}

// ReminderScheduler внешний коллаборатор напоминаний: пустой handle
// означает "напоминание не зарегистрировано", это не ошибка
type ReminderScheduler interface {
	Schedule(event database.PlantEvent, leadMinutes int) (string, error)
	Cancel(handle string) error
}

type EventService struct {
	repository EventRepository
	scheduler  ReminderScheduler
}

func NewEventService(repo EventRepository, scheduler ReminderScheduler) *EventService {
	return &EventService{
		repository: repo,
		scheduler:  scheduler,
	}
}

// EventData форма нового события
type EventData struct {
	Date            time.Time
	Type            database.EventType
	Title           string
	Description     string
	ReminderMinutes int
}

func (es *EventService) AddEvent(plantID string, data EventData) (*database.PlantEvent, error) {
	now := time.Now().UTC()
	event := database.PlantEvent{
		ID:              uuid.NewString(),
		PlantID:         plantID,
		Date:            data.Date,
		Type:            data.Type,
		Title:           data.Title,
		Description:     data.Description,
		ReminderMinutes: data.ReminderMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if event.Title == "" {
		event.Title = database.EventTypeNames[event.Type]
	}

	if data.ReminderMinutes > 0 {
		handle, err := es.scheduler.Schedule(event, data.ReminderMinutes)
		if err != nil {
			log.Printf("⚠️ Ошибка регистрации напоминания: %v", err)
		} else {
			event.ReminderID = handle
		}
	}

	if err := es.repository.AddEvent(event); err != nil {
		if event.ReminderID != "" {
			es.scheduler.Cancel(event.ReminderID)
		}
		return nil, fmt.Errorf("ошибка сохранения события: %w", err)
	}

	return &event, nil
}

// CompleteEvent отмечает событие выполненным; повторная отметка — no-op
func (es *EventService) CompleteEvent(id string) error {
	event, err := es.repository.GetEvent(id)
	if err != nil {
		return fmt.Errorf("ошибка чтения события: %w", err)
	}
	if event == nil {
		return fmt.Errorf("событие %s не найдено", id)
	}
	if event.Completed {
		return nil
	}

	if err := es.repository.MarkEventCompleted(id); err != nil {
		return fmt.Errorf("ошибка обновления события: %w", err)
	}

	if event.ReminderID != "" {
		if err := es.scheduler.Cancel(event.ReminderID); err != nil {
			log.Printf("⚠️ Ошибка отмены напоминания %s: %v", event.ReminderID, err)
		}
	}

	return nil
}

// UpdateReminder заменяет напоминание события: старое отменяется,
// новое регистрируется если время еще не прошло
func (es *EventService) UpdateReminder(id string, minutes int) error {
	event, err := es.repository.GetEvent(id)
	if err != nil {
		return fmt.Errorf("ошибка чтения события: %w", err)
	}
	if event == nil {
		return fmt.Errorf("событие %s не найдено", id)
	}

	if event.ReminderID != "" {
		if err := es.scheduler.Cancel(event.ReminderID); err != nil {
			log.Printf("⚠️ Ошибка отмены напоминания %s: %v", event.ReminderID, err)
		}
	}

	var handle string
	if minutes > 0 {
		handle, err = es.scheduler.Schedule(*event, minutes)
		if err != nil {
			log.Printf("⚠️ Ошибка регистрации напоминания: %v", err)
			handle = ""
		}
	}

	if err := es.repository.SetEventReminder(id, minutes, handle); err != nil {
		return fmt.Errorf("ошибка обновления события: %w", err)
	}
	return nil
}

func (es *EventService) EventsForPlant(plantID string) ([]database.PlantEvent, error) {
	return es.repository.GetPlantEvents(plantID)
}

// EventsOn события всех растений за календарные сутки
func (es *EventService) EventsOn(day time.Time) ([]database.PlantEvent, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return es.repository.GetEventsBetween(from, from.AddDate(0, 0, 1))
}

// NextUpcoming ближайшее невыполненное событие строго после asOf;
// при равных датах побеждает добавленное раньше
func (es *EventService) NextUpcoming(plantID string, asOf time.Time) (*database.PlantEvent, error) {
	events, err := es.repository.GetPlantEvents(plantID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения событий: %w", err)
	}

	var future []database.PlantEvent
	for _, e := range events {
		if !e.Completed && e.Date.After(asOf) {
			future = append(future, e)
		}
	}
	if len(future) == 0 {
		return nil, nil
	}

	sort.SliceStable(future, func(i, j int) bool {
		return future[i].Date.Before(future[j].Date)
	})

	return &future[0], nil
}

// DeleteAllForPlant удаляет события растения и снимает их напоминания
func (es *EventService) DeleteAllForPlant(plantID string) error {
	events, err := es.repository.GetPlantEvents(plantID)
	if err != nil {
		return fmt.Errorf("ошибка чтения событий: %w", err)
	}

	for _, e := range events {
		if e.ReminderID == "" {
			continue
		}
		if err := es.scheduler.Cancel(e.ReminderID); err != nil {
			log.Printf("⚠️ Ошибка отмены напоминания %s: %v", e.ReminderID, err)
		}
	}

	if err := es.repository.DeleteEventsForPlant(plantID); err != nil {
		return fmt.Errorf("ошибка удаления событий: %w", err)
	}
	return nil
}

// CreateWateringEvents генерирует события полива от реальной даты
// посадки растения по его графику
func (es *EventService) CreateWateringEvents(p *database.Plant) error {
	entries, err := watering.GenerateSchedule(p.PlantingDate, p.WateringSchedule, wateringHorizon)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, entry := range entries {
		event := database.PlantEvent{
			ID:          uuid.NewString(),
			PlantID:     p.ID,
			Date:        entry.Date,
			Type:        database.EventWatering,
			Title:       "Полив",
			Description: "Автоматическое событие полива по графику",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := es.repository.AddEvent(event); err != nil {
			return fmt.Errorf("ошибка сохранения события полива: %w", err)
		}
	}

	log.Printf("💧 Создано %d событий полива для растения %s", len(entries), p.Name)
	return nil
}

// RescheduleWatering перестраивает график: невыполненные поливы
// удаляются, новые создаются по новому интервалу
func (es *EventService) RescheduleWatering(p *database.Plant, schedule database.WateringSchedule) error {
	if _, err := watering.IntervalDays(schedule); err != nil {
		return err
	}

	if err := es.repository.DeletePendingWateringEvents(p.ID); err != nil {
		return fmt.Errorf("ошибка удаления событий полива: %w", err)
	}

	p.WateringSchedule = schedule
	return es.CreateWateringEvents(p)
}
