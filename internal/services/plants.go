package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"grow-diary/internal/database"
	"grow-diary/internal/plant"
	"grow-diary/internal/watering"
)

type PlantRepository interface {
	GetPlants() ([]database.Plant, error)
	GetPlant(id string) (*database.Plant, error)
	AddPlant(p database.Plant) error
	SetArchived(id string, archived bool) error
	SetAvatarPhoto(id, uri string) error
	AddPhoto(plantID, uri string) error
	UpdateWateringSchedule(id string, schedule database.WateringSchedule) error
	ApplyTransition(plantID string, closePhaseID int64, end time.Time, newPhase database.PlantPhase, newStage database.PlantStage) error
	UpdatePhaseNotes(phaseID int64, notes string) error
	SaveRatings(plantID string, ratings database.PlantRatings) error
	DeletePlant(id string) error
}

// PhotoStore хранилище снимков; ядро оперирует только путями
type PhotoStore interface {
	SavePhoto(srcPath string) (string, error)
	Remove(uri string) error
	RemoveAll(uris []string)
}

type PlantService struct {
	repository PlantRepository
	events     *EventService
	photos     PhotoStore
}

func NewPlantService(repo PlantRepository, events *EventService, photos PhotoStore) *PlantService {
	return &PlantService{
		repository: repo,
		events:     events,
		photos:     photos,
	}
}

// PlantForm данные формы добавления растения
type PlantForm struct {
	Name             string
	Species          string
	SeedBank         string
	Price            float64
	ExpectedDays     int
	WateringSchedule database.WateringSchedule
	Stage            database.PlantStage
	PlantingDate     time.Time
	Photos           []string
	AvatarPhoto      string
	Notes            string
}

// AddPlant создает растение с открытой начальной фазой от даты посадки
// и графиком полива на три месяца вперед
func (ps *PlantService) AddPlant(form PlantForm) (*database.Plant, error) {
	if form.Name == "" {
		return nil, fmt.Errorf("название растения обязательно")
	}
	if _, err := watering.IntervalDays(form.WateringSchedule); err != nil {
		return nil, err
	}
	if form.Stage == "" {
		form.Stage = database.StageGermination
	}

	now := time.Now().UTC()
	p := database.Plant{
		ID:               uuid.NewString(),
		Name:             form.Name,
		Species:          form.Species,
		SeedBank:         form.SeedBank,
		Price:            form.Price,
		ExpectedDays:     form.ExpectedDays,
		WateringSchedule: form.WateringSchedule,
		CurrentStage:     form.Stage,
		PlantingDate:     form.PlantingDate,
		Notes:            form.Notes,
		Photos:           form.Photos,
		AvatarPhoto:      form.AvatarPhoto,
		CreatedAt:        now,
		UpdatedAt:        now,
		Phases: []database.PlantPhase{
			{Stage: form.Stage, StartDate: form.PlantingDate},
		},
	}

	if err := ps.repository.AddPlant(p); err != nil {
		return nil, fmt.Errorf("ошибка сохранения растения: %w", err)
	}

	if err := ps.events.CreateWateringEvents(&p); err != nil {
		log.Printf("⚠️ Ошибка создания графика полива для %s: %v", p.Name, err)
	}

	log.Printf("🌱 Добавлено растение: %s (%s)", p.Name, p.Species)
	return &p, nil
}

func (ps *PlantService) GetPlant(id string) (*database.Plant, error) {
	p, err := ps.repository.GetPlant(id)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения растения: %w", err)
	}
	return p, nil
}

// ActivePlants растения вне архива
func (ps *PlantService) ActivePlants() ([]database.Plant, error) {
	return ps.filterPlants(false)
}

// ArchivedPlants растения в архиве
func (ps *PlantService) ArchivedPlants() ([]database.Plant, error) {
	return ps.filterPlants(true)
}

func (ps *PlantService) filterPlants(archived bool) ([]database.Plant, error) {
	plants, err := ps.repository.GetPlants()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения растений: %w", err)
	}

	var filtered []database.Plant
	for _, p := range plants {
		if p.IsArchived == archived {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// FindByName ищет растение по имени без учета регистра
func (ps *PlantService) FindByName(name string) (*database.Plant, error) {
	plants, err := ps.repository.GetPlants()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения растений: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(name))
	for i := range plants {
		if strings.ToLower(plants[i].Name) == needle {
			return &plants[i], nil
		}
	}
	for i := range plants {
		if strings.HasPrefix(strings.ToLower(plants[i].Name), needle) {
			return &plants[i], nil
		}
	}
	return nil, nil
}

// ChangeStage переводит растение на новую стадию: текущая фаза
// закрывается датой start, открывается новая
func (ps *PlantService) ChangeStage(plantID string, newStage database.PlantStage, start time.Time) (*database.Plant, error) {
	p, err := ps.repository.GetPlant(plantID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения растения: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("растение %s не найдено", plantID)
	}

	var closePhaseID int64
	if open, ok := plant.OpenPhase(p); ok {
		closePhaseID = open.ID
	}

	if err := plant.Transition(p, newStage, start); err != nil {
		return nil, err
	}

	newPhase := p.Phases[len(p.Phases)-1]
	if err := ps.repository.ApplyTransition(plantID, closePhaseID, start, newPhase, newStage); err != nil {
		return nil, fmt.Errorf("ошибка сохранения фазы: %w", err)
	}

	log.Printf("🌿 %s: переход на стадию «%s»", p.Name, database.StageNames[newStage])
	return p, nil
}

// AdvanceStage переводит растение на следующую по порядку стадию
func (ps *PlantService) AdvanceStage(plantID string, start time.Time) (*database.Plant, error) {
	p, err := ps.repository.GetPlant(plantID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения растения: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("растение %s не найдено", plantID)
	}

	next, ok := plant.NextStage(p.CurrentStage)
	if !ok {
		return nil, plant.ErrInvalidTransition
	}
	return ps.ChangeStage(plantID, next, start)
}

// UpdatePhaseNotes заменяет заметки фазы по ее индексу в истории
func (ps *PlantService) UpdatePhaseNotes(plantID string, phaseIndex int, notes string) error {
	p, err := ps.repository.GetPlant(plantID)
	if err != nil {
		return fmt.Errorf("ошибка чтения растения: %w", err)
	}
	if p == nil {
		return fmt.Errorf("растение %s не найдено", plantID)
	}

	if err := plant.UpdatePhaseNotes(p, phaseIndex, notes); err != nil {
		return err
	}

	if err := ps.repository.UpdatePhaseNotes(p.Phases[phaseIndex].ID, notes); err != nil {
		return fmt.Errorf("ошибка сохранения заметок: %w", err)
	}
	return nil
}

// Rate выставляет оценку категории и сохраняет пересчитанный рейтинг
func (ps *PlantService) Rate(plantID string, category plant.RatingCategory, value int) (*database.PlantRatings, error) {
	p, err := ps.repository.GetPlant(plantID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения растения: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("растение %s не найдено", plantID)
	}

	ratings := p.Ratings
	if ratings == nil {
		ratings = &database.PlantRatings{}
	}

	if err := plant.SetSubScore(ratings, category, value); err != nil {
		return nil, err
	}

	if err := ps.repository.SaveRatings(plantID, *ratings); err != nil {
		return nil, fmt.Errorf("ошибка сохранения рейтинга: %w", err)
	}
	return ratings, nil
}

func (ps *PlantService) Archive(plantID string) error {
	if err := ps.repository.SetArchived(plantID, true); err != nil {
		return fmt.Errorf("ошибка архивирования: %w", err)
	}
	return nil
}

func (ps *PlantService) Unarchive(plantID string) error {
	if err := ps.repository.SetArchived(plantID, false); err != nil {
		return fmt.Errorf("ошибка восстановления из архива: %w", err)
	}
	return nil
}

// SetWateringSchedule меняет график полива и перестраивает
// невыполненные события от реальной даты посадки
func (ps *PlantService) SetWateringSchedule(plantID string, schedule database.WateringSchedule) error {
	p, err := ps.repository.GetPlant(plantID)
	if err != nil {
		return fmt.Errorf("ошибка чтения растения: %w", err)
	}
	if p == nil {
		return fmt.Errorf("растение %s не найдено", plantID)
	}

	if err := ps.events.RescheduleWatering(p, schedule); err != nil {
		return err
	}

	if err := ps.repository.UpdateWateringSchedule(plantID, schedule); err != nil {
		return fmt.Errorf("ошибка сохранения графика: %w", err)
	}
	return nil
}

// AttachPhoto сохраняет снимок в хранилище и привязывает к растению
func (ps *PlantService) AttachPhoto(plantID, srcPath string) (string, error) {
	p, err := ps.repository.GetPlant(plantID)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения растения: %w", err)
	}
	if p == nil {
		return "", fmt.Errorf("растение %s не найдено", plantID)
	}

	uri, err := ps.photos.SavePhoto(srcPath)
	if err != nil {
		return "", err
	}

	if err := ps.repository.AddPhoto(plantID, uri); err != nil {
		ps.photos.Remove(uri)
		return "", fmt.Errorf("ошибка сохранения фото: %w", err)
	}

	if p.AvatarPhoto == "" {
		if err := ps.repository.SetAvatarPhoto(plantID, uri); err != nil {
			log.Printf("⚠️ Ошибка установки аватара: %v", err)
		}
	}

	return uri, nil
}

// Delete удаляет растение со всеми фото, событиями и напоминаниями
func (ps *PlantService) Delete(plantID string) error {
	p, err := ps.repository.GetPlant(plantID)
	if err != nil {
		return fmt.Errorf("ошибка чтения растения: %w", err)
	}
	if p == nil {
		return fmt.Errorf("растение %s не найдено", plantID)
	}

	if err := ps.events.DeleteAllForPlant(plantID); err != nil {
		return err
	}

	ps.photos.RemoveAll(p.Photos)
	if p.AvatarPhoto != "" {
		if err := ps.photos.Remove(p.AvatarPhoto); err != nil {
			log.Printf("⚠️ Ошибка удаления аватара %s: %v", p.AvatarPhoto, err)
		}
	}

	if err := ps.repository.DeletePlant(plantID); err != nil {
		return fmt.Errorf("ошибка удаления растения: %w", err)
	}

	log.Printf("🗑 Растение %s удалено", p.Name)
	return nil
}
