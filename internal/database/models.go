package database

import "time"

type PlantStage string

const (
	StageGermination  PlantStage = "germination"
	StageSeedling     PlantStage = "seedling"
	StageVegetative   PlantStage = "vegetative"
	StageFlowering    PlantStage = "flowering"
	StageHarvestReady PlantStage = "harvest_ready"
)

var StageNames = map[PlantStage]string{
	StageGermination:  "Прорастание",
	StageSeedling:     "Рассада",
	StageVegetative:   "Вегетация",
	StageFlowering:    "Цветение",
	StageHarvestReady: "Урожай готов!",
}

var StageEmojis = map[PlantStage]string{
	StageGermination:  "🌱",
	StageSeedling:     "🌿",
	StageVegetative:   "🪴",
	StageFlowering:    "🌸",
	StageHarvestReady: "🧺",
}

type WateringSchedule string

const (
	ScheduleDaily WateringSchedule = "daily"
	Schedule2Days WateringSchedule = "2days"
	Schedule3Days WateringSchedule = "3days"
	Schedule4Days WateringSchedule = "4days"
	Schedule5Days WateringSchedule = "5days"
	Schedule6Days WateringSchedule = "6days"
	Schedule7Days WateringSchedule = "7days"
)

var ScheduleNames = map[WateringSchedule]string{
	ScheduleDaily: "каждый день",
	Schedule2Days: "раз в 2 дня",
	Schedule3Days: "раз в 3 дня",
	Schedule4Days: "раз в 4 дня",
	Schedule5Days: "раз в 5 дней",
	Schedule6Days: "раз в 6 дней",
	Schedule7Days: "раз в 7 дней",
}

type EventType string

const (
	EventWatering   EventType = "watering"
	EventFeeding    EventType = "feeding"
	EventPruning    EventType = "pruning"
	EventTransplant EventType = "transplant"
	EventHarvest    EventType = "harvest"
	EventCustom     EventType = "custom"
)

var EventTypeNames = map[EventType]string{
	EventWatering:   "Полив",
	EventFeeding:    "Подкормка",
	EventPruning:    "Обрезка",
	EventTransplant: "Пересадка",
	EventHarvest:    "Сбор урожая",
	EventCustom:     "Другое",
}

var EventTypeEmojis = map[EventType]string{
	EventWatering:   "💧",
	EventFeeding:    "🧪",
	EventPruning:    "✂️",
	EventTransplant: "🔄",
	EventHarvest:    "🧺",
	EventCustom:     "📌",
}

// PlantPhase запись об одной фазе роста; у открытой фазы EndDate не задан
type PlantPhase struct {
	ID        int64      `json:"id"`
	PlantID   string     `json:"plant_id"`
	Stage     PlantStage `json:"stage"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// PlantRatings восемь оценок 1-5 и производный общий рейтинг
type PlantRatings struct {
	GerminationSpeed int     `json:"germination_speed"`
	Maintenance      int     `json:"maintenance"`
	Aroma            int     `json:"aroma"`
	FlowerCount      int     `json:"flower_count"`
	FlowerVolume     int     `json:"flower_volume"`
	VegSpeed         int     `json:"veg_speed"`
	BloomSpeed       int     `json:"bloom_speed"`
	TotalYield       int     `json:"total_yield"`
	OverallRating    float64 `json:"overall_rating"`
}

type Plant struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Species          string           `json:"species"`
	SeedBank         string           `json:"seed_bank,omitempty"`
	Price            float64          `json:"price,omitempty"`
	ExpectedDays     int              `json:"expected_days"`
	WateringSchedule WateringSchedule `json:"watering_schedule"`
	CurrentStage     PlantStage       `json:"current_stage"`
	PlantingDate     time.Time        `json:"planting_date"`
	Notes            string           `json:"notes,omitempty"`
	Photos           []string         `json:"photos"`
	AvatarPhoto      string           `json:"avatar_photo,omitempty"`
	IsArchived       bool             `json:"is_archived"`
	Phases           []PlantPhase     `json:"phases"`
	Ratings          *PlantRatings    `json:"ratings,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type PlantEvent struct {
	ID              string    `json:"id"`
	PlantID         string    `json:"plant_id"`
	Date            time.Time `json:"date"`
	Type            EventType `json:"type"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Completed       bool      `json:"completed"`
	ReminderMinutes int       `json:"reminder_minutes,omitempty"`
	ReminderID      string    `json:"reminder_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	PlantID   string    `json:"plant_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Reminder отложенное напоминание о событии, рассылается кроном
type Reminder struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	PlantID   string    `json:"plant_id"`
	FireAt    time.Time `json:"fire_at"`
	Title     string    `json:"title"`
	Sent      bool      `json:"sent"`
	CreatedAt time.Time `json:"created_at"`
}
