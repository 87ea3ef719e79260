package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type Repository struct {
	Db *Database
}

func NewRepository(db *Database) *Repository {
	return &Repository{Db: db}
}

// Plant repository methods

func (r *Repository) GetPlants() ([]Plant, error) {
	rows, err := r.Db.db.Query(`
		SELECT id, name, species, seed_bank, price, expected_days,
		       watering_schedule, current_stage, planting_date, notes,
		       avatar_photo, is_archived, created_at, updated_at
		FROM plants
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plants []Plant
	for rows.Next() {
		var p Plant
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Species,
			&p.SeedBank,
			&p.Price,
			&p.ExpectedDays,
			&p.WateringSchedule,
			&p.CurrentStage,
			&p.PlantingDate,
			&p.Notes,
			&p.AvatarPhoto,
			&p.IsArchived,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plants {
		if err := r.loadPlantDetails(&plants[i]); err != nil {
			return nil, err
		}
	}

	return plants, nil
}

// GetPlant возвращает растение с фазами, фото и рейтингом; nil если не найдено
func (r *Repository) GetPlant(id string) (*Plant, error) {
	var p Plant
	err := r.Db.db.QueryRow(`
		SELECT id, name, species, seed_bank, price, expected_days,
		       watering_schedule, current_stage, planting_date, notes,
		       avatar_photo, is_archived, created_at, updated_at
		FROM plants
		WHERE id = ?
	`, id).Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.SeedBank,
		&p.Price,
		&p.ExpectedDays,
		&p.WateringSchedule,
		&p.CurrentStage,
		&p.PlantingDate,
		&p.Notes,
		&p.AvatarPhoto,
		&p.IsArchived,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadPlantDetails(&p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *Repository) loadPlantDetails(p *Plant) error {
	phases, err := r.GetPhases(p.ID)
	if err != nil {
		return err
	}
	p.Phases = phases

	rows, err := r.Db.db.Query(`SELECT uri FROM plant_photos WHERE plant_id = ? ORDER BY id`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var uri string
		if err := rows.Scan(&uri); err != nil {
			return err
		}
		p.Photos = append(p.Photos, uri)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	ratings, err := r.getRatings(p.ID)
	if err != nil {
		return err
	}
	p.Ratings = ratings

	return nil
}

func (r *Repository) AddPlant(p Plant) error {
	tx, err := r.Db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO plants
			(id, name, species, seed_bank, price, expected_days, watering_schedule,
			 stage, current_stage, planting_date, notes, avatar_photo, is_archived,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Species, p.SeedBank, p.Price, p.ExpectedDays, p.WateringSchedule,
		p.CurrentStage, p.CurrentStage, p.PlantingDate, p.Notes, p.AvatarPhoto, p.IsArchived,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}

	for _, phase := range p.Phases {
		_, err = tx.Exec(`
			INSERT INTO plant_phases (plant_id, stage, start_date, end_date, notes)
			VALUES (?, ?, ?, ?, ?)
		`, p.ID, phase.Stage, phase.StartDate, nullTime(phase.EndDate), phase.Notes)
		if err != nil {
			return err
		}
	}

	for _, uri := range p.Photos {
		_, err = tx.Exec(`INSERT INTO plant_photos (plant_id, uri) VALUES (?, ?)`, p.ID, uri)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) SetArchived(id string, archived bool) error {
	return r.touchPlant(id, "UPDATE plants SET is_archived = ?, updated_at = ? WHERE id = ?", archived)
}

func (r *Repository) SetAvatarPhoto(id, uri string) error {
	return r.touchPlant(id, "UPDATE plants SET avatar_photo = ?, updated_at = ? WHERE id = ?", uri)
}

func (r *Repository) UpdateWateringSchedule(id string, schedule WateringSchedule) error {
	return r.touchPlant(id, "UPDATE plants SET watering_schedule = ?, updated_at = ? WHERE id = ?", schedule)
}

func (r *Repository) touchPlant(id, query string, value interface{}) error {
	res, err := r.Db.db.Exec(query, value, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("растение %s не найдено", id)
	}
	return nil
}

func (r *Repository) AddPhoto(plantID, uri string) error {
	_, err := r.Db.db.Exec(`INSERT INTO plant_photos (plant_id, uri) VALUES (?, ?)`, plantID, uri)
	return err
}

func (r *Repository) DeletePlant(id string) error {
	tx, err := r.Db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, query := range []string{
		"DELETE FROM plant_photos WHERE plant_id = ?",
		"DELETE FROM plant_phases WHERE plant_id = ?",
		"DELETE FROM plant_ratings WHERE plant_id = ?",
		"DELETE FROM plants WHERE id = ?",
	} {
		if _, err := tx.Exec(query, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Phase repository methods

func (r *Repository) GetPhases(plantID string) ([]PlantPhase, error) {
	rows, err := r.Db.db.Query(`
		SELECT id, plant_id, stage, start_date, end_date, notes
		FROM plant_phases
		WHERE plant_id = ?
		ORDER BY start_date, id
	`, plantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phases []PlantPhase
	for rows.Next() {
		var phase PlantPhase
		var end sql.NullTime
		err := rows.Scan(
			&phase.ID,
			&phase.PlantID,
			&phase.Stage,
			&phase.StartDate,
			&end,
			&phase.Notes,
		)
		if err != nil {
			return nil, err
		}
		if end.Valid {
			t := end.Time
			phase.EndDate = &t
		}
		phases = append(phases, phase)
	}

	return phases, rows.Err()
}

// ApplyTransition атомарно закрывает текущую фазу, открывает новую
// и обновляет текущую стадию растения
func (r *Repository) ApplyTransition(plantID string, closePhaseID int64, end time.Time, newPhase PlantPhase, newStage PlantStage) error {
	tx, err := r.Db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if closePhaseID != 0 {
		_, err = tx.Exec(`UPDATE plant_phases SET end_date = ? WHERE id = ?`, end, closePhaseID)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(`
		INSERT INTO plant_phases (plant_id, stage, start_date, notes)
		VALUES (?, ?, ?, ?)
	`, plantID, newPhase.Stage, newPhase.StartDate, newPhase.Notes)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE plants SET current_stage = ?, stage = ?, updated_at = ? WHERE id = ?`,
		newStage, newStage, time.Now().UTC(), plantID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) UpdatePhaseNotes(phaseID int64, notes string) error {
	_, err := r.Db.db.Exec(`UPDATE plant_phases SET notes = ? WHERE id = ?`, notes, phaseID)
	return err
}

// Ratings repository methods

func (r *Repository) SaveRatings(plantID string, ratings PlantRatings) error {
	_, err := r.Db.db.Exec(`
		INSERT OR REPLACE INTO plant_ratings
			(plant_id, germination_speed, maintenance, aroma, flower_count,
			 flower_volume, veg_speed, bloom_speed, total_yield, overall_rating)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, plantID, ratings.GerminationSpeed, ratings.Maintenance, ratings.Aroma,
		ratings.FlowerCount, ratings.FlowerVolume, ratings.VegSpeed,
		ratings.BloomSpeed, ratings.TotalYield, ratings.OverallRating)
	return err
}

func (r *Repository) getRatings(plantID string) (*PlantRatings, error) {
	var ratings PlantRatings
	err := r.Db.db.QueryRow(`
		SELECT germination_speed, maintenance, aroma, flower_count,
		       flower_volume, veg_speed, bloom_speed, total_yield, overall_rating
		FROM plant_ratings
		WHERE plant_id = ?
	`, plantID).Scan(
		&ratings.GerminationSpeed,
		&ratings.Maintenance,
		&ratings.Aroma,
		&ratings.FlowerCount,
		&ratings.FlowerVolume,
		&ratings.VegSpeed,
		&ratings.BloomSpeed,
		&ratings.TotalYield,
		&ratings.OverallRating,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ratings, nil
}

// Event repository methods

func (r *Repository) AddEvent(e PlantEvent) error {
	_, err := r.Db.db.Exec(`
		INSERT INTO plant_events
			(id, plant_id, date, type, title, description, completed,
			 reminder_minutes, reminder_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.PlantID, e.Date, e.Type, e.Title, e.Description, e.Completed,
		e.ReminderMinutes, e.ReminderID, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *Repository) GetEvent(id string) (*PlantEvent, error) {
	var e PlantEvent
	err := r.Db.db.QueryRow(`
		SELECT id, plant_id, date, type, title, description, completed,
		       reminder_minutes, reminder_id, created_at, updated_at
		FROM plant_events
		WHERE id = ?
	`, id).Scan(
		&e.ID, &e.PlantID, &e.Date, &e.Type, &e.Title, &e.Description,
		&e.Completed, &e.ReminderMinutes, &e.ReminderID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetPlantEvents возвращает события растения в порядке добавления
func (r *Repository) GetPlantEvents(plantID string) ([]PlantEvent, error) {
	return r.queryEvents(`
		SELECT id, plant_id, date, type, title, description, completed,
		       reminder_minutes, reminder_id, created_at, updated_at
		FROM plant_events
		WHERE plant_id = ?
		ORDER BY rowid
	`, plantID)
}

func (r *Repository) GetEventsBetween(from, to time.Time) ([]PlantEvent, error) {
	return r.queryEvents(`
		SELECT id, plant_id, date, type, title, description, completed,
		       reminder_minutes, reminder_id, created_at, updated_at
		FROM plant_events
		WHERE date >= ? AND date < ?
		ORDER BY date, rowid
	`, from, to)
}

func (r *Repository) queryEvents(query string, args ...interface{}) ([]PlantEvent, error) {
	rows, err := r.Db.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []PlantEvent
	for rows.Next() {
		var e PlantEvent
		err := rows.Scan(
			&e.ID, &e.PlantID, &e.Date, &e.Type, &e.Title, &e.Description,
			&e.Completed, &e.ReminderMinutes, &e.ReminderID, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (r *Repository) MarkEventCompleted(id string) error {
	_, err := r.Db.db.Exec(`UPDATE plant_events SET completed = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
	return err
}

func (r *Repository) SetEventReminder(id string, minutes int, reminderID string) error {
	_, err := r.Db.db.Exec(`
		UPDATE plant_events SET reminder_minutes = ?, reminder_id = ?, updated_at = ?
		WHERE id = ?
	`, minutes, reminderID, time.Now().UTC(), id)
	return err
}

func (r *Repository) DeleteEventsForPlant(plantID string) error {
	_, err := r.Db.db.Exec(`DELETE FROM plant_events WHERE plant_id = ?`, plantID)
	return err
}

// DeletePendingWateringEvents удаляет невыполненные события полива,
// используется при смене графика
func (r *Repository) DeletePendingWateringEvents(plantID string) error {
	_, err := r.Db.db.Exec(`
		DELETE FROM plant_events
		WHERE plant_id = ? AND type = ? AND completed = 0
	`, plantID, EventWatering)
	return err
}

// Reminder repository methods

func (r *Repository) AddReminder(rem Reminder) error {
	_, err := r.Db.db.Exec(`
		INSERT INTO reminders (id, event_id, plant_id, fire_at, title, sent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rem.ID, rem.EventID, rem.PlantID, rem.FireAt, rem.Title, rem.Sent, rem.CreatedAt)
	return err
}

func (r *Repository) DeleteReminder(id string) error {
	_, err := r.Db.db.Exec(`DELETE FROM reminders WHERE id = ?`, id)
	return err
}

func (r *Repository) GetDueReminders(now time.Time) ([]Reminder, error) {
	rows, err := r.Db.db.Query(`
		SELECT id, event_id, plant_id, fire_at, title, sent, created_at
		FROM reminders
		WHERE sent = 0 AND fire_at <= ?
		ORDER BY fire_at
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		var rem Reminder
		err := rows.Scan(&rem.ID, &rem.EventID, &rem.PlantID, &rem.FireAt,
			&rem.Title, &rem.Sent, &rem.CreatedAt)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}

	return reminders, rows.Err()
}

func (r *Repository) MarkReminderSent(id string) error {
	_, err := r.Db.db.Exec(`UPDATE reminders SET sent = 1 WHERE id = ?`, id)
	return err
}

// Note repository methods

func (r *Repository) AddNote(n Note) error {
	tags, err := json.Marshal(n.Tags)
	if err != nil {
		return err
	}
	_, err = r.Db.db.Exec(`
		INSERT INTO notes (id, title, content, tags, plant_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.Title, n.Content, string(tags), n.PlantID, n.CreatedAt, n.UpdatedAt)
	return err
}

func (r *Repository) GetNotes() ([]Note, error) {
	rows, err := r.Db.db.Query(`
		SELECT id, title, content, tags, plant_id, created_at, updated_at
		FROM notes
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}

	return notes, rows.Err()
}

func (r *Repository) GetNote(id string) (*Note, error) {
	row := r.Db.db.QueryRow(`
		SELECT id, title, content, tags, plant_id, created_at, updated_at
		FROM notes
		WHERE id = ?
	`, id)
	n, err := scanNote(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return n, err
}

func scanNote(scan func(...interface{}) error) (*Note, error) {
	var n Note
	var tags string
	err := scan(&n.ID, &n.Title, &n.Content, &tags, &n.PlantID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
		return nil, fmt.Errorf("ошибка разбора тегов заметки %s: %w", n.ID, err)
	}
	return &n, nil
}

func (r *Repository) UpdateNote(n Note) error {
	tags, err := json.Marshal(n.Tags)
	if err != nil {
		return err
	}
	_, err = r.Db.db.Exec(`
		UPDATE notes SET title = ?, content = ?, tags = ?, plant_id = ?, updated_at = ?
		WHERE id = ?
	`, n.Title, n.Content, string(tags), n.PlantID, time.Now().UTC(), n.ID)
	return err
}

func (r *Repository) DeleteNote(id string) error {
	_, err := r.Db.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	return err
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
