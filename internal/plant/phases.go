// Package plant содержит чистую логику жизненного цикла растения:
// переходы между фазами роста и расчет рейтинга.
package plant

import (
	"errors"
	"time"

	"grow-diary/internal/database"
)

var (
	ErrInvalidTransition    = errors.New("недопустимый переход фазы")
	ErrPhaseIndexOutOfRange = errors.New("фаза с таким индексом не найдена")
)

// StageOrder фиксированный порядок стадий роста, без пропусков и возвратов
var StageOrder = []database.PlantStage{
	database.StageGermination,
	database.StageSeedling,
	database.StageVegetative,
	database.StageFlowering,
	database.StageHarvestReady,
}

func stageIndex(stage database.PlantStage) int {
	for i, s := range StageOrder {
		if s == stage {
			return i
		}
	}
	return -1
}

// NextStage следующая стадия после current; false если стадия конечная
// или неизвестная
func NextStage(current database.PlantStage) (database.PlantStage, bool) {
	idx := stageIndex(current)
	if idx == -1 || idx == len(StageOrder)-1 {
		return "", false
	}
	return StageOrder[idx+1], true
}

// Transition переводит растение на следующую стадию: закрывает открытую
// фазу датой start и открывает новую. Разрешен только переход ровно на
// следующую стадию, "урожай готов" — конечная.
func Transition(p *database.Plant, newStage database.PlantStage, start time.Time) error {
	current := stageIndex(p.CurrentStage)
	next := stageIndex(newStage)
	if next == -1 || next != current+1 {
		return ErrInvalidTransition
	}

	if n := len(p.Phases); n > 0 && p.Phases[n-1].EndDate == nil {
		end := start
		p.Phases[n-1].EndDate = &end
	}

	p.Phases = append(p.Phases, database.PlantPhase{
		PlantID:   p.ID,
		Stage:     newStage,
		StartDate: start,
	})
	p.CurrentStage = newStage

	return nil
}

// UpdatePhaseNotes заменяет заметки фазы по индексу в истории
func UpdatePhaseNotes(p *database.Plant, phaseIndex int, notes string) error {
	if phaseIndex < 0 || phaseIndex >= len(p.Phases) {
		return ErrPhaseIndexOutOfRange
	}
	p.Phases[phaseIndex].Notes = notes
	return nil
}

// OpenPhase возвращает текущую незакрытую фазу растения
func OpenPhase(p *database.Plant) (*database.PlantPhase, bool) {
	for i := len(p.Phases) - 1; i >= 0; i-- {
		if p.Phases[i].EndDate == nil {
			return &p.Phases[i], true
		}
	}
	return nil, false
}
