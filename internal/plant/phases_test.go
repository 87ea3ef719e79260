package plant

import (
	"errors"
	"testing"
	"time"

	"grow-diary/internal/database"
)

func newTestPlant() *database.Plant {
	planted := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return &database.Plant{
		ID:           "plant-1",
		Name:         "Базилик",
		CurrentStage: database.StageGermination,
		PlantingDate: planted,
		Phases: []database.PlantPhase{
			{PlantID: "plant-1", Stage: database.StageGermination, StartDate: planted},
		},
	}
}

func TestTransition(t *testing.T) {
	start := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	t.Run("SkippingStageRejected", func(t *testing.T) {
		p := newTestPlant()
		err := Transition(p, database.StageVegetative, start)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if p.CurrentStage != database.StageGermination {
			t.Errorf("stage changed on failed transition: %s", p.CurrentStage)
		}
		if len(p.Phases) != 1 {
			t.Errorf("phase history changed on failed transition: %d records", len(p.Phases))
		}
	})

	t.Run("BackwardRejected", func(t *testing.T) {
		p := newTestPlant()
		if err := Transition(p, database.StageSeedling, start); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := Transition(p, database.StageGermination, start); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("SameStageRejected", func(t *testing.T) {
		p := newTestPlant()
		if err := Transition(p, database.StageGermination, start); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("UnknownStageRejected", func(t *testing.T) {
		p := newTestPlant()
		if err := Transition(p, database.PlantStage("dormant"), start); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("NextStageClosesOpenPhase", func(t *testing.T) {
		p := newTestPlant()
		if err := Transition(p, database.StageSeedling, start); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if p.CurrentStage != database.StageSeedling {
			t.Errorf("current stage %s, want %s", p.CurrentStage, database.StageSeedling)
		}
		if len(p.Phases) != 2 {
			t.Fatalf("expected 2 phase records, got %d", len(p.Phases))
		}

		closed := p.Phases[0]
		if closed.Stage != database.StageGermination {
			t.Errorf("closed phase stage %s, want germination", closed.Stage)
		}
		if closed.EndDate == nil || !closed.EndDate.Equal(start) {
			t.Errorf("closed phase end date %v, want %v", closed.EndDate, start)
		}

		open := p.Phases[1]
		if open.Stage != database.StageSeedling {
			t.Errorf("open phase stage %s, want seedling", open.Stage)
		}
		if !open.StartDate.Equal(start) {
			t.Errorf("open phase start %v, want %v", open.StartDate, start)
		}
		if open.EndDate != nil {
			t.Errorf("open phase has end date %v", open.EndDate)
		}
	})

	t.Run("HarvestReadyIsTerminal", func(t *testing.T) {
		p := newTestPlant()
		for _, stage := range StageOrder[1:] {
			if err := Transition(p, stage, start); err != nil {
				t.Fatalf("transition to %s: %v", stage, err)
			}
		}
		if _, ok := NextStage(p.CurrentStage); ok {
			t.Error("expected no next stage after harvest_ready")
		}
		if len(p.Phases) != len(StageOrder) {
			t.Errorf("expected %d phase records, got %d", len(StageOrder), len(p.Phases))
		}
	})
}

func TestUpdatePhaseNotes(t *testing.T) {
	p := newTestPlant()

	if err := UpdatePhaseNotes(p, 0, "первые всходы"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Phases[0].Notes != "первые всходы" {
		t.Errorf("notes not updated: %q", p.Phases[0].Notes)
	}

	for _, idx := range []int{-1, 1, 100} {
		if err := UpdatePhaseNotes(p, idx, "x"); !errors.Is(err, ErrPhaseIndexOutOfRange) {
			t.Errorf("index %d: expected ErrPhaseIndexOutOfRange, got %v", idx, err)
		}
	}
}

func TestOpenPhase(t *testing.T) {
	p := newTestPlant()

	open, ok := OpenPhase(p)
	if !ok || open.Stage != database.StageGermination {
		t.Fatalf("expected open germination phase, got %v %v", open, ok)
	}

	end := time.Now()
	p.Phases[0].EndDate = &end
	if _, ok := OpenPhase(p); ok {
		t.Error("expected no open phase after closing")
	}
}
