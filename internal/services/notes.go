package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"grow-diary/internal/database"
)

type NoteRepository interface {
	AddNote(n database.Note) error
	GetNotes() ([]database.Note, error)
	GetNote(id string) (*database.Note, error)
	UpdateNote(n database.Note) error
	DeleteNote(id string) error
}

type NoteService struct {
	repository NoteRepository
}

func NewNoteService(repo NoteRepository) *NoteService {
	return &NoteService{repository: repo}
}

func (ns *NoteService) CreateNote(title, content string, tags []string, plantID string) (*database.Note, error) {
	if title == "" {
		return nil, fmt.Errorf("заголовок заметки обязателен")
	}

	now := time.Now().UTC()
	note := database.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Tags:      tags,
		PlantID:   plantID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := ns.repository.AddNote(note); err != nil {
		return nil, fmt.Errorf("ошибка сохранения заметки: %w", err)
	}
	return &note, nil
}

func (ns *NoteService) GetNotes() ([]database.Note, error) {
	notes, err := ns.repository.GetNotes()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения заметок: %w", err)
	}
	return notes, nil
}

func (ns *NoteService) GetNote(id string) (*database.Note, error) {
	note, err := ns.repository.GetNote(id)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения заметки: %w", err)
	}
	return note, nil
}

func (ns *NoteService) UpdateNote(id, title, content string, tags []string) (*database.Note, error) {
	note, err := ns.repository.GetNote(id)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения заметки: %w", err)
	}
	if note == nil {
		return nil, fmt.Errorf("заметка %s не найдена", id)
	}

	if title != "" {
		note.Title = title
	}
	note.Content = content
	if tags != nil {
		note.Tags = tags
	}
	note.UpdatedAt = time.Now().UTC()

	if err := ns.repository.UpdateNote(*note); err != nil {
		return nil, fmt.Errorf("ошибка сохранения заметки: %w", err)
	}
	return note, nil
}

func (ns *NoteService) DeleteNote(id string) error {
	if err := ns.repository.DeleteNote(id); err != nil {
		return fmt.Errorf("ошибка удаления заметки: %w", err)
	}
	return nil
}
