package repository

import (
	"context"

	"notes-client/internal/model"
)

// Page окно выборки List в порядке создания. Limit == 0 - без ограничения.
type Page struct {
	Offset int
	Limit  int
}

// NoteRepository хранилище заметок эталонного сервиса
type NoteRepository interface {
	// Create сохраняет заметку и возвращает ее с присвоенным ID
	Create(ctx context.Context, note model.Note) (model.Note, error)

	// GetByID возвращает заметку по ID
	GetByID(ctx context.Context, id string) (model.Note, error)

	// List возвращает заметки в порядке создания, начиная с page.Offset.
	// Порядок стабилен между вызовами, пока заметки не создаются и не удаляются.
	List(ctx context.Context, page Page) ([]model.Note, error)

	// Update заменяет существующую заметку
	Update(ctx context.Context, note model.Note) (model.Note, error)

	// Delete удаляет заметку по ID
	Delete(ctx context.Context, id string) error
}
