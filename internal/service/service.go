package service

import (
	"context"

	"notes-client/internal/model"
	"notes-client/internal/repository"
)

// NoteService бизнес-логика эталонного сервиса заметок
type NoteService interface {
	// Create создает заметку; title и content обязательны
	Create(ctx context.Context, title, content string) (model.Note, error)

	// Get возвращает заметку по ID
	Get(ctx context.Context, id string) (model.Note, error)

	// List возвращает окно заметок в порядке создания; нулевой Page - все заметки
	List(ctx context.Context, page repository.Page) ([]model.Note, error)

	// Update обновляет заметку (пустой title оставляет прежний)
	Update(ctx context.Context, id, title, content string) (model.Note, error)

	// Delete удаляет заметку по ID
	Delete(ctx context.Context, id string) error
}
