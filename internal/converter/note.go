package converter

import (
	"time"

	"notes-client/internal/model"
)

// NoteJSON заметка в формате REST API (идентификатор передается как _id)
type NoteJSON struct {
	ID        string     `json:"_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NoteInput тело запросов create/update
type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// JSONToModel конвертирует JSON заметку в domain модель
func JSONToModel(n NoteJSON) model.Note {
	var createdAt, updatedAt time.Time
	if n.CreatedAt != nil {
		createdAt = *n.CreatedAt
	}
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return model.Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// ModelToJSON конвертирует domain модель Note в JSON представление
func ModelToJSON(note model.Note) NoteJSON {
	var createdAt, updatedAt *time.Time
	if !note.CreatedAt.IsZero() {
		t := note.CreatedAt
		createdAt = &t
	}
	if !note.UpdatedAt.IsZero() {
		t := note.UpdatedAt
		updatedAt = &t
	}

	return NoteJSON{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// JSONsToModels конвертирует слайс JSON заметок в domain модели.
// Пустой ответ превращается в пустой (не nil) слайс.
func JSONsToModels(notes []NoteJSON) []model.Note {
	result := make([]model.Note, len(notes))
	for i, n := range notes {
		result[i] = JSONToModel(n)
	}
	return result
}

// ModelsToJSONs конвертирует слайс domain моделей в JSON представление
func ModelsToJSONs(notes []model.Note) []NoteJSON {
	result := make([]NoteJSON, len(notes))
	for i, note := range notes {
		result[i] = ModelToJSON(note)
	}
	return result
}

// ErrorJSON тело ответа с ошибкой (аналог ErrorDetails)
type ErrorJSON struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Code   string `json:"code,omitempty"`
	NoteID string `json:"noteId,omitempty"`
}
