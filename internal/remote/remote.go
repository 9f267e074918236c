package remote

import (
	"context"
	"errors"
	"fmt"

	"notes-client/internal/model"
)

var (
	// ErrNetwork совпадает с любой NetworkError (транспорт недоступен)
	ErrNetwork = errors.New("network error")
	// ErrServer совпадает с любой ServerError (неуспешный статус сервиса)
	ErrServer = errors.New("server error")
)

// NoteStore интерфейс удаленного хранилища заметок.
// Реализации не повторяют запросы автоматически.
type NoteStore interface {
	// ListNotes возвращает все заметки сервиса
	ListNotes(ctx context.Context) ([]model.Note, error)

	// CreateNote создает заметку и возвращает ее с назначенным сервером ID.
	// Вызывающая сторона валидирует title/content до вызова.
	CreateNote(ctx context.Context, title, content string) (model.Note, error)

	// UpdateNote обновляет заметку и возвращает значения, подтвержденные сервером
	UpdateNote(ctx context.Context, id, title, content string) (model.Note, error)

	// DeleteNote удаляет заметку по ID
	DeleteNote(ctx context.Context, id string) error
}

// NetworkError ошибка транспорта: сервис недоступен или соединение прервано
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// ServerError сервис ответил неуспешным статусом или неразборчивым телом
type ServerError struct {
	Op         string
	StatusCode int
	Code       string // машинный код ошибки из тела ответа, если есть
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: server error: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: server error: status %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *ServerError) Is(target error) bool { return target == ErrServer }
