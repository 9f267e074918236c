package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation совпадает (errors.Is) с любой ValidationError
var ErrValidation = errors.New("validation failed")

// ValidationError описывает поле, отклоненное до отправки запроса
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Note представляет заметку (доменная модель)
type Note struct {
	ID        string    // Идентификатор, назначается сервером и не меняется
	Title     string    // Заголовок заметки
	Content   string    // Содержание заметки
	CreatedAt time.Time // Нулевое значение, если сервис не сообщает время
	UpdatedAt time.Time
}

// ValidateDraft проверяет пару title/content перед созданием заметки.
// Оба поля должны быть непустыми после TrimSpace.
func ValidateDraft(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content", Reason: "cannot be empty"}
	}
	return nil
}

// Validate проверяет валидность сохраненной заметки
func (n *Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return &ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	return nil
}
