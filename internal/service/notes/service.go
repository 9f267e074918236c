package notes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"notes-client/internal/model"
	"notes-client/internal/repository"
	svc "notes-client/internal/service"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	noteRepository repository.NoteRepository
	logger         *slog.Logger
}

// NewNoteService создает сервис заметок поверх репозитория
func NewNoteService(noteRepository repository.NoteRepository, logger *slog.Logger) svc.NoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		noteRepository: noteRepository,
		logger:         logger,
	}
}

func (s *service) Create(ctx context.Context, title, content string) (model.Note, error) {
	if err := model.ValidateDraft(title, content); err != nil {
		return model.Note{}, err
	}

	note, err := s.noteRepository.Create(ctx, model.Note{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("noteRepository.Create: %w", err)
	}

	s.logger.Debug("note created", "id", note.ID)
	return note, nil
}

func (s *service) Get(ctx context.Context, id string) (model.Note, error) {
	if id == "" {
		return model.Note{}, &model.ValidationError{Field: "id", Reason: "cannot be empty"}
	}

	note, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, fmt.Errorf("noteRepository.GetByID: %w", err)
	}
	return note, nil
}

func (s *service) List(ctx context.Context, page repository.Page) ([]model.Note, error) {
	if page.Offset < 0 {
		return nil, &model.ValidationError{Field: "offset", Reason: "cannot be negative"}
	}
	if page.Limit < 0 {
		return nil, &model.ValidationError{Field: "limit", Reason: "cannot be negative"}
	}

	notes, err := s.noteRepository.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("noteRepository.List: %w", err)
	}
	return notes, nil
}

func (s *service) Update(ctx context.Context, id, title, content string) (model.Note, error) {
	if id == "" {
		return model.Note{}, &model.ValidationError{Field: "id", Reason: "cannot be empty"}
	}

	existing, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, fmt.Errorf("noteRepository.GetByID: %w", err)
	}

	// Пустой title означает "не менять"
	if t := strings.TrimSpace(title); t != "" {
		existing.Title = t
	}
	existing.Content = strings.TrimSpace(content)

	if err := existing.Validate(); err != nil {
		return model.Note{}, err
	}

	updated, err := s.noteRepository.Update(ctx, existing)
	if err != nil {
		return model.Note{}, fmt.Errorf("noteRepository.Update: %w", err)
	}

	s.logger.Debug("note updated", "id", id)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &model.ValidationError{Field: "id", Reason: "cannot be empty"}
	}

	if err := s.noteRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("noteRepository.Delete: %w", err)
	}

	s.logger.Debug("note deleted", "id", id)
	return nil
}
