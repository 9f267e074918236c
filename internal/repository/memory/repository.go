package memory

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"notes-client/internal/model"
	"notes-client/internal/repository"
)

// ErrNoteNotFound возвращается, когда заметки с таким ID нет
var ErrNoteNotFound = errors.New("note not found")

var _ repository.NoteRepository = (*repo)(nil)

// repo хранит заметки в map, порядок создания - в отдельном срезе ID,
// чтобы List возвращал стабильный порядок
type repo struct {
	mu    sync.RWMutex
	notes map[string]model.Note
	order []string
	now   func() time.Time
}

// NewRepository создает in-memory репозиторий
func NewRepository() repository.NoteRepository {
	return &repo{
		notes: make(map[string]model.Note),
		now:   time.Now,
	}
}

func (r *repo) Create(ctx context.Context, note model.Note) (model.Note, error) {
	if err := ctx.Err(); err != nil {
		return model.Note{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if _, exists := r.notes[note.ID]; exists {
		return model.Note{}, errors.New("note id already exists")
	}

	now := r.now()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	r.notes[note.ID] = note
	r.order = append(r.order, note.ID)

	return note, nil
}

func (r *repo) GetByID(ctx context.Context, id string) (model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, exists := r.notes[id]
	if !exists {
		return model.Note{}, ErrNoteNotFound
	}
	return note, nil
}

func (r *repo) List(ctx context.Context, page repository.Page) ([]model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.order[min(page.Offset, len(r.order)):]
	if page.Limit > 0 && page.Limit < len(ids) {
		ids = ids[:page.Limit]
	}

	notes := make([]model.Note, 0, len(ids))
	for _, id := range ids {
		notes = append(notes, r.notes[id])
	}
	return notes, nil
}

func (r *repo) Update(ctx context.Context, note model.Note) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.notes[note.ID]
	if !exists {
		return model.Note{}, ErrNoteNotFound
	}

	note.CreatedAt = existing.CreatedAt
	note.UpdatedAt = r.now()
	r.notes[note.ID] = note

	return note, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[id]; !exists {
		return ErrNoteNotFound
	}

	delete(r.notes, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })

	return nil
}
