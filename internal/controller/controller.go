package controller

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"notes-client/internal/model"
	"notes-client/internal/notify"
	"notes-client/internal/remote"
	"notes-client/internal/state"
)

var (
	// ErrClosed ответ пришел после Close и не применен
	ErrClosed = errors.New("controller closed")
	// ErrSuperseded ответ устарел: по той же заметке уже применен ответ на более новый запрос
	// (или для списка отправлен более новый list)
	ErrSuperseded = errors.New("response superseded by a newer request")
)

// Controller единственный владелец локального состояния клиента:
// коллекции заметок, параметров отображения и сессии редактирования.
//
// Сетевые вызовы выполняются без блокировки, состояние меняется только
// после подтвержденного ответа и только под mu.
type Controller struct {
	store  remote.NoteStore
	hub    *notify.Hub
	logger *slog.Logger

	mu      sync.Mutex
	notes   *state.Collection
	view    *state.Projection
	session state.EditSession
	closed  bool

	// Каждый запрос по заметке получает токен из seq; applied хранит токен
	// последнего примененного ответа на ID. listGen - поколение последнего list.
	applied map[string]uint64
	seq     uint64
	listGen uint64
}

// Option настраивает Controller
type Option func(*Controller)

// WithLogger задает логгер
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithHub задает хаб уведомлений (по умолчанию создается собственный)
func WithHub(h *notify.Hub) Option {
	return func(c *Controller) { c.hub = h }
}

// WithCollation задает локаль сравнения заголовков при сортировке
func WithCollation(tag language.Tag) Option {
	return func(c *Controller) { c.view = state.NewProjection(tag) }
}

// New создает контроллер поверх удаленного хранилища
func New(store remote.NoteStore, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		hub:     notify.NewHub(),
		logger:  slog.Default(),
		notes:   state.NewCollection(),
		view:    state.NewProjection(language.Und),
		applied: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notifications хаб, в который публикуются нефатальные ошибки
func (c *Controller) Notifications() *notify.Hub {
	return c.hub
}

// Refresh загружает список заметок и заменяет им коллекцию.
// При ошибке коллекция остается прежней.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.listGen++
	gen := c.listGen
	c.mu.Unlock()

	notes, err := c.store.ListNotes(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if err != nil {
		return c.remoteFailure("list", "", err)
	}
	if gen != c.listGen {
		c.logger.Debug("discarding stale list response", "generation", gen, "latest", c.listGen)
		return ErrSuperseded
	}

	if dropped := c.notes.ReplaceAll(notes); len(dropped) > 0 {
		c.logger.Warn("list response contained duplicate ids", "ids", dropped)
	}
	for id := range c.applied {
		if !c.notes.Has(id) {
			delete(c.applied, id)
		}
	}
	c.logger.Debug("notes refreshed", "count", c.notes.Len())
	return nil
}

// Create валидирует и создает заметку. При пустом (после TrimSpace) title или content
// запрос не отправляется.
func (c *Controller) Create(ctx context.Context, title, content string) (model.Note, error) {
	if err := model.ValidateDraft(title, content); err != nil {
		return model.Note{}, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return model.Note{}, ErrClosed
	}
	c.mu.Unlock()

	note, err := c.store.CreateNote(ctx, title, content)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return model.Note{}, ErrClosed
	}
	if err != nil {
		return model.Note{}, c.remoteFailure("create", "", err)
	}
	if err := c.notes.Append(note); err != nil {
		return model.Note{}, c.fault(err)
	}
	return note, nil
}

// Update отправляет изменение заметки и применяет подтвержденный сервером результат.
//
// Ответ по ID, которого уже нет в коллекции (например, удаление завершилось раньше),
// - ConsistencyFault, заметка не добавляется обратно. Ответ отбрасывается с ErrSuperseded,
// только если по тому же ID уже применен ответ на более новый запрос; неудачный
// более новый запрос ничего не вытесняет.
func (c *Controller) Update(ctx context.Context, id, title, content string) (model.Note, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return model.Note{}, ErrClosed
	}
	if !c.notes.Has(id) {
		err := c.fault(&state.ConsistencyFault{Op: "update", NoteID: id, Reason: "id not present"})
		c.mu.Unlock()
		return model.Note{}, err
	}
	token := c.issue()
	c.mu.Unlock()

	note, err := c.store.UpdateNote(ctx, id, title, content)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return model.Note{}, ErrClosed
	}
	if err != nil {
		return model.Note{}, c.remoteFailure("update", id, err)
	}
	if note.ID == "" {
		note.ID = id
	}
	if !c.notes.Has(id) {
		return model.Note{}, c.fault(&state.ConsistencyFault{Op: "update", NoteID: id, Reason: "note removed while update was in flight"})
	}
	if c.applied[id] > token {
		c.logger.Debug("discarding superseded update response", "id", id, "token", token, "applied", c.applied[id])
		return note, ErrSuperseded
	}
	if err := c.notes.ReplaceByID(id, note); err != nil {
		return model.Note{}, c.fault(err)
	}
	c.applied[id] = token
	return note, nil
}

// Delete удаляет заметку; локально она удаляется только после подтверждения
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if !c.notes.Has(id) {
		err := c.fault(&state.ConsistencyFault{Op: "delete", NoteID: id, Reason: "id not present"})
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	err := c.store.DeleteNote(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if err != nil {
		return c.remoteFailure("delete", id, err)
	}
	if err := c.notes.RemoveByID(id); err != nil {
		return c.fault(err)
	}
	delete(c.applied, id)
	return nil
}

// BeginEdit открывает сессию редактирования с копией заметки
func (c *Controller) BeginEdit(id string) (model.Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	note, ok := c.notes.Get(id)
	if !ok {
		return model.Note{}, c.fault(&state.ConsistencyFault{Op: "edit", NoteID: id, Reason: "id not present"})
	}
	if err := c.session.Begin(note); err != nil {
		return model.Note{}, err
	}
	return note, nil
}

// SetDraftTitle меняет заголовок в открытой сессии
func (c *Controller) SetDraftTitle(title string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.SetTitle(title)
}

// SetDraftContent меняет содержимое в открытой сессии
func (c *Controller) SetDraftContent(content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.SetContent(content)
}

// Session текущий черновик, если сессия открыта
func (c *Controller) Session() (model.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Draft()
}

// SaveEdit отправляет черновик как update. При успехе закрывает ту сессию,
// из которой был отправлен запрос; при ошибке сессия остается открытой.
func (c *Controller) SaveEdit(ctx context.Context) (model.Note, error) {
	c.mu.Lock()
	draft, ok := c.session.Draft()
	seq := c.session.Seq()
	c.mu.Unlock()

	if !ok {
		return model.Note{}, state.ErrNoSession
	}

	note, err := c.Update(ctx, draft.ID, draft.Title, draft.Content)
	if err != nil && !errors.Is(err, ErrSuperseded) && !errors.Is(err, state.ErrConsistency) {
		return note, err
	}

	// Сервер принял изменение (или заметка исчезла) - черновик больше не нужен
	c.mu.Lock()
	c.session.CloseIf(seq)
	c.mu.Unlock()

	return note, err
}

// CancelEdit закрывает сессию без сохранения
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Close()
}

// SetSearch задает строку поиска
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SetSearchTerm(term)
}

// SearchTerm текущая строка поиска
func (c *Controller) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.SearchTerm()
}

// ToggleSort применяет текущее направление сортировки и переключает его.
// Возвращает примененное направление.
func (c *Controller) ToggleSort() state.Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Sort()
}

// SortAs применяет указанное направление
func (c *Controller) SortAs(d state.Direction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SortAs(d)
}

// Direction направление, которое применит следующий ToggleSort
func (c *Controller) Direction() state.Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Direction()
}

// Visible отображаемый список: коллекция после фильтра и сортировки
func (c *Controller) Visible() []model.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Apply(c.notes.Snapshot())
}

// Notes копия коллекции в порядке синхронизации
func (c *Controller) Notes() []model.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notes.Snapshot()
}

// Close завершает работу контроллера: ответы, пришедшие позже, отбрасываются
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.session.Close()
	c.hub.Close()
}

// issue выдает токен очередного запроса. Вызывается под mu.
func (c *Controller) issue() uint64 {
	c.seq++
	return c.seq
}

// remoteFailure публикует нефатальное уведомление об ошибке сети/сервиса. Вызывается под mu.
func (c *Controller) remoteFailure(op, id string, err error) error {
	c.logger.Error("remote request failed", "op", op, "id", id, "error", err)
	c.hub.Publish(notify.Notification{
		Level:   notify.LevelError,
		Op:      op,
		NoteID:  id,
		Message: describe(op, err),
		Err:     err,
	})
	return err
}

// fault логирует и публикует ConsistencyFault. Вызывается под mu.
func (c *Controller) fault(err error) error {
	var cf *state.ConsistencyFault
	id := ""
	if errors.As(err, &cf) {
		id = cf.NoteID
	}
	c.logger.Warn("local state diverged from service", "id", id, "error", err)
	c.hub.Publish(notify.Notification{
		Level:   notify.LevelWarn,
		Op:      "reconcile",
		NoteID:  id,
		Message: "notes are out of sync, refresh to reload",
		Err:     err,
	})
	return err
}

func describe(op string, err error) string {
	var b strings.Builder
	switch op {
	case "list":
		b.WriteString("could not load notes")
	default:
		b.WriteString("could not " + op + " note")
	}

	var serverErr *remote.ServerError
	switch {
	case errors.As(err, &serverErr) && serverErr.Message != "":
		b.WriteString(": " + serverErr.Message)
	case errors.Is(err, remote.ErrNetwork):
		b.WriteString(": service unreachable")
	}
	return b.String()
}
