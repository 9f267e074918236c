package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"notes-client/internal/converter"
	"notes-client/internal/model"
	"notes-client/internal/repository"
	"notes-client/internal/repository/memory"
	svc "notes-client/internal/service"
)

const maxBodyBytes = 1 << 20

// Handler REST обработчики эталонного сервиса заметок
type Handler struct {
	noteService svc.NoteService
	logger      *slog.Logger
}

// NewHandler создает новый экземпляр HTTP хэндлера
func NewHandler(noteService svc.NoteService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		noteService: noteService,
		logger:      logger,
	}
}

// Register регистрирует маршруты /api/notes на mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/notes", h.ListNotes)
	mux.HandleFunc("POST /api/notes", h.CreateNote)
	mux.HandleFunc("GET /api/notes/{id}", h.GetNote)
	mux.HandleFunc("PUT /api/notes/{id}", h.UpdateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", h.DeleteNote)
}

// ListNotes возвращает массив заметок; ?offset= и ?limit= задают окно
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r.URL.Query())
	if err != nil {
		h.handleError(w, err, "")
		return
	}

	notes, err := h.noteService.List(r.Context(), page)
	if err != nil {
		h.handleError(w, err, "")
		return
	}
	h.writeJSON(w, http.StatusOK, converter.ModelsToJSONs(notes))
}

// CreateNote создает заметку из тела {title, content}
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var in converter.NoteInput
	if !h.decode(w, r, &in) {
		return
	}

	note, err := h.noteService.Create(r.Context(), in.Title, in.Content)
	if err != nil {
		h.handleError(w, err, "")
		return
	}
	h.writeJSON(w, http.StatusCreated, converter.ModelToJSON(note))
}

// GetNote возвращает заметку по ID
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	note, err := h.noteService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, err, id)
		return
	}
	h.writeJSON(w, http.StatusOK, converter.ModelToJSON(note))
}

// UpdateNote обновляет заметку по ID
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var in converter.NoteInput
	if !h.decode(w, r, &in) {
		return
	}

	note, err := h.noteService.Update(r.Context(), id, in.Title, in.Content)
	if err != nil {
		h.handleError(w, err, id)
		return
	}
	h.writeJSON(w, http.StatusOK, converter.ModelToJSON(note))
}

// DeleteNote удаляет заметку по ID
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.noteService.Delete(r.Context(), id); err != nil {
		h.handleError(w, err, id)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "note deleted", "_id": id})
}

func pageFromQuery(q url.Values) (repository.Page, error) {
	var page repository.Page
	for _, p := range []struct {
		name string
		dst  *int
	}{{"offset", &page.Offset}, {"limit", &page.Limit}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return repository.Page{}, &model.ValidationError{Field: p.name, Reason: "must be an integer"}
		}
		*p.dst = n
	}
	return page, nil
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, converter.ErrorJSON{
			Error:  "invalid request body",
			Reason: err.Error(),
			Code:   "INVALID_BODY",
		})
		return false
	}
	return true
}

// handleError конвертирует внутренние ошибки в HTTP статус и тело ErrorJSON
func (h *Handler) handleError(w http.ResponseWriter, err error, noteID string) {
	var verr *model.ValidationError
	switch {
	case errors.Is(err, memory.ErrNoteNotFound):
		h.writeJSON(w, http.StatusNotFound, converter.ErrorJSON{
			Error:  "note not found",
			Reason: fmt.Sprintf("Note with ID %s was searched but not found", noteID),
			Code:   "NOTE_NOT_FOUND",
			NoteID: noteID,
		})
	case errors.As(err, &verr):
		h.writeJSON(w, http.StatusBadRequest, converter.ErrorJSON{
			Error:  err.Error(),
			Reason: fmt.Sprintf("Validation failed for field %s", verr.Field),
			Code:   "VALIDATION_ERROR",
			NoteID: noteID,
		})
	default:
		h.logger.Error("request failed", "id", noteID, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, converter.ErrorJSON{
			Error: "internal error",
			Code:  "INTERNAL_ERROR",
		})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to write response", "error", err)
	}
}
