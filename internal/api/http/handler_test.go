package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-client/internal/config"
	"notes-client/internal/converter"
	"notes-client/internal/logger"
	"notes-client/internal/model"
	"notes-client/internal/repository"
	"notes-client/internal/repository/memory"
	"notes-client/internal/service/notes"
)

// mockNoteService - mock сервиса с подменяемыми функциями
type mockNoteService struct {
	createFunc func(ctx context.Context, title, content string) (model.Note, error)
	getFunc    func(ctx context.Context, id string) (model.Note, error)
	listFunc   func(ctx context.Context, page repository.Page) ([]model.Note, error)
	updateFunc func(ctx context.Context, id, title, content string) (model.Note, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockNoteService) Create(ctx context.Context, title, content string) (model.Note, error) {
	return m.createFunc(ctx, title, content)
}

func (m *mockNoteService) Get(ctx context.Context, id string) (model.Note, error) {
	return m.getFunc(ctx, id)
}

func (m *mockNoteService) List(ctx context.Context, page repository.Page) ([]model.Note, error) {
	return m.listFunc(ctx, page)
}

func (m *mockNoteService) Update(ctx context.Context, id, title, content string) (model.Note, error) {
	return m.updateFunc(ctx, id, title, content)
}

func (m *mockNoteService) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func newMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	h.Register(mux)
	return mux
}

func serve(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) converter.ErrorJSON {
	t.Helper()
	var body converter.ErrorJSON
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHandler_CRUD(t *testing.T) {
	svc := notes.NewNoteService(memory.NewRepository(), logger.Discard())
	mux := newMux(NewHandler(svc, logger.Discard()))

	rec := serve(t, mux, http.MethodPost, "/api/notes", `{"title":"Groceries","content":"milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created converter.NoteJSON
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Groceries", created.Title)

	rec = serve(t, mux, http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var list []converter.NoteJSON
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	rec = serve(t, mux, http.MethodPut, "/api/notes/"+created.ID, `{"title":"Shopping","content":"eggs"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated converter.NoteJSON
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Shopping", updated.Title)

	rec = serve(t, mux, http.MethodGet, "/api/notes/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, mux, http.MethodDelete, "/api/notes/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, mux, http.MethodGet, "/api/notes", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_ListEmptyIsArray(t *testing.T) {
	svc := &mockNoteService{listFunc: func(ctx context.Context, page repository.Page) ([]model.Note, error) { return nil, nil }}
	rec := serve(t, newMux(NewHandler(svc, logger.Discard())), http.MethodGet, "/api/notes", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_ListPage(t *testing.T) {
	svc := notes.NewNoteService(memory.NewRepository(), logger.Discard())
	mux := newMux(NewHandler(svc, logger.Discard()))
	for _, title := range []string{"a", "b", "c"} {
		rec := serve(t, mux, http.MethodPost, "/api/notes", `{"title":"`+title+`","content":"x"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := serve(t, mux, http.MethodGet, "/api/notes?offset=1&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page []converter.NoteJSON
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].Title)

	rec = serve(t, mux, http.MethodGet, "/api/notes?limit=ten", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "limit must be an integer", decodeError(t, rec).Error)

	rec = serve(t, mux, http.MethodGet, "/api/notes?offset=-1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)
}

func TestHandler_ValidationError(t *testing.T) {
	svc := notes.NewNoteService(memory.NewRepository(), logger.Discard())
	rec := serve(t, newMux(NewHandler(svc, logger.Discard())), http.MethodPost, "/api/notes", `{"title":"  ","content":"x"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "title cannot be empty", body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
}

func TestHandler_NotFound(t *testing.T) {
	svc := notes.NewNoteService(memory.NewRepository(), logger.Discard())
	mux := newMux(NewHandler(svc, logger.Discard()))

	for _, tc := range []struct{ method, body string }{
		{http.MethodGet, ""},
		{http.MethodPut, `{"title":"t","content":"c"}`},
		{http.MethodDelete, ""},
	} {
		rec := serve(t, mux, tc.method, "/api/notes/missing", tc.body)
		require.Equal(t, http.StatusNotFound, rec.Code, tc.method)

		body := decodeError(t, rec)
		assert.Equal(t, "note not found", body.Error)
		assert.Equal(t, "NOTE_NOT_FOUND", body.Code)
		assert.Equal(t, "missing", body.NoteID)
	}
}

func TestHandler_InvalidBody(t *testing.T) {
	svc := &mockNoteService{}
	rec := serve(t, newMux(NewHandler(svc, logger.Discard())), http.MethodPost, "/api/notes", `{"title":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_BODY", decodeError(t, rec).Code)
}

func TestHandler_InternalErrorHidesDetails(t *testing.T) {
	svc := &mockNoteService{listFunc: func(ctx context.Context, page repository.Page) ([]model.Note, error) {
		return nil, errors.New("connection to storage lost")
	}}
	rec := serve(t, newMux(NewHandler(svc, logger.Discard())), http.MethodGet, "/api/notes", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "internal error", body.Error)
	assert.NotContains(t, body.Reason, "storage")
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	svc := &mockNoteService{}
	rec := serve(t, newMux(NewHandler(svc, logger.Discard())), http.MethodPatch, "/api/notes/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	svc := notes.NewNoteService(memory.NewRepository(), logger.Discard())
	cfg := &config.ConfigHTTP{CORSAllowedOrigins: "http://localhost:3000, http://example.test", RateLimitRPS: 100, RateLimitBurst: 10}
	router := NewRouter(NewHandler(svc, logger.Discard()), cfg, logger.Discard())

	req := httptest.NewRequest(http.MethodOptions, "/api/notes/1", nil)
	req.Header.Set("Origin", "http://example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://example.test", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
