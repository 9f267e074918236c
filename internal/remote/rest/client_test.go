package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-client/internal/config"
	"notes-client/internal/logger"
	"notes-client/internal/remote"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithLogger(logger.Discard())}, opts...)
	client, err := NewClient(srv.URL+"/", opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewClient("localhost:5000")
	require.Error(t, err)

	_, err = NewClient("/api")
	require.Error(t, err)
}

func TestClient_ListNotes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/notes", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"_id":"a1","title":"B","content":"x"},{"_id":"a2","title":"A","content":"y"}]`)
	})

	notes, err := client.ListNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "a1", notes[0].ID)
	assert.Equal(t, "A", notes[1].Title)
}

func TestClient_ListNotes_EmptyArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	notes, err := client.ListNotes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestClient_CreateNote_SendsBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/notes", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"title": "Groceries", "content": "milk"}, body)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"_id":"new-id","title":"Groceries","content":"milk"}`)
	})

	note, err := client.CreateNote(context.Background(), "Groceries", "milk")
	require.NoError(t, err)
	assert.Equal(t, "new-id", note.ID)
	assert.Equal(t, "Groceries", note.Title)
}

func TestClient_CreateNote_MissingIDIsServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"title":"Groceries","content":"milk"}`)
	})

	_, err := client.CreateNote(context.Background(), "Groceries", "milk")
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrServer)
}

func TestClient_UpdateNote_UsesEscapedID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/notes/id%20with%20space", r.URL.EscapedPath())
		// сервер возвращает подтвержденные значения, они важнее отправленных
		_, _ = io.WriteString(w, `{"title":"Trimmed","content":"server side"}`)
	})

	note, err := client.UpdateNote(context.Background(), "id with space", "  Trimmed  ", "client side")
	require.NoError(t, err)
	assert.Equal(t, "id with space", note.ID, "Expected ID to fall back to the requested one")
	assert.Equal(t, "Trimmed", note.Title)
	assert.Equal(t, "server side", note.Content)
}

func TestClient_DeleteNote_IgnoresBody(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/notes/abc", r.URL.Path)
		_, _ = io.WriteString(w, `not json at all`)
	})

	require.NoError(t, client.DeleteNote(context.Background(), "abc"))
	assert.True(t, called)
}

func TestClient_ServerErrorWithJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"note not found","code":"NOTE_NOT_FOUND","noteId":"abc"}`)
	})

	err := client.DeleteNote(context.Background(), "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrServer)
	assert.NotErrorIs(t, err, remote.ErrNetwork)

	var serverErr *remote.ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, http.StatusNotFound, serverErr.StatusCode)
	assert.Equal(t, "note not found", serverErr.Message)
	assert.Equal(t, "NOTE_NOT_FOUND", serverErr.Code)
	assert.Equal(t, "delete", serverErr.Op)
}

func TestClient_ServerErrorWithPlainBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.ListNotes(context.Background())
	var serverErr *remote.ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
	assert.Equal(t, "boom", serverErr.Message)
}

func TestClient_InvalidSuccessBodyIsServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"not":"an array"}`)
	})

	_, err := client.ListNotes(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrServer)
}

func TestClient_UnreachableIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewClient(url, WithLogger(logger.Discard()))
	require.NoError(t, err)

	_, err = client.ListNotes(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrNetwork)
	assert.NotErrorIs(t, err, remote.ErrServer)

	var netErr *remote.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "list", netErr.Op)
}

func TestClient_TimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	}, WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	defer close(release)

	_, err := client.ListNotes(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrNetwork)
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}, WithRateLimit(1, 1))

	// первый запрос забирает единственный токен
	_, err := client.ListNotes(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = client.ListNotes(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrNetwork)
}

func TestNewClientFromConfig(t *testing.T) {
	client, err := NewClientFromConfig(&config.ConfigClient{
		BaseURL:        "http://localhost:5000/",
		RequestTimeout: 3,
		RateLimitRPS:   2,
	}, logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, client.httpClient.Timeout)
	require.NotNil(t, client.limiter)
	assert.Equal(t, 1, client.limiter.Burst())
	assert.Equal(t, "http://localhost:5000", client.baseURL.String())
}
