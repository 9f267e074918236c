package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"notes-client/internal/config"
	"notes-client/internal/converter"
	"notes-client/internal/model"
	"notes-client/internal/remote"
)

const (
	notesPath = "/api/notes"

	// maxErrorBody ограничивает чтение тела неуспешного ответа
	maxErrorBody = 64 << 10
)

var _ remote.NoteStore = (*Client)(nil)

// Client реализует remote.NoteStore поверх REST API сервиса заметок
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient задает HTTP клиент (таймауты и транспорт - его ответственность)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit ограничивает частоту исходящих запросов.
// rps <= 0 отключает ограничение.
func WithRateLimit(rps, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger задает логгер запросов
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient создает клиент для сервиса по адресу baseURL (например, http://localhost:5000)
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// NewClientFromConfig создает клиент по секции client конфигурации
func NewClientFromConfig(cfg *config.ConfigClient, logger *slog.Logger) (*Client, error) {
	hc := &http.Client{}
	if cfg.RequestTimeout > 0 {
		hc.Timeout = time.Duration(cfg.RequestTimeout) * time.Second
	}

	return NewClient(cfg.BaseURL,
		WithHTTPClient(hc),
		WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		WithLogger(logger),
	)
}

// ListNotes возвращает список всех заметок (GET /api/notes)
func (c *Client) ListNotes(ctx context.Context) ([]model.Note, error) {
	var notes []converter.NoteJSON
	if err := c.do(ctx, "list", http.MethodGet, notesPath, nil, &notes); err != nil {
		return nil, err
	}
	return converter.JSONsToModels(notes), nil
}

// CreateNote создает заметку (POST /api/notes)
func (c *Client) CreateNote(ctx context.Context, title, content string) (model.Note, error) {
	var note converter.NoteJSON
	body := converter.NoteInput{Title: title, Content: content}
	if err := c.do(ctx, "create", http.MethodPost, notesPath, body, &note); err != nil {
		return model.Note{}, err
	}
	if note.ID == "" {
		return model.Note{}, &remote.ServerError{Op: "create", StatusCode: http.StatusOK, Message: "response has no _id"}
	}
	return converter.JSONToModel(note), nil
}

// UpdateNote обновляет заметку (PUT /api/notes/{id})
func (c *Client) UpdateNote(ctx context.Context, id, title, content string) (model.Note, error) {
	var note converter.NoteJSON
	body := converter.NoteInput{Title: title, Content: content}
	if err := c.do(ctx, "update", http.MethodPut, notePath(id), body, &note); err != nil {
		return model.Note{}, err
	}
	// Сервис может не вернуть _id в ответе на PUT, идентификатор неизменен
	if note.ID == "" {
		note.ID = id
	}
	return converter.JSONToModel(note), nil
}

// DeleteNote удаляет заметку (DELETE /api/notes/{id}), тело ответа игнорируется
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, notePath(id), nil, nil)
}

func notePath(id string) string {
	return notesPath + "/" + url.PathEscape(id)
}

// do выполняет запрос и декодирует успешный ответ в out (если out != nil).
// Ошибки транспорта оборачиваются в NetworkError, неуспешные статусы - в ServerError.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &remote.NetworkError{Op: op, Err: err}
		}
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	endpoint := c.baseURL.String() + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "method", method, "url", endpoint, "error", err)
		return &remote.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"op", op, "method", method, "url", endpoint,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readServerError(op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) {
			return &remote.NetworkError{Op: op, Err: err}
		}
		return &remote.ServerError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("invalid response body: %v", err),
		}
	}

	return nil
}

// readServerError извлекает описание ошибки из тела ответа, если оно в формате ErrorJSON
func readServerError(op string, resp *http.Response) error {
	serverErr := &remote.ServerError{Op: op, StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload converter.ErrorJSON
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		serverErr.Message = payload.Error
		serverErr.Code = payload.Code
		return serverErr
	}

	if text := strings.TrimSpace(string(data)); text != "" {
		serverErr.Message = text
	} else {
		serverErr.Message = http.StatusText(resp.StatusCode)
	}
	return serverErr
}
