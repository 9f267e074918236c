package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	httpapi "notes-client/internal/api/http"
	"notes-client/internal/config"
	"notes-client/internal/repository/memory"
	notesService "notes-client/internal/service/notes"
)

// Server эталонный REST сервис заметок
type Server struct {
	HTTPServer *http.Server
	HTTPAddr   string

	Config *config.Config
	logger *slog.Logger
}

// NewServer создает сервер и инициализирует компоненты (Repository -> Service -> Handler)
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	httpPort := cfg.Server.PortHTTP
	if httpPort == 0 {
		httpPort = 5000
		logger.Warn("port_http is 0, using default", "port", httpPort)
	}
	httpAddr := "0.0.0.0:" + strconv.Itoa(httpPort)

	noteRepo := memory.NewRepository()
	noteSvc := notesService.NewNoteService(noteRepo, logger)
	noteHandler := httpapi.NewHandler(noteSvc, logger)
	logger.Debug("initialized in-memory repository, note service and HTTP handler")

	return &Server{
		HTTPServer: &http.Server{
			Addr:              httpAddr,
			Handler:           httpapi.NewRouter(noteHandler, cfg.HTTP, logger),
			ReadTimeout:       seconds(cfg.Server.HTTPReadTimeout),
			WriteTimeout:      seconds(cfg.Server.HTTPWriteTimeout),
			IdleTimeout:       seconds(cfg.Server.HTTPIdleTimeout),
			ReadHeaderTimeout: seconds(cfg.Server.HTTPReadHeaderTimeout),
		},
		HTTPAddr: httpAddr,
		Config:   cfg,
		logger:   logger,
	}
}

// Start запускает HTTP сервер на уже открытом listener (или на HTTPAddr, если ln == nil).
// Возвращает канал ошибок сервера.
func (s *Server) Start(ln net.Listener) (<-chan error, error) {
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", s.HTTPAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to listen on %s: %w", s.HTTPAddr, err)
		}
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := s.HTTPServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
		close(errChan)
	}()

	return errChan, nil
}

// Shutdown останавливает сервер, дожидаясь активных запросов не дольше graceful_shutdown_timeout
func (s *Server) Shutdown() error {
	s.logger.Info("starting graceful shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), seconds(s.Config.Server.GracefulShutdownTimeout))
	defer cancel()

	if err := s.HTTPServer.Shutdown(ctx); err != nil {
		s.logger.Warn("graceful shutdown timeout, forcing stop", "error", err)
		_ = s.HTTPServer.Close()
		return err
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
