// Package server exposes the search pipeline over HTTP: an HTML page with
// filters, cards and pagination links, plus the same frame as JSON.
package server

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/jimezsa/hirenova/internal/jobsearch"
	"github.com/jimezsa/hirenova/internal/models"
	"github.com/jimezsa/hirenova/internal/pagination"
	"github.com/jimezsa/hirenova/internal/params"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 10 * time.Second
)

type Options struct {
	Searcher     jobsearch.Searcher
	Defaults     models.SearchParams
	ShowDegraded bool
	Logger       zerolog.Logger
}

type Server struct {
	app  *fiber.App
	opts Options
}

func New(opts Options) *Server {
	s := &Server{opts: opts}
	s.app = fiber.New(fiber.Config{
		AppName:      "hirenova",
		ErrorHandler: s.handleError,
	})
	s.app.Use(s.accessLog)
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/api/jobs", s.handleAPI)
	s.app.Get("/", s.handlePage)
	return s
}

// App is the underlying fiber application, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	s.opts.Logger.Info().Str("addr", addr).Msg("listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	s.opts.Logger.Info().Msg("server stopped")
	return nil
}

func (s *Server) accessLog(c fiber.Ctx) error {
	start := time.Now()

	rid := c.Get(requestIDHeader)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Set(requestIDHeader, rid)
	c.Locals(requestIDHeader, rid)

	if err := c.Next(); err != nil {
		if herr := s.handleError(c, err); herr != nil {
			return herr
		}
	}

	s.opts.Logger.Info().
		Str("request_id", rid).
		Str("method", c.Method()).
		Str("path", c.OriginalURL()).
		Int("status", c.Response().StatusCode()).
		Dur("latency", time.Since(start)).
		Msg("http request")
	return nil
}

func (s *Server) handleError(c fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		message = fe.Message
	}
	if status >= fiber.StatusInternalServerError {
		s.opts.Logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"message": message,
	})
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func requestID(c fiber.Ctx) string {
	if rid, ok := c.Locals(requestIDHeader).(string); ok {
		return rid
	}
	return ""
}

func pageParam(c fiber.Ctx) (int, error) {
	raw := c.Query("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err == nil {
		_, err = params.StartFor(page, pagination.ItemsPerPage)
	}
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "page must be a positive integer in range")
	}
	return page, nil
}
