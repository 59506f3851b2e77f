// Package api serves game sessions as JSON over HTTP.
//
// # Routes
//
//	GET    /healthz
//	GET    /api/pieces
//	POST   /api/sessions               {size?, target_probability?, seed?}
//	GET    /api/sessions/{id}
//	DELETE /api/sessions/{id}
//	POST   /api/sessions/{id}/place    {row, col}
//	POST   /api/sessions/{id}/rotate
//	POST   /api/sessions/{id}/reset
//	POST   /api/sessions/{id}/hint
//
// Errors are returned as {"error": message, "code": CODE}. The status is
// derived from the code: SESSION_NOT_FOUND is 404, INVALID_* is 400,
// TOO_MANY_SESSIONS is 503 and anything else is 500.
package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/blockfill/pkg/core/shape"
	bferrors "github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/game"
	"github.com/matzehuels/blockfill/pkg/session"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	store    session.Store
	defaults game.Options
	logger   *log.Logger
}

// New creates a server over store. defaults seeds every new session; request
// fields override Size, TargetProbability and Seed. A nil logger discards
// output.
func New(store session.Store, defaults game.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if len(defaults.Catalog) == 0 {
		defaults.Catalog = shape.Catalog()
	}
	return &Server{store: store, defaults: defaults, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/pieces", s.handlePieces)
		r.Post("/sessions", s.handleCreate)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/place", s.handlePlace)
			r.Post("/rotate", s.handleRotate)
			r.Post("/reset", s.handleReset)
			r.Post("/hint", s.handleHint)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no such route", Code: string(bferrors.ErrCodeNotFound)})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed", Code: "METHOD_NOT_ALLOWED"})
	})
	return r
}

// RunClock advances the elapsed time of every live session once per
// interval until ctx is done.
func (s *Server) RunClock(ctx context.Context, interval time.Duration) {
	game.RunClock(ctx, interval, func() {
		s.store.Each(ctx, func(e *session.Entry) {
			_ = e.Do(func(g *game.Session) error {
				g.Tick()
				return nil
			})
		})
	})
}

// RunJanitor removes expired sessions once per interval until ctx is done.
func (s *Server) RunJanitor(ctx context.Context, interval time.Duration) {
	game.RunClock(ctx, interval, func() {
		n, err := s.store.Cleanup(ctx)
		if err != nil {
			s.logger.Warn("session cleanup failed", "err", err)
			return
		}
		if n > 0 {
			s.logger.Debug("expired sessions removed", "count", n)
		}
	})
}
