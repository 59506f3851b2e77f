package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/blockfill/pkg/core/shape"
	bferrors "github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/game"
	"github.com/matzehuels/blockfill/pkg/session"
)

// =============================================================================
// Request / Response Types
// =============================================================================

type createRequest struct {
	Size              *int     `json:"size,omitempty"`
	TargetProbability *float64 `json:"target_probability,omitempty"`
	Seed              *uint64  `json:"seed,omitempty"`
}

type placeRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type sessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	game.Snapshot
}

type piecesResponse struct {
	Pieces []shape.Shape `json:"pieces"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.store.Len()})
}

func (s *Server) handlePieces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, piecesResponse{Pieces: s.defaults.Catalog})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		s.writeError(w, err)
		return
	}

	opts := s.defaults
	if req.Size != nil {
		if err := bferrors.ValidateBoardSize(*req.Size); err != nil {
			s.writeError(w, bferrors.Wrap(bferrors.ErrCodeInvalidInput, err, "size"))
			return
		}
		opts.Size = *req.Size
	}
	if req.TargetProbability != nil {
		if err := bferrors.ValidateProbability(*req.TargetProbability); err != nil {
			s.writeError(w, bferrors.Wrap(bferrors.ErrCodeInvalidInput, err, "target_probability"))
			return
		}
		opts.TargetProbability = game.Probability(*req.TargetProbability)
	}
	if req.Seed != nil {
		opts.Seed = *req.Seed
	}
	opts.Logger = s.logger

	e, err := s.store.Create(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Debug("session created", "id", e.ID)
	writeJSON(w, http.StatusCreated, sessionResponse{ID: e.ID, CreatedAt: e.CreatedAt, Snapshot: e.Snapshot()})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: e.ID, CreatedAt: e.CreatedAt, Snapshot: e.Snapshot()})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Row == nil || req.Col == nil {
		s.writeError(w, bferrors.New(bferrors.ErrCodeInvalidInput, "row and col are required"))
		return
	}
	e, ok := s.entry(w, r)
	if !ok {
		return
	}

	var res game.PlacementResult
	err := e.Do(func(g *game.Session) error {
		var err error
		res, err = g.RequestPlacement(*req.Row, *req.Col)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRotate(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	var res game.RotateResult
	err := e.Do(func(g *game.Session) error {
		var err error
		res, err = g.RequestRotate()
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	var snap game.Snapshot
	err := e.Do(func(g *game.Session) error {
		var err error
		snap, err = g.RequestReset()
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: e.ID, CreatedAt: e.CreatedAt, Snapshot: snap})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	var res game.HintResult
	_ = e.Do(func(g *game.Session) error {
		res = g.RequestHint()
		return nil
	})
	writeJSON(w, http.StatusOK, res)
}

// entry resolves the {id} URL parameter, writing the error response itself
// when the session is unknown.
func (s *Server) entry(w http.ResponseWriter, r *http.Request) (*session.Entry, bool) {
	e, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return e, true
}
