// Package game orchestrates one play session of the block-filling puzzle.
//
// A [Session] owns the board, the piece in play and its preview, the score
// tracker, the elapsed-time counter and the random source. Presentation layers
// (the terminal UI, the HTTP API, the simulator) drive it through the Request*
// methods and render from [Session.Snapshot]; they never touch the board
// directly.
//
// # Placement flow
//
//  1. The current piece is validated at the requested anchor.
//  2. On success its cells are filled and placement points awarded.
//  3. Completed lines are cleared and scored.
//  4. If every target is now covered, the level bonus is awarded, the level
//     advances and a fresh board is generated.
//  5. The preview is promoted and a new preview drawn.
//
// Line clearing runs before the target check, so a clear that empties a
// target cell keeps the level open.
//
// A Session is not safe for concurrent use.
package game

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockfill/pkg/core/board"
	"github.com/matzehuels/blockfill/pkg/core/hint"
	"github.com/matzehuels/blockfill/pkg/core/lines"
	"github.com/matzehuels/blockfill/pkg/core/placement"
	"github.com/matzehuels/blockfill/pkg/core/progress"
	"github.com/matzehuels/blockfill/pkg/core/shape"
	"github.com/matzehuels/blockfill/pkg/core/supply"
	bferrors "github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/observability"
)

// Session is a single game in progress.
type Session struct {
	opts     Options
	rng      *rand.Rand
	board    *board.Board
	supplier *supply.Supplier
	tracker  *progress.Tracker
	current  shape.Shape
	next     shape.Shape

	elapsed      int
	placements   int
	linesCleared int

	logger *log.Logger
	hooks  observability.GameHooks
}

// New starts a session at level 1 with a fresh board and pieces.
func New(opts Options) (*Session, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	supplier, err := supply.New(opts.Catalog, rng)
	if err != nil {
		return nil, err
	}
	s := &Session{
		opts:     opts,
		rng:      rng,
		supplier: supplier,
		tracker:  progress.New(),
		logger:   opts.Logger,
		hooks:    opts.Hooks,
	}
	if err := s.newBoard(); err != nil {
		return nil, err
	}
	s.current, s.next = supplier.Draw()
	s.logger.Debug("session started",
		"seed", opts.Seed,
		"size", opts.Size,
		"targets", len(s.board.Targets()))
	return s, nil
}

// =============================================================================
// Requests
// =============================================================================

// PlacementResult describes the outcome of [Session.RequestPlacement].
type PlacementResult struct {
	Placed         bool          `json:"placed"`
	Cells          []board.Coord `json:"cells,omitempty"`
	RowsCleared    []int         `json:"rows_cleared,omitempty"`
	ColumnsCleared []int         `json:"columns_cleared,omitempty"`
	LevelUp        bool          `json:"level_up"`
	Level          int           `json:"level"`
	Score          int           `json:"score"`
	ScoreDelta     int           `json:"score_delta"`
}

// RotateResult describes the outcome of [Session.RequestRotate].
type RotateResult struct {
	Current shape.Shape `json:"current"`
}

// HintResult describes the outcome of [Session.RequestHint].
type HintResult struct {
	Cell  board.Coord `json:"cell"`
	Found bool        `json:"found"`
}

// RequestPlacement drops the current piece with its top-left matrix cell at
// (row, col). An illegal anchor is not an error: the result has Placed false
// and the session is unchanged.
//
// The returned error is non-nil only when the session's invariants are
// broken; it carries NO_PENDING_PIECE or INTERNAL_ERROR.
func (s *Session) RequestPlacement(row, col int) (PlacementResult, error) {
	cur, err := s.Current()
	if err != nil {
		return PlacementResult{}, err
	}
	if !placement.CanPlace(s.board, cur, row, col) {
		s.hooks.OnRejected(row, col)
		s.logger.Debug("placement rejected", "piece", cur.Name(), "row", row, "col", col)
		return PlacementResult{Level: s.tracker.Level(), Score: s.tracker.Score()}, nil
	}

	cells, err := placement.Place(s.board, cur, row, col)
	if err != nil {
		return PlacementResult{}, bferrors.Wrap(bferrors.ErrCodeInternal, err, "commit validated placement")
	}
	res := PlacementResult{Placed: true, Cells: cells}
	level := s.tracker.Level()
	res.ScoreDelta += s.tracker.OnPlacement()
	s.placements++
	s.hooks.OnPlacement(level, len(cells))
	s.logger.Debug("piece placed", "piece", cur.Name(), "row", row, "col", col, "cells", len(cells))

	cleared := lines.Clear(s.board, s.opts.ClearMode)
	if n := cleared.Count(); n > 0 {
		res.RowsCleared, res.ColumnsCleared = cleared.Rows, cleared.Columns
		res.ScoreDelta += s.tracker.OnLinesCleared(n)
		s.linesCleared += n
		s.hooks.OnLinesCleared(level, n)
		s.logger.Debug("lines cleared", "rows", cleared.Rows, "columns", cleared.Columns)
	}

	if s.tracker.TargetsComplete(s.board) {
		s.hooks.OnLevelComplete(level, s.tracker.Score())
		res.ScoreDelta += s.tracker.OnLevelComplete()
		res.LevelUp = true
		if err := s.newBoard(); err != nil {
			return res, bferrors.Wrap(bferrors.ErrCodeInternal, err, "regenerate board")
		}
		s.logger.Debug("level complete", "level", s.tracker.Level(), "score", s.tracker.Score())
	}

	s.current, s.next = s.supplier.Draw()
	res.Level = s.tracker.Level()
	res.Score = s.tracker.Score()
	return res, nil
}

// RequestRotate turns the current piece 90° clockwise. Rotation always
// succeeds; fit is only checked on placement.
func (s *Session) RequestRotate() (RotateResult, error) {
	cur, err := s.Current()
	if err != nil {
		return RotateResult{}, err
	}
	s.current = shape.RotateClockwise(cur)
	return RotateResult{Current: s.current}, nil
}

// RequestReset starts over at level 1 with no score, zero elapsed time, a
// fresh board and fresh pieces. The random source is not reseeded.
func (s *Session) RequestReset() (Snapshot, error) {
	s.tracker.Reset()
	s.elapsed = 0
	s.placements = 0
	s.linesCleared = 0
	if err := s.newBoard(); err != nil {
		return Snapshot{}, bferrors.Wrap(bferrors.ErrCodeInternal, err, "regenerate board")
	}
	s.supplier.Reset()
	s.current, s.next = s.supplier.Draw()
	s.hooks.OnReset()
	s.logger.Debug("session reset")
	return s.Snapshot(), nil
}

// RequestHint picks one uncovered target at random. Found is false when none
// is left.
func (s *Session) RequestHint() HintResult {
	c, ok := hint.Pick(s.board, s.rng)
	s.hooks.OnHint(ok)
	return HintResult{Cell: c, Found: ok}
}

// Tick advances the elapsed-time counter by one second.
func (s *Session) Tick() { s.elapsed++ }

// =============================================================================
// Queries
// =============================================================================

// Snapshot is a read-only copy of the session state for rendering.
type Snapshot struct {
	Size         int            `json:"size"`
	Cells        [][]board.Cell `json:"cells"`
	Current      shape.Shape    `json:"current"`
	Next         shape.Shape    `json:"next"`
	Level        int            `json:"level"`
	Score        int            `json:"score"`
	Elapsed      int            `json:"elapsed"`
	State        progress.State `json:"state"`
	Seed         uint64         `json:"seed"`
	Placements   int            `json:"placements"`
	LinesCleared int            `json:"lines_cleared"`
}

// Snapshot returns the current state. The cell grid is a deep copy.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Size:         s.board.Size(),
		Cells:        s.board.Cells(),
		Current:      s.current,
		Next:         s.next,
		Level:        s.tracker.Level(),
		Score:        s.tracker.Score(),
		Elapsed:      s.elapsed,
		State:        progress.StateOf(s.board),
		Seed:         s.opts.Seed,
		Placements:   s.placements,
		LinesCleared: s.linesCleared,
	}
}

// Current returns the piece in play.
func (s *Session) Current() (shape.Shape, error) {
	if s.current.IsZero() {
		return shape.Shape{}, bferrors.New(bferrors.ErrCodeNoPendingPiece, "no piece in play")
	}
	return s.current, nil
}

// Next returns the preview piece.
func (s *Session) Next() shape.Shape { return s.next }

// Board returns a copy of the board.
func (s *Session) Board() *board.Board { return s.board.Clone() }

// CanPlace reports whether the current piece fits at (row, col) without
// placing it. Used for ghost previews.
func (s *Session) CanPlace(row, col int) bool {
	return placement.CanPlace(s.board, s.current, row, col)
}

// Catalog returns the session's piece set.
func (s *Session) Catalog() []shape.Shape { return s.supplier.Catalog() }

// Seed returns the seed the session was started with.
func (s *Session) Seed() uint64 { return s.opts.Seed }

func (s *Session) newBoard() error {
	b, err := board.New(s.opts.Size, *s.opts.TargetProbability, s.rng)
	if err != nil {
		return err
	}
	s.board = b
	return nil
}
