package game

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockfill/pkg/core/board"
	"github.com/matzehuels/blockfill/pkg/core/lines"
	"github.com/matzehuels/blockfill/pkg/core/shape"
	bferrors "github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/observability"
)

// =============================================================================
// Options - Session Configuration
// =============================================================================

// Options configures a [Session]. The zero value is a standard 8×8 game with
// the built-in catalog and a time-derived seed.
type Options struct {
	// Size is the board side length. Zero means board.DefaultSize.
	Size int `json:"size,omitempty"`

	// TargetProbability is the chance each cell is a target. Nil means
	// board.DefaultTargetProbability; an explicit zero gives target-free
	// boards. See [Probability].
	TargetProbability *float64 `json:"target_probability,omitempty"`

	// Seed drives every random decision of the session. Zero picks a seed
	// from the clock; the chosen seed is reported by [Session.Snapshot].
	Seed uint64 `json:"seed,omitempty"`

	// Catalog is the piece set. Empty means [shape.Catalog].
	Catalog []shape.Shape `json:"-"`

	// ClearMode selects row-only or row-and-column clearing.
	ClearMode lines.Mode `json:"-"`

	// Logger receives debug events. Nil discards them.
	Logger *log.Logger `json:"-"`

	// Hooks receives game events. Nil uses the globally registered hooks.
	Hooks observability.GameHooks `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Size == 0 {
		o.Size = board.DefaultSize
	}
	if o.TargetProbability == nil {
		o.TargetProbability = Probability(board.DefaultTargetProbability)
	}
	if err := bferrors.ValidateBoardSize(o.Size); err != nil {
		return err
	}
	if err := bferrors.ValidateProbability(*o.TargetProbability); err != nil {
		return err
	}
	if len(o.Catalog) == 0 {
		o.Catalog = shape.Catalog()
	}
	for _, s := range o.Catalog {
		if s.IsZero() {
			return bferrors.New(bferrors.ErrCodeInvalidConfig, "catalog contains an empty piece")
		}
	}
	if o.ClearMode != lines.Rows && o.ClearMode != lines.RowsAndColumns {
		return bferrors.New(bferrors.ErrCodeInvalidConfig, "unknown clear mode %d", o.ClearMode)
	}
	if o.Seed == 0 {
		o.Seed = clockSeed()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Hooks == nil {
		o.Hooks = observability.Game()
	}
	o.validated = true
	return nil
}

// Probability returns a pointer to p, for setting [Options.TargetProbability].
func Probability(p float64) *float64 { return &p }

func clockSeed() uint64 {
	if s := uint64(time.Now().UnixNano()); s != 0 {
		return s
	}
	return 1
}
