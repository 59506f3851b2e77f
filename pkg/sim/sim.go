// Package sim plays games headlessly with a random agent.
//
// The agent looks at the current piece, collects every anchor where it fits
// and picks one uniformly. When the piece fits nowhere it rotates, up to
// three times. When no orientation fits the board is stuck and the game ends.
//
// Games are independent and run concurrently; game i is seeded with
// Seed+i, so a run is reproducible from its base seed regardless of the
// worker count.
//
// # Usage
//
//	runner := sim.NewRunner(logger)
//	result, err := runner.Execute(ctx, sim.Options{Games: 10, Moves: 500, Game: game.Options{Seed: 42}})
package sim

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockfill/pkg/game"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultGames is the number of games per run.
	DefaultGames = 1

	// DefaultMoves is the placement budget per game.
	DefaultMoves = 200

	// maxRotations is how often the agent rotates a piece that does not fit.
	maxRotations = 3
)

// =============================================================================
// Options
// =============================================================================

// Options configures a simulation run.
type Options struct {
	Games   int          `json:"games"`
	Moves   int          `json:"moves"`
	Workers int          `json:"workers,omitempty"`
	Game    game.Options `json:"game"`

	// Progress, when set, is called after each finished game with the number
	// of games done so far. It may be called from several goroutines.
	Progress func(done, total int) `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Games == 0 {
		o.Games = DefaultGames
	}
	if o.Moves == 0 {
		o.Moves = DefaultMoves
	}
	if o.Workers == 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Games < 0 || o.Moves < 0 || o.Workers < 0 {
		return errNegative
	}
	if err := o.Game.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// =============================================================================
// Results
// =============================================================================

// GameResult summarizes one simulated game.
type GameResult struct {
	Seed            uint64 `json:"seed"`
	Score           int    `json:"score"`
	Level           int    `json:"level"`
	Placements      int    `json:"placements"`
	LinesCleared    int    `json:"lines_cleared"`
	LevelsCompleted int    `json:"levels_completed"`
	Rotations       int    `json:"rotations"`
	Stuck           bool   `json:"stuck"`
}

// Stats aggregates a run.
type Stats struct {
	Games           int           `json:"games"`
	Placements      int           `json:"placements"`
	LinesCleared    int           `json:"lines_cleared"`
	LevelsCompleted int           `json:"levels_completed"`
	MaxLevel        int           `json:"max_level"`
	BestScore       int           `json:"best_score"`
	MeanScore       float64       `json:"mean_score"`
	StuckGames      int           `json:"stuck_games"`
	Duration        time.Duration `json:"duration"`
}

// Result contains the outputs of a simulation run.
type Result struct {
	Games []GameResult `json:"games"`
	Stats Stats        `json:"stats"`
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
