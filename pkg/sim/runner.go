package sim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/blockfill/pkg/core/placement"
	bferrors "github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/game"
	"github.com/matzehuels/blockfill/pkg/observability"
)

var errNegative = bferrors.New(bferrors.ErrCodeInvalidConfig, "games, moves and workers must not be negative")

// Runner executes simulations.
//
// The Runner holds no per-run state; multiple goroutines can share one.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = discardLogger()
	}
	return &Runner{Logger: logger}
}

// Execute plays opts.Games games and aggregates their statistics.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	games := make([]GameResult, opts.Games)
	var finished atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range opts.Games {
		g.Go(func() error {
			gameOpts := opts.Game
			gameOpts.Seed = opts.Game.Seed + uint64(i)
			res, err := r.play(ctx, gameOpts, opts.Moves)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			games[i] = res
			r.Logger.Debug("game finished",
				"seed", res.Seed,
				"score", res.Score,
				"level", res.Level,
				"stuck", res.Stuck)
			if opts.Progress != nil {
				opts.Progress(int(finished.Add(1)), opts.Games)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Games: games, Stats: aggregate(games)}
	result.Stats.Duration = time.Since(start)
	r.Logger.Info("simulation complete",
		"games", result.Stats.Games,
		"best", result.Stats.BestScore,
		"max_level", result.Stats.MaxLevel,
		"duration", result.Stats.Duration)
	return result, nil
}

// play runs one game until the move budget is spent or the board is stuck.
func (r *Runner) play(ctx context.Context, opts game.Options, moves int) (GameResult, error) {
	var counters observability.Counters
	opts.Hooks = observability.Fanout{observability.Game(), &counters}
	opts.Logger = r.Logger.With("seed", opts.Seed)

	s, err := game.New(opts)
	if err != nil {
		return GameResult{}, err
	}
	agent := rand.New(rand.NewPCG(opts.Seed, 0x5eed))
	res := GameResult{Seed: opts.Seed}

	for range moves {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		placed, rotations, err := step(s, agent)
		res.Rotations += rotations
		if err != nil {
			return res, err
		}
		if !placed {
			res.Stuck = true
			break
		}
	}

	snap := s.Snapshot()
	res.Score = snap.Score
	res.Level = snap.Level
	res.Placements = int(counters.Placements.Load())
	res.LinesCleared = int(counters.Lines.Load())
	res.LevelsCompleted = int(counters.Levels.Load())
	return res, nil
}

// step places the current piece at a random legal anchor, rotating when it
// does not fit. It reports false when no orientation fits.
func step(s *game.Session, agent *rand.Rand) (placed bool, rotations int, err error) {
	b := s.Board()
	for rot := 0; rot <= maxRotations; rot++ {
		cur, err := s.Current()
		if err != nil {
			return false, rotations, err
		}
		anchors := placement.Anchors(b, cur)
		if len(anchors) > 0 {
			a := anchors[agent.IntN(len(anchors))]
			res, err := s.RequestPlacement(a.Row, a.Col)
			if err != nil {
				return false, rotations, err
			}
			if !res.Placed {
				return false, rotations, bferrors.New(bferrors.ErrCodeInternal,
					"anchor (%d,%d) reported legal but placement was rejected", a.Row, a.Col)
			}
			return true, rotations, nil
		}
		if rot == maxRotations {
			break
		}
		if _, err := s.RequestRotate(); err != nil {
			return false, rotations, err
		}
		rotations++
	}
	return false, rotations, nil
}

func aggregate(games []GameResult) Stats {
	st := Stats{Games: len(games)}
	total := 0
	for _, g := range games {
		st.Placements += g.Placements
		st.LinesCleared += g.LinesCleared
		st.LevelsCompleted += g.LevelsCompleted
		st.MaxLevel = max(st.MaxLevel, g.Level)
		st.BestScore = max(st.BestScore, g.Score)
		if g.Stuck {
			st.StuckGames++
		}
		total += g.Score
	}
	if len(games) > 0 {
		st.MeanScore = float64(total) / float64(len(games))
	}
	return st
}
