package sim

import (
	"context"
	"sync"
	"testing"

	"github.com/matzehuels/blockfill/pkg/core/shape"
	bferrors "github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/game"
)

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Games != DefaultGames || opts.Moves != DefaultMoves || opts.Workers < 1 {
		t.Errorf("defaults = %+v", opts)
	}
	if opts.Game.Seed == 0 {
		t.Error("game seed should be chosen")
	}
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative games", Options{Games: -1}},
		{"negative moves", Options{Moves: -5}},
		{"bad board", Options{Game: game.Options{Size: -2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !bferrors.Is(err, bferrors.ErrCodeInvalidConfig) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestExecuteDeterministic(t *testing.T) {
	run := func(workers int) *Result {
		res, err := NewRunner(nil).Execute(context.Background(), Options{
			Games:   4,
			Moves:   60,
			Workers: workers,
			Game:    game.Options{Size: 6, Seed: 1234},
		})
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	a, b := run(1), run(4)
	if len(a.Games) != 4 || len(b.Games) != 4 {
		t.Fatalf("games = %d, %d, want 4", len(a.Games), len(b.Games))
	}
	for i := range a.Games {
		if a.Games[i] != b.Games[i] {
			t.Errorf("game %d differs: %+v vs %+v", i, a.Games[i], b.Games[i])
		}
		if a.Games[i].Seed != 1234+uint64(i) {
			t.Errorf("game %d seed = %d", i, a.Games[i].Seed)
		}
	}
}

func TestExecuteRespectsMoveBudget(t *testing.T) {
	res, err := NewRunner(nil).Execute(context.Background(), Options{
		Games: 3,
		Moves: 25,
		Game:  game.Options{Seed: 7},
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, g := range res.Games {
		if g.Placements > 25 {
			t.Errorf("game %d placements = %d, want <= 25", i, g.Placements)
		}
		if !g.Stuck && g.Placements != 25 {
			t.Errorf("game %d ended early without being stuck: %+v", i, g)
		}
		if g.Level < 1 || g.Score < 10*g.Placements {
			t.Errorf("game %d = %+v", i, g)
		}
	}
	if res.Stats.Games != 3 || res.Stats.BestScore < res.Games[0].Score {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestExecuteStuck(t *testing.T) {
	long := shape.MustParse("long", "#51cf66", "#", "#", "#", "#")
	res, err := NewRunner(nil).Execute(context.Background(), Options{
		Games: 1,
		Moves: 10,
		Game:  game.Options{Size: 2, Seed: 1, Catalog: []shape.Shape{long}},
	})
	if err != nil {
		t.Fatal(err)
	}
	g := res.Games[0]
	if !g.Stuck || g.Placements != 0 || g.Rotations != maxRotations {
		t.Errorf("game = %+v, want stuck after %d rotations", g, maxRotations)
	}
	if res.Stats.StuckGames != 1 {
		t.Errorf("StuckGames = %d, want 1", res.Stats.StuckGames)
	}
}

func TestExecuteReportsProgress(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []int
	)
	_, err := NewRunner(nil).Execute(context.Background(), Options{
		Games:   5,
		Moves:   3,
		Workers: 2,
		Game:    game.Options{Seed: 9},
		Progress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			if total != 5 {
				t.Errorf("total = %d, want 5", total)
			}
			seen = append(seen, done)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 5 {
		t.Fatalf("progress called %d times, want 5", len(seen))
	}
	got := map[int]bool{}
	for _, d := range seen {
		got[d] = true
	}
	for i := 1; i <= 5; i++ {
		if !got[i] {
			t.Errorf("progress never reported %d done", i)
		}
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil).Execute(ctx, Options{Games: 2, Moves: 10, Game: game.Options{Seed: 3}})
	if err == nil {
		t.Error("Execute() with canceled context should fail")
	}
}

func TestAggregate(t *testing.T) {
	st := aggregate([]GameResult{
		{Score: 100, Level: 2, Placements: 5, LinesCleared: 1, LevelsCompleted: 1},
		{Score: 300, Level: 1, Placements: 7, Stuck: true},
	})
	if st.Games != 2 || st.Placements != 12 || st.LinesCleared != 1 || st.LevelsCompleted != 1 {
		t.Errorf("aggregate = %+v", st)
	}
	if st.MaxLevel != 2 || st.BestScore != 300 || st.MeanScore != 200 || st.StuckGames != 1 {
		t.Errorf("aggregate = %+v", st)
	}
}
