package hint

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/blockfill/pkg/core/board"
)

func TestPick(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))

	tests := []struct {
		name    string
		targets []board.Coord
		fill    []board.Coord
		want    *board.Coord
	}{
		{name: "no targets"},
		{
			name:    "all covered",
			targets: []board.Coord{{0, 0}},
			fill:    []board.Coord{{0, 0}},
		},
		{
			name:    "single open target",
			targets: []board.Coord{{2, 1}},
			want:    &board.Coord{Row: 2, Col: 1},
		},
		{
			name:    "one of two covered",
			targets: []board.Coord{{0, 0}, {1, 1}},
			fill:    []board.Coord{{0, 0}},
			want:    &board.Coord{Row: 1, Col: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := board.WithTargets(3, tt.targets)
			for _, c := range tt.fill {
				_ = b.Fill(c.Row, c.Col, "#fff")
			}
			for range 20 {
				got, ok := Pick(b, rng)
				if tt.want == nil {
					if ok {
						t.Fatalf("Pick() = %v, want none", got)
					}
					continue
				}
				if !ok || got != *tt.want {
					t.Fatalf("Pick() = %v, %v, want %v", got, ok, *tt.want)
				}
			}
		})
	}
}

func TestPickCoversAllOpenTargets(t *testing.T) {
	b, _ := board.New(4, 1.0, rand.New(rand.NewPCG(1, 1)))
	rng := rand.New(rand.NewPCG(8, 8))
	seen := map[board.Coord]bool{}
	for range 1000 {
		c, ok := Pick(b, rng)
		if !ok {
			t.Fatal("Pick() found nothing on all-target board")
		}
		seen[c] = true
	}
	if len(seen) != 16 {
		t.Errorf("Pick() reached %d distinct cells, want 16", len(seen))
	}
	if b.FilledCount() != 0 {
		t.Error("Pick() modified the board")
	}
}
