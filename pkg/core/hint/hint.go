// Package hint suggests an uncovered target cell.
package hint

import (
	"math/rand/v2"

	"github.com/matzehuels/blockfill/pkg/core/board"
)

// Pick returns a uniformly chosen target that is not yet filled. The second
// result is false when every target is covered or the board has none.
// The board is not modified.
func Pick(b *board.Board, rng *rand.Rand) (board.Coord, bool) {
	open := b.UnfilledTargets()
	if len(open) == 0 {
		return board.Coord{}, false
	}
	return open[rng.IntN(len(open))], true
}
