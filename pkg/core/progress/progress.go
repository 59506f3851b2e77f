// Package progress tracks score and level and decides when a level is done.
//
// Scoring, all multiplied by the current level:
//
//	placement          +10
//	each cleared line  +100
//	level complete     +100, then the level increases by one
package progress

import "github.com/matzehuels/blockfill/pkg/core/board"

// Scoring constants, each multiplied by the current level.
const (
	PlacementPoints     = 10
	LinePoints          = 100
	LevelCompletePoints = 100
)

// State is the per-level state machine: InProgress until every target is
// covered, then LevelComplete until the board is regenerated.
type State int

const (
	InProgress State = iota
	LevelComplete
)

// String returns the lowercase state name.
func (s State) String() string {
	if s == LevelComplete {
		return "level_complete"
	}
	return "in_progress"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Tracker accumulates score and level. The zero value is not ready; use [New].
type Tracker struct {
	score int
	level int
}

// New returns a tracker at level 1 with no score.
func New() *Tracker {
	return &Tracker{level: 1}
}

// Score returns the accumulated score.
func (t *Tracker) Score() int { return t.score }

// Level returns the current level, always at least 1.
func (t *Tracker) Level() int { return t.level }

// OnPlacement awards points for a committed placement and returns them.
func (t *Tracker) OnPlacement() int {
	pts := PlacementPoints * t.level
	t.score += pts
	return pts
}

// OnLinesCleared awards points for count cleared lines and returns them.
// A zero count awards nothing.
func (t *Tracker) OnLinesCleared(count int) int {
	if count <= 0 {
		return 0
	}
	pts := LinePoints * count * t.level
	t.score += pts
	return pts
}

// OnLevelComplete awards the level bonus at the current level and then
// advances the level. The caller regenerates the board.
func (t *Tracker) OnLevelComplete() int {
	pts := LevelCompletePoints * t.level
	t.score += pts
	t.level++
	return pts
}

// Reset returns the tracker to level 1 with no score.
func (t *Tracker) Reset() {
	t.score = 0
	t.level = 1
}

// TargetsComplete reports whether b has at least one target and every target
// is filled. A board without targets is never complete.
func TargetsComplete(b *board.Board) bool {
	return len(b.Targets()) > 0 && len(b.UnfilledTargets()) == 0
}

// TargetsComplete is the method form of the package-level [TargetsComplete].
func (t *Tracker) TargetsComplete(b *board.Board) bool { return TargetsComplete(b) }

// StateOf derives the level state of b.
func StateOf(b *board.Board) State {
	if TargetsComplete(b) {
		return LevelComplete
	}
	return InProgress
}
