// Package board implements the square grid pieces are placed on.
//
// Every cell carries two independent facts: whether it is a target (fixed at
// creation, never removed) and whether it is filled (with the color of the
// piece that filled it). The four logical states empty, filled, target and
// target-filled are derived from those bits, so clearing a line can never
// erase target marking.
//
// Coordinate accessors return an OUT_OF_BOUNDS error for positions outside
// [0, size). Such errors are programming mistakes; callers iterate with
// [Board.InBounds] or over [Board.Size].
package board

import (
	"math/rand/v2"

	bferrors "github.com/matzehuels/blockfill/pkg/errors"
)

// DefaultSize is the side length of a standard board.
const DefaultSize = 8

// DefaultTargetProbability is the chance that any given cell is a target.
const DefaultTargetProbability = 0.3

// Coord addresses a board cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell is the state of one board cell.
type Cell struct {
	Target bool   `json:"target,omitempty"`
	Filled bool   `json:"filled,omitempty"`
	Color  string `json:"color,omitempty"`
}

// State names the four logical cell states.
type State int

const (
	Empty State = iota
	Filled
	Target
	TargetFilled
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Filled:
		return "filled"
	case Target:
		return "target"
	case TargetFilled:
		return "target_filled"
	default:
		return "empty"
	}
}

// State derives the logical state of c.
func (c Cell) State() State {
	switch {
	case c.Target && c.Filled:
		return TargetFilled
	case c.Target:
		return Target
	case c.Filled:
		return Filled
	default:
		return Empty
	}
}

// Board is a fixed-size square grid. The zero value is not usable; create
// boards with [New] or [WithTargets].
//
// Board is not safe for concurrent use.
type Board struct {
	size  int
	cells []Cell // row-major, size*size
}

// New creates a size×size board where each cell independently becomes a
// target with probability targetProbability, drawn from rng in row-major
// order.
func New(size int, targetProbability float64, rng *rand.Rand) (*Board, error) {
	if size < 1 {
		return nil, bferrors.New(bferrors.ErrCodeInvalidConfig, "board size must be at least 1, got %d", size)
	}
	if err := bferrors.ValidateProbability(targetProbability); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, bferrors.New(bferrors.ErrCodeInvalidConfig, "board requires a random source")
	}
	b := &Board{size: size, cells: make([]Cell, size*size)}
	for i := range b.cells {
		b.cells[i].Target = rng.Float64() < targetProbability
	}
	return b, nil
}

// WithTargets creates a size×size board whose targets are exactly the given
// coordinates. Duplicates are allowed; coordinates outside the board are an
// OUT_OF_BOUNDS error.
func WithTargets(size int, targets []Coord) (*Board, error) {
	if size < 1 {
		return nil, bferrors.New(bferrors.ErrCodeInvalidConfig, "board size must be at least 1, got %d", size)
	}
	b := &Board{size: size, cells: make([]Cell, size*size)}
	for _, t := range targets {
		if !b.InBounds(t.Row, t.Col) {
			return nil, b.outOfBounds(t.Row, t.Col)
		}
		b.cells[b.index(t.Row, t.Col)].Target = true
	}
	return b, nil
}

// Size returns the side length.
func (b *Board) Size() int { return b.size }

// InBounds reports whether (row, col) lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// At returns the cell at (row, col).
func (b *Board) At(row, col int) (Cell, error) {
	if !b.InBounds(row, col) {
		return Cell{}, b.outOfBounds(row, col)
	}
	return b.cells[b.index(row, col)], nil
}

// IsFilled reports whether (row, col) holds part of a placed piece.
func (b *Board) IsFilled(row, col int) (bool, error) {
	c, err := b.At(row, col)
	return c.Filled, err
}

// IsTarget reports whether (row, col) must be covered to finish the level.
func (b *Board) IsTarget(row, col int) (bool, error) {
	c, err := b.At(row, col)
	return c.Target, err
}

// Fill marks (row, col) as filled with color. The target bit is unchanged.
func (b *Board) Fill(row, col int, color string) error {
	if !b.InBounds(row, col) {
		return b.outOfBounds(row, col)
	}
	c := &b.cells[b.index(row, col)]
	c.Filled = true
	c.Color = color
	return nil
}

// ClearFill resets (row, col) to unfilled. The target bit is unchanged.
func (b *Board) ClearFill(row, col int) error {
	if !b.InBounds(row, col) {
		return b.outOfBounds(row, col)
	}
	c := &b.cells[b.index(row, col)]
	c.Filled = false
	c.Color = ""
	return nil
}

// Targets returns every target coordinate in row-major order.
func (b *Board) Targets() []Coord {
	return b.collect(func(c Cell) bool { return c.Target })
}

// UnfilledTargets returns the target coordinates not yet covered, in
// row-major order.
func (b *Board) UnfilledTargets() []Coord {
	return b.collect(func(c Cell) bool { return c.Target && !c.Filled })
}

// FilledCount returns the number of filled cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, c := range b.cells {
		if c.Filled {
			n++
		}
	}
	return n
}

// Cells returns a row-major copy of the grid for read-only consumers.
func (b *Board) Cells() [][]Cell {
	out := make([][]Cell, b.size)
	for r := range b.size {
		out[r] = append([]Cell(nil), b.cells[r*b.size:(r+1)*b.size]...)
	}
	return out
}

// Clone returns an independent copy of b.
func (b *Board) Clone() *Board {
	return &Board{size: b.size, cells: append([]Cell(nil), b.cells...)}
}

func (b *Board) collect(keep func(Cell) bool) []Coord {
	var out []Coord
	for i, c := range b.cells {
		if keep(c) {
			out = append(out, Coord{Row: i / b.size, Col: i % b.size})
		}
	}
	return out
}

func (b *Board) index(row, col int) int { return row*b.size + col }

func (b *Board) outOfBounds(row, col int) error {
	return bferrors.New(bferrors.ErrCodeOutOfBounds,
		"cell (%d,%d) outside %dx%d board", row, col, b.size, b.size)
}
