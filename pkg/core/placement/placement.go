// Package placement decides whether a piece fits on the board and commits it.
//
// [CanPlace] and [Place] are always used as a pair: validate, then commit.
// An anchor aligns the shape's top-left matrix cell with a board cell; only
// occupied shape cells are checked and filled, so a shape's empty corners may
// hang off the board edge.
package placement

import (
	"github.com/matzehuels/blockfill/pkg/core/board"
	"github.com/matzehuels/blockfill/pkg/core/shape"
	bferrors "github.com/matzehuels/blockfill/pkg/errors"
)

// CanPlace reports whether every occupied cell of s, anchored at
// (anchorRow, anchorCol), lands on an in-bounds, unfilled board cell.
func CanPlace(b *board.Board, s shape.Shape, anchorRow, anchorCol int) bool {
	if s.IsZero() {
		return false
	}
	for _, off := range s.Occupied() {
		r, c := anchorRow+off.Row, anchorCol+off.Col
		if !b.InBounds(r, c) {
			return false
		}
		if filled, _ := b.IsFilled(r, c); filled {
			return false
		}
	}
	return true
}

// Place fills every cell covered by s with the shape's color and returns the
// covered coordinates in row-major order. Target marking is left untouched.
//
// Callers must check [CanPlace] first. If the footprint leaves the board,
// Place returns an OUT_OF_BOUNDS error without modifying b.
func Place(b *board.Board, s shape.Shape, anchorRow, anchorCol int) ([]board.Coord, error) {
	offsets := s.Occupied()
	covered := make([]board.Coord, 0, len(offsets))
	for _, off := range offsets {
		r, c := anchorRow+off.Row, anchorCol+off.Col
		if !b.InBounds(r, c) {
			return nil, bferrors.New(bferrors.ErrCodeOutOfBounds,
				"piece %q at (%d,%d) leaves the board at (%d,%d)", s.Name(), anchorRow, anchorCol, r, c)
		}
		covered = append(covered, board.Coord{Row: r, Col: c})
	}
	for _, c := range covered {
		if err := b.Fill(c.Row, c.Col, s.Color()); err != nil {
			return nil, err
		}
	}
	return covered, nil
}

// Anchors returns every anchor at which s fits on b, scanning anchors in
// row-major order. Anchors may be negative when the shape's matrix has empty
// leading rows or columns.
func Anchors(b *board.Board, s shape.Shape) []board.Coord {
	var out []board.Coord
	for r := 1 - s.Rows(); r < b.Size(); r++ {
		for c := 1 - s.Cols(); c < b.Size(); c++ {
			if CanPlace(b, s, r, c) {
				out = append(out, board.Coord{Row: r, Col: c})
			}
		}
	}
	return out
}

// Fits reports whether s fits anywhere on b in any of its orientations.
func Fits(b *board.Board, s shape.Shape) bool {
	for _, o := range shape.Rotations(s) {
		if len(Anchors(b, o)) > 0 {
			return true
		}
	}
	return false
}
