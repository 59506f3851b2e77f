// Package supply hands out pieces: the one in play and a one-piece preview.
//
// Every draw is an independent uniform pick from the catalog, so repeats are
// possible and no bag or history is kept.
package supply

import (
	"math/rand/v2"

	"github.com/matzehuels/blockfill/pkg/core/shape"
	bferrors "github.com/matzehuels/blockfill/pkg/errors"
)

// Supplier draws pieces from a fixed catalog.
type Supplier struct {
	catalog []shape.Shape
	rng     *rand.Rand
	next    shape.Shape
}

// New creates a supplier over catalog. The catalog is copied. An empty
// catalog or a nil rng is an INVALID_CONFIG error.
func New(catalog []shape.Shape, rng *rand.Rand) (*Supplier, error) {
	if len(catalog) == 0 {
		return nil, bferrors.New(bferrors.ErrCodeInvalidConfig, "piece catalog is empty")
	}
	if rng == nil {
		return nil, bferrors.New(bferrors.ErrCodeInvalidConfig, "supplier requires a random source")
	}
	return &Supplier{catalog: append([]shape.Shape(nil), catalog...), rng: rng}, nil
}

// Draw promotes the preview to the current piece and draws a fresh preview.
// On first use the preview is seeded first.
func (s *Supplier) Draw() (current, next shape.Shape) {
	if s.next.IsZero() {
		s.next = s.pick()
	}
	current = s.next
	s.next = s.pick()
	return current, s.next
}

// Peek returns the preview without drawing. It is the zero shape before the
// first Draw.
func (s *Supplier) Peek() shape.Shape { return s.next }

// Reset forgets the preview so the next Draw starts fresh.
func (s *Supplier) Reset() { s.next = shape.Shape{} }

// Catalog returns a copy of the supplier's catalog.
func (s *Supplier) Catalog() []shape.Shape {
	return append([]shape.Shape(nil), s.catalog...)
}

func (s *Supplier) pick() shape.Shape {
	return s.catalog[s.rng.IntN(len(s.catalog))]
}
