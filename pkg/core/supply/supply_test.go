package supply

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/blockfill/pkg/core/shape"
	bferrors "github.com/matzehuels/blockfill/pkg/errors"
)

func TestNewInvalid(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	if _, err := New(nil, rng); !bferrors.Is(err, bferrors.ErrCodeInvalidConfig) {
		t.Errorf("New(empty) error = %v, want INVALID_CONFIG", err)
	}
	if _, err := New(shape.Catalog(), nil); !bferrors.Is(err, bferrors.ErrCodeInvalidConfig) {
		t.Errorf("New(nil rng) error = %v, want INVALID_CONFIG", err)
	}
}

func TestDrawPromotesNext(t *testing.T) {
	s, err := New(shape.Catalog(), rand.New(rand.NewPCG(9, 9)))
	if err != nil {
		t.Fatal(err)
	}
	if !s.Peek().IsZero() {
		t.Error("Peek() before Draw should be zero")
	}

	_, next := s.Draw()
	for range 50 {
		cur, n := s.Draw()
		if !cur.Equal(next) {
			t.Fatalf("current %s, want previous next %s", cur.Name(), next.Name())
		}
		if n.IsZero() || cur.IsZero() {
			t.Fatal("Draw returned zero shape")
		}
		next = n
	}
	if !s.Peek().Equal(next) {
		t.Error("Peek() should equal last next")
	}
}

func TestDrawUsesWholeCatalog(t *testing.T) {
	s, _ := New(shape.Catalog(), rand.New(rand.NewPCG(4, 4)))
	seen := map[string]int{}
	for range 2000 {
		cur, _ := s.Draw()
		seen[cur.Name()]++
	}
	for _, sh := range shape.Catalog() {
		if seen[sh.Name()] < 150 {
			t.Errorf("shape %s drawn %d times out of 2000", sh.Name(), seen[sh.Name()])
		}
	}
}

func TestDrawSingleShapeRepeats(t *testing.T) {
	only := shape.MustParse("mono", "#fff", "#")
	s, _ := New([]shape.Shape{only}, rand.New(rand.NewPCG(1, 1)))
	for range 3 {
		cur, next := s.Draw()
		if !cur.Equal(only) || !next.Equal(only) {
			t.Fatalf("Draw() = %s, %s", cur.Name(), next.Name())
		}
	}
}

func TestResetAndCatalogCopy(t *testing.T) {
	s, _ := New(shape.Catalog(), rand.New(rand.NewPCG(2, 2)))
	s.Draw()
	s.Reset()
	if !s.Peek().IsZero() {
		t.Error("Peek() after Reset should be zero")
	}
	cat := s.Catalog()
	cat[0] = shape.Shape{}
	if s.Catalog()[0].IsZero() {
		t.Error("Catalog() should return a copy")
	}
}
