package errors

import (
	"math"
	"regexp"
)

// MaxBoardSize bounds the side length accepted from configuration and API
// requests. Larger grids are valid for the engine but unplayable in a terminal.
const MaxBoardSize = 32

// ValidateBoardSize checks that a board side length is usable.
//
// Validation rules:
//   - At least 1 cell per side
//   - At most MaxBoardSize cells per side
func ValidateBoardSize(size int) error {
	if size < 1 {
		return New(ErrCodeInvalidConfig, "board size must be at least 1, got %d", size)
	}
	if size > MaxBoardSize {
		return New(ErrCodeInvalidConfig, "board size too large (max %d), got %d", MaxBoardSize, size)
	}
	return nil
}

// ValidateProbability checks that p is a probability in [0, 1].
// NaN is rejected explicitly since it compares false against both bounds.
func ValidateProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return New(ErrCodeInvalidConfig, "target probability must be within [0, 1], got %v", p)
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a piece color. Pieces are tagged with hex colors so
// that every presentation layer (terminal, browser) can render them.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidShape, "piece color cannot be empty")
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidShape, "invalid piece color %q (want #rgb or #rrggbb)", color)
	}
	return nil
}

// ValidateShapeName validates a catalog entry name.
func ValidateShapeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidShape, "piece name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidShape, "piece name too long (max 64 characters)")
	}
	return nil
}
