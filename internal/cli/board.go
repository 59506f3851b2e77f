package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/blockfill/pkg/core/board"
	"github.com/matzehuels/blockfill/pkg/core/shape"
)

// =============================================================================
// Glyphs
// =============================================================================

const (
	glyphEmpty        = "·"
	glyphTarget       = "◇"
	glyphFilled       = "■"
	glyphTargetFilled = "◆"
	glyphBlock        = "██"
)

var (
	styleEmpty  = lipgloss.NewStyle().Foreground(colorDim)
	styleTarget = lipgloss.NewStyle().Foreground(colorYellow)
	styleGhost  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleBlock  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleHint   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(colorYellow).Bold(true)
	styleFrame  = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
)

// cellGlyph renders one board cell without cursor or overlay decoration.
func cellGlyph(c board.Cell) string {
	switch c.State() {
	case board.Filled:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(glyphFilled)
	case board.TargetFilled:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Bold(true).Render(glyphTargetFilled)
	case board.Target:
		return styleTarget.Render(glyphTarget)
	default:
		return styleEmpty.Render(glyphEmpty)
	}
}

// rawGlyph returns the undecorated glyph for c.
func rawGlyph(c board.Cell) string {
	switch c.State() {
	case board.Filled:
		return glyphFilled
	case board.TargetFilled:
		return glyphTargetFilled
	case board.Target:
		return glyphTarget
	default:
		return glyphEmpty
	}
}

// renderPiece draws s as colored blocks, two columns per cell.
func renderPiece(s shape.Shape) string {
	if s.IsZero() {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color()))
	var b strings.Builder
	for r := range s.Rows() {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := range s.Cols() {
			if s.At(r, c) {
				b.WriteString(style.Render(glyphBlock))
			} else {
				b.WriteString("  ")
			}
		}
	}
	return b.String()
}
