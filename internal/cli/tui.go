package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/blockfill/pkg/core/board"
	"github.com/matzehuels/blockfill/pkg/game"
)

// bannerDuration is how long the level-up banner stays visible.
const bannerDuration = 2 * time.Second

// Panel styles
var (
	panelStyle  = lipgloss.NewStyle().Padding(0, 2)
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	labelStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(9)
	helpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Messages
// =============================================================================

type tickMsg time.Time

type hintExpiredMsg struct{ seq int }

type bannerExpiredMsg struct{ seq int }

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// =============================================================================
// PlayModel - Interactive game
// =============================================================================

// PlayModel is the bubbletea model for an interactive game. The cursor is the
// anchor for the current piece's top-left matrix cell.
type PlayModel struct {
	session      *game.Session
	hintDuration time.Duration

	cursor  board.Coord
	hint    *board.Coord
	hintSeq int

	banner    string
	bannerSeq int
	status    string

	// Err is set when the session reports a broken invariant; the program
	// quits and the command returns it.
	Err error
}

// NewPlayModel creates a model driving s.
func NewPlayModel(s *game.Session, hintDuration time.Duration) PlayModel {
	if hintDuration <= 0 {
		hintDuration = time.Second
	}
	return PlayModel{session: s, hintDuration: hintDuration}
}

func (m PlayModel) Init() tea.Cmd {
	return tickCmd()
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.session.Tick()
		return m, tickCmd()
	case hintExpiredMsg:
		if msg.seq == m.hintSeq {
			m.hint = nil
		}
	case bannerExpiredMsg:
		if msg.seq == m.bannerSeq {
			m.banner = ""
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.move(-1, 0)
	case "down", "j":
		m.move(1, 0)
	case "left", "h":
		m.move(0, -1)
	case "right", "l":
		m.move(0, 1)
	case "enter", " ":
		return m.place()
	case "r":
		if _, err := m.session.RequestRotate(); err != nil {
			m.Err = err
			return m, tea.Quit
		}
		m.status = ""
	case "?":
		return m.requestHint()
	case "n":
		if _, err := m.session.RequestReset(); err != nil {
			m.Err = err
			return m, tea.Quit
		}
		m.cursor = board.Coord{}
		m.hint = nil
		m.banner = ""
		m.status = "New game"
	}
	return m, nil
}

func (m *PlayModel) move(dr, dc int) {
	size := m.session.Snapshot().Size
	m.cursor.Row = min(max(m.cursor.Row+dr, 0), size-1)
	m.cursor.Col = min(max(m.cursor.Col+dc, 0), size-1)
}

func (m PlayModel) place() (tea.Model, tea.Cmd) {
	res, err := m.session.RequestPlacement(m.cursor.Row, m.cursor.Col)
	if err != nil {
		m.Err = err
		return m, tea.Quit
	}
	if !res.Placed {
		m.status = "Piece does not fit there"
		return m, nil
	}

	m.status = fmt.Sprintf("+%d", res.ScoreDelta)
	if n := len(res.RowsCleared) + len(res.ColumnsCleared); n > 0 {
		m.status += fmt.Sprintf("  %d %s cleared", n, plural(n, "line", "lines"))
	}
	if !res.LevelUp {
		return m, nil
	}

	m.hint = nil
	m.bannerSeq++
	m.banner = fmt.Sprintf("Level %d!", res.Level)
	seq := m.bannerSeq
	return m, tea.Tick(bannerDuration, func(time.Time) tea.Msg { return bannerExpiredMsg{seq: seq} })
}

func (m PlayModel) requestHint() (tea.Model, tea.Cmd) {
	h := m.session.RequestHint()
	if !h.Found {
		m.status = "No targets left"
		return m, nil
	}
	m.hintSeq++
	cell := h.Cell
	m.hint = &cell
	seq := m.hintSeq
	return m, tea.Tick(m.hintDuration, func(time.Time) tea.Msg { return hintExpiredMsg{seq: seq} })
}

func (m PlayModel) View() string {
	snap := m.session.Snapshot()

	var b strings.Builder
	if m.banner != "" {
		b.WriteString(bannerStyle.Render(m.banner))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.boardView(snap), m.panelView(snap)))
	b.WriteString("\n")
	b.WriteString(StyleWarning.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows/hjkl move  enter/space place  r rotate  ? hint  n new game  q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m PlayModel) boardView(snap game.Snapshot) string {
	legal := m.session.CanPlace(m.cursor.Row, m.cursor.Col)
	ghost := make(map[board.Coord]bool)
	for _, off := range snap.Current.Occupied() {
		ghost[board.Coord{Row: m.cursor.Row + off.Row, Col: m.cursor.Col + off.Col}] = true
	}

	var b strings.Builder
	for r := range snap.Size {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := range snap.Size {
			at := board.Coord{Row: r, Col: c}
			cell := snap.Cells[r][c]

			var glyph string
			switch {
			case m.hint != nil && *m.hint == at:
				glyph = styleHint.Render(rawGlyph(cell))
			case ghost[at] && legal:
				glyph = styleGhost.Render(glyphFilled)
			case ghost[at]:
				glyph = styleBlock.Render(glyphFilled)
			default:
				glyph = cellGlyph(cell)
			}

			if at == m.cursor {
				b.WriteString(styleFrame.Render("[") + glyph + styleFrame.Render("]"))
			} else {
				b.WriteString(" " + glyph + " ")
			}
		}
	}
	return boardStyle.Render(b.String())
}

func (m PlayModel) panelView(snap game.Snapshot) string {
	targets, covered := 0, 0
	for _, row := range snap.Cells {
		for _, cell := range row {
			if cell.Target {
				targets++
				if cell.Filled {
					covered++
				}
			}
		}
	}

	lines := []string{
		StyleTitle.Render("BLOCKFILL"),
		"",
		labelStyle.Render("Level") + StyleNumber.Render(fmt.Sprint(snap.Level)),
		labelStyle.Render("Score") + StyleNumber.Render(fmt.Sprint(snap.Score)),
		labelStyle.Render("Time") + StyleValue.Render(formatElapsed(snap.Elapsed)),
		labelStyle.Render("Targets") + StyleValue.Render(fmt.Sprintf("%d/%d", covered, targets)),
		"",
		labelStyle.Render("Current") + StyleDim.Render(snap.Current.Name()),
		renderPiece(snap.Current),
		"",
		labelStyle.Render("Next") + StyleDim.Render(snap.Next.Name()),
		renderPiece(snap.Next),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// =============================================================================
// Helpers
// =============================================================================

// formatElapsed renders seconds as mm:ss.
func formatElapsed(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
