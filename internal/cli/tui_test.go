package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/blockfill/pkg/core/board"
	"github.com/matzehuels/blockfill/pkg/core/shape"
	"github.com/matzehuels/blockfill/pkg/game"
	"github.com/matzehuels/blockfill/pkg/observability"
)

func newTestModel(t *testing.T) PlayModel {
	t.Helper()
	s, err := game.New(game.Options{Size: 4, Seed: 1, Hooks: observability.NoopGameHooks{}})
	if err != nil {
		t.Fatal(err)
	}
	return NewPlayModel(s, time.Second)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m PlayModel, msg tea.Msg) (PlayModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(PlayModel)
	if !ok {
		t.Fatalf("Update returned %T, want PlayModel", next)
	}
	return pm, cmd
}

func TestPlayModelCursorMovement(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want board.Coord
	}{
		{"arrow right", []tea.KeyMsg{{Type: tea.KeyRight}}, board.Coord{Row: 0, Col: 1}},
		{"arrow down", []tea.KeyMsg{{Type: tea.KeyDown}}, board.Coord{Row: 1, Col: 0}},
		{"vim keys", []tea.KeyMsg{runeKey('j'), runeKey('l'), runeKey('l'), runeKey('h')}, board.Coord{Row: 1, Col: 1}},
		{"clamped at top left", []tea.KeyMsg{{Type: tea.KeyUp}, runeKey('h')}, board.Coord{Row: 0, Col: 0}},
		{"clamped at bottom right", []tea.KeyMsg{
			runeKey('j'), runeKey('j'), runeKey('j'), runeKey('j'), runeKey('j'),
			runeKey('l'), runeKey('l'), runeKey('l'), runeKey('l'), runeKey('l'),
		}, board.Coord{Row: 3, Col: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			for _, k := range tt.keys {
				m, _ = update(t, m, k)
			}
			if m.cursor != tt.want {
				t.Errorf("cursor = %v, want %v", m.cursor, tt.want)
			}
		})
	}
}

func TestPlayModelPlace(t *testing.T) {
	m := newTestModel(t)

	var anchor board.Coord
	found := false
	for r := range 4 {
		for c := range 4 {
			if !found && m.session.CanPlace(r, c) {
				anchor, found = board.Coord{Row: r, Col: c}, true
			}
		}
	}
	if !found {
		t.Fatal("no legal anchor on a fresh 4x4 board")
	}

	m.cursor = anchor
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.session.Snapshot().Placements; got != 1 {
		t.Errorf("Placements = %d, want 1", got)
	}
	if !strings.HasPrefix(m.status, "+") {
		t.Errorf("status = %q, want score delta", m.status)
	}
}

func TestPlayModelRejectedPlacement(t *testing.T) {
	m := newTestModel(t)
	// Every catalog piece has a cell right of or below its anchor.
	m.cursor = board.Coord{Row: 3, Col: 3}
	before := m.session.Snapshot()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd != nil {
		t.Error("rejected placement should not schedule a command")
	}
	after := m.session.Snapshot()
	if after.Placements != 0 || after.Score != before.Score {
		t.Errorf("rejected placement changed state: %+v", after)
	}
	if m.status != "Piece does not fit there" {
		t.Errorf("status = %q", m.status)
	}
}

func TestPlayModelRotate(t *testing.T) {
	m := newTestModel(t)
	before, err := m.session.Current()
	if err != nil {
		t.Fatal(err)
	}
	m, _ = update(t, m, runeKey('r'))
	after, _ := m.session.Current()
	if !after.Equal(shape.RotateClockwise(before)) {
		t.Errorf("current after r =\n%s\nwant\n%s", after, shape.RotateClockwise(before))
	}
}

func TestPlayModelTick(t *testing.T) {
	m := newTestModel(t)
	if m.Init() == nil {
		t.Fatal("Init() should start the clock")
	}
	m, cmd := update(t, m, tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if got := m.session.Snapshot().Elapsed; got != 1 {
		t.Errorf("Elapsed = %d, want 1", got)
	}
}

func TestPlayModelHintExpires(t *testing.T) {
	s, err := game.New(game.Options{Size: 4, TargetProbability: game.Probability(1), Seed: 2, Hooks: observability.NoopGameHooks{}})
	if err != nil {
		t.Fatal(err)
	}
	m := NewPlayModel(s, time.Second)

	m, cmd := update(t, m, runeKey('?'))
	if m.hint == nil {
		t.Fatal("hint not set on a board full of targets")
	}
	if cmd == nil {
		t.Fatal("hint should schedule its expiry")
	}

	// A second hint supersedes the first; the first expiry is stale.
	m, _ = update(t, m, runeKey('?'))
	m, _ = update(t, m, hintExpiredMsg{seq: m.hintSeq - 1})
	if m.hint == nil {
		t.Error("stale expiry cleared the current hint")
	}
	m, _ = update(t, m, hintExpiredMsg{seq: m.hintSeq})
	if m.hint != nil {
		t.Error("hint still set after its expiry")
	}
}

func TestPlayModelReset(t *testing.T) {
	m := newTestModel(t)
	m.cursor = board.Coord{Row: 2, Col: 2}
	m, _ = update(t, m, tickMsg(time.Now()))
	m, _ = update(t, m, runeKey('n'))

	snap := m.session.Snapshot()
	if snap.Elapsed != 0 || snap.Level != 1 || snap.Score != 0 {
		t.Errorf("after reset snapshot = level %d score %d elapsed %d", snap.Level, snap.Score, snap.Elapsed)
	}
	if m.cursor != (board.Coord{}) {
		t.Errorf("cursor = %v, want origin", m.cursor)
	}
}

func TestPlayModelQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m := newTestModel(t)
		_, cmd := update(t, m, k)
		if cmd == nil {
			t.Fatalf("%q: no command", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q: command did not quit", k.String())
		}
	}
}

func TestPlayModelBannerExpires(t *testing.T) {
	m := newTestModel(t)
	m.banner, m.bannerSeq = "Level 2!", 3

	m, _ = update(t, m, bannerExpiredMsg{seq: 2})
	if m.banner == "" {
		t.Error("stale expiry cleared the banner")
	}
	m, _ = update(t, m, bannerExpiredMsg{seq: 3})
	if m.banner != "" {
		t.Errorf("banner = %q after expiry", m.banner)
	}
}

func TestPlayModelView(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	for _, want := range []string{"BLOCKFILL", "Level", "Score", "Time", "Next", "00:00", "["} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{61, "01:01"},
		{3600, "60:00"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.seconds); got != tt.want {
			t.Errorf("formatElapsed(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
