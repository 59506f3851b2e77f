package observability

import "sync/atomic"

// Counters is a GameHooks implementation that tallies placements, cleared
// lines and completed levels. It is safe for concurrent use and is how the
// simulator collects its statistics. Other events are ignored.
type Counters struct {
	NoopGameHooks

	Placements atomic.Int64
	Lines      atomic.Int64
	Levels     atomic.Int64
}

var _ GameHooks = (*Counters)(nil)

func (c *Counters) OnPlacement(int, int) { c.Placements.Add(1) }
func (c *Counters) OnLinesCleared(_, count int) {
	c.Lines.Add(int64(count))
}
func (c *Counters) OnLevelComplete(int, int) { c.Levels.Add(1) }

// Fanout forwards every game event to each of its hooks in order.
type Fanout []GameHooks

var _ GameHooks = Fanout(nil)

func (f Fanout) OnPlacement(level, cells int) {
	for _, h := range f {
		h.OnPlacement(level, cells)
	}
}

func (f Fanout) OnRejected(row, col int) {
	for _, h := range f {
		h.OnRejected(row, col)
	}
}

func (f Fanout) OnLinesCleared(level, count int) {
	for _, h := range f {
		h.OnLinesCleared(level, count)
	}
}

func (f Fanout) OnLevelComplete(level, score int) {
	for _, h := range f {
		h.OnLevelComplete(level, score)
	}
}

func (f Fanout) OnHint(found bool) {
	for _, h := range f {
		h.OnHint(found)
	}
}

func (f Fanout) OnReset() {
	for _, h := range f {
		h.OnReset()
	}
}
