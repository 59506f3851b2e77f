// Package lines detects and clears completed rows and columns.
//
// A line is complete when every one of its cells is filled, regardless of
// target marking. Clearing resets fill state only; targets survive.
package lines

import (
	"github.com/matzehuels/blockfill/pkg/core/board"
)

// Mode selects which lines [Clear] considers.
type Mode int

const (
	// Rows clears completed rows only.
	Rows Mode = iota
	// RowsAndColumns clears completed rows and columns together.
	RowsAndColumns
)

// String returns the config spelling of the mode.
func (m Mode) String() string {
	if m == RowsAndColumns {
		return "rows_and_columns"
	}
	return "rows"
}

// Result reports which lines a [Clear] removed.
type Result struct {
	Rows    []int `json:"rows,omitempty"`
	Columns []int `json:"columns,omitempty"`
}

// Count returns the number of scored lines.
func (r Result) Count() int { return len(r.Rows) + len(r.Columns) }

// CompletedRows returns the indices of every full row, ascending.
func CompletedRows(b *board.Board) []int {
	return completed(b, func(line, i int) (int, int) { return line, i })
}

// CompletedColumns returns the indices of every full column, ascending.
func CompletedColumns(b *board.Board) []int {
	return completed(b, func(line, i int) (int, int) { return i, line })
}

// ClearCompletedRows resets every full row to unfilled and returns how many
// rows were cleared. Afterwards no row of b is full.
func ClearCompletedRows(b *board.Board) int {
	rows := CompletedRows(b)
	clearRows(b, rows)
	return len(rows)
}

// ClearCompletedColumns is the column counterpart of [ClearCompletedRows].
func ClearCompletedColumns(b *board.Board) int {
	cols := CompletedColumns(b)
	clearColumns(b, cols)
	return len(cols)
}

// Clear removes completed lines according to mode. With [RowsAndColumns],
// rows and columns are both detected on the board as it was before any
// clearing, so a piece completing a row and a column scores both.
func Clear(b *board.Board, mode Mode) Result {
	res := Result{Rows: CompletedRows(b)}
	if mode == RowsAndColumns {
		res.Columns = CompletedColumns(b)
	}
	clearRows(b, res.Rows)
	clearColumns(b, res.Columns)
	return res
}

func completed(b *board.Board, at func(line, i int) (row, col int)) []int {
	var out []int
	n := b.Size()
	for line := range n {
		full := true
		for i := range n {
			if filled, _ := b.IsFilled(at(line, i)); !filled {
				full = false
				break
			}
		}
		if full {
			out = append(out, line)
		}
	}
	return out
}

func clearRows(b *board.Board, rows []int) {
	for _, r := range rows {
		for c := range b.Size() {
			_ = b.ClearFill(r, c)
		}
	}
}

func clearColumns(b *board.Board, cols []int) {
	for _, c := range cols {
		for r := range b.Size() {
			_ = b.ClearFill(r, c)
		}
	}
}
