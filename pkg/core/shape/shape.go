package shape

import (
	"strings"

	bferrors "github.com/matzehuels/blockfill/pkg/errors"
)

// Offset is a cell position inside a shape's matrix, relative to its
// top-left corner.
type Offset struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Shape is an immutable polyomino. The zero value has no cells and is not a
// valid piece; construct shapes with [New], [Parse] or [Catalog].
type Shape struct {
	name  string
	color string
	cells [][]bool
}

// New creates a shape from a row-major matrix. The matrix is copied, so the
// caller may reuse it.
//
// The matrix must be non-empty, rectangular and contain at least one occupied
// cell; the name and color must pass [bferrors.ValidateShapeName] and
// [bferrors.ValidateColor].
func New(name, color string, cells [][]bool) (Shape, error) {
	if err := bferrors.ValidateShapeName(name); err != nil {
		return Shape{}, err
	}
	if err := bferrors.ValidateColor(color); err != nil {
		return Shape{}, err
	}
	if len(cells) == 0 || len(cells[0]) == 0 {
		return Shape{}, bferrors.New(bferrors.ErrCodeInvalidShape, "piece %q has no cells", name)
	}
	cols := len(cells[0])
	occupied := false
	for i, row := range cells {
		if len(row) != cols {
			return Shape{}, bferrors.New(bferrors.ErrCodeInvalidShape,
				"piece %q row %d has %d cells, want %d", name, i, len(row), cols)
		}
		for _, v := range row {
			occupied = occupied || v
		}
	}
	if !occupied {
		return Shape{}, bferrors.New(bferrors.ErrCodeInvalidShape, "piece %q has no occupied cell", name)
	}
	return Shape{name: name, color: color, cells: copyMatrix(cells)}, nil
}

// Parse builds a shape from text rows. '#' and 'X' mark occupied cells,
// '.' and ' ' mark empty ones:
//
//	shape.Parse("T", "#ffa94d", []string{"###", ".#."})
func Parse(name, color string, rows []string) (Shape, error) {
	cells := make([][]bool, len(rows))
	for i, row := range rows {
		cells[i] = make([]bool, 0, len(row))
		for _, r := range row {
			switch r {
			case '#', 'X', 'x':
				cells[i] = append(cells[i], true)
			case '.', ' ':
				cells[i] = append(cells[i], false)
			default:
				return Shape{}, bferrors.New(bferrors.ErrCodeInvalidShape,
					"piece %q row %d: unexpected character %q", name, i, r)
			}
		}
	}
	return New(name, color, cells)
}

// MustParse is like [Parse] but panics on error. It is intended for
// package-level catalog definitions.
func MustParse(name, color string, rows ...string) Shape {
	s, err := Parse(name, color, rows)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the catalog identity of the shape.
func (s Shape) Name() string { return s.name }

// Color returns the hex color the shape paints onto the board.
func (s Shape) Color() string { return s.color }

// Rows returns the matrix height.
func (s Shape) Rows() int { return len(s.cells) }

// Cols returns the matrix width.
func (s Shape) Cols() int {
	if len(s.cells) == 0 {
		return 0
	}
	return len(s.cells[0])
}

// IsZero reports whether s is the zero Shape (no piece).
func (s Shape) IsZero() bool { return len(s.cells) == 0 }

// At reports whether the matrix cell (row, col) is occupied.
// Positions outside the matrix are unoccupied.
func (s Shape) At(row, col int) bool {
	if row < 0 || row >= s.Rows() || col < 0 || col >= s.Cols() {
		return false
	}
	return s.cells[row][col]
}

// Cells returns a copy of the occupancy matrix.
func (s Shape) Cells() [][]bool { return copyMatrix(s.cells) }

// Occupied returns the offsets of all occupied cells in row-major order.
func (s Shape) Occupied() []Offset {
	var out []Offset
	for y, row := range s.cells {
		for x, v := range row {
			if v {
				out = append(out, Offset{Row: y, Col: x})
			}
		}
	}
	return out
}

// Size returns the number of occupied cells.
func (s Shape) Size() int {
	n := 0
	for _, row := range s.cells {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// Equal reports whether two shapes have the same identity, color and matrix.
func (s Shape) Equal(o Shape) bool {
	if s.name != o.name || s.color != o.color || s.Rows() != o.Rows() || s.Cols() != o.Cols() {
		return false
	}
	for y := range s.cells {
		for x := range s.cells[y] {
			if s.cells[y][x] != o.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// String renders the matrix as text rows joined by newlines, using the same
// alphabet [Parse] accepts.
func (s Shape) String() string {
	lines := make([]string, len(s.cells))
	for y, row := range s.cells {
		var b strings.Builder
		for _, v := range row {
			if v {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Pattern returns the text rows of the shape, suitable for [Parse].
func (s Shape) Pattern() []string {
	if s.IsZero() {
		return nil
	}
	return strings.Split(s.String(), "\n")
}

// RotateClockwise returns s rotated 90° clockwise. The result has the
// dimensions swapped: new[i][j] = old[rows-1-j][i].
func RotateClockwise(s Shape) Shape {
	rows, cols := s.Rows(), s.Cols()
	rotated := make([][]bool, cols)
	for i := range cols {
		rotated[i] = make([]bool, rows)
		for j := range rows {
			rotated[i][j] = s.cells[rows-1-j][i]
		}
	}
	return Shape{name: s.name, color: s.color, cells: rotated}
}

// Rotations returns the distinct orientations of s, starting with s itself.
// Symmetric shapes yield fewer than four entries.
func Rotations(s Shape) []Shape {
	out := []Shape{s}
	cur := s
	for range 3 {
		cur = RotateClockwise(cur)
		dup := false
		for _, seen := range out {
			if seen.Equal(cur) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, cur)
		}
	}
	return out
}

func copyMatrix(m [][]bool) [][]bool {
	out := make([][]bool, len(m))
	for i, row := range m {
		out[i] = append([]bool(nil), row...)
	}
	return out
}
