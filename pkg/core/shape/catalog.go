package shape

import (
	"encoding/json"
	"fmt"
)

// builtin is the default piece set, in catalog order.
var builtin = []Shape{
	MustParse("square", "#4dabf7", "##", "##"),
	MustParse("line", "#20c997", "###"),
	MustParse("tee", "#ffa94d", "###", ".#."),
	MustParse("ell", "#da77f2", "##", "#."),
	MustParse("zigzag", "#ff6b6b", "##.", ".##"),
	MustParse("long", "#51cf66", "#", "#", "#", "#"),
	MustParse("corner", "#ffd43b", "###", "#.."),
}

// Catalog returns the built-in pieces in their fixed order. The returned
// slice is a fresh copy; shapes themselves are immutable.
func Catalog() []Shape {
	return append([]Shape(nil), builtin...)
}

// Lookup finds a catalog entry by name.
func Lookup(catalog []Shape, name string) (Shape, bool) {
	for _, s := range catalog {
		if s.name == name {
			return s, true
		}
	}
	return Shape{}, false
}

// jsonShape is the wire form of a shape.
type jsonShape struct {
	Name  string   `json:"name"`
	Color string   `json:"color"`
	Rows  []string `json:"rows"`
}

// MarshalJSON encodes the shape as its name, color and text rows.
func (s Shape) MarshalJSON() ([]byte, error) {
	if s.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(jsonShape{Name: s.name, Color: s.color, Rows: s.Pattern()})
}

// UnmarshalJSON decodes the form produced by MarshalJSON, validating it like
// [Parse].
func (s *Shape) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Shape{}
		return nil
	}
	var js jsonShape
	if err := json.Unmarshal(data, &js); err != nil {
		return fmt.Errorf("decode shape: %w", err)
	}
	parsed, err := Parse(js.Name, js.Color, js.Rows)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
