package cellref

import (
	"fmt"
	"iter"
	"strings"
)

// Range is a rectangle of cells. Start is always the top-left corner and End
// the bottom-right; NewRange normalizes its inputs.
type Range struct {
	Start Address
	End   Address
}

// NewRange builds a normalized range from two corners in any order.
// Absolute flags travel with the component they belong to.
func NewRange(a, b Address) Range {
	start, end := a, b
	if start.Col > end.Col {
		start.Col, end.Col = end.Col, start.Col
		start.ColAbs, end.ColAbs = end.ColAbs, start.ColAbs
	}
	if start.Row > end.Row {
		start.Row, end.Row = end.Row, start.Row
		start.RowAbs, end.RowAbs = end.RowAbs, start.RowAbs
	}
	return Range{Start: start, End: end}
}

// Single returns the one-cell range at a.
func Single(a Address) Range {
	return Range{Start: a, End: a}
}

// ParseRange parses "A1:C10". A lone address is accepted as a one-cell range.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	first, second, found := strings.Cut(s, ":")
	a, err := Parse(first)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	if !found {
		return Single(a), nil
	}
	b, err := Parse(second)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	return NewRange(a, b), nil
}

// String formats the range as "A1:C10".
func (r Range) String() string {
	return r.Start.String() + ":" + r.End.String()
}

// Width is the number of columns covered.
func (r Range) Width() int { return r.End.Col - r.Start.Col + 1 }

// Height is the number of rows covered.
func (r Range) Height() int { return r.End.Row - r.Start.Row + 1 }

// Contains reports whether a lies inside r, ignoring absolute flags.
func (r Range) Contains(a Address) bool {
	return a.Col >= r.Start.Col && a.Col <= r.End.Col &&
		a.Row >= r.Start.Row && a.Row <= r.End.Row
}

// Cells yields every address in r in row-major order.
func (r Range) Cells() iter.Seq[Address] {
	return func(yield func(Address) bool) {
		for row := r.Start.Row; row <= r.End.Row; row++ {
			for col := r.Start.Col; col <= r.End.Col; col++ {
				if !yield(New(col, row)) {
					return
				}
			}
		}
	}
}
