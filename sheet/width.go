package sheet

import (
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/javajack/vicalc/cellref"
)

const (
	DefaultWidth = 10
	MinWidth     = 3
	MaxWidth     = 50

	autoWidthFloor   = 4
	autoWidthPadding = 2
)

func clampWidth(w int) int {
	return min(max(w, MinWidth), MaxWidth)
}

// ColWidth returns the display width of col.
func (s *Sheet) ColWidth(col int) int {
	if w, ok := s.widths[col]; ok {
		return w
	}
	return s.defaultWidth
}

// SetColWidth sets the width of col, clamped to [MinWidth, MaxWidth], and
// returns the previous width.
func (s *Sheet) SetColWidth(col, w int) int {
	before := s.ColWidth(col)
	w = clampWidth(w)
	if w == s.defaultWidth {
		delete(s.widths, col)
	} else {
		s.widths[col] = w
	}
	return before
}

// Widths returns the explicitly set column widths.
func (s *Sheet) Widths() map[int]int {
	out := make(map[int]int, len(s.widths))
	for c, w := range s.widths {
		out[c] = w
	}
	return out
}

// DisplayWidth counts terminal cells: East Asian wide and fullwidth runes
// take two, everything else one.
func DisplayWidth(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// FitWidth computes the width that shows the header and every value in col
// with padding, limited to limit.
func (s *Sheet) FitWidth(col, limit int) int {
	w := max(autoWidthFloor, DisplayWidth(cellref.ColToName(col))+autoWidthPadding)
	for a, c := range s.cells {
		if a.Col == col {
			w = max(w, DisplayWidth(c.Value.String())+autoWidthPadding)
		}
	}
	return min(w, limit, MaxWidth)
}
