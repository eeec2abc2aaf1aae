package sheet

import (
	"slices"

	"github.com/javajack/vicalc/axis"
	"github.com/javajack/vicalc/cellref"
)

// Sorted lists the populated addresses in row-major order.
func (s *Sheet) Sorted() []cellref.Address {
	out := s.Addresses()
	slices.SortFunc(out, rowMajor)
	return out
}

func rowMajor(a, b cellref.Address) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

// Bounds returns the smallest range covering every populated cell.
func (s *Sheet) Bounds() (cellref.Range, bool) {
	if len(s.cells) == 0 {
		return cellref.Range{}, false
	}
	first := true
	var minC, minR, maxC, maxR int
	for a := range s.cells {
		if first {
			minC, maxC, minR, maxR = a.Col, a.Col, a.Row, a.Row
			first = false
			continue
		}
		minC, maxC = min(minC, a.Col), max(maxC, a.Col)
		minR, maxR = min(minR, a.Row), max(maxR, a.Row)
	}
	return cellref.NewRange(cellref.New(minC, minR), cellref.New(maxC, maxR)), true
}

// MaxRow returns the last row holding data.
func (s *Sheet) MaxRow() (int, bool) {
	b, ok := s.Bounds()
	return b.End.Row, ok
}

// MaxCol returns the last column holding data.
func (s *Sheet) MaxCol() (int, bool) {
	b, ok := s.Bounds()
	return b.End.Col, ok
}

// extent is the number of lines along ax up to and including the last one
// holding data; an empty sheet has one.
func (s *Sheet) extent(ax axis.Mode) int {
	n := 1
	for a := range s.cells {
		if ax == axis.Row {
			n = max(n, a.Row+1)
		} else {
			n = max(n, a.Col+1)
		}
	}
	return n
}

// lineEdge scans the cells on one line and returns the lowest or highest
// position along it.
func (s *Sheet) lineEdge(ax axis.Mode, index int, last bool) (int, bool) {
	best, found := 0, false
	for a := range s.cells {
		on, pos := a.Row, a.Col
		if ax == axis.Column {
			on, pos = a.Col, a.Row
		}
		if on != index {
			continue
		}
		if !found || (last && pos > best) || (!last && pos < best) {
			best, found = pos, true
		}
	}
	return best, found
}

// LastColInRow returns the last column with data in row.
func (s *Sheet) LastColInRow(row int) (int, bool) { return s.lineEdge(axis.Row, row, true) }

// FirstColInRow returns the first column with data in row.
func (s *Sheet) FirstColInRow(row int) (int, bool) { return s.lineEdge(axis.Row, row, false) }

// LastRowInCol returns the last row with data in col.
func (s *Sheet) LastRowInCol(col int) (int, bool) { return s.lineEdge(axis.Column, col, true) }

// FirstRowInCol returns the first row with data in col.
func (s *Sheet) FirstRowInCol(col int) (int, bool) { return s.lineEdge(axis.Column, col, false) }
