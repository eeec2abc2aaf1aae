package sheet

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/javajack/vicalc/axis"
	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/formula"
)

// ErrBoundary is returned when a delete would leave the sheet without any
// row or column. The sheet is left unchanged.
var ErrBoundary = errors.New("cannot delete the only remaining line")

// Kind distinguishes insertions from deletions.
type Kind uint8

const (
	Insert Kind = iota
	Delete
)

func (k Kind) String() string {
	if k == Delete {
		return "delete"
	}
	return "insert"
}

// Line names a whole row or column.
type Line struct {
	Axis  axis.Mode
	Index int
}

func (l Line) String() string {
	if l.Axis == axis.Column {
		return "column " + cellref.ColToName(l.Index)
	}
	return fmt.Sprintf("row %d", l.Index+1)
}

// shiftResult records what a structural edit destroyed or rewrote, keyed by
// the addresses cells had before the edit.
type shiftResult struct {
	removed   []Edit
	rewritten []Edit
	width     int
	hadWidth  bool
}

func (r *shiftResult) rewrite(c *Cell, a cellref.Address, text string) {
	if text == c.Raw {
		return
	}
	r.rewritten = append(r.rewritten, Edit{Addr: a, Before: c.Raw, After: text})
	c.Raw = text
}

func position(a *cellref.Address, ax axis.Mode) *int {
	if ax == axis.Column {
		return &a.Col
	}
	return &a.Row
}

// shift moves every cell at or past the line, drops the deleted line's
// cells and rewrites formulas everywhere. It does not recalculate.
func (s *Sheet) shift(kind Kind, line Line) shiftResult {
	var res shiftResult
	moved := make(map[cellref.Address]*Cell, len(s.cells))
	for a, c := range s.cells {
		dst := a
		p := position(&dst, line.Axis)
		switch {
		case kind == Delete && *p == line.Index:
			res.removed = append(res.removed, Edit{Addr: a, Before: c.Raw})
			continue
		case kind == Delete && *p > line.Index:
			*p--
		case kind == Insert && *p >= line.Index:
			*p++
		}
		switch {
		case c.node != nil:
			var n formula.Node
			if kind == Insert {
				n = formula.Insert(c.node, line.Axis, line.Index)
			} else {
				n = formula.Delete(c.node, line.Axis, line.Index)
			}
			if n != c.node {
				res.rewrite(c, a, formula.Format(n))
				c.node = n
			}
		case c.parseErr != nil:
			// Malformed input keeps following its references so that
			// fixing a typo later does not point it at the wrong line.
			if kind == Insert {
				res.rewrite(c, a, formula.InsertText(c.Raw, line.Axis, line.Index))
			} else {
				res.rewrite(c, a, formula.DeleteText(c.Raw, line.Axis, line.Index))
			}
		}
		moved[dst] = c
	}
	s.cells = moved
	if line.Axis == axis.Column {
		res.width, res.hadWidth = s.shiftWidths(kind, line.Index)
	}
	for _, o := range s.observers {
		o.LinesChanged(kind, line)
	}
	return res
}

func (s *Sheet) shiftWidths(kind Kind, index int) (removed int, had bool) {
	moved := make(map[int]int, len(s.widths))
	for col, w := range s.widths {
		switch {
		case kind == Delete && col == index:
			removed, had = w, true
			continue
		case kind == Delete && col > index:
			col--
		case kind == Insert && col >= index:
			col++
		}
		moved[col] = w
	}
	s.widths = moved
	return removed, had
}

// checkLine rejects negative indexes and refuses to delete line 0 of a
// sheet whose data spans a single line along the axis.
func (s *Sheet) checkLine(kind Kind, line Line) error {
	if line.Index < 0 {
		return fmt.Errorf("%s %s: %w", kind, line, cellref.ErrInvalidReference)
	}
	if kind == Delete && line.Index == 0 && s.extent(line.Axis) <= 1 {
		s.logger.Info("structural delete refused", slog.String("line", line.String()))
		return fmt.Errorf("delete %s: %w", line, ErrBoundary)
	}
	return nil
}

// InsertRow inserts a blank row at index and recalculates.
func (s *Sheet) InsertRow(index int) error {
	return NewStructural(Insert, Line{Axis: axis.Row, Index: index}).Apply(s)
}

// DeleteRow removes the row at index and recalculates.
func (s *Sheet) DeleteRow(index int) error {
	return NewStructural(Delete, Line{Axis: axis.Row, Index: index}).Apply(s)
}

// InsertCol inserts a blank column at index and recalculates.
func (s *Sheet) InsertCol(index int) error {
	return NewStructural(Insert, Line{Axis: axis.Column, Index: index}).Apply(s)
}

// DeleteCol removes the column at index and recalculates.
func (s *Sheet) DeleteCol(index int) error {
	return NewStructural(Delete, Line{Axis: axis.Column, Index: index}).Apply(s)
}
