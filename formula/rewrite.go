package formula

import (
	"github.com/javajack/vicalc/axis"
	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/value"
)

func refError() Node { return &Literal{Value: value.Err(value.ErrRef)} }

func line(a *cellref.Address, ax axis.Mode) *int {
	if ax == axis.Column {
		return &a.Col
	}
	return &a.Row
}

// Insert rewrites references for a line inserted at index along ax. Positions
// at or past index move one line further; ranges spanning the insertion point
// grow. Absolute flags do not matter for structural edits.
func Insert(n Node, ax axis.Mode, index int) Node {
	return transform(n, func(n Node) Node {
		switch t := n.(type) {
		case *Ref:
			a := t.Addr
			if p := line(&a, ax); *p >= index {
				*p++
				return &Ref{Addr: a}
			}
		case *RangeRef:
			r := t.Range
			s, e := line(&r.Start, ax), line(&r.End, ax)
			switch {
			case *s >= index:
				*s++
				*e++
			case *e >= index:
				*e++
			default:
				return n
			}
			return &RangeRef{Range: r}
		}
		return n
	})
}

// Delete rewrites references for the line at index removed along ax.
// References to the removed line become #REF!; later positions move back one
// line. A range loses the removed line and turns into #REF! only when nothing
// of it remains.
func Delete(n Node, ax axis.Mode, index int) Node {
	return transform(n, func(n Node) Node {
		switch t := n.(type) {
		case *Ref:
			a := t.Addr
			p := line(&a, ax)
			switch {
			case *p == index:
				return refError()
			case *p > index:
				*p--
				return &Ref{Addr: a}
			}
		case *RangeRef:
			r := t.Range
			s, e := line(&r.Start, ax), line(&r.End, ax)
			switch {
			case *e < index:
				return n
			case *s > index:
				*s--
				*e--
			case *s == *e:
				return refError()
			default:
				*e--
			}
			return &RangeRef{Range: r}
		}
		return n
	})
}

// Offset adjusts the relative components of every reference by the given
// deltas, as when a formula is copied from one cell to another. References
// pushed off the top or left edge become #REF!.
func Offset(n Node, rowDelta, colDelta int) Node {
	if rowDelta == 0 && colDelta == 0 {
		return n
	}
	return transform(n, func(n Node) Node {
		switch t := n.(type) {
		case *Ref:
			a, err := t.Addr.Offset(rowDelta, colDelta)
			if err != nil {
				return refError()
			}
			if a == t.Addr {
				return n
			}
			return &Ref{Addr: a}
		case *RangeRef:
			s, err := t.Range.Start.Offset(rowDelta, colDelta)
			if err != nil {
				return refError()
			}
			e, err := t.Range.End.Offset(rowDelta, colDelta)
			if err != nil {
				return refError()
			}
			return &RangeRef{Range: cellref.NewRange(s, e)}
		}
		return n
	})
}
