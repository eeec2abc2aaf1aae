package vicalc

import (
	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/sheet"
)

// Listener is notified as edits reach the grid. Undo and redo notify too,
// so a listener sees every raw-content change in the order it happened.
type Listener interface {
	// CellChanged is called when the raw input at addr changes. An empty
	// string means the cell is blank.
	CellChanged(addr cellref.Address, before, after string)

	// LinesChanged is called after a row or column is inserted or deleted.
	// Cells moved by the edit are not reported individually.
	LinesChanged(kind sheet.Kind, line sheet.Line)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are ignored.
type ListenerFuncs struct {
	OnCell  func(addr cellref.Address, before, after string)
	OnLines func(kind sheet.Kind, line sheet.Line)
}

func (f ListenerFuncs) CellChanged(addr cellref.Address, before, after string) {
	if f.OnCell != nil {
		f.OnCell(addr, before, after)
	}
}

func (f ListenerFuncs) LinesChanged(kind sheet.Kind, line sheet.Line) {
	if f.OnLines != nil {
		f.OnLines(kind, line)
	}
}
