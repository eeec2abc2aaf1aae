// Package vicalc is a structure-oriented spreadsheet core. A Session holds
// one sheet together with its undo history, clipboard and editing axis
// parameters, and exposes the editing operations of a modal editor: cell
// edits, axis-directed line inserts, deletes and clears, repeated paste,
// undo and redo, and document transfer.
package vicalc

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/javajack/vicalc/axis"
	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/sheet"
	"github.com/javajack/vicalc/undo"
	"github.com/javajack/vicalc/value"
)

// ErrEmptyClipboard is returned by Paste before anything has been copied.
var ErrEmptyClipboard = errors.New("clipboard is empty")

type command = undo.Command[*sheet.Sheet]

// Session is an editing session over a single sheet. It is not safe for
// concurrent use; callers serialize operations.
type Session struct {
	opts    *Options
	sheet   *sheet.Sheet
	history undo.Log[*sheet.Sheet]
	clip    *sheet.Snapshot
	logger  *slog.Logger
}

// New creates a session over an empty sheet.
func New(opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default().With(slog.String("component", "session"))
	}
	sheetOpts := []sheet.Option{
		sheet.WithLogger(logger),
		sheet.WithDefaultWidth(o.defaultWidth),
	}
	for _, l := range o.listeners {
		sheetOpts = append(sheetOpts, sheet.WithObserver(l))
	}
	return &Session{
		opts:   o,
		sheet:  sheet.New(o.name, sheetOpts...),
		logger: logger,
	}
}

// Sheet returns the underlying grid for read access. Mutating it directly
// bypasses the undo history.
func (s *Session) Sheet() *sheet.Sheet { return s.sheet }

// Name returns the sheet name.
func (s *Session) Name() string { return s.sheet.Name() }

// Raw returns the raw input at addr.
func (s *Session) Raw(addr cellref.Address) string { return s.sheet.Raw(addr) }

// Value returns the computed value at addr.
func (s *Session) Value(addr cellref.Address) value.Value { return s.sheet.Value(addr) }

// Display returns the text shown for addr.
func (s *Session) Display(addr cellref.Address) string { return s.sheet.Display(addr) }

// do applies c and records it. Edit commands that change nothing are
// neither applied nor recorded.
func (s *Session) do(c command) error {
	if ec, ok := c.(*sheet.EditCommand); ok && len(ec.Edits) == 0 {
		return nil
	}
	if g, ok := c.(group); ok && len(g) == 0 {
		return nil
	}
	if err := s.history.Do(s.sheet, c); err != nil {
		return err
	}
	s.logger.Debug("command applied", slog.Any("command", c))
	return nil
}

// SetCell stores raw input at addr as one undoable edit. Blank input clears
// the cell.
func (s *Session) SetCell(addr cellref.Address, raw string) error {
	return s.do(s.sheet.Plan("set "+addr.Name(), map[cellref.Address]string{addr: raw}))
}

// ClearCell empties the cell at addr.
func (s *Session) ClearCell(addr cellref.Address) error {
	return s.SetCell(addr, "")
}

// ClearRange empties every cell in r as one undoable edit.
func (s *Session) ClearRange(r cellref.Range) error {
	return s.do(s.sheet.ClearPlan("clear "+r.String(), r))
}

// lineRange spans the populated part of the line through cursor: its row in
// Row mode, its column in Column mode.
func (s *Session) lineRange(cursor cellref.Address, mode axis.Mode) (cellref.Range, bool) {
	b, ok := s.sheet.Bounds()
	if !ok {
		return cellref.Range{}, false
	}
	if mode == axis.Column {
		return cellref.NewRange(cellref.New(cursor.Col, 0), cellref.New(cursor.Col, b.End.Row)), true
	}
	return cellref.NewRange(cellref.New(0, cursor.Row), cellref.New(b.End.Col, cursor.Row)), true
}

// ClearLine empties the row (Row mode) or column (Column mode) through
// cursor without removing it.
func (s *Session) ClearLine(cursor cellref.Address, mode axis.Mode) error {
	r, ok := s.lineRange(cursor, mode)
	if !ok {
		return nil
	}
	return s.ClearRange(r)
}

// ClearToEnd empties from cursor to the last populated cell along the axis.
func (s *Session) ClearToEnd(cursor cellref.Address, mode axis.Mode) error {
	var end cellref.Address
	if mode == axis.Column {
		last, ok := s.sheet.LastRowInCol(cursor.Col)
		if !ok || last < cursor.Row {
			return nil
		}
		end = cellref.New(cursor.Col, last)
	} else {
		last, ok := s.sheet.LastColInRow(cursor.Row)
		if !ok || last < cursor.Col {
			return nil
		}
		end = cellref.New(last, cursor.Row)
	}
	return s.ClearRange(cellref.NewRange(cursor.Key(), end))
}

// ClearToStart empties from the start of the axis line up to cursor.
func (s *Session) ClearToStart(cursor cellref.Address, mode axis.Mode) error {
	start := cellref.New(0, cursor.Row)
	if mode == axis.Column {
		start = cellref.New(cursor.Col, 0)
	}
	return s.ClearRange(cellref.NewRange(start, cursor.Key()))
}

func lineAt(cursor cellref.Address, mode axis.Mode) sheet.Line {
	if mode == axis.Column {
		return sheet.Line{Axis: axis.Column, Index: cursor.Col}
	}
	return sheet.Line{Axis: axis.Row, Index: cursor.Row}
}

// DeleteLine removes the row (Row mode) or column (Column mode) through
// cursor. Deleting the only line fails with sheet.ErrBoundary.
func (s *Session) DeleteLine(cursor cellref.Address, mode axis.Mode) error {
	return s.do(sheet.NewStructural(sheet.Delete, lineAt(cursor, mode)))
}

// InsertLine inserts a blank row below (after) or above the cursor in Row
// mode, or a blank column right or left of it in Column mode. It returns
// the index of the new line.
func (s *Session) InsertLine(cursor cellref.Address, mode axis.Mode, after bool) (int, error) {
	line := lineAt(cursor, mode)
	if after {
		line.Index++
	}
	if err := s.do(sheet.NewStructural(sheet.Insert, line)); err != nil {
		return 0, err
	}
	return line.Index, nil
}

// Copy captures the raw contents of r into the session clipboard.
func (s *Session) Copy(r cellref.Range) *sheet.Snapshot {
	s.clip = s.sheet.Copy(r)
	return s.clip
}

// CopyLine copies the populated part of the line through cursor.
func (s *Session) CopyLine(cursor cellref.Address, mode axis.Mode) *sheet.Snapshot {
	r, ok := s.lineRange(cursor, mode)
	if !ok {
		r = cellref.Single(cursor.Key())
	}
	return s.Copy(r)
}

// Clipboard returns the current clipboard snapshot, nil when empty.
func (s *Session) Clipboard() *sheet.Snapshot { return s.clip }

// SetClipboard replaces the clipboard, for example with rows read from an
// external source.
func (s *Session) SetClipboard(snap *sheet.Snapshot) { s.clip = snap }

// Paste writes the clipboard at target count times, laying the copies out
// along mode, as one undoable edit.
func (s *Session) Paste(target cellref.Address, count int, mode axis.Mode) error {
	if s.clip.Empty() {
		return ErrEmptyClipboard
	}
	return s.do(s.sheet.PastePlan(s.clip, target, count, mode))
}

// Undo reverts the last command. It reports false when there was nothing
// to undo.
func (s *Session) Undo() (bool, error) {
	ok, err := s.history.Undo(s.sheet)
	if ok {
		s.logger.Debug("undo")
	}
	return ok, err
}

// Redo re-applies the last undone command. It reports false when there was
// nothing to redo.
func (s *Session) Redo() (bool, error) {
	ok, err := s.history.Redo(s.sheet)
	if ok {
		s.logger.Debug("redo")
	}
	return ok, err
}

// CanUndo reports whether Undo would do anything.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// SetColWidth sets a column width as an undoable edit.
func (s *Session) SetColWidth(col, w int) error {
	if col < 0 {
		return fmt.Errorf("column %d: %w", col, cellref.ErrInvalidReference)
	}
	before := s.sheet.ColWidth(col)
	if before == w {
		return nil
	}
	return s.do(&sheet.WidthCommand{Col: col, Before: before, After: w})
}

// AutoWidth fits the given columns, or every column up to the last one with
// data when none are given, to their widest displayed value.
func (s *Session) AutoWidth(cols ...int) error {
	if len(cols) == 0 {
		last, ok := s.sheet.MaxCol()
		if !ok {
			return nil
		}
		for c := 0; c <= last; c++ {
			cols = append(cols, c)
		}
	}
	var g group
	for _, c := range cols {
		before, after := s.sheet.ColWidth(c), s.sheet.FitWidth(c, s.opts.autoWidthLimit)
		if before != after {
			g = append(g, &sheet.WidthCommand{Col: c, Before: before, After: after})
		}
	}
	return s.do(g)
}

// FindNext moves to the next cell, in row-major order after from, whose
// display value or raw input contains query. Backward searches the other
// way. Both directions wrap.
func (s *Session) FindNext(query string, from cellref.Address, backward bool) (cellref.Address, bool) {
	return s.sheet.FindNext(query, from, backward)
}

// group applies several commands as one undo step.
type group []command

func (g group) Apply(sh *sheet.Sheet) error {
	for i, c := range g {
		if err := c.Apply(sh); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = g[j].Revert(sh)
			}
			return err
		}
	}
	return nil
}

func (g group) Revert(sh *sheet.Sheet) error {
	for i := len(g) - 1; i >= 0; i-- {
		if err := g[i].Revert(sh); err != nil {
			return err
		}
	}
	return nil
}

func (g group) String() string { return fmt.Sprintf("group (%d commands)", len(g)) }
