// Package sheet is the sparse grid store together with the edits that
// operate on it: structural row/column edits, clipboard transfer and the
// reversible commands recorded in the undo log.
package sheet

import (
	"log/slog"
	"strings"

	"github.com/javajack/vicalc/calc"
	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/formula"
	"github.com/javajack/vicalc/value"
)

// Cell is the stored state of one populated address.
type Cell struct {
	Raw   string      // user input; formulas start with '='
	Value value.Value // result of the last recalculation

	node     formula.Node
	parseErr error
}

// IsFormula reports whether the raw input is a formula.
func (c Cell) IsFormula() bool { return c.node != nil || c.parseErr != nil }

// Formula returns the parsed tree, nil for literals and malformed formulas.
func (c Cell) Formula() formula.Node { return c.node }

// ParseErr returns the syntax error of a malformed formula.
func (c Cell) ParseErr() error { return c.parseErr }

// Observer is told about every raw-content change and structural edit.
type Observer interface {
	CellChanged(addr cellref.Address, before, after string)
	LinesChanged(kind Kind, line Line)
}

// Sheet stores cells sparsely: an address absent from the map is blank.
// A Sheet is not safe for concurrent use.
type Sheet struct {
	name         string
	cells        map[cellref.Address]*Cell
	widths       map[int]int
	defaultWidth int
	engine       *calc.Engine
	logger       *slog.Logger
	observers    []Observer
	cycles       []cellref.Address
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithLogger sets the logger for the sheet and its calculation engine.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sheet) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultWidth overrides the width of columns without an explicit width.
func WithDefaultWidth(w int) Option {
	return func(s *Sheet) { s.defaultWidth = clampWidth(w) }
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(s *Sheet) { s.observers = append(s.observers, o) }
}

// New creates an empty sheet.
func New(name string, opts ...Option) *Sheet {
	s := &Sheet{
		name:         name,
		cells:        make(map[cellref.Address]*Cell),
		widths:       make(map[int]int),
		defaultWidth: DefaultWidth,
		logger:       slog.Default().With(slog.String("component", "sheet")),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = calc.New(calc.WithLogger(s.logger))
	return s
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// SetName renames the sheet.
func (s *Sheet) SetName(name string) { s.name = name }

// Observe registers an observer after construction.
func (s *Sheet) Observe(o Observer) { s.observers = append(s.observers, o) }

// Len returns the number of populated cells.
func (s *Sheet) Len() int { return len(s.cells) }

// Cell returns a copy of the cell at addr.
func (s *Sheet) Cell(addr cellref.Address) (Cell, bool) {
	c, ok := s.cells[addr.Key()]
	if !ok {
		return Cell{}, false
	}
	return *c, true
}

// Raw returns the raw input at addr, or "" when the cell is empty.
func (s *Sheet) Raw(addr cellref.Address) string {
	if c, ok := s.cells[addr.Key()]; ok {
		return c.Raw
	}
	return ""
}

// Value returns the computed value at addr. Empty cells are Blank.
func (s *Sheet) Value(addr cellref.Address) value.Value {
	if c, ok := s.cells[addr.Key()]; ok {
		return c.Value
	}
	return value.Blank()
}

// Display returns the text shown for the cell at addr.
func (s *Sheet) Display(addr cellref.Address) string {
	return s.Value(addr).String()
}

// Set stores raw input at addr, recalculates, and returns the previous input.
func (s *Sheet) Set(addr cellref.Address, raw string) string {
	before := s.setRaw(addr, raw)
	s.Recalculate()
	return before
}

// Clear empties the cell at addr and recalculates.
func (s *Sheet) Clear(addr cellref.Address) string {
	return s.Set(addr, "")
}

// Reset removes every cell and column width.
func (s *Sheet) Reset() {
	s.cells = make(map[cellref.Address]*Cell)
	s.widths = make(map[int]int)
	s.cycles = nil
}

// setRaw stores raw input without recalculating. Whitespace-only input
// removes the cell.
func (s *Sheet) setRaw(addr cellref.Address, raw string) string {
	addr = addr.Key()
	var before string
	if c, ok := s.cells[addr]; ok {
		before = c.Raw
	}
	if strings.TrimSpace(raw) == "" {
		delete(s.cells, addr)
		raw = ""
	} else {
		s.cells[addr] = newCell(raw)
	}
	if before != raw {
		for _, o := range s.observers {
			o.CellChanged(addr, before, raw)
		}
	}
	return before
}

func newCell(raw string) *Cell {
	c := &Cell{Raw: raw}
	if formula.IsFormula(raw) {
		c.node, c.parseErr = formula.Parse(raw)
		if c.parseErr != nil {
			c.Value = value.Err(value.ErrSyntax)
		}
		return c
	}
	c.Value = value.ParseLiteral(raw)
	return c
}

// Recalculate re-evaluates every cell in dependency order.
func (s *Sheet) Recalculate() {
	res := s.engine.Recalculate(s)
	for a, v := range res.Values {
		if c, ok := s.cells[a]; ok {
			c.Value = v
		}
	}
	s.cycles = res.Cycles
}

// Cycles lists the cells found on reference cycles by the last recalculation.
func (s *Sheet) Cycles() []cellref.Address {
	return append([]cellref.Address(nil), s.cycles...)
}

// Evaluate computes a formula against the current contents without storing it.
func (s *Sheet) Evaluate(src string) (value.Value, error) {
	n, err := formula.Parse(src)
	if err != nil {
		return value.Err(value.ErrSyntax), err
	}
	return s.engine.Evaluate(n, s), nil
}

// Addresses lists every populated cell in no particular order.
func (s *Sheet) Addresses() []cellref.Address {
	out := make([]cellref.Address, 0, len(s.cells))
	for a := range s.cells {
		out = append(out, a)
	}
	return out
}

// Input implements calc.Source.
func (s *Sheet) Input(addr cellref.Address) (calc.Input, bool) {
	c, ok := s.cells[addr.Key()]
	if !ok {
		return calc.Input{}, false
	}
	if c.node == nil && c.parseErr == nil {
		return calc.Input{Literal: c.Value}, true
	}
	return calc.Input{Formula: c.node, Err: c.parseErr}, true
}
