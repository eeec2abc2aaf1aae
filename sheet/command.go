package sheet

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/javajack/vicalc/axis"
	"github.com/javajack/vicalc/cellref"
)

// Edit is one cell's raw content before and after a change.
type Edit struct {
	Addr   cellref.Address
	Before string
	After  string
}

// EditCommand sets many cells as one reversible step. Cell edits, clears,
// pastes and imports are all EditCommands.
type EditCommand struct {
	Label string
	Edits []Edit
}

// Apply writes every After value and recalculates once.
func (c *EditCommand) Apply(s *Sheet) error {
	for _, e := range c.Edits {
		s.setRaw(e.Addr, e.After)
	}
	s.Recalculate()
	return nil
}

// Revert restores every Before value, newest first, and recalculates once.
func (c *EditCommand) Revert(s *Sheet) error {
	for i := len(c.Edits) - 1; i >= 0; i-- {
		s.setRaw(c.Edits[i].Addr, c.Edits[i].Before)
	}
	s.Recalculate()
	return nil
}

func (c *EditCommand) String() string {
	return fmt.Sprintf("%s (%d cells)", c.Label, len(c.Edits))
}

// Plan builds an EditCommand writing after to each address, capturing the
// current contents as the inverse. Cells that would not change are left out.
func (s *Sheet) Plan(label string, writes map[cellref.Address]string) *EditCommand {
	c := &EditCommand{Label: label}
	for _, a := range sortedKeys(writes) {
		before := s.Raw(a)
		after := writes[a]
		if before == after {
			continue
		}
		c.Edits = append(c.Edits, Edit{Addr: a.Key(), Before: before, After: after})
	}
	return c
}

// ClearPlan builds the command that empties every populated cell in r.
func (s *Sheet) ClearPlan(label string, r cellref.Range) *EditCommand {
	writes := map[cellref.Address]string{}
	for a := range s.cells {
		if r.Contains(a) {
			writes[a] = ""
		}
	}
	return s.Plan(label, writes)
}

// StructuralCommand inserts or deletes one row or column. Apply captures
// the deleted line and every rewritten formula so Revert can restore them
// exactly, including references that became #REF!.
type StructuralCommand struct {
	Kind Kind
	Line Line

	captured shiftResult
}

// NewStructural returns a command for the given edit.
func NewStructural(kind Kind, line Line) *StructuralCommand {
	return &StructuralCommand{Kind: kind, Line: line}
}

// Apply performs the edit. A delete at the boundary fails with ErrBoundary
// and leaves the sheet untouched.
func (c *StructuralCommand) Apply(s *Sheet) error {
	if err := s.checkLine(c.Kind, c.Line); err != nil {
		return err
	}
	c.captured = s.shift(c.Kind, c.Line)
	s.Recalculate()
	s.logger.Debug("structural edit",
		slog.String("kind", c.Kind.String()),
		slog.String("line", c.Line.String()),
		slog.Int("removed", len(c.captured.removed)),
		slog.Int("rewritten", len(c.captured.rewritten)))
	return nil
}

// Revert applies the opposite edit, then puts back every captured cell.
func (c *StructuralCommand) Revert(s *Sheet) error {
	opposite := Insert
	if c.Kind == Insert {
		opposite = Delete
	}
	s.shift(opposite, c.Line)
	for _, e := range c.captured.removed {
		s.setRaw(e.Addr, e.Before)
	}
	for _, e := range c.captured.rewritten {
		s.setRaw(e.Addr, e.Before)
	}
	if c.Line.Axis == axis.Column && c.captured.hadWidth {
		s.widths[c.Line.Index] = c.captured.width
	}
	s.Recalculate()
	return nil
}

func (c *StructuralCommand) String() string {
	return fmt.Sprintf("%s %s", c.Kind, c.Line)
}

// Touched returns how many cells the last Apply removed or rewrote.
func (c *StructuralCommand) Touched() int {
	return len(c.captured.removed) + len(c.captured.rewritten)
}

// WidthCommand changes one column width.
type WidthCommand struct {
	Col    int
	Before int
	After  int
}

func (c *WidthCommand) Apply(s *Sheet) error {
	s.SetColWidth(c.Col, c.After)
	return nil
}

func (c *WidthCommand) Revert(s *Sheet) error {
	s.SetColWidth(c.Col, c.Before)
	return nil
}

func sortedKeys(m map[cellref.Address]string) []cellref.Address {
	keys := make([]cellref.Address, 0, len(m))
	for a := range m {
		keys = append(keys, a)
	}
	slices.SortFunc(keys, rowMajor)
	return keys
}
