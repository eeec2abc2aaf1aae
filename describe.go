package vicalc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/formula"
)

// Describe returns a human-readable dump of the sheet: its name and used
// range, explicit column widths, and every populated cell with its raw
// input, value and the references a formula reads.
func (s *Session) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sheet: %s\n", s.sheet.Name())

	bounds, ok := s.sheet.Bounds()
	if !ok {
		b.WriteString("  (empty)\n")
		return b.String()
	}
	fmt.Fprintf(&b, "  bounds %s (%dx%d), %d cells\n", bounds, bounds.Width(), bounds.Height(), s.sheet.Len())

	if widths := s.sheet.Widths(); len(widths) > 0 {
		cols := make([]int, 0, len(widths))
		for c := range widths {
			cols = append(cols, c)
		}
		slices.Sort(cols)
		parts := make([]string, len(cols))
		for i, c := range cols {
			parts[i] = fmt.Sprintf("%s=%d", cellref.ColToName(c), widths[c])
		}
		fmt.Fprintf(&b, "  widths %s\n", strings.Join(parts, " "))
	}

	for _, a := range s.sheet.Sorted() {
		c, _ := s.sheet.Cell(a)
		if !c.IsFormula() {
			fmt.Fprintf(&b, "  %s %s\n", a.Name(), c.Value.Kind())
			fmt.Fprintf(&b, "    %q\n", c.Raw)
			continue
		}
		fmt.Fprintf(&b, "  %s formula = %s\n", a.Name(), c.Value)
		fmt.Fprintf(&b, "    %s\n", c.Raw)
		if n := c.Formula(); n != nil {
			describeRefs(&b, n)
		}
	}
	return b.String()
}

func describeRefs(b *strings.Builder, n formula.Node) {
	refs := formula.References(n)
	if len(refs) == 0 {
		return
	}
	parts := make([]string, len(refs))
	for i, r := range refs {
		if r.Start == r.End {
			parts[i] = r.Start.String()
		} else {
			parts[i] = r.String()
		}
	}
	fmt.Fprintf(b, "    reads %s\n", strings.Join(parts, ", "))
}
