package sheet

import (
	"strings"

	"github.com/javajack/vicalc/cellref"
)

// EncodeTSV joins rows with newlines and fields with tabs.
func EncodeTSV(rows [][]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(row, "\t"))
	}
	return b.String()
}

// DecodeTSV splits tab-separated text into rows. CRLF line breaks are
// accepted and a single trailing line break is ignored.
func DecodeTSV(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(line, "\t")
	}
	return rows
}

// ExportRows returns the display values of r, one slice per row.
func (s *Sheet) ExportRows(r cellref.Range) [][]string {
	rows := make([][]string, r.Height())
	for i := range rows {
		rows[i] = make([]string, r.Width())
		for j := range rows[i] {
			rows[i][j] = s.Display(cellref.New(r.Start.Col+j, r.Start.Row+i))
		}
	}
	return rows
}

// ImportWrites maps tabular fields onto the grid starting at target. Fields
// are stored as typed; only those starting with '=' become formulas.
func ImportWrites(target cellref.Address, rows [][]string) map[cellref.Address]string {
	writes := make(map[cellref.Address]string)
	target = target.Key()
	for i, row := range rows {
		for j, field := range row {
			writes[cellref.New(target.Col+j, target.Row+i)] = field
		}
	}
	return writes
}

// ImportPlan builds the reversible command for writing rows at target.
func (s *Sheet) ImportPlan(label string, target cellref.Address, rows [][]string) *EditCommand {
	return s.Plan(label, ImportWrites(target, rows))
}
