package vicalc

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/sheet"
)

// UsedRange spans from A1 to the last populated row and column.
func (s *Session) UsedRange() (cellref.Range, bool) {
	b, ok := s.sheet.Bounds()
	if !ok {
		return cellref.Range{}, false
	}
	return cellref.NewRange(cellref.New(0, 0), b.End), true
}

// ExportRange returns the display values of r row by row.
func (s *Session) ExportRange(r cellref.Range) [][]string {
	return s.sheet.ExportRows(r)
}

// ImportRange writes rows of raw fields starting at target as one undoable
// edit. Only fields beginning with '=' are treated as formulas.
func (s *Session) ImportRange(target cellref.Address, rows [][]string) error {
	return s.do(s.sheet.ImportPlan("import", target, rows))
}

// ExportTSV renders the display values of r as tab-separated text.
func (s *Session) ExportTSV(r cellref.Range) string {
	return sheet.EncodeTSV(s.ExportRange(r))
}

// ImportTSV writes tab-separated text starting at target.
func (s *Session) ImportTSV(target cellref.Address, text string) error {
	return s.ImportRange(target, sheet.DecodeTSV(text))
}

// WriteCSV writes the display values of r as CSV.
func (s *Session) WriteCSV(w io.Writer, r cellref.Range) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(s.ExportRange(r)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ReadCSV reads CSV records and writes them starting at target. Records may
// have differing field counts.
func (s *Session) ReadCSV(r io.Reader, target cellref.Address) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}
	return s.ImportRange(target, rows)
}
