package vicalc

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xuri/efp"
	"github.com/xuri/excelize/v2"

	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/value"
)

// excelDefaultColWidth is the width excelize reports for columns without
// an explicit width.
const excelDefaultColWidth = 9.140625

// ExportXLSX writes the sheet as a single-worksheet xlsx workbook. Formulas
// are written as formulas; literals keep their number, boolean or text type.
func (s *Session) ExportXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	name := f.GetSheetName(0)
	if s.sheet.Name() != "" && s.sheet.Name() != name {
		if err := f.SetSheetName(name, s.sheet.Name()); err != nil {
			return fmt.Errorf("rename sheet %q: %w", s.sheet.Name(), err)
		}
		name = s.sheet.Name()
	}

	for _, a := range s.sheet.Sorted() {
		if err := writeXLSXCell(f, name, a, s.sheet.Raw(a)); err != nil {
			return fmt.Errorf("write cell %s: %w", a.Name(), err)
		}
	}
	for col, width := range s.sheet.Widths() {
		letter := cellref.ColToName(col)
		if err := f.SetColWidth(name, letter, letter, float64(width)); err != nil {
			return fmt.Errorf("set width of column %s: %w", letter, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeXLSXCell(f *excelize.File, sheetName string, a cellref.Address, raw string) error {
	cell := a.Name()
	if strings.HasPrefix(raw, "=") {
		return f.SetCellFormula(sheetName, cell, raw[1:])
	}
	lit := value.ParseLiteral(raw)
	switch lit.Kind() {
	case value.KindNumber:
		return f.SetCellFloat(sheetName, cell, lit.Num(), -1, 64)
	case value.KindBool:
		return f.SetCellBool(sheetName, cell, lit.Truth())
	}
	return f.SetCellStr(sheetName, cell, raw)
}

// ImportXLSX replaces the sheet with the first worksheet of an xlsx
// workbook. Formulas reading other worksheets cannot be evaluated here, so
// those cells take their cached value instead. Like Load, it clears the
// undo history.
func (s *Session) ImportXLSX(r io.Reader) error {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("open xlsx: workbook has no sheets")
	}
	name := sheets[0]
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("read rows from sheet %q: %w", name, err)
	}

	// GetRows trims trailing empty cells, which drops formulas saved
	// without a cached value; the declared dimension covers those.
	height, width := len(rows), 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if dim, err := f.GetSheetDimension(name); err == nil {
		if r, err := cellref.ParseRange(dim); err == nil {
			height, width = max(height, r.End.Row+1), max(width, r.End.Col+1)
		}
	}

	doc := &Document{Version: DocumentVersion, Name: name, Cells: map[string]RawContent{}}
	for rowIdx := range height {
		for colIdx := range width {
			var raw string
			if rowIdx < len(rows) && colIdx < len(rows[rowIdx]) {
				raw = rows[rowIdx][colIdx]
			}
			cell := cellref.New(colIdx, rowIdx).Name()
			formula, err := f.GetCellFormula(name, cell)
			if err == nil && formula != "" && !readsOtherSheet(formula) {
				raw = "=" + strings.TrimPrefix(formula, "=")
			}
			if strings.TrimSpace(raw) != "" {
				doc.Cells[cell] = RawContent(raw)
			}
		}
	}
	for col := range width {
		letter := cellref.ColToName(col)
		w, err := f.GetColWidth(name, letter)
		if err != nil || w == excelDefaultColWidth {
			continue
		}
		if doc.ColWidths == nil {
			doc.ColWidths = make(map[string]int)
		}
		doc.ColWidths[letter] = int(math.Round(w))
	}
	return s.Load(doc)
}

// readsOtherSheet reports whether any range operand of an Excel formula is
// qualified with a sheet name.
func readsOtherSheet(formula string) bool {
	ps := efp.ExcelParser()
	for _, token := range ps.Parse(formula) {
		if token.TType == efp.TokenTypeOperand && token.TSubType == efp.TokenSubTypeRange &&
			strings.Contains(token.TValue, "!") {
			return true
		}
	}
	return false
}
