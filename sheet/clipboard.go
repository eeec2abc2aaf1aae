package sheet

import (
	"github.com/javajack/vicalc/axis"
	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/formula"
)

// Snapshot is a rectangular capture of raw cell contents. Raw[r][c] holds
// the input found at Origin moved by (r, c); empty cells are "".
type Snapshot struct {
	Origin cellref.Address
	Rows   int
	Cols   int
	Raw    [][]string
}

// Empty reports whether the snapshot holds nothing to paste.
func (s *Snapshot) Empty() bool { return s == nil || s.Rows == 0 || s.Cols == 0 }

// Copy captures the raw contents of r. Formulas are kept as text.
func (s *Sheet) Copy(r cellref.Range) *Snapshot {
	snap := &Snapshot{
		Origin: r.Start.Key(),
		Rows:   r.Height(),
		Cols:   r.Width(),
		Raw:    make([][]string, r.Height()),
	}
	for i := range snap.Raw {
		snap.Raw[i] = make([]string, snap.Cols)
		for j := range snap.Raw[i] {
			snap.Raw[i][j] = s.Raw(cellref.New(snap.Origin.Col+j, snap.Origin.Row+i))
		}
	}
	return snap
}

// PasteWrites computes the raw contents a paste of snap at target would
// write, repeated count times along mode. Relative references in formulas
// move by the distance between the copy origin and each paste position.
func PasteWrites(snap *Snapshot, target cellref.Address, count int, mode axis.Mode) map[cellref.Address]string {
	writes := make(map[cellref.Address]string)
	if snap.Empty() {
		return writes
	}
	count = max(count, 1)
	stepRows, stepCols := mode.Step(snap.Cols, snap.Rows)
	target = target.Key()
	for k := range count {
		base := cellref.New(target.Col+k*stepCols, target.Row+k*stepRows)
		dr, dc := base.Row-snap.Origin.Row, base.Col-snap.Origin.Col
		for i, row := range snap.Raw {
			for j, raw := range row {
				writes[cellref.New(base.Col+j, base.Row+i)] = shiftRaw(raw, dr, dc)
			}
		}
	}
	return writes
}

// shiftRaw adjusts a formula's relative references. Literals are copied
// unchanged; formulas that do not parse are adjusted in place.
func shiftRaw(raw string, dr, dc int) string {
	if (dr == 0 && dc == 0) || !formula.IsFormula(raw) {
		return raw
	}
	n, err := formula.Parse(raw)
	if err != nil {
		return formula.OffsetText(raw, dr, dc)
	}
	return formula.Format(formula.Offset(n, dr, dc))
}

// PastePlan builds the reversible command for a paste.
func (s *Sheet) PastePlan(snap *Snapshot, target cellref.Address, count int, mode axis.Mode) *EditCommand {
	return s.Plan("paste", PasteWrites(snap, target, count, mode))
}
