package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/vicalc/axis"
	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/undo"
)

func TestCopy(t *testing.T) {
	s := fill(t, map[string]string{"A1": "1", "B2": "=A1"})
	snap := s.Copy(cellref.NewRange(at("A1"), at("B2")))
	assert.Equal(t, [][]string{{"1", ""}, {"", "=A1"}}, snap.Raw)
	assert.Equal(t, at("A1"), snap.Origin)
	assert.False(t, snap.Empty())
}

func TestPaste_AdjustsRelativeReferences(t *testing.T) {
	s := fill(t, map[string]string{"A1": "=A2+$A$2", "B1": "=B$2*2", "A2": "1", "B2": "2"})
	snap := s.Copy(cellref.NewRange(at("A1"), at("B2")))
	writes := PasteWrites(snap, at("C1"), 1, axis.Row)

	assert.Equal(t, "=C2+$A$2", writes[at("C1")])
	assert.Equal(t, "=D$2*2", writes[at("D1")])
	assert.Equal(t, "1", writes[at("C2")])
}

func TestPaste_RepeatFollowsAxis(t *testing.T) {
	snap := &Snapshot{Origin: at("A1"), Rows: 1, Cols: 2, Raw: [][]string{{"=A2", "x"}}}

	rows := PasteWrites(snap, at("A5"), 3, axis.Row)
	assert.Len(t, rows, 6)
	assert.Equal(t, "=E6", rows[at("E5")])

	cols := PasteWrites(snap, at("A5"), 3, axis.Column)
	assert.Len(t, cols, 6)
	assert.Equal(t, "=A8", cols[at("A7")])
	assert.Equal(t, "x", cols[at("B7")])
}

func TestPaste_OffTheEdge(t *testing.T) {
	snap := &Snapshot{Origin: at("B2"), Rows: 1, Cols: 1, Raw: [][]string{{"=A1"}}}
	writes := PasteWrites(snap, at("A1"), 1, axis.Row)
	assert.Equal(t, "=#REF!", writes[at("A1")])
}

func TestPaste_AdjustsMalformedFormula(t *testing.T) {
	snap := &Snapshot{Origin: at("A1"), Rows: 1, Cols: 1, Raw: [][]string{{"=SUM(B1:B2"}}}
	writes := PasteWrites(snap, at("A3"), 1, axis.Row)
	assert.Equal(t, "=SUM(B3:B4", writes[at("A3")])
}

func TestPaste_UndoRedo(t *testing.T) {
	s := fill(t, map[string]string{"A1": "1", "A2": "2", "C1": "old"})
	var log undo.Log[*Sheet]
	snap := s.Copy(cellref.NewRange(at("A1"), at("A2")))

	require.NoError(t, log.Do(s, s.PastePlan(snap, at("C1"), 2, axis.Row)))
	after := raws(s)
	assert.Equal(t, "1", after["C1"])
	assert.Equal(t, "2", after["D2"])

	_, err := log.Undo(s)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A1": "1", "A2": "2", "C1": "old"}, raws(s))

	_, err = log.Redo(s)
	require.NoError(t, err)
	assert.Equal(t, after, raws(s))
}

func TestTSV(t *testing.T) {
	rows := DecodeTSV("a\tb\r\n1\t=B2*2\n")
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "=B2*2"}}, rows)
	assert.Nil(t, DecodeTSV(""))
	assert.Equal(t, "a\tb\n1\t=B2*2", EncodeTSV(rows))

	s := New("tsv")
	require.NoError(t, s.ImportPlan("import", at("B1"), rows).Apply(s))
	assert.Equal(t, "2", s.Display(at("C2")))
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}},
		s.ExportRows(cellref.NewRange(at("B1"), at("C2"))))
}
