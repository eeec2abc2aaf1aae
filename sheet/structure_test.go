package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/vicalc/axis"
	"github.com/javajack/vicalc/undo"
)

func TestInsertRow_ShiftsReferences(t *testing.T) {
	s := fill(t, map[string]string{"A1": "5", "B1": "=A1", "A2": "=SUM(A1:A1)"})
	require.NoError(t, s.InsertRow(0))

	assert.Equal(t, map[string]string{"A2": "5", "B2": "=A2", "A3": "=SUM(A2:A2)"}, raws(s))
	assert.Equal(t, "5", s.Display(at("B2")))
	assert.Equal(t, "5", s.Display(at("A3")))
}

func TestDeleteRow_ReferenceError(t *testing.T) {
	s := fill(t, map[string]string{"A1": "1", "A2": "2", "A3": "=A1+A2", "B3": "=SUM(A1:A2)"})
	require.NoError(t, s.DeleteRow(0))

	assert.Equal(t, "=#REF!+A1", s.Raw(at("A2")))
	assert.Equal(t, "#REF!", s.Display(at("A2")))
	assert.Equal(t, "=SUM(A1:A1)", s.Raw(at("B2")))
	assert.Equal(t, "2", s.Display(at("B2")))
}

func TestInsertDeleteColumn_Identity(t *testing.T) {
	cells := map[string]string{"A1": "1", "B1": "2", "C1": "=A1+B1", "C2": "=SUM($A$1:B1)"}
	s := fill(t, cells)
	s.SetColWidth(2, 20)

	require.NoError(t, s.InsertCol(1))
	assert.Equal(t, "=A1+C1", s.Raw(at("D1")))
	assert.Equal(t, "=SUM($A$1:C1)", s.Raw(at("D2")))
	assert.Equal(t, 20, s.ColWidth(3))

	require.NoError(t, s.DeleteCol(1))
	assert.Equal(t, cells, raws(s))
	assert.Equal(t, 20, s.ColWidth(2))
	assert.Equal(t, "3", s.Display(at("C1")))
}

func TestDelete_Boundary(t *testing.T) {
	s := fill(t, map[string]string{"A1": "1", "B1": "2"})
	err := s.DeleteRow(0)
	assert.ErrorIs(t, err, ErrBoundary)
	assert.Equal(t, map[string]string{"A1": "1", "B1": "2"}, raws(s))

	require.NoError(t, s.DeleteCol(0))
	assert.Equal(t, map[string]string{"A1": "2"}, raws(s))
	assert.ErrorIs(t, s.DeleteCol(0), ErrBoundary)
	assert.ErrorIs(t, New("empty").DeleteRow(0), ErrBoundary)

	// Deleting past the data is not a boundary case.
	require.NoError(t, s.DeleteRow(3))
}

func TestStructural_UndoRestoresReferenceErrors(t *testing.T) {
	cells := map[string]string{"A1": "1", "A2": "2", "A3": "=A1+A2", "B1": "=A3*2"}
	s := fill(t, cells)
	s.SetColWidth(0, 15)
	var log undo.Log[*Sheet]

	require.NoError(t, log.Do(s, NewStructural(Delete, Line{Axis: axis.Row, Index: 1})))
	assert.Equal(t, "=A1+#REF!", s.Raw(at("A2")))
	assert.Equal(t, "=A2*2", s.Raw(at("B1")))

	_, err := log.Undo(s)
	require.NoError(t, err)
	assert.Equal(t, cells, raws(s))
	assert.Equal(t, "6", s.Display(at("B1")))

	_, err = log.Redo(s)
	require.NoError(t, err)
	assert.Equal(t, "=A1+#REF!", s.Raw(at("A2")))
}

func TestStructural_UndoColumnDeleteRestoresWidth(t *testing.T) {
	s := fill(t, map[string]string{"A1": "1", "B1": "2"})
	s.SetColWidth(1, 30)
	var log undo.Log[*Sheet]

	require.NoError(t, log.Do(s, NewStructural(Delete, Line{Axis: axis.Column, Index: 1})))
	assert.Equal(t, DefaultWidth, s.ColWidth(1))
	_, err := log.Undo(s)
	require.NoError(t, err)
	assert.Equal(t, 30, s.ColWidth(1))
	assert.Equal(t, "2", s.Raw(at("B1")))
}

func TestStructural_NegativeIndex(t *testing.T) {
	s := fill(t, map[string]string{"A1": "1"})
	assert.Error(t, s.InsertRow(-1))
}

func TestInsertCol_WidensColumnNames(t *testing.T) {
	s := fill(t, map[string]string{"A1": "=ZZZ1+1", "ZZZ1": "2"})
	require.NoError(t, s.InsertCol(0))

	assert.Equal(t, "=AAAA1+1", s.Raw(at("B1")))
	s.Set(at("B1"), s.Raw(at("B1")))
	assert.Equal(t, "3", s.Display(at("B1")))
}

func TestInsertRow_ShiftsMalformedFormula(t *testing.T) {
	s := fill(t, map[string]string{"A1": "1", "B5": "=A1+", "C5": "=A1"})
	require.NoError(t, s.InsertRow(0))

	assert.Equal(t, "=A2+", s.Raw(at("B6")))
	assert.Equal(t, "=A2", s.Raw(at("C6")))
	assert.Equal(t, "#SYNTAX!", s.Display(at("B6")))

	s.Set(at("B6"), "=A2+1")
	assert.Equal(t, "2", s.Display(at("B6")))
}

func TestDeleteRow_MalformedFormulaUndo(t *testing.T) {
	s := fill(t, map[string]string{"A1": "1", "A2": "2", "B3": "=A1+A2+"})
	var log undo.Log[*Sheet]
	require.NoError(t, log.Do(s, NewStructural(Delete, Line{Axis: axis.Row, Index: 0})))
	assert.Equal(t, "=#REF!+A1+", s.Raw(at("B2")))

	_, err := log.Undo(s)
	require.NoError(t, err)
	assert.Equal(t, "=A1+A2+", s.Raw(at("B3")))
}
