package formula

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/value"
)

var valueComparer = cmp.Comparer(func(a, b value.Value) bool { return a == b })

func mustParse(t *testing.T, src string) Node {
	t.Helper()
	n, err := Parse(src)
	require.NoError(t, err, src)
	return n
}

func num(f float64) Node { return &Literal{Value: value.Number(f)} }

func ref(s string) Node { return &Ref{Addr: cellref.MustParse(s)} }

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		src  string
		want Node
	}{
		{"=1+2*3", &Binary{Op: OpAdd, Left: num(1), Right: &Binary{Op: OpMul, Left: num(2), Right: num(3)}}},
		{"=(1+2)*3", &Binary{Op: OpMul, Left: &Binary{Op: OpAdd, Left: num(1), Right: num(2)}, Right: num(3)}},
		{"=-2^2", &Unary{Op: OpSub, Operand: &Binary{Op: OpPow, Left: num(2), Right: num(2)}}},
		{"=2^-1", &Binary{Op: OpPow, Left: num(2), Right: &Unary{Op: OpSub, Operand: num(1)}}},
		{"=1-2-3", &Binary{Op: OpSub, Left: &Binary{Op: OpSub, Left: num(1), Right: num(2)}, Right: num(3)}},
		{"=A1&B1=C1", &Binary{Op: OpEq, Left: &Binary{Op: OpConcat, Left: ref("A1"), Right: ref("B1")}, Right: ref("C1")}},
		{"=1+2>=3", &Binary{Op: OpGe, Left: &Binary{Op: OpAdd, Left: num(1), Right: num(2)}, Right: num(3)}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := mustParse(t, tt.src)
			if diff := cmp.Diff(tt.want, got, valueComparer); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestParse_CallsAndRanges(t *testing.T) {
	got := mustParse(t, "=sum(A1:$B$3, 4, \"x\"\"y\")")
	want := &Call{Name: "SUM", Args: []Node{
		&RangeRef{Range: cellref.NewRange(cellref.MustParse("A1"), cellref.MustParse("$B$3"))},
		num(4),
		&Literal{Value: value.Text(`x"y`)},
	}}
	if diff := cmp.Diff(want, got, valueComparer); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, `=SUM(A1:$B$3,4,"x""y")`, Format(got))
}

func TestParse_LiteralsAndErrors(t *testing.T) {
	assert.Equal(t, "TRUE", mustParse(t, "=true").String())
	assert.Equal(t, "#REF!+1", mustParse(t, "=#REF!+1").String())
	assert.Equal(t, "#N/A", mustParse(t, "=#n/a").String())
	assert.Equal(t, "0.5", mustParse(t, "=.5").String())
	assert.Equal(t, "1500", mustParse(t, "=1.5e3").String())
	assert.Equal(t, "NOW()", mustParse(t, "=now()").String())
}

func TestParse_Errors(t *testing.T) {
	for _, src := range []string{
		"A1+1",
		"=",
		"=1+",
		"=(1+2",
		"=SUM(1,",
		"=\"open",
		"=A1:",
		"=1 2",
		"=foo",
		"=#WHAT",
		"=1;2",
	} {
		_, err := Parse(src)
		var se *SyntaxError
		assert.True(t, errors.As(err, &se), "%q should be a syntax error, got %v", src, err)
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := Parse("=1+)")
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 3, se.Pos)
}

func TestRoundTrip(t *testing.T) {
	for _, src := range []string{
		"=A1",
		"=$A$1+A$2*$B3",
		"=-(1+2)",
		"=(-2)^2",
		"=-2^2",
		"=2^-1",
		"=2^(3^2)",
		"=1-(2-3)",
		"=1/(2*3)",
		"=(1&2)+3",
		"=A1=(B1=C1)",
		"=--A1",
		"=IF(A1>0,\"pos\",IF(A1<0,\"neg\",\"zero\"))",
		"=SUM(A1:B10)/COUNT(A1:B10)",
		"=IFERROR(VLOOKUP(D1,A1:B3,2,FALSE),#N/A)",
		"=0.1+1234567.891",
		"=\"a\"\"b\"&C1",
		"=#REF!*2",
		"=  SUM( A1 , B2 )  ",
	} {
		t.Run(src, func(t *testing.T) {
			first := mustParse(t, src)
			second := mustParse(t, Format(first))
			if diff := cmp.Diff(first, second, valueComparer); diff != "" {
				t.Errorf("round trip of %q via %q changed the tree (-first +second):\n%s", src, Format(first), diff)
			}
			assert.Equal(t, Format(first), Format(second))
		})
	}
}

func TestReferencesAndFunctions(t *testing.T) {
	n := mustParse(t, "=SUM(A1:A3)+B2*MAX(C1,SUM(D1))")
	refs := References(n)
	require.Len(t, refs, 4)
	assert.Equal(t, "A1:A3", refs[0].String())
	assert.Equal(t, "B2:B2", refs[1].String())
	assert.Equal(t, []string{"SUM", "MAX"}, Functions(n))
}

func TestIsFormula(t *testing.T) {
	assert.True(t, IsFormula("=1"))
	assert.True(t, IsFormula("  =A1"))
	assert.False(t, IsFormula("1=1"))
	assert.False(t, IsFormula(""))
}
