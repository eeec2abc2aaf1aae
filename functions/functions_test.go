package functions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/vicalc/value"
)

func TestLookup_CaseInsensitiveAndAliases(t *testing.T) {
	f, ok := Lookup("sum")
	require.True(t, ok)
	assert.Equal(t, "SUM", f.Name)

	avg, ok := Lookup("AVG")
	require.True(t, ok)
	assert.Equal(t, "AVERAGE", avg.Name)

	_, ok = Lookup("NOPE")
	assert.False(t, ok)
	assert.Contains(t, Names(), "CONCAT")
}

func TestRegistry_Size(t *testing.T) {
	assert.GreaterOrEqual(t, len(Names()), 37)
}

func TestAccepts(t *testing.T) {
	f, _ := Lookup("IF")
	assert.False(t, f.Accepts(1))
	assert.True(t, f.Accepts(2))
	assert.True(t, f.Accepts(3))
	assert.False(t, f.Accepts(4))

	sum, _ := Lookup("SUM")
	assert.True(t, sum.Accepts(40))
}

func TestSum_SkipsBlanks(t *testing.T) {
	got := call(t, "SUM", col(n(2), value.Blank(), n(4)))
	assert.Equal(t, n(6), got)
}

func TestSum_MixedArgs(t *testing.T) {
	got := call(t, "SUM", col(n(1), s("x"), value.Bool(true)), lit(s("2")), cell(s("ignored")), lit(value.Bool(true)))
	assert.Equal(t, n(4), got)
}

func TestSum_PropagatesRangeError(t *testing.T) {
	got := call(t, "SUM", col(n(1), value.Err(value.ErrDiv)))
	assert.Equal(t, value.ErrDiv, got.ErrKind())
}

func TestSum_LiteralTextIsTypeError(t *testing.T) {
	assert.Equal(t, value.ErrType, call(t, "SUM", lit(s("abc"))).ErrKind())
}

func TestAverage(t *testing.T) {
	assert.Equal(t, n(3), call(t, "AVERAGE", col(n(2), value.Blank(), n(4))))
	assert.Equal(t, value.ErrDiv, call(t, "AVERAGE", col(value.Blank(), value.Blank())).ErrKind())
	assert.Equal(t, value.ErrDiv, call(t, "AVERAGE").ErrKind())
}

func TestCount(t *testing.T) {
	r := col(n(1), s("a"), value.Blank(), value.Bool(true), value.Err(value.ErrDiv), n(3))
	assert.Equal(t, n(2), call(t, "COUNT", r))
	assert.Equal(t, n(5), call(t, "COUNTA", r))
	assert.Equal(t, n(2), call(t, "COUNT", lit(n(1)), lit(s("2")), lit(s("x"))))
}

func TestMinMax(t *testing.T) {
	r := col(n(3), n(-1), value.Blank(), n(7))
	assert.Equal(t, n(-1), call(t, "MIN", r))
	assert.Equal(t, n(7), call(t, "MAX", r))
	assert.Equal(t, n(0), call(t, "MAX", col(value.Blank())))
}

func TestIf(t *testing.T) {
	assert.Equal(t, s("yes"), call(t, "IF", lit(n(1)), lit(s("yes")), lit(s("no"))))
	assert.Equal(t, s("no"), call(t, "IF", lit(s("")), lit(s("yes")), lit(s("no"))))
	assert.Equal(t, value.Bool(false), call(t, "IF", lit(n(0)), lit(s("yes"))))
	assert.Equal(t, value.ErrType, call(t, "IF", lit(s("maybe")), lit(n(1)), lit(n(2))).ErrKind())
}

func TestIf_EvaluatesOnlyChosenBranch(t *testing.T) {
	f, _ := Lookup("IF")
	evaluated := 0
	thunk := func(v value.Value) Thunk {
		return func() Arg {
			evaluated++
			return lit(v)
		}
	}
	got := f.Lazy([]Thunk{thunk(value.Bool(true)), thunk(n(1)), thunk(value.Err(value.ErrDiv))})
	assert.Equal(t, n(1), got)
	assert.Equal(t, 2, evaluated)
}

func TestIfError(t *testing.T) {
	assert.Equal(t, n(0), call(t, "IFERROR", lit(value.Err(value.ErrDiv)), lit(n(0))))
	assert.Equal(t, n(5), call(t, "IFERROR", lit(n(5)), lit(n(0))))
}

func TestAndOrNot(t *testing.T) {
	assert.Equal(t, value.Bool(true), call(t, "AND", lit(value.Bool(true)), lit(n(1))))
	assert.Equal(t, value.Bool(false), call(t, "AND", col(value.Bool(true), s("skip"), n(0))))
	assert.Equal(t, value.Bool(true), call(t, "OR", lit(value.Bool(false)), col(n(0), n(2))))
	assert.Equal(t, value.Bool(false), call(t, "NOT", lit(value.Bool(true))))
	assert.Equal(t, value.ErrType, call(t, "AND", col(s("x"))).ErrKind())
	assert.Equal(t, value.ErrDiv, call(t, "OR", col(value.Err(value.ErrDiv))).ErrKind())
}

func TestIsFunctions(t *testing.T) {
	assert.Equal(t, value.Bool(true), call(t, "ISBLANK", cell(value.Blank())))
	assert.Equal(t, value.Bool(false), call(t, "ISBLANK", lit(s(""))))
	assert.Equal(t, value.Bool(true), call(t, "ISNUMBER", lit(n(1))))
	assert.Equal(t, value.Bool(false), call(t, "ISNUMBER", lit(s("1"))))
	assert.Equal(t, value.Bool(true), call(t, "ISTEXT", lit(s("1"))))
	assert.Equal(t, value.ErrType, call(t, "ISTEXT", col(s("a"))).ErrKind())
}

func TestText(t *testing.T) {
	assert.Equal(t, s("日本"), call(t, "LEFT", lit(s("日本語")), lit(n(2))))
	assert.Equal(t, s("H"), call(t, "LEFT", lit(s("Hello"))))
	assert.Equal(t, s("llo"), call(t, "RIGHT", lit(s("Hello")), lit(n(3))))
	assert.Equal(t, s("Hello"), call(t, "RIGHT", lit(s("Hello")), lit(n(30))))
	assert.Equal(t, s("ell"), call(t, "MID", lit(s("Hello")), lit(n(2)), lit(n(3))))
	assert.Equal(t, s(""), call(t, "MID", lit(s("Hello")), lit(n(9)), lit(n(3))))
	assert.Equal(t, value.ErrType, call(t, "MID", lit(s("Hello")), lit(n(0)), lit(n(3))).ErrKind())
	assert.Equal(t, n(3), call(t, "LEN", lit(s("日本語"))))
	assert.Equal(t, s("a b"), call(t, "TRIM", lit(s("  a   b "))))
	assert.Equal(t, s("ABC"), call(t, "UPPER", lit(s("aBc"))))
	assert.Equal(t, s("abc"), call(t, "LOWER", lit(s("aBc"))))
	assert.Equal(t, s("a1TRUE"), call(t, "CONCATENATE", lit(s("a")), lit(n(1)), lit(value.Bool(true))))
	assert.Equal(t, s("xy"), call(t, "CONCAT", col(s("x"), value.Blank(), s("y"))))
	assert.Equal(t, value.ErrType, call(t, "LEFT", lit(s("abc")), lit(n(-1))).ErrKind())
}

func TestText_HugeCounts(t *testing.T) {
	assert.Equal(t, s("abc"), call(t, "LEFT", lit(s("abc")), lit(n(1e300))))
	assert.Equal(t, s("abc"), call(t, "RIGHT", lit(s("abc")), lit(n(1e300))))
	assert.Equal(t, s("abc"), call(t, "MID", lit(s("abc")), lit(n(1)), lit(n(1e20))))
	assert.Equal(t, s(""), call(t, "MID", lit(s("abc")), lit(n(1e20)), lit(n(1))))
	assert.Equal(t, value.ErrType, call(t, "LEFT", lit(s("abc")), lit(n(-1e300))).ErrKind())
}

func TestMath(t *testing.T) {
	assert.Equal(t, n(3), call(t, "ABS", lit(n(-3))))
	assert.Equal(t, n(3), call(t, "ROUND", lit(n(2.5))))
	assert.Equal(t, n(-3), call(t, "ROUND", lit(n(-2.5))))
	assert.Equal(t, n(1.24), call(t, "ROUND", lit(n(1.236)), lit(n(2))))
	assert.Equal(t, n(1200), call(t, "ROUND", lit(n(1234)), lit(n(-2))))
	assert.Equal(t, n(-3), call(t, "INT", lit(n(-2.5))))
	assert.Equal(t, n(1), call(t, "MOD", lit(n(-3)), lit(n(2))))
	assert.Equal(t, n(-1), call(t, "MOD", lit(n(3)), lit(n(-2))))
	assert.Equal(t, value.ErrDiv, call(t, "MOD", lit(n(3)), lit(n(0))).ErrKind())
	assert.Equal(t, n(8), call(t, "POWER", lit(n(2)), lit(n(3))))
	assert.Equal(t, n(4), call(t, "SQRT", lit(n(16))))
	assert.Equal(t, value.ErrNum, call(t, "SQRT", lit(n(-1))).ErrKind())
}
