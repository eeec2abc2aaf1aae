package functions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/vicalc/value"
)

func TestParseCriterion(t *testing.T) {
	tests := []struct {
		criterion value.Value
		cell      value.Value
		want      bool
	}{
		{n(5), n(5), true},
		{n(5), n(6), false},
		{s("5"), n(5), true},
		{s(">10"), n(11), true},
		{s(">10"), n(10), false},
		{s(">=10"), n(10), true},
		{s("<=3"), n(3), true},
		{s("<3"), s("2"), false},
		{s("<>3"), n(4), true},
		{s("<>3"), n(3), false},
		{s("<>3"), s("abc"), true},
		{s("!=3"), n(4), true},
		{s("apple"), s("APPLE"), true},
		{s("apple"), s("pear"), false},
		{s("<>apple"), s("pear"), true},
		{s("a*"), s("Avocado"), true},
		{s("a?c"), s("abc"), true},
		{s("a?c"), s("abbc"), false},
		{s("=b"), s("B"), true},
		{s(">b"), s("c"), true},
		{s(">b"), n(5), false},
		{s(""), value.Blank(), true},
		{s(""), n(0), false},
		{value.Bool(true), value.Bool(true), true},
		{s("TRUE"), value.Bool(false), false},
		{n(1), value.Err(value.ErrDiv), false},
	}
	for _, tt := range tests {
		c, err := ParseCriterion(tt.criterion)
		require.NoError(t, err, "%v", tt.criterion)
		assert.Equal(t, tt.want, c.Match(tt.cell), "criterion %q on %v", tt.criterion.String(), tt.cell)
	}
}

func TestWildcardPattern(t *testing.T) {
	assert.Equal(t, `(?is)^a.*b\.c.$`, wildcardPattern("a*b.c?"))
	assert.Equal(t, `(?is)^a\*$`, wildcardPattern("a~*"))
	assert.Equal(t, `(?is)^日.*$`, wildcardPattern("日*"))
	assert.Equal(t, `(?is)^\?é$`, wildcardPattern("~?é"))
}

func TestCountIf_WildcardNonASCII(t *testing.T) {
	names := col(s("日本"), s("中国"), s("日曜日"))
	assert.Equal(t, n(2), call(t, "COUNTIF", names, lit(s("日*"))))
	assert.Equal(t, n(1), call(t, "COUNTIF", names, lit(s("?国"))))
	assert.Equal(t, n(1), call(t, "COUNTIF", col(s("Café"), s("caf")), lit(s("CAF?"))))
	assert.Equal(t, n(1), call(t, "COUNTIF", col(s("Ärger"), s("Berg")), lit(s("<>ä*"))))
}

func TestSumIf(t *testing.T) {
	crit := col(s("a"), s("b"), s("a"))
	vals := col(n(1), n(2), n(3))
	assert.Equal(t, n(4), call(t, "SUMIF", crit, lit(s("a")), vals))
	assert.Equal(t, n(5), call(t, "SUMIF", vals, lit(s(">1"))))
}

func TestCountIf(t *testing.T) {
	r := col(n(1), n(5), n(10), value.Blank(), s("x"))
	assert.Equal(t, n(2), call(t, "COUNTIF", r, lit(s(">=5"))))
	assert.Equal(t, n(1), call(t, "COUNTIF", r, lit(s("X"))))
}

func TestAverageIf(t *testing.T) {
	r := col(n(2), n(4), n(9))
	assert.Equal(t, n(3), call(t, "AVERAGEIF", r, lit(s("<5"))))
	assert.Equal(t, value.ErrDiv, call(t, "AVERAGEIF", r, lit(s(">100"))).ErrKind())
}
