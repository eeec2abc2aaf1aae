// Package functions implements the built-in spreadsheet function library.
package functions

import (
	"iter"
	"math"
	"sort"
	"strings"

	"github.com/javajack/vicalc/value"
)

// Range is a rectangular block of evaluated values, addressed 0-based.
type Range struct {
	Rows int
	Cols int
	At   func(row, col int) value.Value
}

// Values yields the cells of r row by row.
func (r *Range) Values() iter.Seq[value.Value] {
	return func(yield func(value.Value) bool) {
		for row := 0; row < r.Rows; row++ {
			for col := 0; col < r.Cols; col++ {
				if !yield(r.At(row, col)) {
					return
				}
			}
		}
	}
}

// RangeOf builds a Range over a row-major slice of values.
func RangeOf(rows, cols int, vals ...value.Value) *Range {
	return &Range{Rows: rows, Cols: cols, At: func(r, c int) value.Value {
		i := r*cols + c
		if r < 0 || c < 0 || c >= cols || i >= len(vals) {
			return value.Blank()
		}
		return vals[i]
	}}
}

// Arg is one evaluated function argument: either a scalar or a range.
type Arg struct {
	Value value.Value
	Range *Range
	// Ref marks a scalar read from a single cell reference. Aggregates treat
	// such values like range members rather than literals.
	Ref bool
}

// Scalar returns the argument's value; a range in scalar position is a Type-Mismatch.
func (a Arg) Scalar() value.Value {
	if a.Range != nil {
		return value.Err(value.ErrType)
	}
	return a.Value
}

// Thunk evaluates an argument on demand.
type Thunk func() Arg

// Function describes one built-in. Exactly one of Call and Lazy is set.
type Function struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 means unbounded
	// Call receives arguments evaluated left to right.
	Call func(args []Arg) value.Value
	// Lazy receives unevaluated arguments; used where only some
	// arguments may be evaluated (IF) or errors must be observed (IFERROR).
	Lazy func(args []Thunk) value.Value
}

// Accepts reports whether n arguments satisfy the function's arity.
func (f *Function) Accepts(n int) bool {
	return n >= f.MinArgs && (f.MaxArgs < 0 || n <= f.MaxArgs)
}

var registry = map[string]*Function{}

func register(fns ...*Function) {
	for _, f := range fns {
		registry[f.Name] = f
	}
}

func alias(name, target string) {
	registry[name] = registry[target]
}

// Lookup finds a function by case-insensitive name.
func Lookup(name string) (*Function, bool) {
	f, ok := registry[strings.ToUpper(name)]
	return f, ok
}

// Names lists every registered name, aliases included, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func init() {
	register(aggregates()...)
	register(conditionals()...)
	register(logical()...)
	register(lookups()...)
	register(text()...)
	register(maths()...)
	alias("AVG", "AVERAGE")
	alias("CONCAT", "CONCATENATE")
}

// num coerces a scalar argument to a number. The second result is the error
// value to return when coercion fails.
func num(a Arg) (float64, *value.Value) {
	n, err := value.ToNumber(a.Scalar())
	if err != nil {
		v := value.FromError(err)
		return 0, &v
	}
	return n, nil
}

// integer coerces to a number truncated toward zero and clamped to the
// int32 range, which no count or position in a sheet can exceed.
func integer(a Arg) (int, *value.Value) {
	n, errv := num(a)
	if errv != nil {
		return 0, errv
	}
	return int(math.Max(math.MinInt32, math.Min(math.MaxInt32, math.Trunc(n)))), nil
}

func str(a Arg) (string, *value.Value) {
	s, err := value.ToText(a.Scalar())
	if err != nil {
		v := value.FromError(err)
		return "", &v
	}
	return s, nil
}

func boolean(a Arg) (bool, *value.Value) {
	b, err := value.ToBool(a.Scalar())
	if err != nil {
		v := value.FromError(err)
		return false, &v
	}
	return b, nil
}

func numberResult(n float64) value.Value {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return value.Err(value.ErrNum)
	}
	return value.Number(n)
}
