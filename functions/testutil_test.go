package functions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/javajack/vicalc/value"
)

func n(f float64) value.Value { return value.Number(f) }
func s(t string) value.Value  { return value.Text(t) }

func lit(v value.Value) Arg { return Arg{Value: v} }

func cell(v value.Value) Arg { return Arg{Value: v, Ref: true} }

func col(vals ...value.Value) Arg { return Arg{Range: RangeOf(len(vals), 1, vals...)} }

func grid(rows, cols int, vals ...value.Value) Arg { return Arg{Range: RangeOf(rows, cols, vals...)} }

// call invokes a registered function, evaluating lazy arguments eagerly.
func call(t *testing.T, name string, args ...Arg) value.Value {
	t.Helper()
	f, ok := Lookup(name)
	require.True(t, ok, "function %s not registered", name)
	require.True(t, f.Accepts(len(args)), "%s does not accept %d args", name, len(args))
	if f.Lazy != nil {
		thunks := make([]Thunk, len(args))
		for i, a := range args {
			thunks[i] = func() Arg { return a }
		}
		return f.Lazy(thunks)
	}
	return f.Call(args)
}
