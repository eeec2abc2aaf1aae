package functions

import (
	"github.com/javajack/vicalc/value"
)

func logical() []*Function {
	return []*Function{
		{Name: "IF", MinArgs: 2, MaxArgs: 3, Lazy: ifFunc},
		{Name: "IFERROR", MinArgs: 2, MaxArgs: 2, Lazy: ifError},
		{Name: "AND", MinArgs: 1, MaxArgs: -1, Call: and},
		{Name: "OR", MinArgs: 1, MaxArgs: -1, Call: or},
		{Name: "NOT", MinArgs: 1, MaxArgs: 1, Call: not},
		{Name: "ISBLANK", MinArgs: 1, MaxArgs: 1, Call: isKind(value.KindBlank)},
		{Name: "ISNUMBER", MinArgs: 1, MaxArgs: 1, Call: isKind(value.KindNumber)},
		{Name: "ISTEXT", MinArgs: 1, MaxArgs: 1, Call: isKind(value.KindText)},
	}
}

// ifFunc evaluates only the branch selected by the condition. A missing
// else branch yields FALSE.
func ifFunc(args []Thunk) value.Value {
	cond := args[0]().Scalar()
	if cond.IsError() {
		return cond
	}
	ok, err := value.ToBool(cond)
	if err != nil {
		return value.FromError(err)
	}
	switch {
	case ok:
		return args[1]().Scalar()
	case len(args) > 2:
		return args[2]().Scalar()
	}
	return value.Bool(false)
}

func ifError(args []Thunk) value.Value {
	v := args[0]().Scalar()
	if v.IsError() {
		return args[1]().Scalar()
	}
	return v
}

// truths feeds the logical value of every input to fn. Text and blanks
// inside ranges are skipped; literal text must spell TRUE or FALSE.
func truths(args []Arg, fn func(bool)) (int, *value.Value) {
	n := 0
	for _, a := range args {
		if a.Range == nil && !a.Ref {
			b, errv := boolean(a)
			if errv != nil {
				return n, errv
			}
			fn(b)
			n++
			continue
		}
		vals := a.Range
		if vals == nil {
			vals = RangeOf(1, 1, a.Value)
		}
		for v := range vals.Values() {
			switch v.Kind() {
			case value.KindError:
				return n, &v
			case value.KindBool:
				fn(v.Truth())
				n++
			case value.KindNumber:
				fn(v.Num() != 0)
				n++
			}
		}
	}
	return n, nil
}

func and(args []Arg) value.Value {
	result := true
	n, errv := truths(args, func(b bool) { result = result && b })
	if errv != nil {
		return *errv
	}
	if n == 0 {
		return value.Err(value.ErrType)
	}
	return value.Bool(result)
}

func or(args []Arg) value.Value {
	result := false
	n, errv := truths(args, func(b bool) { result = result || b })
	if errv != nil {
		return *errv
	}
	if n == 0 {
		return value.Err(value.ErrType)
	}
	return value.Bool(result)
}

func not(args []Arg) value.Value {
	b, errv := boolean(args[0])
	if errv != nil {
		return *errv
	}
	return value.Bool(!b)
}

func isKind(k value.Kind) func([]Arg) value.Value {
	return func(args []Arg) value.Value {
		v := args[0].Scalar()
		if args[0].Range != nil {
			return v
		}
		return value.Bool(v.Kind() == k)
	}
}
