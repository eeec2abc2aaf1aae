package functions

import (
	"math"

	"github.com/javajack/vicalc/value"
)

func maths() []*Function {
	return []*Function{
		{Name: "ABS", MinArgs: 1, MaxArgs: 1, Call: unaryMath(math.Abs)},
		{Name: "INT", MinArgs: 1, MaxArgs: 1, Call: unaryMath(math.Floor)},
		{Name: "SQRT", MinArgs: 1, MaxArgs: 1, Call: unaryMath(math.Sqrt)},
		{Name: "ROUND", MinArgs: 1, MaxArgs: 2, Call: round},
		{Name: "MOD", MinArgs: 2, MaxArgs: 2, Call: mod},
		{Name: "POWER", MinArgs: 2, MaxArgs: 2, Call: power},
	}
}

func unaryMath(fn func(float64) float64) func([]Arg) value.Value {
	return func(args []Arg) value.Value {
		n, errv := num(args[0])
		if errv != nil {
			return *errv
		}
		return numberResult(fn(n))
	}
}

// round rounds half away from zero. Negative digits round to tens, hundreds...
func round(args []Arg) value.Value {
	n, errv := num(args[0])
	if errv != nil {
		return *errv
	}
	digits := 0
	if len(args) > 1 {
		if digits, errv = integer(args[1]); errv != nil {
			return *errv
		}
	}
	if digits < 0 {
		scale := math.Pow(10, float64(-digits))
		return numberResult(math.Round(n/scale) * scale)
	}
	scale := math.Pow(10, float64(digits))
	return numberResult(math.Round(n*scale) / scale)
}

// mod returns a remainder carrying the sign of the divisor.
func mod(args []Arg) value.Value {
	n, errv := num(args[0])
	if errv != nil {
		return *errv
	}
	d, errv := num(args[1])
	if errv != nil {
		return *errv
	}
	if d == 0 {
		return value.Err(value.ErrDiv)
	}
	return numberResult(n - d*math.Floor(n/d))
}

func power(args []Arg) value.Value {
	base, errv := num(args[0])
	if errv != nil {
		return *errv
	}
	exp, errv := num(args[1])
	if errv != nil {
		return *errv
	}
	if base == 0 && exp < 0 {
		return value.Err(value.ErrDiv)
	}
	return numberResult(math.Pow(base, exp))
}
