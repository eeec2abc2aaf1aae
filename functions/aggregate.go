package functions

import (
	"math"

	"github.com/javajack/vicalc/value"
)

func aggregates() []*Function {
	return []*Function{
		{Name: "SUM", MinArgs: 1, MaxArgs: -1, Call: sum},
		{Name: "AVERAGE", MinArgs: 0, MaxArgs: -1, Call: average},
		{Name: "COUNT", MinArgs: 1, MaxArgs: -1, Call: count},
		{Name: "COUNTA", MinArgs: 1, MaxArgs: -1, Call: countA},
		{Name: "MIN", MinArgs: 1, MaxArgs: -1, Call: minimum},
		{Name: "MAX", MinArgs: 1, MaxArgs: -1, Call: maximum},
	}
}

// eachNumber feeds every numeric input of args to fn. Members of ranges and
// referenced cells contribute only when they hold numbers, though errors
// among them propagate. Literal scalars are coerced.
func eachNumber(args []Arg, fn func(float64)) *value.Value {
	member := func(v value.Value) *value.Value {
		switch v.Kind() {
		case value.KindNumber:
			fn(v.Num())
		case value.KindError:
			return &v
		}
		return nil
	}
	for _, a := range args {
		switch {
		case a.Range != nil:
			for v := range a.Range.Values() {
				if errv := member(v); errv != nil {
					return errv
				}
			}
		case a.Ref:
			if errv := member(a.Value); errv != nil {
				return errv
			}
		default:
			n, errv := num(a)
			if errv != nil {
				return errv
			}
			fn(n)
		}
	}
	return nil
}

func sum(args []Arg) value.Value {
	total := 0.0
	if errv := eachNumber(args, func(n float64) { total += n }); errv != nil {
		return *errv
	}
	return numberResult(total)
}

func average(args []Arg) value.Value {
	total, n := 0.0, 0
	add := func(x float64) {
		total += x
		n++
	}
	if errv := eachNumber(args, add); errv != nil {
		return *errv
	}
	if n == 0 {
		return value.Err(value.ErrDiv)
	}
	return numberResult(total / float64(n))
}

func minimum(args []Arg) value.Value {
	best, seen := math.Inf(1), false
	take := func(x float64) {
		best = math.Min(best, x)
		seen = true
	}
	if errv := eachNumber(args, take); errv != nil {
		return *errv
	}
	if !seen {
		return value.Number(0)
	}
	return value.Number(best)
}

func maximum(args []Arg) value.Value {
	best, seen := math.Inf(-1), false
	take := func(x float64) {
		best = math.Max(best, x)
		seen = true
	}
	if errv := eachNumber(args, take); errv != nil {
		return *errv
	}
	if !seen {
		return value.Number(0)
	}
	return value.Number(best)
}

// count counts numbers; errors and non-numeric text are skipped.
func count(args []Arg) value.Value {
	n := 0
	for _, a := range args {
		switch {
		case a.Range != nil:
			for v := range a.Range.Values() {
				if v.Kind() == value.KindNumber {
					n++
				}
			}
		case a.Ref:
			if a.Value.Kind() == value.KindNumber {
				n++
			}
		default:
			if _, err := value.ToNumber(a.Value); err == nil && a.Value.Kind() != value.KindBlank {
				n++
			}
		}
	}
	return value.Number(float64(n))
}

// countA counts every non-blank value, whatever its kind.
func countA(args []Arg) value.Value {
	n := 0
	for _, a := range args {
		if a.Range != nil {
			for v := range a.Range.Values() {
				if !v.IsBlank() {
					n++
				}
			}
			continue
		}
		if !a.Value.IsBlank() {
			n++
		}
	}
	return value.Number(float64(n))
}
