package functions

import (
	"github.com/javajack/vicalc/value"
)

func lookups() []*Function {
	return []*Function{
		{Name: "VLOOKUP", MinArgs: 3, MaxArgs: 4, Call: vlookup},
		{Name: "HLOOKUP", MinArgs: 3, MaxArgs: 4, Call: hlookup},
		{Name: "INDEX", MinArgs: 2, MaxArgs: 3, Call: index},
		{Name: "MATCH", MinArgs: 2, MaxArgs: 3, Call: match},
	}
}

// vector is a one-dimensional view over a range.
type vector struct {
	n  int
	at func(i int) value.Value
}

func column(r *Range, c int) vector {
	return vector{n: r.Rows, at: func(i int) value.Value { return r.At(i, c) }}
}

func row(r *Range, rw int) vector {
	return vector{n: r.Cols, at: func(i int) value.Value { return r.At(rw, i) }}
}

// exact finds the first member matching key, or -1.
func (v vector) exact(key value.Value) int {
	for i := 0; i < v.n; i++ {
		if value.Matches(key, v.at(i)) {
			return i
		}
	}
	return -1
}

// approximate scans from the start and returns the last member not greater
// than key, stopping at the first member greater than it. Members whose kind
// cannot be ordered against key are skipped. On unsorted input this yields
// the last qualifying member before the first larger one.
func (v vector) approximate(key value.Value) int {
	best := -1
	for i := 0; i < v.n; i++ {
		c, ok := value.Order(v.at(i), key)
		if !ok {
			continue
		}
		if c > 0 {
			break
		}
		best = i
	}
	return best
}

// descending is MATCH type -1: the last member not less than key, stopping
// at the first member smaller than it.
func (v vector) descending(key value.Value) int {
	best := -1
	for i := 0; i < v.n; i++ {
		c, ok := value.Order(v.at(i), key)
		if !ok {
			continue
		}
		if c < 0 {
			break
		}
		best = i
	}
	return best
}

func lookupArgs(args []Arg) (*Range, int, bool, *value.Value) {
	table := args[1].Range
	if table == nil {
		v := value.Err(value.ErrType)
		return nil, 0, false, &v
	}
	idx, errv := integer(args[2])
	if errv != nil {
		return nil, 0, false, errv
	}
	approx := true
	if len(args) > 3 {
		if approx, errv = boolean(args[3]); errv != nil {
			return nil, 0, false, errv
		}
	}
	return table, idx, approx, nil
}

func vlookup(args []Arg) value.Value {
	key := args[0].Scalar()
	if key.IsError() {
		return key
	}
	table, col, approx, errv := lookupArgs(args)
	if errv != nil {
		return *errv
	}
	if col < 1 || col > table.Cols {
		return value.Err(value.ErrRange)
	}
	keys := column(table, 0)
	i := keys.exact(key)
	if approx {
		i = keys.approximate(key)
	}
	if i < 0 {
		return value.Err(value.ErrNotFound)
	}
	return table.At(i, col-1)
}

func hlookup(args []Arg) value.Value {
	key := args[0].Scalar()
	if key.IsError() {
		return key
	}
	table, rw, approx, errv := lookupArgs(args)
	if errv != nil {
		return *errv
	}
	if rw < 1 || rw > table.Rows {
		return value.Err(value.ErrRange)
	}
	keys := row(table, 0)
	i := keys.exact(key)
	if approx {
		i = keys.approximate(key)
	}
	if i < 0 {
		return value.Err(value.ErrNotFound)
	}
	return table.At(rw-1, i)
}

// index returns the member at a 1-based row and column. With a single
// index on a one-row range the index selects the column.
func index(args []Arg) value.Value {
	r := args[0].Range
	if r == nil {
		return value.Err(value.ErrType)
	}
	rw, errv := integer(args[1])
	if errv != nil {
		return *errv
	}
	col := 1
	if len(args) > 2 {
		if col, errv = integer(args[2]); errv != nil {
			return *errv
		}
	} else if r.Rows == 1 {
		rw, col = 1, rw
	}
	if rw < 1 || rw > r.Rows || col < 1 || col > r.Cols {
		return value.Err(value.ErrRange)
	}
	return r.At(rw-1, col-1)
}

// match returns the 1-based position of key in a one-dimensional range.
// Type 1 (default) finds the largest value not above key in ascending data,
// 0 an exact match, -1 the smallest value not below key in descending data.
func match(args []Arg) value.Value {
	key := args[0].Scalar()
	if key.IsError() {
		return key
	}
	r := args[1].Range
	if r == nil {
		return value.Err(value.ErrType)
	}
	var vec vector
	switch {
	case r.Cols == 1:
		vec = column(r, 0)
	case r.Rows == 1:
		vec = row(r, 0)
	default:
		return value.Err(value.ErrNotFound)
	}
	kind := 1
	if len(args) > 2 {
		var errv *value.Value
		if kind, errv = integer(args[2]); errv != nil {
			return *errv
		}
	}
	var i int
	switch {
	case kind == 0:
		i = vec.exact(key)
	case kind > 0:
		i = vec.approximate(key)
	default:
		i = vec.descending(key)
	}
	if i < 0 {
		return value.Err(value.ErrNotFound)
	}
	return value.Number(float64(i + 1))
}
