package calc

import (
	"math"

	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/formula"
	"github.com/javajack/vicalc/functions"
	"github.com/javajack/vicalc/value"
)

func (p *pass) eval(n formula.Node) value.Value {
	switch n := n.(type) {
	case *formula.Literal:
		return n.Value
	case *formula.Ref:
		return p.cell(n.Addr)
	case *formula.RangeRef:
		return value.Err(value.ErrType)
	case *formula.Unary:
		return p.unary(n)
	case *formula.Binary:
		return p.binary(n)
	case *formula.Call:
		return p.call(n)
	}
	return value.Err(value.ErrSyntax)
}

func (p *pass) unary(n *formula.Unary) value.Value {
	v := p.eval(n.Operand)
	x, err := value.ToNumber(v)
	if err != nil {
		return value.FromError(err)
	}
	if n.Op == formula.OpSub {
		return value.Number(-x)
	}
	return value.Number(x)
}

func (p *pass) binary(n *formula.Binary) value.Value {
	l := p.eval(n.Left)
	if l.IsError() {
		return l
	}
	r := p.eval(n.Right)
	if r.IsError() {
		return r
	}
	switch n.Op {
	case formula.OpConcat:
		ls, err := value.ToText(l)
		if err != nil {
			return value.FromError(err)
		}
		rs, err := value.ToText(r)
		if err != nil {
			return value.FromError(err)
		}
		return value.Text(ls + rs)
	case formula.OpEq, formula.OpNe, formula.OpLt, formula.OpLe, formula.OpGt, formula.OpGe:
		c, err := value.Compare(l, r)
		if err != nil {
			return value.FromError(err)
		}
		return value.Bool(compares(n.Op, c))
	}
	x, err := value.ToNumber(l)
	if err != nil {
		return value.FromError(err)
	}
	y, err := value.ToNumber(r)
	if err != nil {
		return value.FromError(err)
	}
	var out float64
	switch n.Op {
	case formula.OpAdd:
		out = x + y
	case formula.OpSub:
		out = x - y
	case formula.OpMul:
		out = x * y
	case formula.OpDiv:
		if y == 0 {
			return value.Err(value.ErrDiv)
		}
		out = x / y
	case formula.OpPow:
		if x == 0 && y < 0 {
			return value.Err(value.ErrDiv)
		}
		out = math.Pow(x, y)
	default:
		return value.Err(value.ErrSyntax)
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return value.Err(value.ErrNum)
	}
	return value.Number(out)
}

func compares(op formula.Op, c int) bool {
	switch op {
	case formula.OpEq:
		return c == 0
	case formula.OpNe:
		return c != 0
	case formula.OpLt:
		return c < 0
	case formula.OpLe:
		return c <= 0
	case formula.OpGt:
		return c > 0
	}
	return c >= 0
}

// call dispatches to the function library. Eager arguments are evaluated
// left to right and the first scalar error is returned without evaluating
// the rest.
func (p *pass) call(n *formula.Call) value.Value {
	fn, ok := functions.Lookup(n.Name)
	if !ok {
		return value.Err(value.ErrName)
	}
	if !fn.Accepts(len(n.Args)) {
		return value.Err(value.ErrArgCount)
	}
	if fn.Lazy != nil {
		thunks := make([]functions.Thunk, len(n.Args))
		for i, arg := range n.Args {
			thunks[i] = func() functions.Arg { return p.arg(arg) }
		}
		return fn.Lazy(thunks)
	}
	args := make([]functions.Arg, 0, len(n.Args))
	for _, arg := range n.Args {
		a := p.arg(arg)
		if a.Range == nil && a.Value.IsError() {
			return a.Value
		}
		args = append(args, a)
	}
	return fn.Call(args)
}

func (p *pass) arg(n formula.Node) functions.Arg {
	switch n := n.(type) {
	case *formula.RangeRef:
		return functions.Arg{Range: p.rangeOf(n.Range)}
	case *formula.Ref:
		return functions.Arg{Value: p.cell(n.Addr), Ref: true}
	}
	return functions.Arg{Value: p.eval(n)}
}

// rangeOf exposes a rectangle whose members are evaluated on first access.
func (p *pass) rangeOf(r cellref.Range) *functions.Range {
	origin := r.Start
	return &functions.Range{
		Rows: r.Height(),
		Cols: r.Width(),
		At: func(row, col int) value.Value {
			return p.cell(cellref.New(origin.Col+col, origin.Row+row))
		},
	}
}
