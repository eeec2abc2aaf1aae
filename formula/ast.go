// Package formula parses spreadsheet formulas into an expression tree and
// renders trees back to canonical formula text.
package formula

import (
	"strconv"
	"strings"

	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/value"
)

// Node is an immutable expression tree node. String renders the node as
// canonical formula text without the leading '='.
type Node interface {
	String() string
	node()
}

// Op is a unary or binary operator, spelled as in formula text.
type Op string

const (
	OpAdd    Op = "+"
	OpSub    Op = "-"
	OpMul    Op = "*"
	OpDiv    Op = "/"
	OpPow    Op = "^"
	OpConcat Op = "&"
	OpEq     Op = "="
	OpNe     Op = "<>"
	OpLt     Op = "<"
	OpLe     Op = "<="
	OpGt     Op = ">"
	OpGe     Op = ">="
)

// Binding strength, low to high.
const (
	precCompare = iota + 1
	precConcat
	precAdd
	precMul
	precUnary
	precPow
	precAtom
)

func (op Op) precedence() int {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return precCompare
	case OpConcat:
		return precConcat
	case OpAdd, OpSub:
		return precAdd
	case OpMul, OpDiv:
		return precMul
	case OpPow:
		return precPow
	}
	return 0
}

// Literal is a constant value, including error constants such as #REF!.
type Literal struct {
	Value value.Value
}

// Ref reads one cell.
type Ref struct {
	Addr cellref.Address
}

// RangeRef reads a rectangle of cells.
type RangeRef struct {
	Range cellref.Range
}

// Call invokes a built-in function. Name is upper-case.
type Call struct {
	Name string
	Args []Node
}

// Binary applies an infix operator.
type Binary struct {
	Op    Op
	Left  Node
	Right Node
}

// Unary applies a prefix sign.
type Unary struct {
	Op      Op
	Operand Node
}

func (*Literal) node()  {}
func (*Ref) node()      {}
func (*RangeRef) node() {}
func (*Call) node()     {}
func (*Binary) node()   {}
func (*Unary) node()    {}

func (n *Literal) String() string {
	v := n.Value
	switch v.Kind() {
	case value.KindNumber:
		return strconv.FormatFloat(v.Num(), 'f', -1, 64)
	case value.KindText:
		return `"` + strings.ReplaceAll(v.Str(), `"`, `""`) + `"`
	case value.KindBool, value.KindError:
		return v.String()
	}
	return ""
}

func (n *Ref) String() string      { return n.Addr.String() }
func (n *RangeRef) String() string { return n.Range.String() }

func (n *Call) String() string {
	var b strings.Builder
	b.WriteString(n.Name)
	b.WriteByte('(')
	for i, arg := range n.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (n *Binary) String() string {
	p := n.Op.precedence()
	return wrap(n.Left, precedenceOf(n.Left) < p) + string(n.Op) + wrap(n.Right, precedenceOf(n.Right) <= p)
}

func (n *Unary) String() string {
	return string(n.Op) + wrap(n.Operand, precedenceOf(n.Operand) < precUnary)
}

func wrap(n Node, paren bool) string {
	if paren {
		return "(" + n.String() + ")"
	}
	return n.String()
}

func precedenceOf(n Node) int {
	switch n := n.(type) {
	case *Binary:
		return n.Op.precedence()
	case *Unary:
		return precUnary
	case *Literal:
		if n.Value.Kind() == value.KindNumber && n.Value.Num() < 0 {
			return precUnary
		}
	}
	return precAtom
}

// Format renders n as formula source, including the leading '='.
func Format(n Node) string {
	return "=" + n.String()
}

// IsFormula reports whether raw cell input is a formula.
func IsFormula(raw string) bool {
	return strings.HasPrefix(strings.TrimLeft(raw, " \t"), "=")
}
