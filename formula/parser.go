package formula

import (
	"strings"

	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/value"
)

// Parse parses formula source, which must start with '='.
func Parse(src string) (Node, error) {
	trimmed := strings.TrimLeft(src, " \t")
	body, ok := strings.CutPrefix(trimmed, "=")
	if !ok {
		return nil, syntaxErr(0, "formula must start with '='")
	}
	return parse(body, len(src)-len(body))
}

// ParseExpr parses an expression without the leading '='.
func ParseExpr(src string) (Node, error) {
	return parse(src, 0)
}

func parse(src string, base int) (Node, error) {
	toks, err := lex(src, base)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, syntaxErr(p.peek().pos, "empty formula")
	}
	n, err := p.comparison()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, syntaxErr(t.pos, "unexpected %q", t.text)
	}
	return n, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isOp(ops ...Op) (Op, bool) {
	t := p.peek()
	if t.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if t.text == string(op) {
			return op, true
		}
	}
	return "", false
}

// binaryLevel parses a left-associative chain of ops over next.
func (p *parser) binaryLevel(next func() (Node, error), ops ...Op) (Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOp(ops...)
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) comparison() (Node, error) {
	return p.binaryLevel(p.concat, OpEq, OpNe, OpLt, OpLe, OpGt, OpGe)
}

func (p *parser) concat() (Node, error) {
	return p.binaryLevel(p.additive, OpConcat)
}

func (p *parser) additive() (Node, error) {
	return p.binaryLevel(p.multiplicative, OpAdd, OpSub)
}

func (p *parser) multiplicative() (Node, error) {
	return p.binaryLevel(p.unary, OpMul, OpDiv)
}

// unary binds looser than '^', so -2^2 is -(2^2).
func (p *parser) unary() (Node, error) {
	if op, ok := p.isOp(OpSub, OpAdd); ok {
		p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Operand: operand}, nil
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.isOp(OpPow); !ok {
			return left, nil
		}
		p.advance()
		right, err := p.exponent()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: OpPow, Left: left, Right: right}
	}
}

// exponent allows a signed operand after '^', as in 2^-1.
func (p *parser) exponent() (Node, error) {
	if op, ok := p.isOp(OpSub, OpAdd); ok {
		p.advance()
		operand, err := p.exponent()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Operand: operand}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Node, error) {
	t := p.advance()
	switch t.kind {
	case tokNumber:
		return &Literal{Value: value.Number(t.num)}, nil
	case tokString:
		return &Literal{Value: value.Text(t.text)}, nil
	case tokBool:
		return &Literal{Value: value.Bool(t.text == "TRUE")}, nil
	case tokError:
		return &Literal{Value: value.Err(t.err)}, nil
	case tokRef:
		if p.peek().kind != tokColon {
			return &Ref{Addr: t.ref}, nil
		}
		p.advance()
		end := p.advance()
		if end.kind != tokRef {
			return nil, syntaxErr(end.pos, "expected cell reference after ':'")
		}
		return &RangeRef{Range: cellref.NewRange(t.ref, end.ref)}, nil
	case tokFunc:
		return p.call(t)
	case tokLParen:
		n, err := p.comparison()
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.kind != tokRParen {
			return nil, syntaxErr(closing.pos, "expected ')'")
		}
		return n, nil
	case tokEOF:
		return nil, syntaxErr(t.pos, "unexpected end of formula")
	}
	return nil, syntaxErr(t.pos, "unexpected %q", t.text)
}

func (p *parser) call(name token) (Node, error) {
	p.advance() // '('
	c := &Call{Name: name.text}
	if p.peek().kind == tokRParen {
		p.advance()
		return c, nil
	}
	for {
		arg, err := p.comparison()
		if err != nil {
			return nil, err
		}
		c.Args = append(c.Args, arg)
		switch t := p.advance(); t.kind {
		case tokComma:
			continue
		case tokRParen:
			return c, nil
		default:
			return nil, syntaxErr(t.pos, "expected ',' or ')' in call to %s", c.Name)
		}
	}
}
