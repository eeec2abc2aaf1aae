// Package calc evaluates formula trees against a grid and recalculates whole
// sheets in dependency order.
package calc

import (
	"log/slog"
	"slices"
	"time"

	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/formula"
	"github.com/javajack/vicalc/value"
)

// Input is the parsed content of one cell.
type Input struct {
	Formula formula.Node // nil for literal cells
	Err     error        // set when the raw formula failed to parse
	Literal value.Value
}

// Source is the read side of a grid.
type Source interface {
	// Addresses lists every populated cell.
	Addresses() []cellref.Address
	// Input returns the contents of the cell at addr; ok is false for empty cells.
	Input(addr cellref.Address) (in Input, ok bool)
}

// Result holds the outcome of a recalculation pass.
type Result struct {
	Values map[cellref.Address]value.Value
	Cycles []cellref.Address // cells found on reference cycles, row-major
}

// Engine evaluates formulas. It keeps no state between passes.
type Engine struct {
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for pass statistics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default().With(slog.String("component", "calc"))}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recalculate evaluates every populated cell of src. Each formula cell is
// evaluated at most once; cells on a reference cycle all get #CYCLE!.
func (e *Engine) Recalculate(src Source) Result {
	start := time.Now()
	p := newPass(src)
	addrs := src.Addresses()
	slices.SortFunc(addrs, compareAddr)
	for _, a := range addrs {
		p.cell(a)
	}
	res := Result{Values: p.results}
	for a := range p.cyclic {
		res.Cycles = append(res.Cycles, a)
	}
	slices.SortFunc(res.Cycles, compareAddr)
	e.logger.Debug("recalculated",
		slog.Int("cells", len(addrs)),
		slog.Int("formulas", p.formulas),
		slog.Int("cycles", len(res.Cycles)),
		slog.Duration("elapsed", time.Since(start)))
	return res
}

// Evaluate computes a single expression against src.
func (e *Engine) Evaluate(n formula.Node, src Source) value.Value {
	return newPass(src).eval(n)
}

func compareAddr(a, b cellref.Address) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

type state uint8

const (
	pending state = iota
	active
	done
)

// pass memoizes one recalculation. stack holds the cells currently being
// evaluated, innermost last.
type pass struct {
	src      Source
	state    map[cellref.Address]state
	results  map[cellref.Address]value.Value
	cyclic   map[cellref.Address]bool
	stack    []cellref.Address
	formulas int
}

func newPass(src Source) *pass {
	return &pass{
		src:     src,
		state:   make(map[cellref.Address]state),
		results: make(map[cellref.Address]value.Value),
		cyclic:  make(map[cellref.Address]bool),
	}
}

func (p *pass) cell(a cellref.Address) value.Value {
	a = a.Key()
	switch p.state[a] {
	case done:
		return p.results[a]
	case active:
		p.markCycle(a)
		return value.Err(value.ErrCircular)
	}
	in, ok := p.src.Input(a)
	if !ok {
		return value.Blank()
	}
	var v value.Value
	switch {
	case in.Err != nil:
		v = value.Err(value.ErrSyntax)
	case in.Formula == nil:
		v = in.Literal
	default:
		p.formulas++
		p.state[a] = active
		p.stack = append(p.stack, a)
		v = p.eval(in.Formula)
		p.stack = p.stack[:len(p.stack)-1]
		if v.IsBlank() {
			v = value.Number(0)
		}
		if p.cyclic[a] {
			v = value.Err(value.ErrCircular)
		}
	}
	p.state[a] = done
	p.results[a] = v
	return v
}

// markCycle flags every cell on the stack from a's frame inward.
func (p *pass) markCycle(a cellref.Address) {
	for i := len(p.stack) - 1; i >= 0; i-- {
		p.cyclic[p.stack[i]] = true
		if p.stack[i] == a {
			return
		}
	}
}
