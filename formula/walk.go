package formula

import (
	"github.com/javajack/vicalc/cellref"
)

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Call:
		for _, a := range n.Args {
			Walk(a, fn)
		}
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Unary:
		Walk(n.Operand, fn)
	}
}

// References lists every cell and range read by n, in source order.
// Single cells are returned as one-cell ranges.
func References(n Node) []cellref.Range {
	var out []cellref.Range
	Walk(n, func(n Node) bool {
		switch n := n.(type) {
		case *Ref:
			out = append(out, cellref.Single(n.Addr))
		case *RangeRef:
			out = append(out, n.Range)
		}
		return true
	})
	return out
}

// Functions lists the distinct function names called by n.
func Functions(n Node) []string {
	seen := map[string]bool{}
	var out []string
	Walk(n, func(n Node) bool {
		if c, ok := n.(*Call); ok && !seen[c.Name] {
			seen[c.Name] = true
			out = append(out, c.Name)
		}
		return true
	})
	return out
}

// transform rebuilds n bottom-up, letting fn replace any node after its
// children have been rebuilt. Unchanged subtrees are shared.
func transform(n Node, fn func(Node) Node) Node {
	switch t := n.(type) {
	case *Call:
		var args []Node
		changed := false
		for i, a := range t.Args {
			na := transform(a, fn)
			if na != a && !changed {
				changed = true
				args = append([]Node(nil), t.Args[:i]...)
			}
			if changed {
				args = append(args, na)
			}
		}
		if changed {
			n = &Call{Name: t.Name, Args: args}
		}
	case *Binary:
		l, r := transform(t.Left, fn), transform(t.Right, fn)
		if l != t.Left || r != t.Right {
			n = &Binary{Op: t.Op, Left: l, Right: r}
		}
	case *Unary:
		o := transform(t.Operand, fn)
		if o != t.Operand {
			n = &Unary{Op: t.Op, Operand: o}
		}
	}
	return fn(n)
}
