package functions

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/javajack/vicalc/value"
)

// criterionEnv is the variable set a criterion program is compiled against.
// kind is one of "number", "text", "boolean", "blank"; s holds the text form
// of the cell and t the operand, whose type depends on the criterion.
func criterionEnv(target any) map[string]any {
	return map[string]any{
		"kind": "",
		"n":    0.0,
		"s":    "",
		"b":    false,
		"t":    target,
	}
}

// programs caches compiled criterion programs by source and operand type.
var programs sync.Map

func compileCriterion(code string, target any) (*vm.Program, error) {
	key := fmt.Sprintf("%T:%s", target, code)
	if cached, ok := programs.Load(key); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(code, expr.Env(criterionEnv(target)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile criterion %q: %w", code, err)
	}
	programs.Store(key, program)
	return program, nil
}

// Criterion is a compiled SUMIF/COUNTIF/AVERAGEIF predicate.
type Criterion struct {
	program *vm.Program
	target  any
}

var criterionOps = []string{">=", "<=", "<>", "!=", ">", "<", "="}

// ParseCriterion builds a predicate from a criteria argument. Numbers and
// booleans test equality. Text may start with a comparison operator
// (">10", "<>done"); the remainder compares numerically when it is a number
// and case-insensitively as text otherwise. Text equality honours the
// * and ? wildcards.
func ParseCriterion(v value.Value) (*Criterion, error) {
	op, operand := "=", v
	if v.IsBlank() {
		operand = value.Text("")
	}
	if v.Kind() == value.KindText {
		s := v.Str()
		for _, candidate := range criterionOps {
			if rest, ok := strings.CutPrefix(s, candidate); ok {
				op, s = candidate, rest
				break
			}
		}
		operand = value.ParseLiteral(s)
		if operand.IsBlank() {
			operand = value.Text("")
		}
		if operand.Kind() == value.KindText {
			operand = value.Text(s)
		}
	}
	if op == "!=" {
		op = "<>"
	}
	exprOp := op
	switch op {
	case "=":
		exprOp = "=="
	case "<>":
		exprOp = "!="
	}

	var code string
	var target any
	switch operand.Kind() {
	case value.KindNumber:
		code = fmt.Sprintf(`kind == "number" && n %s t`, exprOp)
		target = operand.Num()
	case value.KindBool:
		code = fmt.Sprintf(`kind == "boolean" && b %s t`, exprOp)
		target = operand.Truth()
	case value.KindText:
		code, target = textCriterion(op, exprOp, operand.Str())
	default:
		return nil, fmt.Errorf("unsupported criterion %s", v)
	}
	if op == "<>" && operand.Kind() != value.KindText {
		code = fmt.Sprintf(`kind != "%s" || (%s)`, operand.Kind(), code)
	}
	program, err := compileCriterion(code, target)
	if err != nil {
		return nil, err
	}
	return &Criterion{program: program, target: target}, nil
}

func textCriterion(op, exprOp, s string) (string, any) {
	switch {
	case s == "" && op == "=":
		return `kind == "blank" || s == ""`, ""
	case s == "" && op == "<>":
		return `kind != "blank" && s != ""`, ""
	case (op == "=" || op == "<>") && strings.ContainsAny(s, "*?"):
		code := `s matches t`
		if op == "<>" {
			code = `not (s matches t)`
		}
		return code, wildcardPattern(s)
	case op == "=" || op == "<>":
		return fmt.Sprintf(`lower(s) %s lower(t)`, exprOp), s
	}
	return fmt.Sprintf(`kind == "text" && lower(s) %s lower(t)`, exprOp), s
}

// wildcardPattern turns a spreadsheet wildcard into an anchored,
// case-insensitive regular expression. ~ escapes the next character.
func wildcardPattern(s string) string {
	var b strings.Builder
	b.WriteString("(?is)^")
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '~':
			escaped = true
		case r == '*':
			b.WriteString(".*")
		case r == '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}

// Match reports whether v satisfies the criterion. Error values never match.
func (c *Criterion) Match(v value.Value) bool {
	if v.IsError() {
		return false
	}
	env := criterionEnv(c.target)
	env["kind"] = v.Kind().String()
	env["n"] = v.Num()
	env["s"] = cellText(v)
	env["b"] = v.Truth()
	out, err := expr.Run(c.program, env)
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}

func cellText(v value.Value) string {
	if v.Kind() == value.KindNumber {
		return strconv.FormatFloat(v.Num(), 'f', -1, 64)
	}
	return v.String()
}

func conditionals() []*Function {
	return []*Function{
		{Name: "SUMIF", MinArgs: 2, MaxArgs: 3, Call: sumIf},
		{Name: "COUNTIF", MinArgs: 2, MaxArgs: 2, Call: countIf},
		{Name: "AVERAGEIF", MinArgs: 2, MaxArgs: 3, Call: averageIf},
	}
}

// eachMatch calls fn with the value paired with every member of the criteria
// range that satisfies the criterion. The paired value comes from the same
// offset within values, which defaults to the criteria range itself.
func eachMatch(args []Arg, fn func(value.Value)) *value.Value {
	rng := args[0].Range
	if rng == nil {
		rng = RangeOf(1, 1, args[0].Value)
	}
	c, err := ParseCriterion(args[1].Scalar())
	if err != nil {
		v := value.Err(value.ErrType)
		return &v
	}
	values := rng
	if len(args) > 2 {
		values = args[2].Range
		if values == nil {
			values = RangeOf(1, 1, args[2].Value)
		}
	}
	for r := 0; r < rng.Rows; r++ {
		for col := 0; col < rng.Cols; col++ {
			if !c.Match(rng.At(r, col)) {
				continue
			}
			if r < values.Rows && col < values.Cols {
				fn(values.At(r, col))
			}
		}
	}
	return nil
}

func sumIf(args []Arg) value.Value {
	total := 0.0
	add := func(v value.Value) {
		if v.Kind() == value.KindNumber {
			total += v.Num()
		}
	}
	if errv := eachMatch(args, add); errv != nil {
		return *errv
	}
	return numberResult(total)
}

func countIf(args []Arg) value.Value {
	n := 0
	if errv := eachMatch(args, func(value.Value) { n++ }); errv != nil {
		return *errv
	}
	return value.Number(float64(n))
}

func averageIf(args []Arg) value.Value {
	total, n := 0.0, 0
	add := func(v value.Value) {
		if v.Kind() == value.KindNumber {
			total += v.Num()
			n++
		}
	}
	if errv := eachMatch(args, add); errv != nil {
		return *errv
	}
	if n == 0 {
		return value.Err(value.ErrDiv)
	}
	return numberResult(total / float64(n))
}
