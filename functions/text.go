package functions

import (
	"strings"

	"github.com/javajack/vicalc/value"
)

func text() []*Function {
	return []*Function{
		{Name: "LEFT", MinArgs: 1, MaxArgs: 2, Call: left},
		{Name: "RIGHT", MinArgs: 1, MaxArgs: 2, Call: right},
		{Name: "MID", MinArgs: 3, MaxArgs: 3, Call: mid},
		{Name: "LEN", MinArgs: 1, MaxArgs: 1, Call: length},
		{Name: "TRIM", MinArgs: 1, MaxArgs: 1, Call: mapText(func(s string) string { return strings.Join(strings.Fields(s), " ") })},
		{Name: "UPPER", MinArgs: 1, MaxArgs: 1, Call: mapText(strings.ToUpper)},
		{Name: "LOWER", MinArgs: 1, MaxArgs: 1, Call: mapText(strings.ToLower)},
		{Name: "CONCATENATE", MinArgs: 1, MaxArgs: -1, Call: concatenate},
	}
}

func mapText(fn func(string) string) func([]Arg) value.Value {
	return func(args []Arg) value.Value {
		s, errv := str(args[0])
		if errv != nil {
			return *errv
		}
		return value.Text(fn(s))
	}
}

// charCount returns the optional character count argument, defaulting to 1.
func charCount(args []Arg) (int, *value.Value) {
	if len(args) < 2 {
		return 1, nil
	}
	n, errv := integer(args[1])
	if errv != nil {
		return 0, errv
	}
	if n < 0 {
		v := value.Err(value.ErrType)
		return 0, &v
	}
	return n, nil
}

func left(args []Arg) value.Value {
	s, errv := str(args[0])
	if errv != nil {
		return *errv
	}
	n, errv := charCount(args)
	if errv != nil {
		return *errv
	}
	runes := []rune(s)
	return value.Text(string(runes[:min(n, len(runes))]))
}

func right(args []Arg) value.Value {
	s, errv := str(args[0])
	if errv != nil {
		return *errv
	}
	n, errv := charCount(args)
	if errv != nil {
		return *errv
	}
	runes := []rune(s)
	return value.Text(string(runes[len(runes)-min(n, len(runes)):]))
}

// mid takes n characters starting at the 1-based position start.
func mid(args []Arg) value.Value {
	s, errv := str(args[0])
	if errv != nil {
		return *errv
	}
	start, errv := integer(args[1])
	if errv != nil {
		return *errv
	}
	n, errv := integer(args[2])
	if errv != nil {
		return *errv
	}
	if start < 1 || n < 0 {
		return value.Err(value.ErrType)
	}
	runes := []rune(s)
	if start > len(runes) {
		return value.Text("")
	}
	from := start - 1
	return value.Text(string(runes[from:min(from+n, len(runes))]))
}

func length(args []Arg) value.Value {
	s, errv := str(args[0])
	if errv != nil {
		return *errv
	}
	return value.Number(float64(len([]rune(s))))
}

// concatenate joins the text of every argument; ranges contribute each member.
func concatenate(args []Arg) value.Value {
	var b strings.Builder
	for _, a := range args {
		if a.Range == nil {
			s, errv := str(a)
			if errv != nil {
				return *errv
			}
			b.WriteString(s)
			continue
		}
		for v := range a.Range.Values() {
			s, err := value.ToText(v)
			if err != nil {
				return value.FromError(err)
			}
			b.WriteString(s)
		}
	}
	return value.Text(b.String())
}
