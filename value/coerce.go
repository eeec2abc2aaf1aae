package value

import (
	"strconv"
	"strings"
)

// ToNumber coerces v for arithmetic. Blank is 0, booleans are 1/0, numeric
// text is parsed. Non-numeric text is a Type-Mismatch; error values propagate.
func ToNumber(v Value) (float64, error) {
	switch v.kind {
	case KindNumber:
		return v.num, nil
	case KindBlank:
		return 0, nil
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindText:
		if n, ok := parseNumber(v.str); ok {
			return n, nil
		}
		return 0, NewError(ErrType, "%q is not a number", v.str)
	}
	return 0, &Error{Kind: v.err}
}

// ToText coerces v for text contexts. Blank is the empty string.
func ToText(v Value) (string, error) {
	switch v.kind {
	case KindNumber:
		return numberText(v.num), nil
	case KindText:
		return v.str, nil
	case KindBool:
		return v.String(), nil
	case KindBlank:
		return "", nil
	}
	return "", &Error{Kind: v.err}
}

// ToBool coerces v for conditions. Numbers are true when non-zero, empty text
// and Blank are false, "TRUE"/"FALSE" text is accepted case-insensitively.
func ToBool(v Value) (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindNumber:
		return v.num != 0, nil
	case KindBlank:
		return false, nil
	case KindText:
		switch strings.ToUpper(strings.TrimSpace(v.str)) {
		case "":
			return false, nil
		case "TRUE":
			return true, nil
		case "FALSE":
			return false, nil
		}
		return false, NewError(ErrType, "%q is not a boolean", v.str)
	}
	return false, &Error{Kind: v.err}
}

// Compare orders a and b for the comparison operators and returns -1, 0 or 1.
// Numbers compare numerically, text lexically, FALSE < TRUE. Blank takes the
// zero value of the other side's type and booleans compare with numbers as
// 1/0. Number against Text is a Type-Mismatch.
func Compare(a, b Value) (int, error) {
	if a.kind == KindError {
		return 0, &Error{Kind: a.err}
	}
	if b.kind == KindError {
		return 0, &Error{Kind: b.err}
	}
	a, b = blankAs(a, b), blankAs(b, a)
	switch {
	case a.kind == KindText && b.kind == KindText:
		return strings.Compare(a.str, b.str), nil
	case a.kind == KindText || b.kind == KindText:
		return 0, NewError(ErrType, "cannot compare %s with %s", a.kind, b.kind)
	}
	x, _ := ToNumber(a)
	y, _ := ToNumber(b)
	switch {
	case x < y:
		return -1, nil
	case x > y:
		return 1, nil
	}
	return 0, nil
}

func blankAs(v, other Value) Value {
	if v.kind != KindBlank {
		return v
	}
	switch other.kind {
	case KindText:
		return Text("")
	case KindBool:
		return Bool(false)
	}
	return Number(0)
}

// Matches is the equality used by lookups and criteria: numbers by value,
// text case-insensitively, booleans by value. Mixed kinds never match.
func Matches(a, b Value) bool {
	switch {
	case a.kind == KindNumber && b.kind == KindNumber:
		return a.num == b.num
	case a.kind == KindText && b.kind == KindText:
		return strings.EqualFold(a.str, b.str)
	case a.kind == KindBool && b.kind == KindBool:
		return a.b == b.b
	}
	return false
}

// Order compares two lookup keys of the same kind. ok is false for kinds that
// cannot be ordered against each other.
func Order(a, b Value) (cmp int, ok bool) {
	switch {
	case a.kind == KindNumber && b.kind == KindNumber:
		switch {
		case a.num < b.num:
			return -1, true
		case a.num > b.num:
			return 1, true
		}
		return 0, true
	case a.kind == KindText && b.kind == KindText:
		return strings.Compare(strings.ToLower(a.str), strings.ToLower(b.str)), true
	case a.kind == KindBool && b.kind == KindBool:
		x, y := 0, 0
		if a.b {
			x = 1
		}
		if b.b {
			y = 1
		}
		return x - y, true
	}
	return 0, false
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.ContainsAny(s, "xXnN_") {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
