// Package value holds the typed cell value union and its coercion rules.
package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the tag of a Value.
type Kind uint8

const (
	KindBlank Kind = iota
	KindNumber
	KindText
	KindBool
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindError:
		return "error"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is an immutable tagged union. The zero Value is Blank.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	err  ErrorKind
}

// Blank is the value of an empty cell.
func Blank() Value { return Value{} }

// Number wraps a float.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Text wraps a string.
func Text(s string) Value { return Value{kind: KindText, str: s} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Err wraps an error kind.
func Err(k ErrorKind) Value { return Value{kind: KindError, err: k} }

// FromError converts a Go error to an error Value. Errors that are not
// *Error become Type-Mismatch.
func FromError(err error) Value {
	var ve *Error
	if errors.As(err, &ve) {
		return Err(ve.Kind)
	}
	return Err(ErrType)
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsBlank() bool { return v.kind == KindBlank }
func (v Value) IsError() bool { return v.kind == KindError }
func (v Value) Num() float64 { return v.num }
func (v Value) Str() string { return v.str }
func (v Value) Truth() bool { return v.b }
func (v Value) ErrKind() ErrorKind { return v.err }

// AsError returns the Go error form of an error Value, or nil.
func (v Value) AsError() error {
	if v.kind != KindError {
		return nil
	}
	return &Error{Kind: v.err}
}

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return FormatNumber(v.num)
	case KindText:
		return v.str
	case KindBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case KindError:
		return v.err.Code()
	}
	return ""
}

// FormatNumber renders a number in the sheet's general format: whole numbers
// below 1e10 as integers, very small or very large magnitudes in scientific
// notation, everything else with at most six decimals.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 0):
		if n > 0 {
			return "Inf"
		}
		return "-Inf"
	case n == 0:
		return "0"
	}
	abs := math.Abs(n)
	if n == math.Trunc(n) && abs < 1e10 {
		return strconv.FormatInt(int64(n), 10)
	}
	if abs < 1e-4 || abs >= 1e10 {
		return fmt.Sprintf("%.2e", n)
	}
	s := strconv.FormatFloat(n, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// numberText renders a number for text contexts such as concatenation,
// keeping full precision.
func numberText(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func equalFold(a, b string) bool { return strings.EqualFold(a, b) }
