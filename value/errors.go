package value

import "fmt"

// ErrorKind classifies a cell-level evaluation failure.
type ErrorKind uint8

const (
	ErrSyntax    ErrorKind = iota + 1 // formula could not be parsed
	ErrType                           // operand of the wrong type
	ErrDiv                            // division by zero
	ErrCircular                       // cell participates in a reference cycle
	ErrName                           // unknown function or name
	ErrArgCount                       // wrong number of function arguments
	ErrNotFound                       // lookup miss
	ErrRange                          // index outside a range
	ErrRef                            // reference dangling after a structural edit
	ErrBoundary                       // structural edit would remove the last line
	ErrNum                            // numeric result not representable
)

var errorCodes = map[ErrorKind]string{
	ErrSyntax:   "#SYNTAX!",
	ErrType:     "#VALUE!",
	ErrDiv:      "#DIV/0!",
	ErrCircular: "#CYCLE!",
	ErrName:     "#NAME?",
	ErrArgCount: "#ARGS!",
	ErrNotFound: "#N/A",
	ErrRange:    "#RANGE!",
	ErrRef:      "#REF!",
	ErrBoundary: "#BOUNDARY!",
	ErrNum:      "#NUM!",
}

// Code returns the display code, e.g. "#DIV/0!".
func (k ErrorKind) Code() string {
	if c, ok := errorCodes[k]; ok {
		return c
	}
	return fmt.Sprintf("#ERR%d!", uint8(k))
}

func (k ErrorKind) String() string { return k.Code() }

// ParseCode maps a display code back to its kind. Matching is case-insensitive.
func ParseCode(code string) (ErrorKind, bool) {
	for k, c := range errorCodes {
		if equalFold(c, code) {
			return k, true
		}
	}
	return 0, false
}

// Codes lists every known display code.
func Codes() []string {
	out := make([]string, 0, len(errorCodes))
	for _, c := range errorCodes {
		out = append(out, c)
	}
	return out
}

// Error is the Go error form of an ErrorKind, returned by coercion helpers.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Kind.Code() + " " + e.Message
	}
	return e.Kind.Code()
}

// NewError builds an *Error with an optional formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Message: msg}
}
