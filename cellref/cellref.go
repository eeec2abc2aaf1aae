// Package cellref models cell addresses and rectangular ranges in A1 notation.
package cellref

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidReference reports a reference that cannot name a cell,
// either because the text is malformed or because an index went negative.
var ErrInvalidReference = errors.New("invalid reference")

// MaxCol is the largest accepted column index, spelled "FXSHRXW".
const MaxCol = math.MaxInt32 - 1

// Address is a cell position plus per-axis absolute flags.
// Col and Row are 0-based; formatting is 1-based.
type Address struct {
	Col    int
	Row    int
	ColAbs bool // $A1
	RowAbs bool // A$1
}

// New returns a relative address at col, row.
func New(col, row int) Address {
	return Address{Col: col, Row: row}
}

// Parse parses "A1", "$A$1", "A$1" or "$A1". Column letters are case-insensitive.
func Parse(s string) (Address, error) {
	s = strings.TrimSpace(s)
	a, n, ok := Scan(s)
	if !ok || n != len(s) {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidReference, s)
	}
	return a, nil
}

// MustParse is like Parse but panics on malformed input. Intended for tests and constants.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Scan reads the longest address prefix of s and reports how many bytes it used.
// It returns ok=false when s does not start with an address.
func Scan(s string) (Address, int, bool) {
	var a Address
	i := 0
	if i < len(s) && s[i] == '$' {
		a.ColAbs = true
		i++
	}
	start := i
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == start {
		return Address{}, 0, false
	}
	col, err := NameToCol(s[start:i])
	if err != nil {
		return Address{}, 0, false
	}
	if i < len(s) && s[i] == '$' {
		a.RowAbs = true
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return Address{}, 0, false
	}
	row, err := strconv.Atoi(s[digits:i])
	if err != nil || row < 1 {
		return Address{}, 0, false
	}
	a.Col = col
	a.Row = row - 1
	return a, i, true
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// String formats the address canonically, emitting '$' for each absolute axis.
func (a Address) String() string {
	var b strings.Builder
	if a.ColAbs {
		b.WriteByte('$')
	}
	b.WriteString(ColToName(a.Col))
	if a.RowAbs {
		b.WriteByte('$')
	}
	b.WriteString(strconv.Itoa(a.Row + 1))
	return b.String()
}

// Name formats the address without absolute markers, e.g. "B7".
func (a Address) Name() string {
	return ColToName(a.Col) + strconv.Itoa(a.Row+1)
}

// Key strips the absolute flags so the address can index storage.
func (a Address) Key() Address {
	return Address{Col: a.Col, Row: a.Row}
}

// Offset moves the relative components of a by the given deltas; absolute
// components stay put. A component that would go negative yields ErrInvalidReference.
func (a Address) Offset(rowDelta, colDelta int) (Address, error) {
	out := a
	if !a.RowAbs {
		out.Row += rowDelta
	}
	if !a.ColAbs {
		out.Col += colDelta
	}
	if out.Row < 0 || out.Col < 0 {
		return a, fmt.Errorf("%w: %s offset by (%d,%d)", ErrInvalidReference, a, rowDelta, colDelta)
	}
	return out, nil
}

// Move shifts the physical position by the deltas regardless of absolute flags.
func (a Address) Move(rowDelta, colDelta int) (Address, error) {
	out := a
	out.Row += rowDelta
	out.Col += colDelta
	if out.Row < 0 || out.Col < 0 {
		return a, fmt.Errorf("%w: %s moved by (%d,%d)", ErrInvalidReference, a, rowDelta, colDelta)
	}
	return out, nil
}

// Less orders addresses row-major.
func (a Address) Less(b Address) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// ColToName converts a 0-based column index to a column name.
// 0→"A", 25→"Z", 26→"AA", 702→"AAA"
func ColToName(col int) string {
	if col < 0 {
		return ""
	}
	var buf [16]byte
	i := len(buf)
	col++
	for col > 0 {
		col--
		i--
		buf[i] = byte('A' + col%26)
		col /= 26
	}
	return string(buf[i:])
}

// NameToCol converts a column name to a 0-based column index.
// "A"→0, "Z"→25, "AA"→26
func NameToCol(name string) (int, error) {
	name = strings.ToUpper(name)
	if name == "" {
		return 0, fmt.Errorf("%w: empty column name", ErrInvalidReference)
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("%w: column %q", ErrInvalidReference, name)
		}
		col = col*26 + int(ch-'A') + 1
		if col-1 > MaxCol {
			return 0, fmt.Errorf("%w: column %q out of range", ErrInvalidReference, name)
		}
	}
	return col - 1, nil
}
