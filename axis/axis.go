// Package axis defines the editing axis that steers directional operations.
package axis

import (
	"fmt"
	"strings"
)

// Mode selects whether line-oriented operations act on rows or columns.
type Mode uint8

const (
	Row Mode = iota
	Column
)

// String returns "ROW" or "COL".
func (m Mode) String() string {
	switch m {
	case Row:
		return "ROW"
	case Column:
		return "COL"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Row {
		return Column
	}
	return Row
}

// Parse accepts "row"/"r" and "col"/"column"/"c", case-insensitively.
func Parse(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "row", "r":
		return Row, nil
	case "col", "column", "c":
		return Column, nil
	}
	return Row, fmt.Errorf("unknown axis %q", s)
}

// Step returns the (row, col) delta between consecutive repeats of a block
// of the given size. Row mode lays repeats out along the row, one block
// width apart; Column mode stacks them one block height apart.
func (m Mode) Step(width, height int) (rowDelta, colDelta int) {
	if m == Column {
		return height, 0
	}
	return 0, width
}
