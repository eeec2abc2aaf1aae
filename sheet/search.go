package sheet

import (
	"slices"
	"strings"

	"github.com/javajack/vicalc/cellref"
)

// Find returns the populated cells whose display text or raw input contains
// query, ignoring case, in row-major order.
func (s *Sheet) Find(query string) []cellref.Address {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	var out []cellref.Address
	for a, c := range s.cells {
		if strings.Contains(strings.ToLower(c.Value.String()), q) ||
			strings.Contains(strings.ToLower(c.Raw), q) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, rowMajor)
	return out
}

// FindNext returns the first match strictly after from in row-major order,
// wrapping to the start. With backward set it searches the other way.
func (s *Sheet) FindNext(query string, from cellref.Address, backward bool) (cellref.Address, bool) {
	matches := s.Find(query)
	if len(matches) == 0 {
		return cellref.Address{}, false
	}
	from = from.Key()
	if backward {
		for i := len(matches) - 1; i >= 0; i-- {
			if rowMajor(matches[i], from) < 0 {
				return matches[i], true
			}
		}
		return matches[len(matches)-1], true
	}
	for _, a := range matches {
		if rowMajor(a, from) > 0 {
			return a, true
		}
	}
	return matches[0], true
}
