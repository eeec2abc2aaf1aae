package vicalc

import (
	"fmt"
	"slices"

	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/formula"
	"github.com/javajack/vicalc/functions"
	"github.com/javajack/vicalc/value"
)

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // The cell evaluates to an error
	SeverityWarning                 // The cell may not compute what was intended
)

// ValidationIssue is a single problem found in a cell.
type ValidationIssue struct {
	Severity Severity
	Cell     cellref.Address
	Message  string
}

// String formats the issue as "[ERROR] A2: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.Cell.Name(), v.Message)
}

// Validate checks every formula for syntax errors, unknown functions,
// wrong argument counts, #REF! left behind by structural edits and
// circular references. Issues are ordered by cell in row-major order.
func (s *Session) Validate() []ValidationIssue {
	var issues []ValidationIssue
	for _, a := range s.sheet.Sorted() {
		c, _ := s.sheet.Cell(a)
		if err := c.ParseErr(); err != nil {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError,
				Cell:     a,
				Message:  fmt.Sprintf("invalid formula %q: %v", c.Raw, err),
			})
			continue
		}
		if n := c.Formula(); n != nil {
			issues = append(issues, checkFormula(a, n)...)
		}
	}
	cycles := s.sheet.Cycles()
	slices.SortFunc(cycles, func(a, b cellref.Address) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	for _, a := range cycles {
		issues = append(issues, ValidationIssue{
			Severity: SeverityError,
			Cell:     a,
			Message:  "circular reference",
		})
	}
	return issues
}

// checkFormula inspects a parsed formula for calls the library cannot
// resolve and for reference errors.
func checkFormula(a cellref.Address, n formula.Node) []ValidationIssue {
	var issues []ValidationIssue
	refErrors := 0
	formula.Walk(n, func(n formula.Node) bool {
		switch t := n.(type) {
		case *formula.Call:
			fn, ok := functions.Lookup(t.Name)
			switch {
			case !ok:
				issues = append(issues, ValidationIssue{
					Severity: SeverityError,
					Cell:     a,
					Message:  fmt.Sprintf("unknown function %s", t.Name),
				})
			case !fn.Accepts(len(t.Args)):
				issues = append(issues, ValidationIssue{
					Severity: SeverityError,
					Cell:     a,
					Message:  fmt.Sprintf("%s called with %d arguments", fn.Name, len(t.Args)),
				})
			}
		case *formula.Literal:
			if t.Value.IsError() && t.Value.ErrKind() == value.ErrRef {
				refErrors++
			}
		}
		return true
	})
	if refErrors > 0 {
		issues = append(issues, ValidationIssue{
			Severity: SeverityWarning,
			Cell:     a,
			Message:  fmt.Sprintf("formula has %d invalidated reference(s)", refErrors),
		})
	}
	return issues
}
