// Package numerr defines the error taxonomy shared by the numeric packages.
//
// All three kinds are terminal for the evaluation that raised them: inputs
// are deterministic, so retrying cannot change the outcome.
package numerr

import "fmt"

// DomainError reports an input outside the mathematically defined domain of
// an operation (x < 2 for the explicit formula, n outside the Mobius table).
type DomainError struct {
	Op     string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: value %g outside domain: %s", e.Op, e.Value, e.Reason)
}

// ParseError reports a malformed zero-list input file. The load is all or
// nothing; Line is 1-based.
type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
}

// ConvergenceError reports an iteration that hit its safety bound without
// terminating normally. It signals a configuration mismatch, not a transient
// condition.
type ConvergenceError struct {
	Op     string
	Limit  int
	Reason string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: exceeded limit %d: %s", e.Op, e.Limit, e.Reason)
}
