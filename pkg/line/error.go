package line

import "fmt"

// IOError reports a failed drive of a named chip input. It identifies
// which line failed and the attempted operation; the underlying backend
// error is available via Unwrap.
type IOError struct {
	// Line is the role label of the failed input (for example "A1" or "G1").
	Line string

	// Op is the attempted operation.
	Op Op

	// Err is the backend error.
	Err error
}

// Error returns "line <label>: <op>: <cause>".
func (e *IOError) Error() string {
	return fmt.Sprintf("line %s: %s: %v", e.Line, e.Op, e.Err)
}

// Unwrap returns the backend error.
func (e *IOError) Unwrap() error {
	return e.Err
}
