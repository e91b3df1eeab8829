package caption

import "strings"

// ValidationError reports every problem found in the caller's input,
// not just the first one.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Issues, "; ")
}

func newValidationError(issues ...string) *ValidationError {
	return &ValidationError{Issues: issues}
}
