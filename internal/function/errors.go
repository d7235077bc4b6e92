package function

import "fmt"

// ExpressionError reports function text that could not be normalized,
// parsed or compiled. No scene state changes when it is returned.
type ExpressionError struct {
	Source string
	Err    error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("invalid function %q: %v", e.Source, e.Err)
}

func (e *ExpressionError) Unwrap() error {
	return e.Err
}

func exprError(source string, format string, args ...any) error {
	return &ExpressionError{Source: source, Err: fmt.Errorf(format, args...)}
}
