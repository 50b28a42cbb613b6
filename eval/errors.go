package eval

import "errors"

// Sentinel errors returned by Evaluate, matching the eval_error taxonomy
// of spec.md 4.B. Callers distinguish them with errors.Is.
var (
	ErrMissingRight = errors.New("eval: missing right parenthesis")
	ErrSyntax       = errors.New("eval: syntax error")
	ErrUnknownInput = errors.New("eval: unknown input")
	ErrExcessInput  = errors.New("eval: excess input")
	ErrDivideZero   = errors.New("eval: divide by zero")
	ErrModuloZero   = errors.New("eval: modulo by zero")
)
