package input

import (
	"github.com/m4go/m4go/diag"
	"github.com/pkg/errors"
)

// FatalError wraps a *diag.Diagnostic for the two conditions spec.md 7
// classifies as fatal-abort rather than recoverable: end of input
// inside a quoted string, and end of input inside a comment. Unlike an
// ordinary diagnostic, which is collected into a diag.List and
// reported once the whole run finishes, a FatalError is meant to
// unwind immediately.
//
// It is annotated with github.com/pkg/errors at the point it crosses
// from the lexer into the expansion driver, the same role that package
// plays annotating I/O failures crossing from the memory-image loader
// into its caller in the original's vm/mem.go.
type FatalError struct {
	*diag.Diagnostic
}

// NewFatalError builds a FatalError from d, attaching a stack trace.
func NewFatalError(d *diag.Diagnostic) error {
	return errors.WithStack(&FatalError{Diagnostic: d})
}

// AsFatalError reports whether err is, or wraps, a *FatalError, and
// returns its diagnostic if so.
func AsFatalError(err error) (*diag.Diagnostic, bool) {
	var fe *FatalError
	if errors.As(err, &fe) {
		return fe.Diagnostic, true
	}
	return nil, false
}
