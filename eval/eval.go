// Package eval implements the arithmetic expression evaluator of
// spec.md 4.B: a self-contained lexer and recursive-descent parser over
// integers, with a configurable output radix and minimum field width.
package eval

import "github.com/m4go/m4go/numb"

// NumberFactory returns a new, zero-valued Number of the backend the
// caller wants (numb.Fixed64 or numb.Rational). Evaluate calls it
// whenever it needs a fresh value (several times per literal while
// accumulating its digits), so the whole expression is evaluated in a
// single, consistent backend.
type NumberFactory func() numb.Number

// Evaluate parses expr and returns its formatted value at the given
// radix (2..36) and minimum width (positive), using the supplied
// backend. Radix and width are caller responsibilities (spec.md 6): an
// out-of-range radix or non-positive width is a programmer error, not
// an evaluator error, and is not validated here.
func Evaluate(expr string, radix, width int, newNum NumberFactory) (string, error) {
	s := newScanner(expr, newNum)
	p := &parser{s: s}
	result, err := p.parse()
	if err != nil {
		return "", err
	}
	return result.Format(radix, width), nil
}
