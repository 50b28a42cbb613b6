// Package numb provides the integer backend used by the expression
// evaluator (package eval). Two interchangeable implementations are
// provided: Fixed64, a wrapping two's-complement int64, and Rational,
// an arbitrary-precision rational backed by math/big.
package numb

import "errors"

// ErrDivideByZero is returned by Div, Mod and Ratio when the divisor is
// zero. It is distinguishable from other errors so callers can map it to
// a specific diagnostic (see eval.ErrDivideZero / eval.ErrModuloZero).
var ErrDivideByZero = errors.New("numb: division by zero")

// Number is an opaque integer value. All operations are total except
// where documented (division family). Implementations must support a
// zero Number (the result of NewFixed64() or NewRational()) being usable
// after SetInt64.
type Number interface {
	// SetInt64 sets the receiver to v and returns it.
	SetInt64(v int64) Number
	// Clone returns an independent copy of the receiver.
	Clone() Number

	Add(other Number) Number
	Sub(other Number) Number
	Mul(other Number) Number
	// Div truncates toward zero.
	Div(other Number) (Number, error)
	Mod(other Number) (Number, error)
	// Ratio performs exact division: identical to Div for integer
	// backings, exact rational division for Rational.
	Ratio(other Number) (Number, error)

	Negate() Number
	BitNot() Number
	// LogicalNot yields 1 if the receiver is zero, else 0.
	LogicalNot() Number
	// LogicalAnd/LogicalOr yield 0 or 1 and do NOT short-circuit;
	// both operands are always fully evaluated by the caller before
	// these are invoked (non-short-circuit semantics live in the
	// evaluator, not here).
	LogicalAnd(other Number) Number
	LogicalOr(other Number) Number

	BitAnd(other Number) Number
	BitOr(other Number) Number
	BitXor(other Number) Number
	Lshift(other Number) Number
	// Rshift is an arithmetic (sign-extending) right shift.
	Rshift(other Number) Number

	// Cmp* yield 0 or 1.
	CmpEq(other Number) Number
	CmpNe(other Number) Number
	CmpLt(other Number) Number
	CmpLe(other Number) Number
	CmpGt(other Number) Number
	CmpGe(other Number) Number

	Decr() Number
	// Invert computes the multiplicative inverse. Fixed64 always
	// returns 0 (see Pow's documented quirk); Rational inverts
	// exactly.
	Invert() Number

	Sign() int // -1, 0, or 1
	IsZero() bool

	// Format renders the value in the given radix (2..36), left-padded
	// with '0' to at least width digits (not truncated if longer),
	// using digits 0-9a-z, with a leading '-' for negative values.
	Format(radix, width int) string
}

// Pow computes x raised to the y-th power and stores the result in x,
// mirroring the original's numb_pow (m4/evalparse.c): iterated
// multiplication, decrementing the (possibly negated) exponent to zero.
// For a negative exponent, if x supports Invert (rationals), x is
// inverted first and the magnitude of the exponent is used; for
// backings where Invert degrades to zero (Fixed64), this yields 0 for
// any negative exponent with |x|>1 -- a documented quirk inherited from
// the original, not silently "fixed".
func Pow(x Number, y Number) Number {
	ans := x.Clone().SetInt64(1)
	yy := y.Clone()

	if yy.Sign() < 0 {
		x = x.Invert()
		yy = yy.Negate()
	}

	for yy.Sign() > 0 {
		ans = ans.Mul(x)
		yy = yy.Decr()
	}
	return ans
}
