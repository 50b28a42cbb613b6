package numb

import (
	"math/big"
	"strings"
)

// Rational is a Number backed by an arbitrary-precision math/big.Rat.
// Division, modulo and exponentiation by a negative exponent are exact
// (no silent wraparound, no "negative exponent yields 0" quirk — that
// quirk is specific to Fixed64).
type Rational struct {
	v *big.Rat
}

// NewRational returns a Rational Number initialized to zero.
func NewRational() *Rational { return &Rational{v: new(big.Rat)} }

func (n *Rational) SetInt64(v int64) Number {
	n.v = new(big.Rat).SetInt64(v)
	return n
}

func (n *Rational) Clone() Number { return &Rational{v: new(big.Rat).Set(n.v)} }

func asRat(n Number) *big.Rat { return n.(*Rational).v }

func (n *Rational) Add(other Number) Number {
	return &Rational{v: new(big.Rat).Add(n.v, asRat(other))}
}

func (n *Rational) Sub(other Number) Number {
	return &Rational{v: new(big.Rat).Sub(n.v, asRat(other))}
}

func (n *Rational) Mul(other Number) Number {
	return &Rational{v: new(big.Rat).Mul(n.v, asRat(other))}
}

// toBigInt truncates a rational to an integer toward zero.
func toBigInt(r *big.Rat) *big.Int {
	q := new(big.Int)
	q.Quo(r.Num(), r.Denom())
	return q
}

func (n *Rational) Div(other Number) (Number, error) {
	d := asRat(other)
	if d.Sign() == 0 {
		return nil, ErrDivideByZero
	}
	a, b := toBigInt(n.v), toBigInt(d)
	q := new(big.Int).Quo(a, b)
	return &Rational{v: new(big.Rat).SetInt(q)}, nil
}

func (n *Rational) Mod(other Number) (Number, error) {
	d := asRat(other)
	if d.Sign() == 0 {
		return nil, ErrDivideByZero
	}
	a, b := toBigInt(n.v), toBigInt(d)
	r := new(big.Int).Rem(a, b)
	return &Rational{v: new(big.Rat).SetInt(r)}, nil
}

// Ratio is exact rational division (the only place Fixed64 and Rational
// genuinely diverge): unlike Div it does not truncate to an integer.
func (n *Rational) Ratio(other Number) (Number, error) {
	d := asRat(other)
	if d.Sign() == 0 {
		return nil, ErrDivideByZero
	}
	return &Rational{v: new(big.Rat).Quo(n.v, d)}, nil
}

func (n *Rational) Negate() Number { return &Rational{v: new(big.Rat).Neg(n.v)} }

// BitNot, Lshift, Rshift, BitAnd/Or/Xor operate on the truncated integer
// value, since bitwise operations on fractions are not meaningful.
func (n *Rational) BitNot() Number {
	return &Rational{v: new(big.Rat).SetInt(new(big.Int).Not(toBigInt(n.v)))}
}

func (n *Rational) LogicalNot() Number {
	return boolRat(n.v.Sign() == 0)
}

func boolRat(b bool) *Rational {
	if b {
		return &Rational{v: big.NewRat(1, 1)}
	}
	return &Rational{v: new(big.Rat)}
}

func (n *Rational) LogicalAnd(other Number) Number {
	return boolRat(n.v.Sign() != 0 && asRat(other).Sign() != 0)
}

func (n *Rational) LogicalOr(other Number) Number {
	return boolRat(n.v.Sign() != 0 || asRat(other).Sign() != 0)
}

func (n *Rational) BitAnd(other Number) Number {
	r := new(big.Int).And(toBigInt(n.v), toBigInt(asRat(other)))
	return &Rational{v: new(big.Rat).SetInt(r)}
}

func (n *Rational) BitOr(other Number) Number {
	r := new(big.Int).Or(toBigInt(n.v), toBigInt(asRat(other)))
	return &Rational{v: new(big.Rat).SetInt(r)}
}

func (n *Rational) BitXor(other Number) Number {
	r := new(big.Int).Xor(toBigInt(n.v), toBigInt(asRat(other)))
	return &Rational{v: new(big.Rat).SetInt(r)}
}

func (n *Rational) Lshift(other Number) Number {
	shift := uint(toBigInt(asRat(other)).Uint64())
	r := new(big.Int).Lsh(toBigInt(n.v), shift)
	return &Rational{v: new(big.Rat).SetInt(r)}
}

func (n *Rational) Rshift(other Number) Number {
	shift := uint(toBigInt(asRat(other)).Uint64())
	r := new(big.Int).Rsh(toBigInt(n.v), shift)
	return &Rational{v: new(big.Rat).SetInt(r)}
}

func (n *Rational) CmpEq(other Number) Number { return boolRat(n.v.Cmp(asRat(other)) == 0) }
func (n *Rational) CmpNe(other Number) Number { return boolRat(n.v.Cmp(asRat(other)) != 0) }
func (n *Rational) CmpLt(other Number) Number { return boolRat(n.v.Cmp(asRat(other)) < 0) }
func (n *Rational) CmpLe(other Number) Number { return boolRat(n.v.Cmp(asRat(other)) <= 0) }
func (n *Rational) CmpGt(other Number) Number { return boolRat(n.v.Cmp(asRat(other)) > 0) }
func (n *Rational) CmpGe(other Number) Number { return boolRat(n.v.Cmp(asRat(other)) >= 0) }

func (n *Rational) Decr() Number {
	return &Rational{v: new(big.Rat).Sub(n.v, big.NewRat(1, 1))}
}

// Invert computes the exact multiplicative inverse; unlike Fixed64 this
// never degrades to zero (division by zero here would mean the base of
// a negative-exponent Pow was itself zero, which Pow never triggers
// since it only calls Invert on the exponent's sign, not its own zero
// check).
func (n *Rational) Invert() Number {
	return &Rational{v: new(big.Rat).Inv(n.v)}
}

func (n *Rational) Sign() int { return n.v.Sign() }

func (n *Rational) IsZero() bool { return n.v.Sign() == 0 }

// Format renders an integral value the same way Fixed64 does. A
// non-integral value (denominator != 1, reachable only via the `:`
// ratio operator) is rendered as "numerator/denominator" and width is
// ignored: neither part is padded, matching the historical GMP `mpeval`
// module which never needed to pad fractions.
func (n *Rational) Format(radix, width int) string {
	if n.v.IsInt() {
		return formatBigInt(n.v.Num(), radix, width)
	}
	return formatBigInt(n.v.Num(), radix, 1) + "/" + formatBigInt(n.v.Denom(), radix, 1)
}

func formatBigInt(i *big.Int, radix, width int) string {
	s := i.Text(radix)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if pad := width - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	if neg {
		s = "-" + s
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
