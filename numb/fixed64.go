package numb

import "strings"

// Fixed64 is a Number backed by a wrapping, two's-complement int64.
// Overflow is silent, matching the original plain-`eval` backend: no
// diagnostic is raised, the value simply wraps.
type Fixed64 struct {
	v int64
}

// NewFixed64 returns a Fixed64 Number initialized to zero.
func NewFixed64() *Fixed64 { return &Fixed64{} }

func (n *Fixed64) SetInt64(v int64) Number { n.v = v; return n }

func (n *Fixed64) Clone() Number { return &Fixed64{v: n.v} }

func asFixed64(n Number) int64 { return n.(*Fixed64).v }

func (n *Fixed64) Add(other Number) Number { return &Fixed64{v: n.v + asFixed64(other)} }
func (n *Fixed64) Sub(other Number) Number { return &Fixed64{v: n.v - asFixed64(other)} }
func (n *Fixed64) Mul(other Number) Number { return &Fixed64{v: n.v * asFixed64(other)} }

func (n *Fixed64) Div(other Number) (Number, error) {
	d := asFixed64(other)
	if d == 0 {
		return nil, ErrDivideByZero
	}
	return &Fixed64{v: n.v / d}, nil
}

func (n *Fixed64) Mod(other Number) (Number, error) {
	d := asFixed64(other)
	if d == 0 {
		return nil, ErrDivideByZero
	}
	return &Fixed64{v: n.v % d}, nil
}

func (n *Fixed64) Ratio(other Number) (Number, error) {
	// Identical to Div for the fixed-width integer backing; see
	// spec.md 4.B and 9 (Open Questions) for why the operator exists
	// at all.
	return n.Div(other)
}

func (n *Fixed64) Negate() Number { return &Fixed64{v: -n.v} }
func (n *Fixed64) BitNot() Number { return &Fixed64{v: ^n.v} }

func (n *Fixed64) LogicalNot() Number {
	if n.v == 0 {
		return &Fixed64{v: 1}
	}
	return &Fixed64{v: 0}
}

func b2i64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (n *Fixed64) LogicalAnd(other Number) Number {
	return &Fixed64{v: b2i64(n.v != 0 && asFixed64(other) != 0)}
}

func (n *Fixed64) LogicalOr(other Number) Number {
	return &Fixed64{v: b2i64(n.v != 0 || asFixed64(other) != 0)}
}

func (n *Fixed64) BitAnd(other Number) Number { return &Fixed64{v: n.v & asFixed64(other)} }
func (n *Fixed64) BitOr(other Number) Number  { return &Fixed64{v: n.v | asFixed64(other)} }
func (n *Fixed64) BitXor(other Number) Number { return &Fixed64{v: n.v ^ asFixed64(other)} }

func (n *Fixed64) Lshift(other Number) Number {
	return &Fixed64{v: n.v << uint(asFixed64(other)&63)}
}

func (n *Fixed64) Rshift(other Number) Number {
	return &Fixed64{v: n.v >> uint(asFixed64(other)&63)}
}

func (n *Fixed64) CmpEq(other Number) Number { return &Fixed64{v: b2i64(n.v == asFixed64(other))} }
func (n *Fixed64) CmpNe(other Number) Number { return &Fixed64{v: b2i64(n.v != asFixed64(other))} }
func (n *Fixed64) CmpLt(other Number) Number { return &Fixed64{v: b2i64(n.v < asFixed64(other))} }
func (n *Fixed64) CmpLe(other Number) Number { return &Fixed64{v: b2i64(n.v <= asFixed64(other))} }
func (n *Fixed64) CmpGt(other Number) Number { return &Fixed64{v: b2i64(n.v > asFixed64(other))} }
func (n *Fixed64) CmpGe(other Number) Number { return &Fixed64{v: b2i64(n.v >= asFixed64(other))} }

func (n *Fixed64) Decr() Number { return &Fixed64{v: n.v - 1} }

// Invert always yields 0, whatever the receiver: the original's
// iterated-multiply-by-reciprocal trick degrades to zero under plain
// integer arithmetic for |x|>1, and this version returns 0 for every x,
// including -1 and 1. So Pow with any negative exponent on a Fixed64
// yields 0 (1**-1 included), the documented quirk of spec.md 4.B/9.
func (n *Fixed64) Invert() Number { return &Fixed64{v: 0} }

func (n *Fixed64) Sign() int {
	switch {
	case n.v < 0:
		return -1
	case n.v > 0:
		return 1
	default:
		return 0
	}
}

func (n *Fixed64) IsZero() bool { return n.v == 0 }

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

func (n *Fixed64) Format(radix, width int) string {
	neg := n.v < 0
	u := uint64(n.v)
	if neg {
		u = uint64(-n.v)
	}
	var sb strings.Builder
	buf := make([]byte, 0, 64)
	if u == 0 {
		buf = append(buf, '0')
	}
	base := uint64(radix)
	for u > 0 {
		buf = append(buf, digits[u%base])
		u /= base
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	pad := width - len(buf)
	if neg {
		sb.WriteByte('-')
	}
	for ; pad > 0; pad-- {
		sb.WriteByte('0')
	}
	sb.Write(buf)
	return sb.String()
}
