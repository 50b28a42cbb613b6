package eval

import "github.com/m4go/m4go/numb"

// parser implements the grammar of spec.md 4.B by recursive descent,
// one method per precedence level, each following the same shape as
// the original's logical_or_term/logical_and_term/.../simple_term
// chain (m4/evalparse.c): read a left operand at the next-tighter
// level, then loop consuming same-precedence operators. Tokens are
// threaded through as (tokenType, value) pairs exactly as the C
// version threads (eval_token, number*) -- the "last token read" is
// always passed in, and on loop exit it is pushed back with s.undo().
type parser struct {
	s *scanner
}

func (p *parser) parse() (numb.Number, error) {
	tok, val := p.s.scan()
	result, err := p.logicalOr(tok, val)
	if err != nil {
		return nil, err
	}
	// spec.md 9: excess-input only fires after the lexer's own
	// whitespace-skip, so trailing whitespace alone is not excess.
	if tok, _ := p.s.scan(); tok != tokEOText {
		if tok == tokError {
			return nil, ErrUnknownInput
		}
		return nil, ErrExcessInput
	}
	return result, nil
}

func (p *parser) logicalOr(tok tokenType, v1 numb.Number) (numb.Number, error) {
	v1, err := p.logicalAnd(tok, v1)
	if err != nil {
		return nil, err
	}
	for {
		op, _ := p.s.scan()
		if op != tokLOr {
			p.s.undo()
			return v1, nil
		}
		tok2, v2 := p.s.scan()
		if tok2 == tokError {
			return nil, ErrUnknownInput
		}
		rhs, err := p.logicalAnd(tok2, v2)
		if err != nil {
			return nil, err
		}
		v1 = v1.LogicalOr(rhs)
	}
}

func (p *parser) logicalAnd(tok tokenType, v1 numb.Number) (numb.Number, error) {
	v1, err := p.or(tok, v1)
	if err != nil {
		return nil, err
	}
	for {
		op, _ := p.s.scan()
		if op != tokLAnd {
			p.s.undo()
			return v1, nil
		}
		tok2, v2 := p.s.scan()
		if tok2 == tokError {
			return nil, ErrUnknownInput
		}
		rhs, err := p.or(tok2, v2)
		if err != nil {
			return nil, err
		}
		v1 = v1.LogicalAnd(rhs)
	}
}

func (p *parser) or(tok tokenType, v1 numb.Number) (numb.Number, error) {
	v1, err := p.xor(tok, v1)
	if err != nil {
		return nil, err
	}
	for {
		op, _ := p.s.scan()
		if op != tokOr {
			p.s.undo()
			return v1, nil
		}
		tok2, v2 := p.s.scan()
		if tok2 == tokError {
			return nil, ErrUnknownInput
		}
		rhs, err := p.xor(tok2, v2)
		if err != nil {
			return nil, err
		}
		v1 = v1.BitOr(rhs)
	}
}

func (p *parser) xor(tok tokenType, v1 numb.Number) (numb.Number, error) {
	v1, err := p.and(tok, v1)
	if err != nil {
		return nil, err
	}
	for {
		op, _ := p.s.scan()
		if op != tokXor {
			p.s.undo()
			return v1, nil
		}
		tok2, v2 := p.s.scan()
		if tok2 == tokError {
			return nil, ErrUnknownInput
		}
		rhs, err := p.and(tok2, v2)
		if err != nil {
			return nil, err
		}
		v1 = v1.BitXor(rhs)
	}
}

func (p *parser) and(tok tokenType, v1 numb.Number) (numb.Number, error) {
	v1, err := p.notExpr(tok, v1)
	if err != nil {
		return nil, err
	}
	for {
		op, _ := p.s.scan()
		if op != tokAnd {
			p.s.undo()
			return v1, nil
		}
		tok2, v2 := p.s.scan()
		if tok2 == tokError {
			return nil, ErrUnknownInput
		}
		rhs, err := p.notExpr(tok2, v2)
		if err != nil {
			return nil, err
		}
		v1 = v1.BitAnd(rhs)
	}
}

func (p *parser) notExpr(tok tokenType, v1 numb.Number) (numb.Number, error) {
	if tok == tokNot {
		tok2, v2 := p.s.scan()
		if tok2 == tokError {
			return nil, ErrUnknownInput
		}
		v, err := p.notExpr(tok2, v2)
		if err != nil {
			return nil, err
		}
		return v.BitNot(), nil
	}
	return p.lnotExpr(tok, v1)
}

func (p *parser) lnotExpr(tok tokenType, v1 numb.Number) (numb.Number, error) {
	if tok == tokLNot {
		tok2, v2 := p.s.scan()
		if tok2 == tokError {
			return nil, ErrUnknownInput
		}
		v, err := p.lnotExpr(tok2, v2)
		if err != nil {
			return nil, err
		}
		return v.LogicalNot(), nil
	}
	return p.cmp(tok, v1)
}

func (p *parser) cmp(tok tokenType, v1 numb.Number) (numb.Number, error) {
	v1, err := p.shift(tok, v1)
	if err != nil {
		return nil, err
	}
	for {
		op, _ := p.s.scan()
		switch op {
		case tokEq, tokNotEq, tokGt, tokGtEq, tokLs, tokLsEq:
		default:
			p.s.undo()
			return v1, nil
		}
		tok2, v2 := p.s.scan()
		if tok2 == tokError {
			return nil, ErrUnknownInput
		}
		rhs, err := p.shift(tok2, v2)
		if err != nil {
			return nil, err
		}
		switch op {
		case tokEq:
			v1 = v1.CmpEq(rhs)
		case tokNotEq:
			v1 = v1.CmpNe(rhs)
		case tokGt:
			v1 = v1.CmpGt(rhs)
		case tokGtEq:
			v1 = v1.CmpGe(rhs)
		case tokLs:
			v1 = v1.CmpLt(rhs)
		case tokLsEq:
			v1 = v1.CmpLe(rhs)
		}
	}
}

func (p *parser) shift(tok tokenType, v1 numb.Number) (numb.Number, error) {
	v1, err := p.additive(tok, v1)
	if err != nil {
		return nil, err
	}
	for {
		op, _ := p.s.scan()
		if op != tokLshift && op != tokRshift {
			p.s.undo()
			return v1, nil
		}
		tok2, v2 := p.s.scan()
		if tok2 == tokError {
			return nil, ErrUnknownInput
		}
		rhs, err := p.additive(tok2, v2)
		if err != nil {
			return nil, err
		}
		if op == tokLshift {
			v1 = v1.Lshift(rhs)
		} else {
			v1 = v1.Rshift(rhs)
		}
	}
}

func (p *parser) additive(tok tokenType, v1 numb.Number) (numb.Number, error) {
	v1, err := p.multiplicative(tok, v1)
	if err != nil {
		return nil, err
	}
	for {
		op, _ := p.s.scan()
		if op != tokPlus && op != tokMinus {
			p.s.undo()
			return v1, nil
		}
		tok2, v2 := p.s.scan()
		if tok2 == tokError {
			return nil, ErrUnknownInput
		}
		rhs, err := p.multiplicative(tok2, v2)
		if err != nil {
			return nil, err
		}
		if op == tokPlus {
			v1 = v1.Add(rhs)
		} else {
			v1 = v1.Sub(rhs)
		}
	}
}

func (p *parser) multiplicative(tok tokenType, v1 numb.Number) (numb.Number, error) {
	v1, err := p.exp(tok, v1)
	if err != nil {
		return nil, err
	}
	for {
		op, _ := p.s.scan()
		switch op {
		case tokTimes, tokDivide, tokModulo, tokRatio:
		default:
			p.s.undo()
			return v1, nil
		}
		tok2, v2 := p.s.scan()
		if tok2 == tokError {
			return nil, ErrUnknownInput
		}
		rhs, err := p.exp(tok2, v2)
		if err != nil {
			return nil, err
		}
		switch op {
		case tokTimes:
			v1 = v1.Mul(rhs)
		case tokDivide:
			if rhs.IsZero() {
				return nil, ErrDivideZero
			}
			v1, _ = v1.Div(rhs)
		case tokRatio:
			if rhs.IsZero() {
				return nil, ErrDivideZero
			}
			v1, _ = v1.Ratio(rhs)
		case tokModulo:
			if rhs.IsZero() {
				return nil, ErrModuloZero
			}
			v1, _ = v1.Mod(rhs)
		}
	}
}

// exp is right-associative: unlike every other level, it recurses into
// itself (not the next-tighter level) on the right-hand side.
func (p *parser) exp(tok tokenType, v1 numb.Number) (numb.Number, error) {
	v1, err := p.unary(tok, v1)
	if err != nil {
		return nil, err
	}
	op, _ := p.s.scan()
	if op != tokExponent {
		p.s.undo()
		return v1, nil
	}
	tok2, v2 := p.s.scan()
	if tok2 == tokError {
		return nil, ErrUnknownInput
	}
	rhs, err := p.exp(tok2, v2)
	if err != nil {
		return nil, err
	}
	return numb.Pow(v1, rhs), nil
}

func (p *parser) unary(tok tokenType, v1 numb.Number) (numb.Number, error) {
	if tok == tokPlus || tok == tokMinus {
		tok2, v2 := p.s.scan()
		if tok2 == tokError {
			return nil, ErrUnknownInput
		}
		v, err := p.simple(tok2, v2)
		if err != nil {
			return nil, err
		}
		if tok == tokMinus {
			return v.Negate(), nil
		}
		return v, nil
	}
	return p.simple(tok, v1)
}

func (p *parser) simple(tok tokenType, v1 numb.Number) (numb.Number, error) {
	switch tok {
	case tokLeftP:
		tok2, v2 := p.s.scan()
		if tok2 == tokError {
			return nil, ErrUnknownInput
		}
		v, err := p.logicalOr(tok2, v2)
		if err != nil {
			return nil, err
		}
		closeTok, _ := p.s.scan()
		if closeTok == tokError {
			return nil, ErrUnknownInput
		}
		if closeTok != tokRightP {
			return nil, ErrMissingRight
		}
		return v, nil
	case tokNumber:
		return v1, nil
	default:
		return nil, ErrSyntax
	}
}
