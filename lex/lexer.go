// Package lex implements the stateful, reconfigurable lexer of
// spec.md 4.D: it turns the byte stream presented by package input
// into a stream of tokens, consulting a mutable Syntax for the current
// quote, comment, and word-token rules.
package lex

import (
	"fmt"

	"github.com/m4go/m4go/diag"
	"github.com/m4go/m4go/input"
)

// Lexer produces one token per call to Next, tracking a single token
// of lookahead for PeekType.
type Lexer struct {
	stack  *input.Stack
	syntax *Syntax

	hasPending bool
	pending    Token
	pendingErr error
}

// New returns a Lexer reading from stack under syntax. Both are held
// by reference: builtin handlers mutate syntax directly between
// tokens, and the driver pushes further input onto stack as macros
// expand.
func New(stack *input.Stack, syntax *Syntax) *Lexer {
	return &Lexer{stack: stack, syntax: syntax}
}

// PeekType reports the TokenType the next Next call will return. It
// scans that token ahead and holds it: the token's bytes are taken off
// the input stack now, so text pushed onto the stack before the
// following Next is read after the held token, not before it.
// Idempotent: repeated calls return the same answer, and the following
// Next returns exactly the peeked token.
func (l *Lexer) PeekType() (TokenType, error) {
	if !l.hasPending {
		l.pending, l.pendingErr = l.scan()
		l.hasPending = true
	}
	return l.pending.Type, l.pendingErr
}

// Next returns the next token.
func (l *Lexer) Next() (Token, error) {
	if l.hasPending {
		t, err := l.pending, l.pendingErr
		l.hasPending = false
		l.pending = Token{}
		l.pendingErr = nil
		return t, err
	}
	return l.scan()
}

func (l *Lexer) pos() diag.Position {
	return diag.Position{File: l.stack.CurrentFile(), Line: l.stack.CurrentLine()}
}

func (l *Lexer) scan() (Token, error) {
	if fn, ok := l.stack.PeekMacro(); ok {
		l.stack.Advance() // consumes the marker, per MacroMarker's self-consuming contract
		return Token{Type: TokMacro, Macro: fn, Pos: l.pos()}, nil
	}

	pos := l.pos()
	b := l.stack.Peek()
	if b == input.EOF {
		return Token{Type: TokEOF, Pos: pos}, nil
	}

	c := byte(l.stack.Advance())

	if l.syntax.BComm != "" && l.syntax.EComm != "" && c == l.syntax.BComm[0] {
		if tryMatchTail(l.stack, l.syntax.BComm[1:]) {
			return l.scanComment(pos)
		}
	}

	if l.wordStart(c) {
		return l.scanWord(c, pos)
	}

	if l.syntax.LQuote != "" && l.syntax.RQuote != "" && c == l.syntax.LQuote[0] {
		if tryMatchTail(l.stack, l.syntax.LQuote[1:]) {
			return l.scanQuoted(pos)
		}
	}

	switch c {
	case '(':
		return Token{Type: TokOpen, Text: "(", Pos: pos}, nil
	case ',':
		return Token{Type: TokComma, Text: ",", Pos: pos}, nil
	case ')':
		return Token{Type: TokClose, Text: ")", Pos: pos}, nil
	default:
		return Token{Type: TokSimple, Text: string(c), Pos: pos}, nil
	}
}

// tryMatchTail attempts to match tail against the upcoming bytes of
// stack, one at a time. On success, every byte in tail has been
// consumed. On failure, any bytes already consumed are pushed back as
// a synthetic string source (spec.md 4.D/9), so nothing already read
// is lost.
func tryMatchTail(stack *input.Stack, tail string) bool {
	if len(tail) == 0 {
		return true
	}
	consumed := make([]byte, 0, len(tail))
	for i := 0; i < len(tail); i++ {
		b := stack.Peek()
		if b < 0 || byte(b) != tail[i] {
			if len(consumed) > 0 {
				stack.PushString(string(consumed))
			}
			return false
		}
		stack.Advance()
		consumed = append(consumed, tail[i])
	}
	return true
}

func (l *Lexer) wordStart(c byte) bool {
	if l.syntax.WordRe != nil {
		loc := l.syntax.WordRe.FindIndex([]byte{c})
		return loc != nil && loc[0] == 0 && loc[1] == 1
	}
	return isDefaultWordStart(c)
}

func isDefaultWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDefaultWordCont(c byte) bool {
	return isDefaultWordStart(c) || (c >= '0' && c <= '9')
}

func (l *Lexer) scanWord(first byte, pos diag.Position) (Token, error) {
	buf := []byte{first}

	if l.syntax.WordRe == nil {
		for {
			b := l.stack.Peek()
			if b < 0 || !isDefaultWordCont(byte(b)) {
				break
			}
			l.stack.Advance()
			buf = append(buf, byte(b))
		}
		return Token{Type: TokWord, Text: string(buf), Pos: pos}, nil
	}

	re := l.syntax.WordRe
	for {
		b := l.stack.Peek()
		if b < 0 {
			break
		}
		candidate := append(append([]byte{}, buf...), byte(b))
		loc := re.FindIndex(candidate)
		if loc == nil || loc[0] != 0 || loc[1] != len(candidate) {
			break
		}
		l.stack.Advance()
		buf = candidate
	}

	text := string(buf)
	if re.NumSubexp() > 0 {
		if m := re.FindSubmatch(buf); len(m) > 1 && m[1] != nil {
			text = string(m[1])
		}
	}
	return Token{Type: TokWord, Text: text, Pos: pos}, nil
}

// scanComment reads through the matching ecomm delimiter (bcomm's
// first byte and full tail have already been consumed by the caller).
// The returned STRING payload is bcomm, the interior bytes, and ecomm
// itself -- the whole comment is emitted verbatim to output, not
// discarded, matching the glossary's definition of Comment.
func (l *Lexer) scanComment(pos diag.Position) (Token, error) {
	buf := []byte(l.syntax.BComm)
	ecomm := l.syntax.EComm
	for {
		b := l.stack.Peek()
		if b < 0 {
			return Token{}, input.NewFatalError(diag.New(pos, diag.KindUnterminatedComment, "end of input inside comment"))
		}
		if byte(b) == ecomm[0] {
			l.stack.Advance()
			if tryMatchTail(l.stack, ecomm[1:]) {
				buf = append(buf, ecomm...)
				return Token{Type: TokString, Text: string(buf), Pos: pos}, nil
			}
			buf = append(buf, byte(b))
			continue
		}
		l.stack.Advance()
		buf = append(buf, byte(b))
	}
}

// scanQuoted reads balanced lquote/rquote text (lquote's first byte
// and full tail have already been consumed by the caller). Nested
// lquote/rquote pairs are preserved literally in the payload; only the
// outermost pair is stripped.
func (l *Lexer) scanQuoted(pos diag.Position) (Token, error) {
	depth := 1
	var buf []byte
	lq, rq := l.syntax.LQuote, l.syntax.RQuote
	for {
		b := l.stack.Peek()
		if b < 0 {
			return Token{}, input.NewFatalError(diag.New(pos, diag.KindUnterminatedQuote, "end of input inside quoted string"))
		}
		switch {
		case byte(b) == lq[0]:
			l.stack.Advance()
			if tryMatchTail(l.stack, lq[1:]) {
				depth++
				buf = append(buf, lq...)
				continue
			}
			buf = append(buf, byte(b))
		case byte(b) == rq[0]:
			l.stack.Advance()
			if tryMatchTail(l.stack, rq[1:]) {
				depth--
				if depth == 0 {
					return Token{Type: TokString, Text: string(buf), Pos: pos}, nil
				}
				buf = append(buf, rq...)
				continue
			}
			buf = append(buf, byte(b))
		default:
			l.stack.Advance()
			buf = append(buf, byte(b))
		}
	}
}

// Describe renders a token for diagnostics and debugging (used by the
// interactive trace REPL's token-stream pane).
func (t Token) Describe() string {
	if t.Type == TokMacro {
		return fmt.Sprintf("%s MACDEF", t.Pos)
	}
	return fmt.Sprintf("%s %s %q", t.Pos, t.Type, t.Text)
}
