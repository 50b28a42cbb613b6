package lex

import (
	"github.com/m4go/m4go/diag"
	"github.com/m4go/m4go/input"
)

// TokenType enumerates the lexer's token kinds (spec.md 4.D).
type TokenType int

const (
	TokEOF TokenType = iota
	TokString
	TokWord
	TokOpen
	TokComma
	TokClose
	TokSimple
	TokMacro
)

func (t TokenType) String() string {
	switch t {
	case TokEOF:
		return "EOF"
	case TokString:
		return "STRING"
	case TokWord:
		return "WORD"
	case TokOpen:
		return "OPEN"
	case TokComma:
		return "COMMA"
	case TokClose:
		return "CLOSE"
	case TokSimple:
		return "SIMPLE"
	case TokMacro:
		return "MACDEF"
	default:
		return "UNKNOWN"
	}
}

// Token is one lexical unit. Macro is only populated for TokMacro.
type Token struct {
	Type  TokenType
	Text  string
	Macro input.BuiltinFunc
	Pos   diag.Position
}
