package lex_test

import (
	"testing"

	"github.com/m4go/m4go/input"
	"github.com/m4go/m4go/lex"
)

func tokenize(t *testing.T, text string, syn *lex.Syntax) []lex.Token {
	t.Helper()
	var stack input.Stack
	stack.PushString(text)
	if syn == nil {
		syn = lex.NewSyntax()
	}
	l := lex.New(&stack, syn)
	var toks []lex.Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Type == lex.TokEOF {
			return toks
		}
	}
}

func assertTypes(t *testing.T, toks []lex.Token, want ...lex.TokenType) {
	t.Helper()
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: expected %s, got %s (%q)", i, w, toks[i].Type, toks[i].Text)
		}
	}
}

func TestScenarioArgumentList(t *testing.T) {
	toks := tokenize(t, "foo(bar, baz)", nil)
	assertTypes(t, toks,
		lex.TokWord, lex.TokOpen, lex.TokWord, lex.TokComma, lex.TokSimple,
		lex.TokWord, lex.TokClose, lex.TokEOF)
	if toks[0].Text != "foo" || toks[2].Text != "bar" || toks[4].Text != " " || toks[5].Text != "baz" {
		t.Errorf("unexpected token text: %+v", toks)
	}
}

func TestScenarioNestedQuotes(t *testing.T) {
	toks := tokenize(t, "`hello `world' again'", nil)
	assertTypes(t, toks, lex.TokString, lex.TokEOF)
	if toks[0].Text != "hello `world' again" {
		t.Errorf("expected %q, got %q", "hello `world' again", toks[0].Text)
	}
}

func TestScenarioCommentPassesThroughVerbatim(t *testing.T) {
	toks := tokenize(t, "# comment\nafter", nil)
	assertTypes(t, toks, lex.TokString, lex.TokWord, lex.TokEOF)
	if toks[0].Text != "# comment\n" {
		t.Errorf("expected %q, got %q", "# comment\n", toks[0].Text)
	}
	if toks[1].Text != "after" {
		t.Errorf("expected after, got %q", toks[1].Text)
	}
}

func TestScenarioChangedQuoteDelimiters(t *testing.T) {
	syn := lex.NewSyntax()
	syn.SetQuotes("[[", "]]")
	toks := tokenize(t, "[[a`b]]", syn)
	assertTypes(t, toks, lex.TokString, lex.TokEOF)
	if toks[0].Text != "a`b" {
		t.Errorf("expected %q, got %q", "a`b", toks[0].Text)
	}
}

func TestScenarioCommentsDisabled(t *testing.T) {
	syn := lex.NewSyntax()
	syn.SetComment("", "")
	toks := tokenize(t, "# not a comment", syn)
	assertTypes(t, toks,
		lex.TokSimple, lex.TokSimple, lex.TokWord, lex.TokSimple, lex.TokWord,
		lex.TokSimple, lex.TokWord, lex.TokEOF)
	if toks[0].Text != "#" {
		t.Errorf("expected literal '#', got %q", toks[0].Text)
	}
}

func TestPeekTypeIsIdempotentAndMatchesNext(t *testing.T) {
	var stack input.Stack
	stack.PushString("foo(")
	l := lex.New(&stack, lex.NewSyntax())

	tt1, err := l.PeekType()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tt2, err := l.PeekType()
	if err != nil || tt2 != tt1 {
		t.Fatalf("PeekType not idempotent: %v vs %v (err %v)", tt1, tt2, err)
	}
	next, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Type != tt1 || next.Text != "foo" {
		t.Errorf("Next did not match peeked token: %+v", next)
	}
	peeked, err := l.PeekType()
	if err != nil || peeked != lex.TokOpen {
		t.Errorf("expected to peek OPEN next, got %v (err %v)", peeked, err)
	}
}

func TestUnterminatedQuoteIsFatal(t *testing.T) {
	var stack input.Stack
	stack.PushString("`unterminated")
	l := lex.New(&stack, lex.NewSyntax())
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected error for unterminated quote")
	}
	if _, ok := input.AsFatalError(err); !ok {
		t.Errorf("expected a FatalError, got %T: %v", err, err)
	}
}

func TestUnterminatedCommentIsFatal(t *testing.T) {
	var stack input.Stack
	stack.PushString("# no newline here")
	l := lex.New(&stack, lex.NewSyntax())
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected error for unterminated comment")
	}
	if _, ok := input.AsFatalError(err); !ok {
		t.Errorf("expected a FatalError, got %T: %v", err, err)
	}
}

func TestCustomWordRegexpCaptureGroup(t *testing.T) {
	syn := lex.NewSyntax()
	if err := syn.SetWordRegexp(`\$([a-zA-Z0-9_]*)`); err != nil {
		t.Fatalf("failed to compile pattern: %v", err)
	}
	toks := tokenize(t, "$foo", syn)
	assertTypes(t, toks, lex.TokWord, lex.TokEOF)
	if toks[0].Text != "foo" {
		t.Errorf("expected capture group text foo, got %q", toks[0].Text)
	}
}

func TestMacroMarkerEmitsMacdef(t *testing.T) {
	var stack input.Stack
	stack.PushString("x")
	stack.PushMacroMarker("define")
	l := lex.New(&stack, lex.NewSyntax())
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != lex.TokMacro || tok.Macro != input.BuiltinFunc("define") {
		t.Errorf("expected MACDEF carrying define, got %+v", tok)
	}
	tok2, err := l.Next()
	if err != nil || tok2.Type != lex.TokWord || tok2.Text != "x" {
		t.Errorf("expected WORD x next, got %+v (err %v)", tok2, err)
	}
}
