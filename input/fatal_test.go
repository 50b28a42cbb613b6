package input

import (
	"testing"

	"github.com/m4go/m4go/diag"
)

func TestNewFatalErrorRoundTripsThroughAsFatalError(t *testing.T) {
	d := diag.New(diag.Position{File: "in.m4", Line: 3}, diag.KindUnterminatedQuote, "end of input inside quoted string")
	err := NewFatalError(d)

	got, ok := AsFatalError(err)
	if !ok {
		t.Fatalf("expected AsFatalError to recognize %v", err)
	}
	if got != d {
		t.Errorf("expected the original diagnostic back, got %v", got)
	}
	if err.Error() != d.String() {
		t.Errorf("expected Error() %q to match diagnostic string %q", err.Error(), d.String())
	}
}

func TestAsFatalErrorRejectsOrdinaryErrors(t *testing.T) {
	if _, ok := AsFatalError(diag.New(diag.Position{Line: 1}, diag.KindSyntax, "boom")); ok {
		t.Errorf("expected a plain diagnostic not to count as fatal")
	}
}
