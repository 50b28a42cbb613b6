package eval_test

import (
	"errors"
	"testing"

	"github.com/m4go/m4go/eval"
	"github.com/m4go/m4go/numb"
)

func fixed() numb.Number { return numb.NewFixed64() }

func TestEvaluateExponent(t *testing.T) {
	got, err := eval.Evaluate("2**10", 10, 1, fixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1024" {
		t.Errorf("expected 1024, got %s", got)
	}
}

func TestEvaluateNonShortCircuitLogical(t *testing.T) {
	got, err := eval.Evaluate("(1+2)*3 == 9 && 4", 10, 1, fixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1" {
		t.Errorf("expected 1, got %s", got)
	}
}

func TestEvaluateDivideByZero(t *testing.T) {
	_, err := eval.Evaluate("5/0", 10, 1, fixed)
	if !errors.Is(err, eval.ErrDivideZero) {
		t.Errorf("expected ErrDivideZero, got %v", err)
	}
}

func TestEvaluateModuloByZero(t *testing.T) {
	_, err := eval.Evaluate("5%0", 10, 1, fixed)
	if !errors.Is(err, eval.ErrModuloZero) {
		t.Errorf("expected ErrModuloZero, got %v", err)
	}
}

func TestEvaluateMixedRadixLiterals(t *testing.T) {
	// 0xff = 255, 0b10 = 2, 0r3:21 = base-3 "21" = 2*3+1 = 7.
	got, err := eval.Evaluate("0xff + 0b10 + 0r3:21", 10, 3, fixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "264" {
		t.Errorf("expected 264, got %s", got)
	}
}

func TestEvaluateMissingRightParen(t *testing.T) {
	_, err := eval.Evaluate("(1+2", 10, 1, fixed)
	if !errors.Is(err, eval.ErrMissingRight) {
		t.Errorf("expected ErrMissingRight, got %v", err)
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	_, err := eval.Evaluate("*5", 10, 1, fixed)
	if !errors.Is(err, eval.ErrSyntax) {
		t.Errorf("expected ErrSyntax, got %v", err)
	}
}

func TestEvaluateUnknownInput(t *testing.T) {
	_, err := eval.Evaluate("5 @ 3", 10, 1, fixed)
	if !errors.Is(err, eval.ErrUnknownInput) {
		t.Errorf("expected ErrUnknownInput, got %v", err)
	}
}

func TestEvaluateExcessInput(t *testing.T) {
	_, err := eval.Evaluate("5 5", 10, 1, fixed)
	if !errors.Is(err, eval.ErrExcessInput) {
		t.Errorf("expected ErrExcessInput, got %v", err)
	}
}

func TestEvaluateTrailingWhitespaceIsNotExcess(t *testing.T) {
	got, err := eval.Evaluate("5   ", 10, 1, fixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "5" {
		t.Errorf("expected 5, got %s", got)
	}
}

func TestEvaluateRoundTripRadixTen(t *testing.T) {
	for _, expr := range []string{"0", "1", "-1", "123456", "-987654321"} {
		v, err := eval.Evaluate(expr, 10, 1, fixed)
		if err != nil {
			t.Fatalf("evaluate %q: %v", expr, err)
		}
		again, err := eval.Evaluate(v, 10, 1, fixed)
		if err != nil {
			t.Fatalf("re-evaluate %q: %v", v, err)
		}
		if again != v {
			t.Errorf("round-trip mismatch for %q: got %s then %s", expr, v, again)
		}
	}
}

func TestEvaluateBitwiseLooserThanComparison(t *testing.T) {
	// Per spec.md 4.B's grammar, bitwise `|`,`^`,`&` sit between the
	// logical operators and comparisons -- looser than `==`, unlike the
	// C precedence table. "1 | 0 == 0" therefore parses as
	// "1 | (0 == 0)" == "1 | 1" == 1, not "(1|0) == 0" == 0.
	got, err := eval.Evaluate("1 | 0 == 0", 10, 1, fixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1" {
		t.Errorf("expected 1, got %s", got)
	}
}

func TestEvaluateRationalBackend(t *testing.T) {
	rat := func() numb.Number { return numb.NewRational() }
	got, err := eval.Evaluate("1:3", 10, 1, rat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1/3" {
		t.Errorf("expected 1/3, got %s", got)
	}
}
