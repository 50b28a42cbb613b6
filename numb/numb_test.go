package numb_test

import (
	"testing"

	"github.com/m4go/m4go/numb"
)

func TestFixed64Arithmetic(t *testing.T) {
	a := numb.NewFixed64().SetInt64(7)
	b := numb.NewFixed64().SetInt64(3)

	if got := a.Add(b).Format(10, 1); got != "10" {
		t.Errorf("Add: expected 10, got %s", got)
	}
	if got := a.Sub(b).Format(10, 1); got != "4" {
		t.Errorf("Sub: expected 4, got %s", got)
	}
	if got := a.Mul(b).Format(10, 1); got != "21" {
		t.Errorf("Mul: expected 21, got %s", got)
	}
	q, err := a.Div(b)
	if err != nil || q.Format(10, 1) != "2" {
		t.Errorf("Div: expected 2, got %s (err %v)", q.Format(10, 1), err)
	}
}

func TestFixed64DivideByZero(t *testing.T) {
	a := numb.NewFixed64().SetInt64(1)
	zero := numb.NewFixed64().SetInt64(0)
	if _, err := a.Div(zero); err != numb.ErrDivideByZero {
		t.Errorf("expected ErrDivideByZero, got %v", err)
	}
	if _, err := a.Mod(zero); err != numb.ErrDivideByZero {
		t.Errorf("expected ErrDivideByZero, got %v", err)
	}
}

func TestFixed64NegativeExponentQuirk(t *testing.T) {
	x := numb.NewFixed64().SetInt64(2)
	y := numb.NewFixed64().SetInt64(-3)
	result := numb.Pow(x, y)
	if !result.IsZero() {
		t.Errorf("expected negative exponent on Fixed64 to yield 0, got %s", result.Format(10, 1))
	}
}

func TestFixed64Format(t *testing.T) {
	tests := []struct {
		v     int64
		radix int
		width int
		want  string
	}{
		{255, 16, 1, "ff"},
		{255, 16, 4, "00ff"},
		{-5, 10, 3, "-005"},
		{0, 10, 1, "0"},
	}
	for _, tt := range tests {
		got := numb.NewFixed64().SetInt64(tt.v).Format(tt.radix, tt.width)
		if got != tt.want {
			t.Errorf("Format(%d, radix=%d, width=%d): expected %q, got %q", tt.v, tt.radix, tt.width, tt.want, got)
		}
	}
}

func TestRationalRatioIsExact(t *testing.T) {
	a := numb.NewRational().SetInt64(1)
	b := numb.NewRational().SetInt64(3)
	r, err := a.Ratio(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1/3 * 3 should be 1 exactly, unlike truncated Div.
	three := numb.NewRational().SetInt64(3)
	back := r.Mul(three)
	if back.Format(10, 1) != "1" {
		t.Errorf("expected exact round-trip to 1, got %s", back.Format(10, 1))
	}
}

func TestRationalNegativeExponentIsExact(t *testing.T) {
	x := numb.NewRational().SetInt64(2)
	y := numb.NewRational().SetInt64(-3)
	result := numb.Pow(x, y)
	if got := result.Format(10, 1); got != "1/8" {
		t.Errorf("expected 2**-3 == 1/8, got %s", got)
	}
}

func TestPowPositiveExponent(t *testing.T) {
	x := numb.NewFixed64().SetInt64(2)
	y := numb.NewFixed64().SetInt64(10)
	if got := numb.Pow(x, y).Format(10, 1); got != "1024" {
		t.Errorf("expected 1024, got %s", got)
	}
}
