package expand_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/m4go/m4go/config"
	"github.com/m4go/m4go/expand"
)

func run(t *testing.T, text string) string {
	t.Helper()
	var out bytes.Buffer
	d := expand.New(config.DefaultConfig(), &out)
	if err := d.Run("test.m4", strings.NewReader(text)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.String()
}

func TestDefineAndExpand(t *testing.T) {
	got := run(t, "define(`greeting', `hello, $1!')greeting(`world')")
	if got != "hello, world!" {
		t.Errorf("expected %q, got %q", "hello, world!", got)
	}
}

func TestUndefineRemovesMacro(t *testing.T) {
	got := run(t, "define(`x', `y')undefine(`x')x")
	if got != "x" {
		t.Errorf("expected literal x after undefine, got %q", got)
	}
}

func TestPushdefPopdefShadow(t *testing.T) {
	got := run(t, "define(`x', `outer')pushdef(`x', `inner')x popdef(`x')x")
	if got != "inner outer" {
		t.Errorf("expected %q, got %q", "inner outer", got)
	}
}

func TestDefnRoundTripsUserMacro(t *testing.T) {
	got := run(t, "define(`x', `body')define(`y', defn(`x'))y")
	if got != "body" {
		t.Errorf("expected body, got %q", got)
	}
}

func TestDefnOfBuiltinTransfersBuiltinNature(t *testing.T) {
	got := run(t, "pushdef(`plus', defn(`incr'))plus(`4')")
	if got != "5" {
		t.Errorf("expected 5, got %q", got)
	}
}

func TestDnlDiscardsRestOfLine(t *testing.T) {
	got := run(t, "one\ndnl this whole line vanishes\ntwo")
	if got != "one\ntwo" {
		t.Errorf("expected %q, got %q", "one\ntwo", got)
	}
}

func TestIfdefBothBranches(t *testing.T) {
	got := run(t, "define(`x',`1')ifdef(`x',`yes',`no') ifdef(`y',`yes',`no')")
	if got != "yes no" {
		t.Errorf("expected %q, got %q", "yes no", got)
	}
}

func TestIfelseChain(t *testing.T) {
	got := run(t, "ifelse(`a',`b',`first',`a',`a',`second',`default')")
	if got != "second" {
		t.Errorf("expected second, got %q", got)
	}
}

func TestEvalBuiltin(t *testing.T) {
	got := run(t, "eval(`2**10')")
	if got != "1024" {
		t.Errorf("expected 1024, got %q", got)
	}
}

func TestArgumentsAreExpandedBeforeSubstitution(t *testing.T) {
	got := run(t, "define(`double', `eval($1*2)')double(eval(`3+1'))")
	if got != "8" {
		t.Errorf("expected 8, got %q", got)
	}
}

func TestIncrDecr(t *testing.T) {
	got := run(t, "incr(`4') decr(`4')")
	if got != "5 3" {
		t.Errorf("expected %q, got %q", "5 3", got)
	}
}

func TestLenIndexSubstrTranslit(t *testing.T) {
	got := run(t, "len(`hello') index(`hello',`l') substr(`hello',1,3) translit(`hello',`el',`ip')")
	if got != "5 2 ell hippo" {
		t.Errorf("expected %q, got %q", "5 2 ell hippo", got)
	}
}

func TestDivertAndUndivertOrdering(t *testing.T) {
	got := run(t, "divert(`1')second divert(`0')first undivert(`1')")
	if got != "first second " {
		t.Errorf("expected %q, got %q", "first second ", got)
	}
}

func TestChangequoteTakesEffectImmediately(t *testing.T) {
	got := run(t, "changequote(`[[',`]]')define([[x]], [[y]])x")
	if got != "y" {
		t.Errorf("expected y, got %q", got)
	}
}

func TestM4wrapRunsAfterMainInput(t *testing.T) {
	got := run(t, "m4wrap(`wrapped')main")
	if got != "mainwrapped" {
		t.Errorf("expected %q, got %q", "mainwrapped", got)
	}
}

func TestUnknownWordIsLiteral(t *testing.T) {
	got := run(t, "nosuchmacro(1,2)")
	if got != "nosuchmacro(1,2)" {
		t.Errorf("expected literal echo, got %q", got)
	}
}

func TestZeroArgParensYieldsOneEmptyArgument(t *testing.T) {
	got := run(t, "define(`count', `$#')count()")
	if got != "1" {
		t.Errorf("expected 1, got %q", got)
	}
}
