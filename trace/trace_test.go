package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/m4go/m4go/diag"
)

func TestDisabledLogRecordsNothing(t *testing.T) {
	l := NewLog()
	l.Record("define", []string{"x", "1"}, diag.Position{File: "a.m4", Line: 1})
	if len(l.Entries()) != 0 {
		t.Errorf("expected no entries while disabled, got %d", len(l.Entries()))
	}
}

func TestEnabledLogRecordsAndCounts(t *testing.T) {
	l := NewLog()
	l.Enabled = true
	pos := diag.Position{File: "a.m4", Line: 3}
	l.Record("define", []string{"x"}, pos)
	l.Record("define", []string{"y"}, pos)
	l.Record("ifdef", []string{"x"}, pos)

	if len(l.Entries()) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(l.Entries()))
	}
	if l.Counts("define") != 2 {
		t.Errorf("expected define count 2, got %d", l.Counts("define"))
	}
	if l.Counts("ifdef") != 1 {
		t.Errorf("expected ifdef count 1, got %d", l.Counts("ifdef"))
	}
}

func TestTopInvokedSortsDescending(t *testing.T) {
	l := NewLog()
	l.Enabled = true
	pos := diag.Position{}
	for i := 0; i < 3; i++ {
		l.Record("a", nil, pos)
	}
	l.Record("b", nil, pos)

	top := l.TopInvoked(1)
	if len(top) != 1 || top[0].Name != "a" || top[0].Count != 3 {
		t.Errorf("expected top entry a:3, got %+v", top)
	}
}

func TestExportTextIncludesCounts(t *testing.T) {
	l := NewLog()
	l.Enabled = true
	l.Record("define", nil, diag.Position{})

	var buf bytes.Buffer
	if err := l.ExportText(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "define") {
		t.Errorf("expected define in text export, got %q", buf.String())
	}
}

func TestExportJSONIsValid(t *testing.T) {
	l := NewLog()
	l.Enabled = true
	l.Record("define", nil, diag.Position{})

	var buf bytes.Buffer
	if err := l.ExportJSON(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "total_invocations") {
		t.Errorf("expected total_invocations key, got %q", buf.String())
	}
}
