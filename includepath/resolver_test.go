package includepath

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDirect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "direct.m4")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	r := NewResolver(nil)
	got, err := r.Resolve(path)
	if err != nil || got != path {
		t.Fatalf("expected %s, got %s (err %v)", path, got, err)
	}
}

func TestResolveSearchesDirsInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	if err := os.WriteFile(filepath.Join(second, "lib.m4"), []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}
	r := NewResolver([]string{first, second})
	got, err := r.Resolve("lib.m4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join(second, "lib.m4") {
		t.Errorf("expected match in second dir, got %s", got)
	}
}

func TestResolveNotFound(t *testing.T) {
	r := NewResolver([]string{t.TempDir()})
	_, err := r.Resolve("missing.m4")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAppendDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "added.m4"), []byte("z"), 0644); err != nil {
		t.Fatal(err)
	}
	r := NewResolver(nil)
	r.AppendDir(dir)
	got, err := r.Resolve("added.m4")
	if err != nil || got != filepath.Join(dir, "added.m4") {
		t.Fatalf("expected resolve via appended dir, got %s (err %v)", got, err)
	}
}
