// Package includepath resolves include()/sinclude() targets against a
// search path, in the style of the teacher's Preprocessor.ProcessFile:
// try the name directly, then relative to each configured directory in
// order, first match wins.
package includepath

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolver holds an ordered list of directories to search.
type Resolver struct {
	dirs []string
}

// NewResolver returns a Resolver searching dirs in the given order, in
// addition to a bare relative/absolute lookup tried first.
func NewResolver(dirs []string) *Resolver {
	return &Resolver{dirs: append([]string(nil), dirs...)}
}

// AppendDir adds a directory to the end of the search path (the
// builtin analogous to m4's command-line -I flag, applied after
// startup configuration).
func (r *Resolver) AppendDir(dir string) {
	r.dirs = append(r.dirs, dir)
}

// Resolve returns the first existing path for name, trying name as
// given, then filepath.Join(dir, name) for each configured directory
// in order. It returns a *diag-friendly* error if name is not found
// anywhere; the caller (the include/sinclude builtin) decides whether
// a missing file is reported as an error (include) or silently ignored
// (sinclude).
func (r *Resolver) Resolve(name string) (string, error) {
	if fileExists(name) {
		return name, nil
	}
	for _, dir := range r.dirs {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("cannot find %q in include path", name)
}

// Open resolves name and opens it for reading.
func (r *Resolver) Open(name string) (*os.File, string, error) {
	path, err := r.Resolve(name)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path) // #nosec G304 -- user-provided include file path
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, path, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
