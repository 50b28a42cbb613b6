// Package divert implements output diversion (spec.md's expansion
// component H): text produced during expansion is normally written
// straight to diversion 0 (the real output), but divert(n) redirects
// it into an in-memory buffer numbered n until undivert(n), or
// undivert() with no arguments, flushes it back out in numeric order.
package divert

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Buffers holds every non-zero diversion created so far, plus the
// currently selected diversion number.
type Buffers struct {
	current int
	buffers map[int]*bytes.Buffer
	out     io.Writer
}

// New returns a Buffers writing diversion 0 straight to out.
func New(out io.Writer) *Buffers {
	return &Buffers{out: out, buffers: make(map[int]*bytes.Buffer)}
}

// Current returns the active diversion number.
func (b *Buffers) Current() int { return b.current }

// Divert switches the active diversion. A negative number means
// "discard everything written until the next divert call" -- no
// buffer is allocated for it.
func (b *Buffers) Divert(n int) {
	b.current = n
}

// WriteString implements io.StringWriter so a Buffers can serve as the
// expansion driver's top-level output sink.
func (b *Buffers) WriteString(text string) (int, error) {
	b.Write(text)
	return len(text), nil
}

// Write sends text to the currently active diversion: straight to the
// real output if diversion 0, discarded if negative, buffered
// otherwise.
func (b *Buffers) Write(text string) {
	switch {
	case b.current == 0:
		io.WriteString(b.out, text)
	case b.current < 0:
		// discarded
	default:
		buf := b.buffers[b.current]
		if buf == nil {
			buf = &bytes.Buffer{}
			b.buffers[b.current] = buf
		}
		buf.WriteString(text)
	}
}

// Undivert flushes diversion n to the real output and discards its
// buffer. Undiverting diversion 0 or the currently active diversion is
// a no-op, matching the original's refusal to undivert into itself.
func (b *Buffers) Undivert(n int) {
	if n == 0 || n == b.current {
		return
	}
	buf, ok := b.buffers[n]
	if !ok {
		return
	}
	io.Copy(b.out, buf)
	delete(b.buffers, n)
}

// UndivertAll flushes every outstanding diversion to the real output,
// lowest number first, and clears them all -- used at end of input and
// by the undivert() builtin called with no arguments.
func (b *Buffers) UndivertAll() {
	nums := make([]int, 0, len(b.buffers))
	for n := range b.buffers {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	for _, n := range nums {
		io.Copy(b.out, b.buffers[n])
		delete(b.buffers, n)
	}
}

// UndivertFile reads r verbatim into the real output, as m4's
// undivert() does for a plain filename argument that is not a
// currently live diversion number.
func (b *Buffers) UndivertFile(r io.Reader) error {
	_, err := io.Copy(b.out, r)
	return err
}

// Dump renders every outstanding diversion's contents for diagnostics
// (the interactive trace REPL's diversion pane), lowest number first.
func (b *Buffers) Dump() string {
	nums := make([]int, 0, len(b.buffers))
	for n := range b.buffers {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	var out bytes.Buffer
	for _, n := range nums {
		fmt.Fprintf(&out, "--- diversion %d (%d bytes) ---\n", n, b.buffers[n].Len())
		out.Write(b.buffers[n].Bytes())
	}
	return out.String()
}
