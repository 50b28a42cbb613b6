// Package repl implements an interactive front end over the expansion
// driver, grounded on the teacher's debugger package: a Session plays
// the role of Debugger (owning the engine and a command dispatch
// table), and TUI plays the role of the teacher's tcell/tview text
// interface, re-themed from CPU registers/memory/breakpoints to the
// macro processor's output stream, symbol table, and diversions.
//
// Unlike the teacher's single-step CPU, m4 has no natural instruction
// boundary to pause at: a real m4 REPL is simply a continuous reader
// fed one typed line at a time. Session models that directly -- an
// io.Pipe stands in for stdin, written to one line per Feed call, with
// the driver's Run goroutine consuming it continuously so definitions,
// diversions, and quote state persist across lines exactly as they
// would reading a file top to bottom.
package repl

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/m4go/m4go/config"
	"github.com/m4go/m4go/expand"
)

// Session owns a running expansion driver fed from an in-process pipe.
type Session struct {
	mu     sync.Mutex
	driver *expand.Driver
	output *syncBuffer

	stdinW *io.PipeWriter
	done   chan error
}

// syncBuffer is a bytes.Buffer safe for concurrent Write (by the
// driver's goroutine) and String (by the UI goroutine).
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// NewSession starts a driver built from cfg, reading from an internal
// pipe in the background until Close is called.
func NewSession(cfg *config.Config) *Session {
	pr, pw := io.Pipe()
	out := &syncBuffer{}
	s := &Session{
		driver: expand.New(cfg, out),
		output: out,
		stdinW: pw,
		done:   make(chan error, 1),
	}
	go func() {
		s.done <- s.driver.Run("<session>", pr)
	}()
	return s
}

// Driver exposes the underlying expansion driver for panes that need
// direct access (symbol table, diversions, trace, syntax).
func (s *Session) Driver() *expand.Driver { return s.driver }

// Feed writes one line of m4 source into the session's input stream,
// appending a trailing newline if the caller omitted one.
func (s *Session) Feed(line string) error {
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	_, err := io.WriteString(s.stdinW, line)
	return err
}

// Output returns everything diversion 0 has produced so far.
func (s *Session) Output() string { return s.output.String() }

// Close ends the input stream, letting the driver flush wrapup text
// and outstanding diversions, and waits for it to finish.
func (s *Session) Close() error {
	s.stdinW.Close()
	return <-s.done
}
