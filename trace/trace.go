// Package trace records a diagnostic log of macro invocations as
// expansion proceeds, and exports a run summary in text or JSON, in
// the style of the teacher's PerformanceStatistics: per-event counters
// accumulated during the run plus dual-format Export methods.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/m4go/m4go/diag"
)

// Entry records one macro invocation for the trace log.
type Entry struct {
	Name string
	Args []string
	Pos  diag.Position
	When time.Duration // elapsed time since the log started
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s(%s)", e.Pos, e.Name, strings.Join(e.Args, ", "))
}

// Log accumulates Entries and per-macro invocation counts across a
// run. The zero value is not usable; use NewLog.
type Log struct {
	Enabled bool

	entries   []Entry
	counts    map[string]uint64
	startTime time.Time
}

// NewLog returns a disabled Log; set Enabled to true to start
// recording (mirrors the teacher's Enabled flag on
// PerformanceStatistics, which gates whether Record does any work).
func NewLog() *Log {
	return &Log{counts: make(map[string]uint64), startTime: time.Now()}
}

// Record appends an invocation if the log is enabled; otherwise it is
// a cheap no-op so call sites need not branch on Enabled themselves.
func (l *Log) Record(name string, args []string, pos diag.Position) {
	if !l.Enabled {
		return
	}
	l.entries = append(l.entries, Entry{Name: name, Args: args, Pos: pos, When: time.Since(l.startTime)})
	l.counts[name]++
}

// Entries returns every recorded invocation in chronological order.
func (l *Log) Entries() []Entry { return l.entries }

// Counts returns the invocation count for name.
func (l *Log) Counts(name string) uint64 { return l.counts[name] }

// TopInvoked returns the n most-invoked macro names, descending by
// count; n<=0 means "all of them".
func (l *Log) TopInvoked(n int) []CountEntry {
	out := make([]CountEntry, 0, len(l.counts))
	for name, count := range l.counts {
		out = append(out, CountEntry{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// CountEntry is one row of TopInvoked's result.
type CountEntry struct {
	Name  string
	Count uint64
}

// ExportText writes a human-readable summary: total invocations,
// elapsed time, then one line per macro sorted by descending count.
func (l *Log) ExportText(w io.Writer) error {
	var total uint64
	for _, c := range l.counts {
		total += c
	}
	if _, err := fmt.Fprintf(w, "total invocations: %d\n", total); err != nil {
		return err
	}
	if len(l.entries) > 0 {
		elapsed := l.entries[len(l.entries)-1].When
		if _, err := fmt.Fprintf(w, "elapsed: %s\n", elapsed); err != nil {
			return err
		}
	}
	for _, ce := range l.TopInvoked(0) {
		if _, err := fmt.Fprintf(w, "  %-20s %d\n", ce.Name, ce.Count); err != nil {
			return err
		}
	}
	return nil
}

// ExportJSON writes the same summary as structured JSON.
func (l *Log) ExportJSON(w io.Writer) error {
	var total uint64
	for _, c := range l.counts {
		total += c
	}
	var elapsed time.Duration
	if len(l.entries) > 0 {
		elapsed = l.entries[len(l.entries)-1].When
	}
	data := map[string]interface{}{
		"total_invocations": total,
		"elapsed_ms":        elapsed.Milliseconds(),
		"by_macro":          l.TopInvoked(0),
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
