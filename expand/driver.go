// Package expand implements the expansion driver of spec.md 4.E: it
// consumes tokens from package lex, maintains the macro symbol table,
// and re-injects expansion results into package input for rescanning.
// Everything here is additional to the distilled core -- the original
// specification treats the symbol table, builtins, and diversions as
// external collaborators, but a runnable processor needs a concrete
// one.
package expand

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/m4go/m4go/config"
	"github.com/m4go/m4go/diag"
	"github.com/m4go/m4go/divert"
	"github.com/m4go/m4go/includepath"
	"github.com/m4go/m4go/input"
	"github.com/m4go/m4go/lex"
	"github.com/m4go/m4go/numb"
	"github.com/m4go/m4go/trace"
)

// macroThunk is the payload carried by a MacroMarker source: a
// builtin call whose name, collected arguments, and trigger position
// were already determined when the marker was pushed.
type macroThunk struct {
	name    string
	args    []string
	pos     diag.Position
	handler BuiltinHandler
}

// Driver ties the input stack, lexer, symbol table, diversions, and
// include resolver together into a runnable macro processor.
type Driver struct {
	stack      *input.Stack
	lex        *lex.Lexer
	syntax     *lex.Syntax
	symbols    *symtab
	Diversions *divert.Buffers
	Includes   *includepath.Resolver
	Trace      *trace.Log
	Diags      *diag.List
	DebugOut   io.Writer

	backend string
}

// New builds a Driver from cfg, writing diversion 0's output to out.
func New(cfg *config.Config, out io.Writer) *Driver {
	syntax := lex.NewSyntax()
	syntax.SetQuotes(cfg.Syntax.LeftQuote, cfg.Syntax.RightQuote)
	syntax.SetComment(cfg.Syntax.BeginComment, cfg.Syntax.EndComment)
	if cfg.Syntax.WordRegexp != "" {
		syntax.SetWordRegexp(cfg.Syntax.WordRegexp)
	}

	var stack input.Stack
	d := &Driver{
		stack:      &stack,
		syntax:     syntax,
		symbols:    newSymtab(),
		Diversions: divert.New(out),
		Includes:   includepath.NewResolver(cfg.Include.Dirs),
		Trace:      trace.NewLog(),
		Diags:      &diag.List{},
		DebugOut:   os.Stderr,
		backend:    cfg.Eval.Backend,
	}
	d.Trace.Enabled = cfg.Trace.Enabled
	d.lex = lex.New(&stack, syntax)
	stack.SetIncludeOpener(includeOpener{d.Includes})
	registerBuiltins(d)
	return d
}

// includeOpener adapts *includepath.Resolver to input.IncludeOpener
// without the input package importing includepath.
type includeOpener struct {
	r *includepath.Resolver
}

func (o includeOpener) Open(name string) (io.ReadCloser, string, error) {
	return o.r.Open(name)
}

// Syntax exposes the reconfigurable lexer syntax, mainly for the
// interactive trace REPL and tests.
func (d *Driver) Syntax() *lex.Syntax { return d.syntax }

// newNumber returns a fresh zero-valued Number in the configured
// evaluator backend.
func (d *Driver) newNumber() numb.Number {
	if d.backend == "rational" {
		return numb.NewRational()
	}
	return numb.NewFixed64()
}

// Run pushes r (named title, for diagnostics) as the top-level input
// and expands it to completion, flushing outstanding diversions
// afterward.
func (d *Driver) Run(title string, r io.Reader) error {
	d.stack.PushFile(r, nil, false, title)
	for {
		if _, err := d.runLoop(d.Diversions, false); err != nil {
			return err
		}
		if !d.stack.PopWrapup() {
			break
		}
	}
	d.Diversions.UndivertAll()
	return nil
}

// runLoop is the shared expansion engine used both for the top-level
// run (argMode=false, runs to EOF) and for collecting one macro
// argument (argMode=true, stops at the first COMMA or CLOSE seen at
// paren depth zero, without consuming it). Arguments are expanded as
// they are collected -- m4 macros are call-by-value except where
// quoting defers expansion -- so this is the same loop in both cases.
func (d *Driver) runLoop(sink io.StringWriter, argMode bool) (lex.TokenType, error) {
	depth := 0
	trimLeading := argMode

	for {
		tt, err := d.lex.PeekType()
		if err != nil {
			return lex.TokEOF, err
		}
		if argMode && depth == 0 && (tt == lex.TokComma || tt == lex.TokClose) {
			return tt, nil
		}
		if tt == lex.TokEOF {
			return lex.TokEOF, nil
		}

		tok, err := d.lex.Next()
		if err != nil {
			return lex.TokEOF, err
		}

		switch tok.Type {
		case lex.TokWord:
			if d.tryExpandWord(tok) {
				continue
			}
			trimLeading = false
			sink.WriteString(tok.Text)
		case lex.TokOpen:
			depth++
			trimLeading = false
			sink.WriteString(tok.Text)
		case lex.TokClose:
			depth--
			trimLeading = false
			sink.WriteString(tok.Text)
		case lex.TokComma:
			trimLeading = false
			sink.WriteString(tok.Text)
		case lex.TokSimple:
			if argMode && depth == 0 && trimLeading && isBlank(tok.Text) {
				continue
			}
			trimLeading = false
			sink.WriteString(tok.Text)
		case lex.TokString:
			trimLeading = false
			sink.WriteString(tok.Text)
		case lex.TokMacro:
			thunk, _ := tok.Macro.(macroThunk)
			result := thunk.handler(d, thunk.name, thunk.args, thunk.pos)
			d.stack.PushString(result)
		}
	}
}

func isBlank(s string) bool {
	for _, c := range s {
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return false
		}
	}
	return true
}

// tryExpandWord looks up tok's text as a macro name; if found, it
// collects an argument list (if the next input byte is '(') and pushes the
// expansion (for a user macro, substituted replacement text; for a
// builtin, a MacroMarker that the next loop iteration will dispatch
// through). Returns false if the word does not name a currently
// defined macro, in which case the caller outputs it as plain text.
func (d *Driver) tryExpandWord(tok lex.Token) bool {
	binding, ok := d.symbols.lookup(tok.Text)
	if !ok {
		return false
	}

	var args []string
	if d.stack.Peek() == int('(') {
		d.lex.Next() // consume OPEN
		collected, err := d.collectArgs()
		if err != nil {
			d.Diags.Add(diag.New(tok.Pos, diag.KindSyntax, err.Error()))
			return true
		}
		args = collected
	}

	d.Trace.Record(tok.Text, args, tok.Pos)

	if binding.IsBuiltin {
		d.stack.PushMacroMarker(macroThunk{name: tok.Text, args: args, pos: tok.Pos, handler: binding.Builtin})
		return true
	}

	d.stack.PushString(substituteArgs(binding.Body, tok.Text, args, d.syntax))
	return true
}

// collectArgs reads a balanced, comma-separated argument list up to
// the matching CLOSE, expanding each argument as it is collected.
// `name()` with nothing between the parens yields one empty-string
// argument, matching the original's $#==1 behavior for that case.
func (d *Driver) collectArgs() ([]string, error) {
	var args []string
	for {
		var arg strings.Builder
		boundary, err := d.runLoop(&arg, true)
		if err != nil {
			return nil, err
		}
		args = append(args, arg.String())
		if _, err := d.lex.Next(); err != nil { // consume the boundary token itself
			return nil, err
		}
		if boundary == lex.TokClose {
			return args, nil
		}
	}
}

// define implements the `define`/`pushdef` builtins' shared logic:
// detect whether body is a defn()-produced builtin sentinel and, if
// so, transfer builtin-ness instead of storing literal text.
func (d *Driver) defineBinding(name, body string, push bool) {
	b := bindingFromBody(body)
	if push {
		d.symbols.push(name, b)
	} else {
		d.symbols.define(name, b)
	}
}

func bindingFromBody(body string) *Binding {
	if builtinName, ok := parseBuiltinSentinel(body); ok {
		if handler, ok := builtinHandlers[builtinName]; ok {
			return &Binding{IsBuiltin: true, Builtin: handler, BuiltinName: builtinName}
		}
	}
	return &Binding{Body: body}
}

// defnText implements `defn`: a user macro's definition is returned as
// literally-quoted text (so that pushdef(new, defn(old)) reinstalls
// the same replacement text); a builtin's definition is returned as an
// internal sentinel recognized by bindingFromBody, quoted the same way
// so that rescanning passes it through intact.
func (d *Driver) defnText(name string) string {
	b, ok := d.symbols.lookup(name)
	if !ok {
		return ""
	}
	if b.IsBuiltin {
		return d.syntax.LQuote + builtinSentinel(b.BuiltinName) + d.syntax.RQuote
	}
	return d.syntax.LQuote + b.Body + d.syntax.RQuote
}

// DumpSymbols renders every currently defined name and its binding, one
// per line, in the same format dumpdef() writes to DebugOut -- used by
// the interactive session to show its symbol table pane without
// routing through a real dumpdef() call.
func (d *Driver) DumpSymbols() string {
	names := d.symbols.names()
	sort.Strings(names)
	var sb strings.Builder
	for _, n := range names {
		b, ok := d.symbols.lookup(n)
		if !ok {
			continue
		}
		if b.IsBuiltin {
			fmt.Fprintf(&sb, "%s:\t<%s>\n", n, b.BuiltinName)
		} else {
			fmt.Fprintf(&sb, "%s:\t%s\n", n, b.Body)
		}
	}
	return sb.String()
}

const builtinSentinelPrefix = "\x00m4go-builtin:"

func builtinSentinel(name string) string {
	return fmt.Sprintf("%s%s\x00", builtinSentinelPrefix, name)
}

func parseBuiltinSentinel(s string) (string, bool) {
	if !strings.HasPrefix(s, builtinSentinelPrefix) || !strings.HasSuffix(s, "\x00") {
		return "", false
	}
	return s[len(builtinSentinelPrefix) : len(s)-1], true
}
