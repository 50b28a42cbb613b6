package repl

import (
	"fmt"
	"strings"
)

// Commands intercepted before reaching the expansion driver, analogous
// to the teacher's debugger command table but far smaller: m4 text
// itself is the "program", so only housekeeping needs dedicated verbs.
const (
	cmdHelp       = "help"
	cmdQuit       = "quit"
	cmdDump       = "dump"
	cmdTrace      = "trace"
	cmdDiversions = "diversions"
	cmdSyntax     = "syntax"
)

// metaResult is what handling one line of REPL input produced, for the
// caller (CLI loop or TUI) to render.
type metaResult struct {
	text     string // text to display, if any
	quit     bool
	forwards bool // true if the line was not a meta-command and should be fed to the driver
}

// dispatchMeta recognizes a leading ":" command; anything else is
// forwarded to the driver as ordinary m4 source.
func dispatchMeta(s *Session, line string) metaResult {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		return metaResult{forwards: true}
	}

	fields := strings.Fields(trimmed[1:])
	if len(fields) == 0 {
		return metaResult{text: helpText()}
	}

	switch fields[0] {
	case cmdHelp:
		return metaResult{text: helpText()}
	case cmdQuit:
		return metaResult{quit: true}
	case cmdDump:
		return metaResult{text: s.Driver().DumpSymbols()}
	case cmdDiversions:
		return metaResult{text: s.Driver().Diversions.Dump()}
	case cmdSyntax:
		syn := s.Driver().Syntax()
		return metaResult{text: fmt.Sprintf("quotes: %q %q  comment: %q %q\n",
			syn.LQuote, syn.RQuote, syn.BComm, syn.EComm)}
	case cmdTrace:
		return metaResult{text: handleTrace(s, fields[1:])}
	default:
		return metaResult{text: fmt.Sprintf("unknown command: %s (try :help)\n", fields[0])}
	}
}

func handleTrace(s *Session, args []string) string {
	tr := s.Driver().Trace
	if len(args) == 0 {
		var sb strings.Builder
		tr.ExportText(&sb)
		return sb.String()
	}
	switch args[0] {
	case "on":
		tr.Enabled = true
		return "trace enabled\n"
	case "off":
		tr.Enabled = false
		return "trace disabled\n"
	default:
		return "usage: :trace [on|off]\n"
	}
}

func helpText() string {
	return strings.Join([]string{
		"Any line not starting with ':' is fed to the macro processor as input.",
		":help                 show this text",
		":dump                 show every defined macro",
		":diversions           show outstanding (non-zero) diversion buffers",
		":syntax               show the current quote and comment delimiters",
		":trace [on|off]       toggle or show the invocation trace",
		":quit                 end the session",
		"",
	}, "\n")
}
