package expand

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/m4go/m4go/diag"
	"github.com/m4go/m4go/eval"
	"github.com/m4go/m4go/input"
)

// builtinHandlers is the registry of builtin name -> implementation,
// consulted both at startup (to populate a fresh Driver's symbol
// table) and by defn()'s sentinel round-trip (bindingFromBody).
var builtinHandlers = map[string]BuiltinHandler{
	"define":     biDefine,
	"undefine":   biUndefine,
	"pushdef":    biPushdef,
	"popdef":     biPopdef,
	"defn":       biDefn,
	"dnl":        biDnl,
	"changequote": biChangequote,
	"changecom":  biChangecom,
	"changeword": biChangeword,
	"eval":       biEval,
	"ifdef":      biIfdef,
	"ifelse":     biIfelse,
	"include":    biInclude,
	"sinclude":   biSinclude,
	"divert":     biDivert,
	"undivert":   biUndivert,
	"dumpdef":    biDumpdef,
	"m4wrap":     biM4wrap,
	"len":        biLen,
	"index":      biIndex,
	"substr":     biSubstr,
	"translit":   biTranslit,
	"incr":       biIncr,
	"decr":       biDecr,
}

func registerBuiltins(d *Driver) {
	names := make([]string, 0, len(builtinHandlers))
	for name := range builtinHandlers {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic dumpdef() ordering when called with no args
	for _, name := range names {
		d.symbols.push(name, &Binding{IsBuiltin: true, Builtin: builtinHandlers[name], BuiltinName: name})
	}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func biDefine(d *Driver, name string, args []string, pos diag.Position) string {
	if len(args) == 0 {
		return ""
	}
	d.defineBinding(args[0], arg(args, 1), false)
	return ""
}

func biPushdef(d *Driver, name string, args []string, pos diag.Position) string {
	if len(args) == 0 {
		return ""
	}
	d.defineBinding(args[0], arg(args, 1), true)
	return ""
}

func biUndefine(d *Driver, name string, args []string, pos diag.Position) string {
	for _, a := range args {
		d.symbols.undefine(a)
	}
	return ""
}

func biPopdef(d *Driver, name string, args []string, pos diag.Position) string {
	for _, a := range args {
		d.symbols.pop(a)
	}
	return ""
}

func biDefn(d *Driver, name string, args []string, pos diag.Position) string {
	if len(args) == 0 {
		return ""
	}
	return d.defnText(args[0])
}

// biDnl discards input up to and including the next newline by
// reading raw bytes straight off the input stack -- it is the one
// builtin that bypasses the lexer entirely, since its job is to
// suppress bytes rather than produce expansion text.
func biDnl(d *Driver, name string, args []string, pos diag.Position) string {
	for {
		c := d.stack.Advance()
		if c == input.EOF || c == int('\n') {
			return ""
		}
	}
}

func biChangequote(d *Driver, name string, args []string, pos diag.Position) string {
	d.syntax.SetQuotes(args...)
	return ""
}

func biChangecom(d *Driver, name string, args []string, pos diag.Position) string {
	d.syntax.SetComment(args...)
	return ""
}

func biChangeword(d *Driver, name string, args []string, pos diag.Position) string {
	pattern := arg(args, 0)
	if err := d.syntax.SetWordRegexp(pattern); err != nil {
		d.Diags.Add(diag.NewWarning(pos, diag.KindSyntax, "bad word regexp, retaining prior pattern: "+err.Error()))
	}
	return ""
}

func biEval(d *Driver, name string, args []string, pos diag.Position) string {
	if len(args) == 0 {
		return ""
	}
	radix := 10
	width := 1
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil {
			radix = v
		}
	}
	if len(args) > 2 {
		if v, err := strconv.Atoi(args[2]); err == nil {
			width = v
		}
	}
	result, err := eval.Evaluate(args[0], radix, width, d.newNumber)
	if err != nil {
		d.Diags.Add(diag.New(pos, diag.KindEval, err.Error()))
		return ""
	}
	return result
}

func biIfdef(d *Driver, name string, args []string, pos diag.Position) string {
	if len(args) == 0 {
		return ""
	}
	if _, ok := d.symbols.lookup(args[0]); ok {
		return arg(args, 1)
	}
	return arg(args, 2)
}

func biIfelse(d *Driver, name string, args []string, pos diag.Position) string {
	return ifelseEval(args)
}

func ifelseEval(args []string) string {
	if len(args) < 3 {
		if len(args) == 1 {
			return args[0]
		}
		return ""
	}
	if args[0] == args[1] {
		return args[2]
	}
	rest := args[3:]
	switch len(rest) {
	case 0:
		return ""
	case 1:
		return rest[0]
	default:
		return ifelseEval(rest)
	}
}

func biInclude(d *Driver, name string, args []string, pos diag.Position) string {
	if len(args) == 0 {
		return ""
	}
	if _, err := d.stack.PushInclude(args[0]); err != nil {
		d.Diags.Add(diag.New(pos, diag.KindFileIO, err.Error()))
		return ""
	}
	return ""
}

func biSinclude(d *Driver, name string, args []string, pos diag.Position) string {
	if len(args) == 0 {
		return ""
	}
	if _, err := d.stack.PushInclude(args[0]); err != nil {
		return "" // silent: sinclude never reports a missing file
	}
	return ""
}

func biDivert(d *Driver, name string, args []string, pos diag.Position) string {
	n := 0
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			n = v
		}
	}
	d.Diversions.Divert(n)
	return ""
}

func biUndivert(d *Driver, name string, args []string, pos diag.Position) string {
	if len(args) == 0 {
		d.Diversions.UndivertAll()
		return ""
	}
	for _, a := range args {
		if n, err := strconv.Atoi(a); err == nil {
			d.Diversions.Undivert(n)
			continue
		}
		if f, _, err := d.Includes.Open(a); err == nil {
			d.Diversions.UndivertFile(f)
			f.Close()
		}
	}
	return ""
}

func biDumpdef(d *Driver, name string, args []string, pos diag.Position) string {
	names := args
	if len(names) == 0 {
		names = d.symbols.names()
		sort.Strings(names)
	}
	for _, n := range names {
		b, ok := d.symbols.lookup(n)
		if !ok {
			continue
		}
		if b.IsBuiltin {
			fmt.Fprintf(d.DebugOut, "%s:\t<%s>\n", n, b.BuiltinName)
		} else {
			fmt.Fprintf(d.DebugOut, "%s:\t%s\n", n, b.Body)
		}
	}
	return ""
}

func biM4wrap(d *Driver, name string, args []string, pos diag.Position) string {
	if len(args) == 0 {
		return ""
	}
	d.stack.PushWrapup(args[0], pos.File, pos.Line)
	return ""
}

func biLen(d *Driver, name string, args []string, pos diag.Position) string {
	return strconv.Itoa(len(arg(args, 0)))
}

func biIndex(d *Driver, name string, args []string, pos diag.Position) string {
	return strconv.Itoa(strings.Index(arg(args, 0), arg(args, 1)))
}

func biSubstr(d *Driver, name string, args []string, pos diag.Position) string {
	s := arg(args, 0)
	start, err := strconv.Atoi(arg(args, 1))
	if err != nil || start < 0 {
		start = 0
	}
	if start >= len(s) {
		return ""
	}
	end := len(s)
	if len(args) > 2 {
		if n, err := strconv.Atoi(args[2]); err == nil {
			end = start + n
			if end > len(s) {
				end = len(s)
			}
		}
	}
	if end < start {
		return ""
	}
	return s[start:end]
}

func biTranslit(d *Driver, name string, args []string, pos diag.Position) string {
	s := arg(args, 0)
	from := arg(args, 1)
	to := arg(args, 2)

	mapping := make(map[byte]int, len(from))
	for i := 0; i < len(from); i++ {
		mapping[from[i]] = i
	}

	var out strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		idx, matched := mapping[c]
		switch {
		case !matched:
			out.WriteByte(c)
		case idx < len(to):
			out.WriteByte(to[idx])
		default:
			// deleted: from has more characters than to
		}
	}
	return out.String()
}

func biIncr(d *Driver, name string, args []string, pos diag.Position) string {
	return shiftInt(d, args, pos, 1)
}

func biDecr(d *Driver, name string, args []string, pos diag.Position) string {
	return shiftInt(d, args, pos, -1)
}

func shiftInt(d *Driver, args []string, pos diag.Position, delta int64) string {
	v, err := strconv.ParseInt(arg(args, 0), 10, 64)
	if err != nil {
		d.Diags.Add(diag.New(pos, diag.KindEval, "non-numeric argument: "+arg(args, 0)))
		return ""
	}
	return strconv.FormatInt(v+delta, 10)
}
