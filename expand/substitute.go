package expand

import (
	"strconv"
	"strings"

	"github.com/m4go/m4go/lex"
)

// substituteArgs expands $0.. references in a user macro's body
// against the invoking name and its collected arguments: $0 is the
// invocation name, $1-$9 are positional arguments (missing ones
// substitute empty), $# is the argument count, $* is every argument
// comma-joined, and $@ is the same but with each argument individually
// re-quoted in the syntax's current delimiters (so that a further
// rescan treats each one as a single, unexpanded unit again).
func substituteArgs(body, name string, args []string, syn *lex.Syntax) string {
	var out strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '$' || i+1 >= len(body) {
			out.WriteByte(c)
			continue
		}
		n := body[i+1]
		switch {
		case n == '0':
			out.WriteString(name)
			i++
		case n >= '1' && n <= '9':
			idx := int(n - '1')
			if idx < len(args) {
				out.WriteString(args[idx])
			}
			i++
		case n == '#':
			out.WriteString(strconv.Itoa(len(args)))
			i++
		case n == '*':
			out.WriteString(strings.Join(args, ","))
			i++
		case n == '@':
			quoted := make([]string, len(args))
			for j, a := range args {
				quoted[j] = syn.LQuote + a + syn.RQuote
			}
			out.WriteString(strings.Join(quoted, ","))
			i++
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}
