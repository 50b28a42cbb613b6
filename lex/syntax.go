package lex

import "regexp"

const (
	defaultLQuote = "`"
	defaultRQuote = "'"
	defaultBComm  = "#"
	defaultEComm  = "\n"
)

// Syntax holds the mutable, reconfigurable recognition rules of
// spec.md 4.F. Builtin handlers (changequote, changecom,
// changeword) call the Set* methods between token emissions; no
// other code is expected to mutate a Syntax mid-token.
type Syntax struct {
	LQuote, RQuote string
	BComm, EComm   string

	// WordRe is nil in default mode (alpha/underscore identifiers).
	// In custom mode it is the compiled word-token pattern; if it has
	// a capture group, group 1's text -- not the whole match -- is the
	// token's payload.
	WordRe *regexp.Regexp
}

// NewSyntax returns a Syntax with the classic default delimiters.
func NewSyntax() *Syntax {
	return &Syntax{
		LQuote: defaultLQuote,
		RQuote: defaultRQuote,
		BComm:  defaultBComm,
		EComm:  defaultEComm,
	}
}

// SetQuotes implements changequote's argument rules: zero arguments
// restores both defaults; one argument sets lquote and resets rquote
// to its default; two arguments set both explicitly -- including the
// empty string. Quoting is recognized only while both delimiters are
// non-empty, so an empty string in either position disables it.
func (s *Syntax) SetQuotes(args ...string) {
	switch len(args) {
	case 0:
		s.LQuote, s.RQuote = defaultLQuote, defaultRQuote
	case 1:
		s.LQuote = args[0]
		s.RQuote = defaultRQuote
	default:
		s.LQuote = args[0]
		s.RQuote = args[1]
	}
}

// SetComment implements changecom's argument rules, symmetric to
// SetQuotes but over bcomm/ecomm.
func (s *Syntax) SetComment(args ...string) {
	switch len(args) {
	case 0:
		s.BComm, s.EComm = defaultBComm, defaultEComm
	case 1:
		s.BComm = args[0]
		s.EComm = defaultEComm
	default:
		s.BComm = args[0]
		s.EComm = args[1]
	}
}

// SetWordRegexp implements changeword: an empty pattern restores the
// default alpha/underscore mode; a non-empty pattern compiles into
// custom word-scanning mode. A malformed pattern is a recoverable
// warning (spec.md 7): this method then leaves the prior pattern in
// place and returns the compile error for the caller to report.
func (s *Syntax) SetWordRegexp(pattern string) error {
	if pattern == "" {
		s.WordRe = nil
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.WordRe = re
	return nil
}
