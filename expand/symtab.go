package expand

import "github.com/m4go/m4go/diag"

// BuiltinHandler implements one builtin macro. It may read and mutate
// the driver's entire state (syntax, symbol table, diversions,
// include path) and returns the text to be rescanned in the invoking
// macro's place -- exactly as a user macro's substituted body would
// be, per spec.md 4.E's push_string_begin/end re-injection contract.
type BuiltinHandler func(d *Driver, name string, args []string, pos diag.Position) string

// Binding is one entry in a name's definition stack. Exactly one of
// Body (a user macro's replacement text, with $0.. substitution
// markers) or Builtin (a built-in handler) is meaningful, selected by
// IsBuiltin -- defn() of a builtin produces a Binding with IsBuiltin
// set so that pushdef(new, defn(old)) transfers builtin-ness rather
// than literal text, matching the original's "builtin token" value.
type Binding struct {
	IsBuiltin   bool
	Builtin     BuiltinHandler
	BuiltinName string // the handler's registered name, for defn() round-tripping
	Body        string
}

// symtab is a name -> definition-stack map: pushdef/define push new
// entries, popdef/undefine pop or remove them, and a name is "defined"
// so long as its stack is non-empty.
type symtab struct {
	entries map[string][]*Binding
}

func newSymtab() *symtab {
	return &symtab{entries: make(map[string][]*Binding)}
}

// push adds a new binding on top of name's stack (pushdef, and the
// initial population of builtins).
func (s *symtab) push(name string, b *Binding) {
	s.entries[name] = append(s.entries[name], b)
}

// define replaces the top binding of name's stack, or creates a
// one-element stack if name was undefined (the classic `define`,
// as distinct from `pushdef`'s shadowing).
func (s *symtab) define(name string, b *Binding) {
	stack := s.entries[name]
	if len(stack) == 0 {
		s.entries[name] = []*Binding{b}
		return
	}
	stack[len(stack)-1] = b
}

// pop removes the top binding of name's stack (popdef). A no-op if
// name is already undefined.
func (s *symtab) pop(name string) {
	stack := s.entries[name]
	if len(stack) == 0 {
		return
	}
	if len(stack) == 1 {
		delete(s.entries, name)
		return
	}
	s.entries[name] = stack[:len(stack)-1]
}

// undefine removes every binding of name, regardless of stack depth.
func (s *symtab) undefine(name string) {
	delete(s.entries, name)
}

// lookup returns the top (currently visible) binding for name.
func (s *symtab) lookup(name string) (*Binding, bool) {
	stack := s.entries[name]
	if len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1], true
}

// names returns every currently defined name, for dumpdef().
func (s *symtab) names() []string {
	out := make([]string, 0, len(s.entries))
	for name := range s.entries {
		out = append(out, name)
	}
	return out
}
