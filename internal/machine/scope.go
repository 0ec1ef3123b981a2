package machine

import "github.com/funvibe/slip/internal/interner"

// Scope is one frame of the lexical-binding stack: a name table, a positional
// argument list and an inheritance flag controlling chain lookup. Scopes are
// pushed and popped in strict stack discipline and never shared.
type Scope struct {
	names              map[interner.Handle]Value
	args               []Value
	inheritsFromParent bool
}

// newGlobalScope seeds scope index 0 with the builtin catalog and the
// process input arguments. It is never popped during normal execution.
func newGlobalScope(globals map[interner.Handle]Value, args []Value) Scope {
	names := make(map[interner.Handle]Value, len(globals))
	for k, v := range globals {
		names[k] = v
	}
	return Scope{names: names, args: args}
}

// newFunctionScope starts from a copy of the callee's captured names so that
// assignments inside the call never leak into the shared descriptor.
func newFunctionScope(args []Value, captured map[interner.Handle]Value) Scope {
	names := make(map[interner.Handle]Value, len(captured))
	for k, v := range captured {
		names[k] = v
	}
	return Scope{names: names, args: args}
}

func newConditionalScope() Scope {
	return Scope{names: map[interner.Handle]Value{}, inheritsFromParent: true}
}

func (s *Scope) Get(name interner.Handle) (Value, bool) {
	v, ok := s.names[name]
	return v, ok
}

func (s *Scope) Set(name interner.Handle, v Value) {
	s.names[name] = v
}

func (s *Scope) Arg(index int) (Value, bool) {
	if index < 0 || index >= len(s.args) {
		return Value{}, false
	}
	return s.args[index], true
}
