// Package machine implements the value model, scope chain and execution
// engine of the Slip language. A Machine owns one scope chain and one value
// stack and runs single-threaded; the only state shared between machines is
// immutable (function descriptors and interned strings).
package machine

import (
	"io"
	"os"

	"github.com/funvibe/slip/internal/interner"
)

type Machine struct {
	scopes []Scope
	stack  []Value
	out    io.Writer
}

type Option func(*Machine)

// WithOutput redirects the `.` builtin, which otherwise prints to stdout.
func WithOutput(w io.Writer) Option {
	return func(m *Machine) { m.out = w }
}

// New builds a machine with a global scope seeded from the given name table
// (normally the builtin catalog) and positional arguments.
func New(globals map[interner.Handle]Value, args []Value, opts ...Option) *Machine {
	m := &Machine{out: os.Stdout}
	for _, opt := range opts {
		opt(m)
	}
	m.pushScope(newGlobalScope(globals, args))
	return m
}

// Execute runs a parsed program to completion and returns the final machine
// state. On error the partially-advanced state is returned alongside it.
func Execute(desc *FunctionDescriptor, globals map[interner.Handle]Value, args []Value, opts ...Option) (*Machine, error) {
	m := New(globals, args, opts...)
	if err := m.Interpret(desc); err != nil {
		return m, err
	}
	return m, nil
}

// Interpret runs the program's top-level operations in the current global
// scope without pushing a function frame, so bindings made by the program
// persist on the machine. The REPL relies on this.
func (m *Machine) Interpret(desc *FunctionDescriptor) error {
	_, err := m.run(desc.Ops)
	return err
}

// Output returns the writer the `.` builtin prints to.
func (m *Machine) Output() io.Writer {
	return m.out
}

// Stack exposes the value stack, bottom first. Callers must not mutate it.
func (m *Machine) Stack() []Value {
	return m.stack
}

// Value stack. Only the back is ever touched.

func (m *Machine) Push(v Value) {
	m.stack = append(m.stack, v)
}

func (m *Machine) Pop() (Value, error) {
	if len(m.stack) == 0 {
		return Value{}, ErrEmptyStack
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *Machine) PopBool() (bool, error) {
	v, err := m.Pop()
	if err != nil {
		return false, err
	}
	if v.Type != ValBool {
		return false, &TypeMismatchError{Expected: "bool"}
	}
	return v.AsBool(), nil
}

func (m *Machine) PopNumber() (float64, error) {
	v, err := m.Pop()
	if err != nil {
		return 0, err
	}
	if v.Type != ValNumber {
		return 0, &TypeMismatchError{Expected: "number"}
	}
	return v.AsNumber(), nil
}

func (m *Machine) PopString() (interner.Handle, error) {
	v, err := m.Pop()
	if err != nil {
		return interner.Handle{}, err
	}
	if v.Type != ValString {
		return interner.Handle{}, &TypeMismatchError{Expected: "string"}
	}
	return v.Str, nil
}

func (m *Machine) PopFunction() (*Callable, error) {
	v, err := m.Pop()
	if err != nil {
		return nil, err
	}
	if v.Type != ValFunction {
		return nil, &TypeMismatchError{Expected: "function"}
	}
	return v.Fn, nil
}

// Scope chain.

func (m *Machine) pushScope(s Scope) {
	m.scopes = append(m.scopes, s)
}

func (m *Machine) popScope() {
	m.scopes = m.scopes[:len(m.scopes)-1]
}

func (m *Machine) globalScope() *Scope {
	return &m.scopes[0]
}

// lookUp walks the chain from the innermost scope outwards, stopping at and
// including the first scope that does not inherit from its parent (the
// nearest function or global boundary).
func (m *Machine) lookUp(name interner.Handle) (Value, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if v, ok := m.scopes[i].Get(name); ok {
			return v, true
		}
		if !m.scopes[i].inheritsFromParent {
			break
		}
	}
	return Value{}, false
}

// arg applies the same chain walk to each scope's positional argument list.
func (m *Machine) arg(index int) (Value, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if v, ok := m.scopes[i].Arg(index); ok {
			return v, true
		}
		if !m.scopes[i].inheritsFromParent {
			break
		}
	}
	return Value{}, false
}

// Bind writes a name into the nearest non-inheriting scope, so assignments
// inside a conditional body outlive it while assignments inside a function
// call never escape the call.
func (m *Machine) Bind(name interner.Handle, v Value) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if !m.scopes[i].inheritsFromParent {
			m.scopes[i].Set(name, v)
			return
		}
	}
}

// VisibleNames snapshots the name bindings visible at this point for closure
// capture: every scope from the innermost out to the nearest function or
// global boundary, inner bindings shadowing outer ones. The result is a
// fresh map the caller owns.
func (m *Machine) VisibleNames() map[interner.Handle]Value {
	boundary := 0
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if !m.scopes[i].inheritsFromParent {
			boundary = i
			break
		}
	}
	captured := make(map[interner.Handle]Value)
	for i := boundary; i < len(m.scopes); i++ {
		for k, v := range m.scopes[i].names {
			captured[k] = v
		}
	}
	return captured
}
