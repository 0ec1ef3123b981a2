package machine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/slip/internal/interner"
)

// BuiltinFunc is a native operation working directly on the machine state.
// Builtins pop and push the value stack arbitrarily and carry no arity.
type BuiltinFunc func(*Machine) error

// FunctionDescriptor is the parsed body of a user function. It is created
// once, at parse or closure-capture time, and never mutated afterwards;
// every Callable holding it shares the same pointer.
type FunctionDescriptor struct {
	Ops      []Op
	Captured map[interner.Handle]Value
	NumArgs  int
}

type CallableKind uint8

const (
	KindBuiltin CallableKind = iota
	KindFunction
)

// Callable is a builtin or a user-defined function value, plus any arguments
// supplied ahead of call time via the `bind` builtin. For a function callable
// len(Bound) never exceeds Fn.NumArgs; builtins accept any number.
type Callable struct {
	Kind    CallableKind
	Builtin BuiltinFunc
	Fn      *FunctionDescriptor
	Bound   []Value
}

func NewBuiltin(f BuiltinFunc) *Callable {
	return &Callable{Kind: KindBuiltin, Builtin: f}
}

func NewFunction(d *FunctionDescriptor) *Callable {
	return &Callable{Kind: KindFunction, Fn: d}
}

// Invoke runs the callable against m. For a builtin, the bound arguments are
// pushed in reverse order first so the native code pops them like ordinary
// stack operands. For a function, missing arguments are popped by the call.
func (c *Callable) Invoke(m *Machine) error {
	if c.Kind == KindBuiltin {
		for i := len(c.Bound) - 1; i >= 0; i-- {
			m.Push(c.Bound[i])
		}
		return c.Builtin(m)
	}
	return m.call(c.Fn, c.Bound)
}

// Inspect renders a descriptive placeholder: functions carry no printable
// body, so only the capture and binding surface is shown.
func (c *Callable) Inspect() string {
	var b strings.Builder

	switch {
	case c.Kind == KindBuiltin:
		b.WriteString("<builtin")
	case c.Fn != nil && len(c.Fn.Captured) > 0:
		names := make([]string, 0, len(c.Fn.Captured))
		for h := range c.Fn.Captured {
			names = append(names, h.String())
		}
		sort.Strings(names)
		b.WriteString("<closure: ")
		b.WriteString(strings.Join(names, ", "))
	default:
		b.WriteString("<function")
	}

	if len(c.Bound) > 0 {
		b.WriteString(", bound arguments: ")
		for i, v := range c.Bound {
			if i != 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d: %s", i, v.debugString())
		}
	}
	b.WriteString(">")
	return b.String()
}
