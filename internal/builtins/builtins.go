// Package builtins is the fixed catalog of native operations seeded into a
// machine's global scope at startup. Every builtin works directly on the
// value stack; arity and operand order follow the stack convention: for two
// operands pushed in source order `A B`, the top of the stack (B) pops first
// and becomes the left operand.
package builtins

import (
	"fmt"
	"math"

	"github.com/funvibe/slip/internal/interner"
	"github.com/funvibe/slip/internal/machine"
)

// Catalog builds the builtin name table for one interner table.
func Catalog(table *interner.Table) map[interner.Handle]machine.Value {
	entries := map[string]machine.BuiltinFunc{
		"+":    add,
		"-":    sub,
		"*":    mul,
		"/":    div,
		"<":    lessThan,
		".":    print,
		":=":   assign,
		"!":    assertType,
		"^":    makeClosure,
		"bind": bind,
	}

	catalog := make(map[interner.Handle]machine.Value, len(entries))
	for name, fn := range entries {
		catalog[table.Intern(name)] = machine.FuncVal(machine.NewBuiltin(fn))
	}
	return catalog
}

func numericOp(m *machine.Machine, op func(top, next float64) float64) error {
	top, err := m.PopNumber()
	if err != nil {
		return err
	}
	next, err := m.PopNumber()
	if err != nil {
		return err
	}
	m.Push(machine.NumberVal(op(top, next)))
	return nil
}

func add(m *machine.Machine) error {
	return numericOp(m, func(top, next float64) float64 { return top + next })
}

func sub(m *machine.Machine) error {
	return numericOp(m, func(top, next float64) float64 { return top - next })
}

func mul(m *machine.Machine) error {
	return numericOp(m, func(top, next float64) float64 { return top * next })
}

func div(m *machine.Machine) error {
	return numericOp(m, func(top, next float64) float64 { return top / next })
}

func lessThan(m *machine.Machine) error {
	top, err := m.PopNumber()
	if err != nil {
		return err
	}
	next, err := m.PopNumber()
	if err != nil {
		return err
	}
	m.Push(machine.BoolVal(top < next))
	return nil
}

// print pops one value and writes its rendering. An empty stack prints a
// placeholder instead of failing.
func print(m *machine.Machine) error {
	v, err := m.Pop()
	if err != nil {
		fmt.Fprintln(m.Output(), "<empty>")
		return nil
	}
	fmt.Fprintln(m.Output(), v.Inspect())
	return nil
}

// assign pops a value, then a String name, and binds the name in the current
// function or global scope.
func assign(m *machine.Machine) error {
	value, err := m.Pop()
	if err != nil {
		return err
	}
	name, err := m.PopString()
	if err != nil {
		return err
	}
	m.Bind(name, value)
	return nil
}

// assertType pops a String type name, then a value, and fails unless the
// value has exactly that type.
func assertType(m *machine.Machine) error {
	name, err := m.PopString()
	if err != nil {
		return err
	}
	value, err := m.Pop()
	if err != nil {
		return err
	}
	if name.String() != value.TypeName() {
		return &machine.TypeAssertionError{Expected: name.String(), Actual: value.TypeName()}
	}
	return nil
}

// makeClosure pops a function value and pushes a copy whose descriptor has
// captured every name binding visible here. The capture is a value snapshot:
// later reassignment in the defining scope does not reach the closure.
func makeClosure(m *machine.Machine) error {
	c, err := m.PopFunction()
	if err != nil {
		return err
	}
	if c.Kind != machine.KindFunction {
		return &machine.TypeAssertionError{Expected: "function", Actual: "builtin"}
	}

	closure := &machine.FunctionDescriptor{
		Ops:      c.Fn.Ops,
		Captured: m.VisibleNames(),
		NumArgs:  c.Fn.NumArgs,
	}
	m.Push(machine.FuncVal(&machine.Callable{
		Kind:  machine.KindFunction,
		Fn:    closure,
		Bound: c.Bound,
	}))
	return nil
}

// bind pops a count N, then a function value, then N more values, and pushes
// a callable with those values pre-bound. Binding more arguments than the
// function consumes fails. The count saturates: negative or NaN counts bind
// nothing, oversized counts drain the stack until it underflows.
func bind(m *machine.Machine) error {
	n, err := m.PopNumber()
	if err != nil {
		return err
	}
	count := 0
	switch {
	case n >= float64(math.MaxInt):
		count = math.MaxInt
	case n > 0:
		count = int(n)
	}

	c, err := m.PopFunction()
	if err != nil {
		return err
	}
	if c.Kind == machine.KindFunction && c.Fn.NumArgs < count {
		return machine.ErrTooManyBoundArgs
	}

	var bound []machine.Value
	for i := 0; i < count; i++ {
		v, err := m.Pop()
		if err != nil {
			return err
		}
		bound = append(bound, v)
	}

	m.Push(machine.FuncVal(&machine.Callable{
		Kind:    c.Kind,
		Builtin: c.Builtin,
		Fn:      c.Fn,
		Bound:   bound,
	}))
	return nil
}
