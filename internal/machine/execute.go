package machine

// pushOrInvoke applies the push-or-invoke rule: a resolved function value is
// called immediately, anything else lands on the stack.
func (m *Machine) pushOrInvoke(v Value) error {
	if v.Type == ValFunction {
		return v.Fn.Invoke(m)
	}
	m.Push(v)
	return nil
}

// run is the instruction-list evaluator. The returned bool signals that a
// Return was executed and must keep unwinding through every enclosing
// evaluator call up to the nearest function-call boundary.
func (m *Machine) run(ops []Op) (bool, error) {
	for i := range ops {
		op := &ops[i]
		switch op.Kind {
		case OpPush:
			m.Push(op.Value)

		case OpPushID:
			v, ok := m.lookUp(op.Name)
			if !ok {
				v, ok = m.globalScope().Get(op.Name)
			}
			if !ok {
				return false, &UnboundIdentifierError{Name: op.Name.String()}
			}
			if err := m.pushOrInvoke(v); err != nil {
				return false, err
			}

		case OpPushRaw:
			v, ok := m.lookUp(op.Name)
			if !ok {
				v, ok = m.globalScope().Get(op.Name)
			}
			if !ok {
				return false, &UnboundIdentifierError{Name: op.Name.String()}
			}
			m.Push(v)

		case OpPushArg:
			v, ok := m.arg(op.Index)
			if !ok {
				return false, &UnboundArgumentError{Index: op.Index}
			}
			if err := m.pushOrInvoke(v); err != nil {
				return false, err
			}

		case OpIf:
			cond, err := m.PopBool()
			if err != nil {
				return false, err
			}
			if cond {
				m.pushScope(newConditionalScope())
				returned, err := m.run(op.Body)
				m.popScope()
				if err != nil {
					return false, err
				}
				if returned {
					return true, nil
				}
			} else if len(op.Else) != 0 {
				return false, errUnexpectedElse
			}

		case OpReturn:
			return true, nil
		}
	}
	return false, nil
}

// call invokes a function descriptor. Missing arguments are popped from the
// value stack in reverse order so that positional order matches source call
// order; bound arguments sit ahead of them. The function scope is popped on
// exit whether or not a Return fired inside.
func (m *Machine) call(desc *FunctionDescriptor, bound []Value) error {
	// The stack depth check must precede the allocation: an inferred arity
	// can be arbitrarily large.
	if desc.NumArgs-len(bound) > len(m.stack) {
		return ErrEmptyStack
	}

	args := make([]Value, desc.NumArgs)
	copy(args, bound)

	for i := desc.NumArgs - 1; i >= len(bound); i-- {
		v, err := m.Pop()
		if err != nil {
			return err
		}
		args[i] = v
	}

	m.pushScope(newFunctionScope(args, desc.Captured))
	_, err := m.run(desc.Ops)
	m.popScope()
	return err
}
