// Package parser turns source text into an operation tree. The grammar is a
// stream of whitespace-delimited tokens; parsing is a single recursive
// descent pass with one character of lookahead. Function and conditional
// bodies recurse until their matching `end`; the top level runs until the
// input is exhausted.
package parser

import (
	"strconv"

	"github.com/funvibe/slip/internal/interner"
	"github.com/funvibe/slip/internal/machine"
)

// Parse reads a whole program and returns its descriptor, including the
// inferred argument arity: one past the highest `$<index>` referenced in the
// program's own body (conditional bodies included, nested functions not).
func Parse(input string, table *interner.Table) (*machine.FunctionDescriptor, error) {
	s := &scanner{input: input}
	return parseBody(s, table)
}

func parseBody(s *scanner, table *interner.Table) (*machine.FunctionDescriptor, error) {
	desc := &machine.FunctionDescriptor{}

	for {
		c, ok := s.next()
		if !ok {
			break
		}

		var op machine.Op
		switch {
		case isSpace(c):
			continue

		case isDigit(c):
			lit := s.readWhile(c, func(b byte) bool { return isDigit(b) || b == '.' })
			f, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return nil, &InvalidNumberError{Literal: lit, Err: err}
			}
			op = machine.Op{Kind: machine.OpPush, Value: machine.NumberVal(f)}

		case c == '$':
			name := s.readToken()
			if name == "" {
				return nil, ErrInvalidRawPush
			}
			if index, err := strconv.Atoi(name); err == nil && index >= 0 {
				if index+1 > desc.NumArgs {
					desc.NumArgs = index + 1
				}
				op = machine.Op{Kind: machine.OpPushArg, Index: index}
			} else {
				op = machine.Op{Kind: machine.OpPushRaw, Name: table.Intern(name)}
			}

		case c == '\'':
			lit := s.collect(func(b byte) bool { return !isSpace(b) && b != '\'' })
			if quote, ok := s.next(); !ok || quote != '\'' {
				return nil, ErrInvalidString
			}
			op = machine.Op{Kind: machine.OpPush, Value: machine.StringVal(table.Intern(lit))}

		default:
			tok := s.readWhile(c, func(b byte) bool { return !isSpace(b) })
			switch tok {
			case "end":
				// The only way a recursive parse returns to its caller. At
				// the top level this simply stops parsing.
				return desc, nil
			case "fn":
				inner, err := parseBody(s, table)
				if err != nil {
					return nil, err
				}
				op = machine.Op{Kind: machine.OpPush, Value: machine.FuncVal(machine.NewFunction(inner))}
			case "if":
				inner, err := parseBody(s, table)
				if err != nil {
					return nil, err
				}
				if inner.NumArgs > desc.NumArgs {
					desc.NumArgs = inner.NumArgs
				}
				op = machine.Op{Kind: machine.OpIf, Body: inner.Ops}
			case "ret":
				op = machine.Op{Kind: machine.OpReturn}
			default:
				op = machine.Op{Kind: machine.OpPushID, Name: table.Intern(tok)}
			}
		}
		desc.Ops = append(desc.Ops, op)
	}

	return desc, nil
}
