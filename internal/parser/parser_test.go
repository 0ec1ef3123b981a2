package parser

import (
	"errors"
	"testing"

	"github.com/funvibe/slip/internal/interner"
	"github.com/funvibe/slip/internal/machine"
)

func parseProgram(t *testing.T, input string) *machine.FunctionDescriptor {
	t.Helper()
	desc, err := Parse(input, interner.New())
	if err != nil {
		t.Fatalf("parse error for %q: %s", input, err)
	}
	return desc
}

func kinds(ops []machine.Op) []machine.OpKind {
	out := make([]machine.OpKind, len(ops))
	for i, op := range ops {
		out[i] = op.Kind
	}
	return out
}

func TestOperationKinds(t *testing.T) {
	tests := []struct {
		input    string
		expected []machine.OpKind
	}{
		{"42", []machine.OpKind{machine.OpPush}},
		{"'hello'", []machine.OpKind{machine.OpPush}},
		{"foo", []machine.OpKind{machine.OpPushID}},
		{"$foo", []machine.OpKind{machine.OpPushRaw}},
		{"$0", []machine.OpKind{machine.OpPushArg}},
		{"ret", []machine.OpKind{machine.OpReturn}},
		{"fn end", []machine.OpKind{machine.OpPush}},
		{"flag if end", []machine.OpKind{machine.OpPushID, machine.OpIf}},
		{"5 3 - .", []machine.OpKind{machine.OpPush, machine.OpPush, machine.OpPushID, machine.OpPushID}},
	}

	for _, tt := range tests {
		desc := parseProgram(t, tt.input)
		got := kinds(desc.Ops)
		if len(got) != len(tt.expected) {
			t.Errorf("%q: got %d ops, want %d", tt.input, len(got), len(tt.expected))
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("%q: op %d = %d, want %d", tt.input, i, got[i], tt.expected[i])
			}
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.25", 3.25},
		{"10.0", 10},
	}

	for _, tt := range tests {
		desc := parseProgram(t, tt.input)
		if len(desc.Ops) != 1 {
			t.Fatalf("%q: got %d ops, want 1", tt.input, len(desc.Ops))
		}
		v := desc.Ops[0].Value
		if v.Type != machine.ValNumber {
			t.Fatalf("%q: value type = %d, want number", tt.input, v.Type)
		}
		if v.AsNumber() != tt.expected {
			t.Errorf("%q: value = %v, want %v", tt.input, v.AsNumber(), tt.expected)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	desc := parseProgram(t, "'hello'")
	v := desc.Ops[0].Value
	if v.Type != machine.ValString {
		t.Fatalf("value type = %d, want string", v.Type)
	}
	if v.Str.String() != "hello" {
		t.Errorf("value = %q, want %q", v.Str.String(), "hello")
	}
}

func TestArityInference(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"", 0},
		{"1 2 +", 0},
		{"$0", 1},
		{"$0 $3 $1", 4},
		{"$name", 0},
		// if bodies widen the enclosing function's arity.
		{"flag if $2 end", 3},
		// nested function bodies do not.
		{"fn $5 end", 0},
		{"$1 fn $5 end", 2},
	}

	for _, tt := range tests {
		desc := parseProgram(t, tt.input)
		if desc.NumArgs != tt.expected {
			t.Errorf("%q: NumArgs = %d, want %d", tt.input, desc.NumArgs, tt.expected)
		}
	}
}

func TestNestedFunctionArity(t *testing.T) {
	desc := parseProgram(t, "fn $0 $1 end")
	inner := desc.Ops[0].Value.Fn.Fn
	if inner.NumArgs != 2 {
		t.Errorf("inner NumArgs = %d, want 2", inner.NumArgs)
	}
	if desc.NumArgs != 0 {
		t.Errorf("outer NumArgs = %d, want 0", desc.NumArgs)
	}
}

func TestIfBodyNesting(t *testing.T) {
	desc := parseProgram(t, "cond if 1 ret end 2")
	if len(desc.Ops) != 3 {
		t.Fatalf("got %d ops, want 3", len(desc.Ops))
	}
	ifOp := desc.Ops[1]
	if ifOp.Kind != machine.OpIf {
		t.Fatalf("op 1 kind = %d, want if", ifOp.Kind)
	}
	if len(ifOp.Body) != 2 {
		t.Errorf("if body has %d ops, want 2", len(ifOp.Body))
	}
	if len(ifOp.Else) != 0 {
		t.Errorf("if else body has %d ops, want 0", len(ifOp.Else))
	}
}

func TestTopLevelEndStopsParsing(t *testing.T) {
	desc := parseProgram(t, "1 2 end 3 4")
	if len(desc.Ops) != 2 {
		t.Errorf("got %d ops, want 2 (end terminates the body)", len(desc.Ops))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		check func(error) bool
	}{
		{"1.2.3", func(err error) bool {
			var numErr *InvalidNumberError
			return errors.As(err, &numErr) && numErr.Literal == "1.2.3"
		}},
		{"$", func(err error) bool { return errors.Is(err, ErrInvalidRawPush) }},
		{"$ foo", func(err error) bool { return errors.Is(err, ErrInvalidRawPush) }},
		{"'unterminated", func(err error) bool { return errors.Is(err, ErrInvalidString) }},
		{"'has space'", func(err error) bool { return errors.Is(err, ErrInvalidString) }},
		{"fn 1.2.3 end", func(err error) bool {
			var numErr *InvalidNumberError
			return errors.As(err, &numErr)
		}},
	}

	for _, tt := range tests {
		_, err := Parse(tt.input, interner.New())
		if err == nil {
			t.Errorf("%q: expected error, got none", tt.input)
			continue
		}
		if !tt.check(err) {
			t.Errorf("%q: wrong error: %s", tt.input, err)
		}
	}
}

func TestSignPrefixedArgReference(t *testing.T) {
	// strconv accepts a leading plus, so $+2 is still an argument reference.
	desc := parseProgram(t, "$+2")
	if desc.Ops[0].Kind != machine.OpPushArg || desc.Ops[0].Index != 2 {
		t.Errorf("got kind %d index %d, want arg push of 2", desc.Ops[0].Kind, desc.Ops[0].Index)
	}
	// A negative index is an identifier, not an argument.
	desc = parseProgram(t, "$-2")
	if desc.Ops[0].Kind != machine.OpPushRaw {
		t.Errorf("$-2 parsed as kind %d, want raw push", desc.Ops[0].Kind)
	}
}

func TestIdentifiersShareHandles(t *testing.T) {
	table := interner.New()
	desc, err := Parse("foo foo", table)
	if err != nil {
		t.Fatal(err)
	}
	if desc.Ops[0].Name != desc.Ops[1].Name {
		t.Error("repeated identifier should intern to the same handle")
	}
}
