package machine

import (
	"errors"
	"fmt"
)

// Execution errors are fatal: they propagate straight to the caller of
// Execute with no recovery in between.

var (
	ErrEmptyStack       = errors.New("tried to pop from empty stack")
	ErrTooManyBoundArgs = errors.New("tried to bind too many arguments")

	errUnexpectedElse = errors.New("else branch is not supported")
)

// TypeMismatchError reports a stack pop that expected one value variant and
// found another.
type TypeMismatchError struct {
	Expected string
}

func (e *TypeMismatchError) Error() string {
	return "type mismatch: expected " + e.Expected
}

// UnboundIdentifierError reports a name that no scope or global binding
// resolves.
type UnboundIdentifierError struct {
	Name string
}

func (e *UnboundIdentifierError) Error() string {
	return "unbound identifier " + e.Name
}

// UnboundArgumentError reports a positional argument index no scope's
// argument list covers.
type UnboundArgumentError struct {
	Index int
}

func (e *UnboundArgumentError) Error() string {
	return fmt.Sprintf("unbound argument number %d", e.Index)
}

// TypeAssertionError reports an explicit `!` assertion failure.
type TypeAssertionError struct {
	Expected string
	Actual   string
}

func (e *TypeAssertionError) Error() string {
	return fmt.Sprintf("type assertion failed: expected %s, got %s", e.Expected, e.Actual)
}
