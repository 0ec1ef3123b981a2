package parser

import "errors"

var (
	// ErrInvalidRawPush reports a `$` with nothing following it.
	ErrInvalidRawPush = errors.New("must have an identifier after $")
	// ErrInvalidString reports a string literal with no closing quote before
	// whitespace or end of input.
	ErrInvalidString = errors.New("unclosed string literal")
)

// InvalidNumberError reports a digit-leading token that is not a valid
// floating-point literal.
type InvalidNumberError struct {
	Literal string
	Err     error
}

func (e *InvalidNumberError) Error() string {
	return "invalid numeric literal " + e.Literal
}

func (e *InvalidNumberError) Unwrap() error {
	return e.Err
}
