package machine

import (
	"math"
	"strconv"

	"github.com/funvibe/slip/internal/interner"
)

// ValueType identifies the variant stored in a Value.
type ValueType uint8

const (
	ValBool ValueType = iota
	ValNumber
	ValString
	ValFunction
)

// Value is a small tagged union. Bool and Number live inline in Data;
// String holds an interned handle; Function points at a shared Callable.
// Values are copied freely, never deep-cloned.
type Value struct {
	Type ValueType
	Data uint64 // float64 bits for Number, 0/1 for Bool
	Str  interner.Handle
	Fn   *Callable
}

// Constructors

func BoolVal(b bool) Value {
	var data uint64
	if b {
		data = 1
	}
	return Value{Type: ValBool, Data: data}
}

func NumberVal(f float64) Value {
	return Value{Type: ValNumber, Data: math.Float64bits(f)}
}

func StringVal(h interner.Handle) Value {
	return Value{Type: ValString, Str: h}
}

func FuncVal(c *Callable) Value {
	return Value{Type: ValFunction, Fn: c}
}

// Accessors

func (v Value) AsBool() bool {
	return v.Data == 1
}

func (v Value) AsNumber() float64 {
	return math.Float64frombits(v.Data)
}

// TypeName returns the name used by the `!` type assertion builtin.
func (v Value) TypeName() string {
	switch v.Type {
	case ValBool:
		return "bool"
	case ValNumber:
		return "number"
	case ValString:
		return "string"
	case ValFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Inspect renders the value exactly as the `.` builtin prints it.
func (v Value) Inspect() string {
	switch v.Type {
	case ValBool:
		return strconv.FormatBool(v.AsBool())
	case ValNumber:
		return strconv.FormatFloat(v.AsNumber(), 'f', -1, 64)
	case ValString:
		return v.Str.String()
	case ValFunction:
		if v.Fn != nil {
			return v.Fn.Inspect()
		}
		return "<function>"
	default:
		return "<?>"
	}
}

// debugString is Inspect with strings quoted, used when listing bound
// arguments inside a callable's description.
func (v Value) debugString() string {
	if v.Type == ValString {
		return strconv.Quote(v.Str.String())
	}
	return v.Inspect()
}
