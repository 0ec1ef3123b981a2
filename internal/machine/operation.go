package machine

import "github.com/funvibe/slip/internal/interner"

// OpKind identifies one instruction in the parsed program tree.
type OpKind uint8

const (
	// OpPush pushes a literal Value verbatim, never invoking it.
	OpPush OpKind = iota
	// OpPushID resolves a name and invokes the result if it is a function,
	// pushing it otherwise.
	OpPushID
	// OpPushRaw resolves a name and always pushes the result.
	OpPushRaw
	// OpPushArg resolves a positional argument, invoking functions like
	// OpPushID does.
	OpPushArg
	// OpIf pops a Bool and runs Body in a fresh conditional scope when true.
	OpIf
	// OpReturn unwinds to the nearest function-call boundary.
	OpReturn
)

// Op is a single operation. The tree structure comes only from the nested
// bodies of OpIf and of function literals; there is no jump construct.
type Op struct {
	Kind  OpKind
	Value Value           // OpPush
	Name  interner.Handle // OpPushID, OpPushRaw
	Index int             // OpPushArg
	Body  []Op            // OpIf then-branch
	// Else is carried for the if operation but the parser never fills it and
	// the engine rejects a non-empty one. There is no source-level else yet.
	Else []Op
}
