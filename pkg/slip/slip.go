// Package slip provides the high-level embedding API: one Interpreter
// bundles an interner table and the builtin catalog, parses source text and
// runs it on a fresh machine per call.
package slip

import (
	"io"
	"os"

	"github.com/funvibe/slip/internal/builtins"
	"github.com/funvibe/slip/internal/interner"
	"github.com/funvibe/slip/internal/machine"
	"github.com/funvibe/slip/internal/parser"
)

type Interpreter struct {
	table   *interner.Table
	catalog map[interner.Handle]machine.Value
	out     io.Writer
}

func New() *Interpreter {
	table := interner.New()
	return &Interpreter{
		table:   table,
		catalog: builtins.Catalog(table),
		out:     os.Stdout,
	}
}

// SetOutput redirects what the `.` builtin prints. It affects machines
// created by later Run calls.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.out = w
}

// Parse compiles source text without running it.
func (i *Interpreter) Parse(source string) (*machine.FunctionDescriptor, error) {
	return parser.Parse(source, i.table)
}

// Run parses and executes a program. The given args seed the global scope's
// positional arguments as Strings; the final machine state comes back for
// inspection even when execution fails partway.
func (i *Interpreter) Run(source string, args ...string) (*machine.Machine, error) {
	desc, err := i.Parse(source)
	if err != nil {
		return nil, err
	}

	vals := make([]machine.Value, len(args))
	for n, a := range args {
		vals[n] = machine.StringVal(i.table.Intern(a))
	}

	return machine.Execute(desc, i.catalog, vals, machine.WithOutput(i.out))
}
