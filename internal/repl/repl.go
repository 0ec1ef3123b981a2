// Package repl implements the interactive session: one persistent machine
// whose global scope survives across submitted lines, with line editing,
// history and completion on top.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/funvibe/slip/internal/builtins"
	"github.com/funvibe/slip/internal/config"
	"github.com/funvibe/slip/internal/interner"
	"github.com/funvibe/slip/internal/machine"
	"github.com/funvibe/slip/internal/parser"
)

const prompt = ">> "

// completionWords are the keywords and builtin names offered for tab
// completion.
var completionWords = []string{
	"fn", "if", "end", "ret",
	"bind",
	"+", "-", "*", "/", "<", ".", ":=", "!", "^",
}

// Session wraps a machine and the interner shared with the parser. Bindings
// made by one evaluated line are visible to the next.
type Session struct {
	table *interner.Table
	mach  *machine.Machine
}

func NewSession(cfg *config.Config, out io.Writer) *Session {
	table := interner.New()

	args := make([]machine.Value, len(cfg.Args))
	for i, a := range cfg.Args {
		args[i] = machine.StringVal(table.Intern(a))
	}

	return &Session{
		table: table,
		mach:  machine.New(builtins.Catalog(table), args, machine.WithOutput(out)),
	}
}

// Eval parses one submitted line as a program and runs its operations in the
// session's global scope.
func (s *Session) Eval(line string) error {
	desc, err := parser.Parse(line, s.table)
	if err != nil {
		return err
	}
	return s.mach.Interpret(desc)
}

// Machine exposes the underlying machine, mainly for inspecting the value
// stack after an evaluation.
func (s *Session) Machine() *machine.Machine {
	return s.mach
}

// Start runs the interactive loop until exit or EOF.
func Start(cfg *config.Config, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completeLine)

	historyFile := cfg.History
	if historyFile == "" {
		historyFile = config.DefaultHistoryFile()
	}
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	colored := !cfg.NoColor && isatty.IsTerminal(os.Stdout.Fd())

	fmt.Fprintln(out, "slip interactive session")
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(out)

	session := NewSession(cfg, out)

	for {
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(out, "read error: %s\n", err)
			}
			break
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if trimmed == "exit" {
			break
		}

		line.AppendHistory(input)

		if err := session.Eval(input); err != nil {
			printError(out, err, colored)
		}
	}
}

func printError(out io.Writer, err error, colored bool) {
	if colored {
		fmt.Fprintf(out, "\x1b[31merror: %s\x1b[0m\n", err)
		return
	}
	fmt.Fprintf(out, "error: %s\n", err)
}

// completeLine completes the last whitespace-separated token of the line.
func completeLine(line string) []string {
	cut := strings.LastIndexAny(line, " \t")
	head, last := "", line
	if cut >= 0 {
		head, last = line[:cut+1], line[cut+1:]
	}
	if last == "" {
		return nil
	}

	var out []string
	for _, w := range completionWords {
		if strings.HasPrefix(w, last) {
			out = append(out, head+w)
		}
	}
	return out
}
