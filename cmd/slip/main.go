package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/slip/internal/config"
	"github.com/funvibe/slip/internal/repl"
	"github.com/funvibe/slip/pkg/slip"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-config file] [-e code] [file] [args...]\n", os.Args[0])
	os.Exit(1)
}

func main() {
	// Catch panics and show a short error instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	expr, configPath, file, scriptArgs, ok := parseArgs(os.Args[1:])
	if !ok {
		usage()
	}

	cfg, err := loadConfig(configPath, file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %s\n", err)
		os.Exit(1)
	}
	allArgs := append(append([]string{}, cfg.Args...), scriptArgs...)

	switch {
	case expr != "":
		runSource(expr, allArgs)
	case file != "":
		source, err := readScript(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		runSource(source, allArgs)
	case !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()):
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %s\n", err)
			os.Exit(1)
		}
		runSource(string(input), allArgs)
	default:
		repl.Start(cfg, os.Stdout)
	}
}

// parseArgs scans the command line. Flags are only recognized before the
// script file is named; everything after the file is a positional argument
// for the script, so a script can receive a literal `-e`.
func parseArgs(args []string) (expr, configPath, file string, scriptArgs []string, ok bool) {
	for i := 0; i < len(args); i++ {
		if file != "" {
			scriptArgs = append(scriptArgs, args[i])
			continue
		}
		switch {
		case args[i] == "-e" || args[i] == "--eval":
			if i+1 >= len(args) {
				return "", "", "", nil, false
			}
			i++
			expr = args[i]
		case args[i] == "-config" || args[i] == "--config":
			if i+1 >= len(args) {
				return "", "", "", nil, false
			}
			i++
			configPath = args[i]
		case expr == "":
			file = args[i]
		default:
			scriptArgs = append(scriptArgs, args[i])
		}
	}
	return expr, configPath, file, scriptArgs, true
}

// loadConfig prefers an explicit -config path, then slip.yaml next to the
// script, then slip.yaml in the working directory.
func loadConfig(configPath, file string) (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	if file != "" {
		return config.LoadIfPresent(filepath.Dir(file))
	}
	return config.LoadIfPresent(".")
}

// readScript reads a script file. A directory resolves to its entry file,
// <dir>/<base>.slip.
func readScript(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		path = filepath.Join(path, filepath.Base(path)+config.SourceFileExt)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func runSource(source string, args []string) {
	interp := slip.New()
	if _, err := interp.Run(source, args...); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
