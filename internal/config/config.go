// Package config loads the optional slip.yaml runtime configuration. The
// file lives next to the executed script (or wherever -config points) and
// controls interpreter startup, not language semantics.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up next to the script.
const FileName = "slip.yaml"

// SourceFileExt is the recognized script extension.
const SourceFileExt = ".slip"

// Config is the top-level slip.yaml structure. Unknown keys are rejected.
type Config struct {
	// Args are seeded into the global scope's positional arguments, before
	// any arguments given on the command line.
	Args []string `yaml:"args,omitempty"`

	// History is the REPL history file path. Empty selects a default under
	// the system temp directory.
	History string `yaml:"history,omitempty"`

	// NoColor disables ANSI coloring in REPL output.
	NoColor bool `yaml:"no_color,omitempty"`
}

// DefaultHistoryFile is where REPL history goes when slip.yaml does not say.
func DefaultHistoryFile() string {
	return filepath.Join(os.TempDir(), ".slip_history")
}

// Load reads and validates a slip.yaml file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadIfPresent loads dir/slip.yaml, or returns an empty config when the
// file does not exist.
func LoadIfPresent(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return &Config{}, nil
	}
	return Load(path)
}
