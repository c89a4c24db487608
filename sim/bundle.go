package sim

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// RunBundle holds run configuration loadable from a YAML file.
// Nil pointer fields mean "not set in YAML"; they do not override flags.
// String fields use empty string for "not set".
type RunBundle struct {
	Scheduler string `yaml:"scheduler"`
	Verbose   *bool  `yaml:"verbose"`
	Format    string `yaml:"format"`
	Quantum   *int64 `yaml:"quantum"`
}

// ValidFormats is the set of recognized report formats.
// Shared by Validate() and the CLI flag check.
var ValidFormats = map[string]bool{"": true, "text": true, "table": true, "json": true}

// LoadRunBundle reads and parses a YAML run configuration file.
// Unknown keys are rejected so that typos do not silently fall back to defaults.
func LoadRunBundle(path string) (*RunBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var bundle RunBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &bundle, nil
}

// Validate checks the scheduler selector, the format name and the quantum range.
func (b *RunBundle) Validate() error {
	if b.Scheduler != "" {
		if _, err := ParsePolicy(b.Scheduler); err != nil {
			return fmt.Errorf("scheduler: %w", err)
		}
	}
	if !ValidFormats[b.Format] {
		return fmt.Errorf("unknown format %q", b.Format)
	}
	if b.Quantum != nil && *b.Quantum <= 0 {
		return fmt.Errorf("quantum must be positive, got %d", *b.Quantum)
	}
	return nil
}
