// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Target selects the output bibliography encoding.
type Target string

const (
	TargetBibTeX  Target = "bibtex"
	TargetCSLYAML Target = "csl-yaml"
	TargetJSONL   Target = "jsonl"
)

// Targets lists every supported output encoding.
var Targets = []Target{TargetBibTeX, TargetCSLYAML, TargetJSONL}

// Valid reports whether t is a supported output encoding.
func (t Target) Valid() bool {
	for _, known := range Targets {
		if t == known {
			return true
		}
	}
	return false
}

// ConvertConfig holds the settings for one conversion run.
type ConvertConfig struct {
	// MappingsDir points at a directory of per-format mapping tables
	// (<format>.yaml). Empty means the tables embedded in the binary.
	MappingsDir string `json:"mappings_dir" yaml:"mappings_dir"`

	// Target is the output encoding: bibtex, csl-yaml, or jsonl.
	Target Target `json:"target" yaml:"target"`

	// Quiet suppresses per-record diagnostics on the log.
	Quiet bool `json:"quiet" yaml:"quiet"`
}

// DefaultConvertConfig returns the configuration used when nothing is set:
// embedded mapping tables and BibTeX output.
func DefaultConvertConfig() ConvertConfig {
	return ConvertConfig{Target: TargetBibTeX}
}
