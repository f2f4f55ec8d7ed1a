// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mapping loads the declarative field-mapping tables that drive
// normalization. One table per source format, expressed as an ordered list
// of rules in YAML: source field name, canonical field, optional transform.
// Tables for the three supported formats are embedded in the binary;
// a caller-supplied directory overrides them.
package mapping

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibconv/pkg/types"
)

//go:embed defaults/*.yaml
var defaults embed.FS

var (
	// ErrNoTable is returned when no mapping table exists for a format.
	ErrNoTable = errors.New("no mapping table for format")

	// ErrInvalidTable is returned when a mapping table fails validation.
	// A table that fails validation is never partially used.
	ErrInvalidTable = errors.New("invalid mapping table")
)

// Rule maps one source field onto one canonical field, optionally through
// a named transform. Rule order in the table is priority order: the first
// rule whose source field is present with a non-empty value wins the
// canonical field it targets.
type Rule struct {
	// Source is the vendor field name: an RIS tag or a CSV header cell.
	Source string `yaml:"source"`

	// Field is the canonical field the value maps onto.
	Field types.Field `yaml:"field"`

	// Transform names the transform applied to the raw value. Empty means
	// identity.
	Transform string `yaml:"transform,omitempty"`

	// Arg is the transform argument (a delimiter, a word count).
	Arg string `yaml:"arg,omitempty"`
}

// Table is the complete mapping for one source format.
type Table struct {
	// Format is the source format this table applies to.
	Format types.Format `yaml:"format"`

	// Rules is the ordered rule list. Declaration order is priority order.
	Rules []Rule `yaml:"rules"`

	// Types maps vendor publication-type strings onto canonical entry
	// types (JOUR -> article, Conference Paper -> inproceedings).
	Types map[string]string `yaml:"types,omitempty"`
}

// DefaultEntryType is assigned when a record's type value has no entry in
// the table's type map, or when the source carries no type field at all.
const DefaultEntryType = "misc"

// EntryType resolves a raw publication-type value to a canonical entry
// type. Vendors that join several types with "; " (PubMed) get the first
// value the type map recognizes; an unrecognized or empty value resolves
// to DefaultEntryType.
func (t *Table) EntryType(raw string) string {
	for _, cand := range splitList(raw) {
		if mapped, ok := t.Types[cand]; ok {
			return mapped
		}
	}
	return DefaultEntryType
}

// Load reads and validates the mapping table for format. With a non-empty
// dir, the table comes from dir/<format>.yaml; otherwise the embedded
// default is used. Any structural problem is an error: no partial table
// is ever returned.
func Load(dir string, format types.Format) (*Table, error) {
	name := string(format) + ".yaml"
	var (
		data []byte
		err  error
	)
	if dir != "" {
		data, err = os.ReadFile(filepath.Join(dir, name))
	} else {
		data, err = defaults.ReadFile("defaults/" + name)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoTable, format)
		}
		return nil, fmt.Errorf("reading mapping table for %s: %w", format, err)
	}
	return Parse(data, format)
}

// Parse decodes and validates one mapping table. The declared format must
// match the requested one so a misplaced file fails loudly instead of
// silently mapping the wrong vendor's fields.
func Parse(data []byte, format types.Format) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if t.Format != format {
		return nil, fmt.Errorf("%w: declares format %q, want %q", ErrInvalidTable, t.Format, format)
	}
	if len(t.Rules) == 0 {
		return nil, fmt.Errorf("%w: no rules", ErrInvalidTable)
	}
	for i, r := range t.Rules {
		if r.Source == "" {
			return nil, fmt.Errorf("%w: rule %d has no source field", ErrInvalidTable, i+1)
		}
		if !r.Field.Valid() {
			return nil, fmt.Errorf("%w: rule %d targets unknown field %q", ErrInvalidTable, i+1, r.Field)
		}
	}
	return &t, nil
}

// splitList splits a "; "-joined value list, trimming each element.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
