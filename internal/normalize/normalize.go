// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps raw export records onto canonical records using a
// declarative mapping table. The normalizer is pure: the same raw record
// and table always produce the same canonical record.
package normalize

import (
	"errors"
	"fmt"

	"github.com/pdiddy/bibconv/internal/mapping"
	"github.com/pdiddy/bibconv/pkg/types"
)

// ErrMissingTitle rejects a record no title field maps onto. Such records
// are reported and skipped, never silently emitted.
var ErrMissingTitle = errors.New("record has no title")

// Normalizer applies one format's mapping table to raw records.
type Normalizer struct {
	table *mapping.Table
	rules []boundRule
}

// boundRule is a mapping rule with its transform resolved.
type boundRule struct {
	mapping.Rule
	fn TransformFunc
}

// New builds a normalizer for table, resolving every rule's transform up
// front. An unknown transform name or a bad argument is an error here, so
// a broken mapping table fails the run before any record is touched.
func New(table *mapping.Table) (*Normalizer, error) {
	rules := make([]boundRule, 0, len(table.Rules))
	for i, r := range table.Rules {
		fn, err := resolve(r.Transform, r.Arg)
		if err != nil {
			return nil, fmt.Errorf("mapping table for %s, rule %d (%s): %w", table.Format, i+1, r.Source, err)
		}
		rules = append(rules, boundRule{Rule: r, fn: fn})
	}
	return &Normalizer{table: table, rules: rules}, nil
}

// Normalize maps one raw record onto a canonical record. For each
// canonical field the first rule in declaration order whose source field
// is present and non-empty wins; later rules for the same field are
// fallbacks. Source fields no rule mentions are dropped. The entry type
// passes through the table's type map and defaults when unrecognized, so
// every returned record satisfies the title-and-type invariant.
func (n *Normalizer) Normalize(raw types.RawRecord) (types.Record, error) {
	rec := types.Record{Index: raw.Index}

	filled := make(map[types.Field]bool, len(types.CanonicalFields))
	for _, br := range n.rules {
		if filled[br.Field] {
			continue
		}
		values := nonEmpty(raw.Fields[br.Source])
		if len(values) == 0 {
			continue
		}
		out := nonEmpty(br.fn(br.Arg, values))
		if len(out) == 0 {
			continue
		}
		rec.Set(br.Field, out)
		filled[br.Field] = true
	}

	if rec.Title == "" {
		return types.Record{}, ErrMissingTitle
	}
	rec.Type = n.table.EntryType(rec.Type)
	return rec, nil
}

// nonEmpty returns values with blank entries removed.
func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
