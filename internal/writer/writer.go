// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package writer serializes canonical records into bibliography files.
// The writer owns citation-key uniqueness: keys are assigned from an
// explicit per-run KeySet as records are emitted. Records that cannot be
// represented in the target encoding are reported and skipped; one bad
// record never aborts the rest of the file.
package writer

import (
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/bibconv/pkg/types"
)

// ErrUnknownTarget is returned for an output encoding no writer handles.
var ErrUnknownTarget = errors.New("unknown target format")

// Writer serializes an ordered record sequence to w, assigning each
// emitted record a unique citation key from keys. It returns the number of
// records written and a diagnostic per skipped record.
type Writer interface {
	Write(w io.Writer, records []types.Record, keys *KeySet) (int, []types.Diagnostic, error)
}

// New returns the writer for target.
func New(target types.Target) (Writer, error) {
	switch target {
	case types.TargetBibTeX:
		return &BibTeXWriter{}, nil
	case types.TargetCSLYAML:
		return &CSLWriter{}, nil
	case types.TargetJSONL:
		return &JSONLWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
}

// checkSerializable reports the first field value containing characters no
// text encoding here can represent: C0 control characters other than tab.
// Parsed values are single-line by construction, so anything else that
// turns up is corrupt source data.
func checkSerializable(rec types.Record) error {
	check := func(field types.Field, values ...string) error {
		for _, v := range values {
			for _, r := range v {
				if r < 0x20 && r != '\t' {
					return fmt.Errorf("field %s contains control character %#02x", field, r)
				}
			}
		}
		return nil
	}
	for _, c := range []struct {
		field  types.Field
		values []string
	}{
		{types.FieldTitle, []string{rec.Title}},
		{types.FieldAuthors, rec.Authors},
		{types.FieldYear, []string{rec.Year}},
		{types.FieldJournal, []string{rec.Journal}},
		{types.FieldVolume, []string{rec.Volume}},
		{types.FieldPages, []string{rec.Pages}},
		{types.FieldKeywords, rec.Keywords},
		{types.FieldDOI, []string{rec.DOI}},
		{types.FieldAbstract, []string{rec.Abstract}},
	} {
		if err := check(c.field, c.values...); err != nil {
			return err
		}
	}
	return nil
}

// skipDiagnostic builds the diagnostic for a record a writer refused.
func skipDiagnostic(rec types.Record, err error) types.Diagnostic {
	return types.Diagnostic{
		Stage:  types.StageWrite,
		Index:  rec.Index,
		Reason: err.Error(),
	}
}
