// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/bibconv/pkg/types"
)

// BibTeXWriter emits one @type{key, ...} entry per record. Authors are
// joined with " and " and keywords with ", ", the conventions BibTeX
// consumers expect. Absent fields are omitted entirely, never emitted
// empty.
type BibTeXWriter struct{}

// bibtexFieldOrder fixes the emission order inside an entry so output is
// deterministic and diff-friendly.
var bibtexFieldOrder = []types.Field{
	types.FieldAuthors,
	types.FieldTitle,
	types.FieldJournal,
	types.FieldVolume,
	types.FieldPages,
	types.FieldYear,
	types.FieldDOI,
	types.FieldKeywords,
	types.FieldAbstract,
}

// Write serializes records to w.
func (*BibTeXWriter) Write(w io.Writer, records []types.Record, keys *KeySet) (int, []types.Diagnostic, error) {
	var (
		written int
		diags   []types.Diagnostic
	)
	for _, rec := range records {
		if err := checkSerializable(rec); err != nil {
			diags = append(diags, skipDiagnostic(rec, err))
			continue
		}
		rec.Key = keys.Assign(rec)
		if err := writeBibTeXEntry(w, rec); err != nil {
			return written, diags, fmt.Errorf("writing entry %s: %w", rec.Key, err)
		}
		written++
	}
	return written, diags, nil
}

func writeBibTeXEntry(w io.Writer, rec types.Record) error {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", rec.Type, rec.Key)
	for _, field := range bibtexFieldOrder {
		value := bibtexValue(rec, field)
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "  %-8s = {%s},\n", bibtexFieldName(field), escapeBibTeX(value))
	}
	b.WriteString("}\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// bibtexValue renders one canonical field as a BibTeX field value.
func bibtexValue(rec types.Record, field types.Field) string {
	switch field {
	case types.FieldAuthors:
		return strings.Join(rec.Authors, " and ")
	case types.FieldTitle:
		return rec.Title
	case types.FieldJournal:
		return rec.Journal
	case types.FieldVolume:
		return rec.Volume
	case types.FieldPages:
		return rec.Pages
	case types.FieldYear:
		return rec.Year
	case types.FieldDOI:
		return rec.DOI
	case types.FieldKeywords:
		return strings.Join(rec.Keywords, ", ")
	case types.FieldAbstract:
		return rec.Abstract
	}
	return ""
}

// bibtexFieldName maps canonical fields onto BibTeX field names.
func bibtexFieldName(field types.Field) string {
	switch field {
	case types.FieldAuthors:
		return "author"
	case types.FieldKeywords:
		return "keywords"
	default:
		return string(field)
	}
}

// bibtexEscaper protects the characters TeX treats specially. Braces are
// left alone: balanced braces are meaningful in BibTeX values.
var bibtexEscaper = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
)

func escapeBibTeX(s string) string {
	return bibtexEscaper.Replace(s)
}
