// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the record shapes shared by the parser, normalizer,
// and writer stages.
package types

import (
	"fmt"
	"strings"
)

// Format identifies a supported source export format.
type Format string

const (
	FormatRIS       Format = "ris"
	FormatScopusCSV Format = "scopus-csv"
	FormatIEEECSV   Format = "ieee-csv"
)

// Formats lists every supported source format.
var Formats = []Format{FormatRIS, FormatScopusCSV, FormatIEEECSV}

// Valid reports whether f is a supported source format.
func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// RawRecord is one source entry in its vendor-native shape: a mapping from
// source field name to one or more string values, in declaration order for
// repeated fields. It is built by the parser and discarded after
// normalization.
type RawRecord struct {
	// Index is the 1-based line (RIS) or row (CSV) in the source file where
	// the entry starts, kept for diagnostics.
	Index int

	// Fields maps source field names to their values. Repeated fields
	// (RIS AU tags, for example) accumulate values in source order.
	Fields map[string][]string
}

// Value returns every value of the named field joined with "; ", or the
// empty string if the field is absent. Repeated source tags collapse into
// one delimited string, the same shape a single-cell CSV field has.
func (r RawRecord) Value(name string) string {
	return strings.Join(r.Fields[name], "; ")
}

// Field names a canonical bibliographic attribute.
type Field string

const (
	FieldType     Field = "type"
	FieldTitle    Field = "title"
	FieldAuthors  Field = "authors"
	FieldYear     Field = "year"
	FieldJournal  Field = "journal"
	FieldVolume   Field = "volume"
	FieldPages    Field = "pages"
	FieldKeywords Field = "keywords"
	FieldDOI      Field = "doi"
	FieldAbstract Field = "abstract"
)

// CanonicalFields lists every canonical field a mapping rule may target.
var CanonicalFields = []Field{
	FieldType, FieldTitle, FieldAuthors, FieldYear, FieldJournal,
	FieldVolume, FieldPages, FieldKeywords, FieldDOI, FieldAbstract,
}

// Valid reports whether f names a canonical field.
func (f Field) Valid() bool {
	for _, known := range CanonicalFields {
		if f == known {
			return true
		}
	}
	return false
}

// Record is a bibliographic entry in canonical shape. Authors and Keywords
// are ordered; every other field is a single string, empty when absent.
// A valid Record has at least a Title and a Type.
type Record struct {
	// Key is the citation key, assigned by the writer.
	Key string `json:"key" yaml:"key"`

	// Type is the canonical entry type (article, inproceedings, ...).
	Type string `json:"type" yaml:"type"`

	Title    string   `json:"title" yaml:"title"`
	Authors  []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year     string   `json:"year,omitempty" yaml:"year,omitempty"`
	Journal  string   `json:"journal,omitempty" yaml:"journal,omitempty"`
	Volume   string   `json:"volume,omitempty" yaml:"volume,omitempty"`
	Pages    string   `json:"pages,omitempty" yaml:"pages,omitempty"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	DOI      string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	Abstract string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Index is the source line or row the record came from, carried for
	// diagnostics only. It is not part of the serialized entry.
	Index int `json:"-" yaml:"-"`
}

// Set stores values under the canonical field f. List fields keep the slice
// as given; scalar fields join multiple values with "; ", mirroring how
// repeated source tags collapse.
func (r *Record) Set(f Field, values []string) {
	switch f {
	case FieldAuthors:
		r.Authors = values
	case FieldKeywords:
		r.Keywords = values
	case FieldType:
		r.Type = strings.Join(values, "; ")
	case FieldTitle:
		r.Title = strings.Join(values, "; ")
	case FieldYear:
		r.Year = strings.Join(values, "; ")
	case FieldJournal:
		r.Journal = strings.Join(values, "; ")
	case FieldVolume:
		r.Volume = strings.Join(values, "; ")
	case FieldPages:
		r.Pages = strings.Join(values, "; ")
	case FieldDOI:
		r.DOI = strings.Join(values, "; ")
	case FieldAbstract:
		r.Abstract = strings.Join(values, "; ")
	}
}

// Stage identifies the pipeline stage that skipped a record.
type Stage string

const (
	StageParse     Stage = "parse"
	StageNormalize Stage = "normalize"
	StageWrite     Stage = "write"
)

// Diagnostic describes one skipped record: which file position it came
// from, which stage refused it, and why. Diagnostics are advisory; they
// never abort a run.
type Diagnostic struct {
	Format Format `json:"format" yaml:"format"`
	Stage  Stage  `json:"stage" yaml:"stage"`

	// Index is the 1-based line (RIS) or row (CSV) in the source file.
	Index int `json:"index" yaml:"index"`

	Reason string `json:"reason" yaml:"reason"`
}

// String renders the diagnostic as a single human-readable line.
func (d Diagnostic) String() string {
	unit := "row"
	if d.Format == FormatRIS {
		unit = "line"
	}
	return fmt.Sprintf("%s %s %d: %s (%s)", d.Format, unit, d.Index, d.Reason, d.Stage)
}
