// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibconv/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style
// Language) format. The field names follow the CSL-JSON/CSL-YAML schema so
// output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	Keyword        string    `yaml:"keyword,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// cslTypes maps canonical entry types onto CSL item types.
var cslTypes = map[string]string{
	"article":       "article-journal",
	"inproceedings": "paper-conference",
	"incollection":  "chapter",
	"book":          "book",
	"phdthesis":     "thesis",
	"techreport":    "report",
	"misc":          "document",
}

// CSLWriter emits records as one CSL-YAML item list.
type CSLWriter struct{}

// Write serializes records to w.
func (*CSLWriter) Write(w io.Writer, records []types.Record, keys *KeySet) (int, []types.Diagnostic, error) {
	var (
		items []CSLItem
		diags []types.Diagnostic
	)
	for _, rec := range records {
		if err := checkSerializable(rec); err != nil {
			diags = append(diags, skipDiagnostic(rec, err))
			continue
		}
		rec.Key = keys.Assign(rec)
		items = append(items, toCSLItem(rec))
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(items); err != nil {
		return 0, diags, err
	}
	return len(items), diags, nil
}

// toCSLItem converts a canonical record to a CSLItem.
func toCSLItem(rec types.Record) CSLItem {
	item := CSLItem{
		ID:             rec.Key,
		Type:           cslType(rec.Type),
		Title:          rec.Title,
		ContainerTitle: rec.Journal,
		Volume:         rec.Volume,
		Page:           rec.Pages,
		DOI:            rec.DOI,
		Keyword:        strings.Join(rec.Keywords, ", "),
		Abstract:       rec.Abstract,
	}
	for _, a := range rec.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if year, err := strconv.Atoi(rec.Year); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{year}}}
	}
	return item
}

func cslType(entryType string) string {
	if t, ok := cslTypes[entryType]; ok {
		return t
	}
	return "document"
}

// parseAuthorName splits an author name into CSL family/given parts.
// "Doe, Jane" splits at the comma; "Jane Doe" splits at the last space;
// a single token becomes a literal name.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if i := strings.Index(name, ","); i >= 0 {
		return CSLName{
			Family: strings.TrimSpace(name[:i]),
			Given:  strings.TrimSpace(name[i+1:]),
		}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
