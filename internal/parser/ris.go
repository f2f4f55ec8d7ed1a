// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/bibconv/pkg/types"
)

// RISParser reads tagged RIS lines into raw records. Each field line has a
// two-letter tag, two spaces, a dash, and the value ("TI  - A Study").
// A repeated tag accumulates values in source order; a line that carries no
// tag continues the previous value; an ER tag or a blank line ends the
// current record. Unknown tags are retained verbatim so mapping tables can
// pick them up later.
type RISParser struct {
	// Format tags the produced records and diagnostics.
	Format types.Format
}

// risSeparator sits between the tag and the value on every field line.
// The trailing space is absent on bare tags like "ER  -".
const risSeparator = "  -"

// Parse scans r line by line and returns one raw record per RIS entry.
// A continuation line with no field to continue is skipped with a
// line-scoped diagnostic; a scan failure is a file-level error.
func (p *RISParser) Parse(r io.Reader) ([]types.RawRecord, []types.Diagnostic, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		records []types.RawRecord
		diags   []types.Diagnostic
		fields  map[string][]string
		lastTag string
		line    int
		start   int
	)

	flush := func() {
		if len(fields) > 0 {
			records = append(records, types.RawRecord{Index: start, Fields: fields})
		}
		fields = nil
		lastTag = ""
	}

	for sc.Scan() {
		line++
		text := sc.Text()
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			flush()
			continue
		}

		tag, value, ok := splitRISLine(text)
		switch {
		case !ok:
			// Continuation of the previous field's value.
			if fields == nil || lastTag == "" {
				diags = append(diags, types.Diagnostic{
					Format: p.Format,
					Stage:  types.StageParse,
					Index:  line,
					Reason: "continuation line with no field to continue",
				})
				continue
			}
			vals := fields[lastTag]
			vals[len(vals)-1] += " " + trimmed
		case tag == "ER":
			flush()
		default:
			if fields == nil {
				fields = make(map[string][]string)
				start = line
			}
			fields[tag] = append(fields[tag], value)
			lastTag = tag
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("scanning ris input: %w", err)
	}
	flush()
	return records, diags, nil
}

// splitRISLine splits a "TI  - value" line into tag and value. Lines that
// do not carry the tag separator are continuation lines.
func splitRISLine(line string) (tag, value string, ok bool) {
	if len(line) < len(risSeparator)+2 {
		return "", "", false
	}
	tag = line[:2]
	if !isRISTag(tag) || !strings.HasPrefix(line[2:], risSeparator) {
		return "", "", false
	}
	return tag, strings.TrimSpace(line[2+len(risSeparator):]), true
}

// isRISTag reports whether s is a two-character RIS tag: an upper-case
// letter followed by an upper-case letter or digit.
func isRISTag(s string) bool {
	if len(s) != 2 {
		return false
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	return (s[1] >= 'A' && s[1] <= 'Z') || (s[1] >= '0' && s[1] <= '9')
}
