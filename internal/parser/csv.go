// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/bibconv/pkg/types"
)

// CSVParser reads header-driven CSV exports (Scopus, IEEE Xplore) into raw
// records. The first row defines the field names; every later row is one
// record. A row whose column count differs from the header is skipped with
// a diagnostic — one bad row never fails the file.
type CSVParser struct {
	// Format tags the produced records and diagnostics.
	Format types.Format
}

// Parse reads all rows from r. Record indexes are physical row numbers in
// the file (the header is row 1) so diagnostics point at the exact row a
// user has to fix.
func (p *CSVParser) Parse(r io.Reader) ([]types.RawRecord, []types.Diagnostic, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv header: %w", err)
	}
	// Exports written on Windows carry a UTF-8 BOM in the first cell.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var (
		records []types.RawRecord
		diags   []types.Diagnostic
	)
	row := 1
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) && errors.Is(pe.Err, csv.ErrFieldCount) {
				diags = append(diags, types.Diagnostic{
					Format: p.Format,
					Stage:  types.StageParse,
					Index:  row,
					Reason: fmt.Sprintf("row has %d columns, header has %d", len(cells), len(header)),
				})
				continue
			}
			return nil, nil, fmt.Errorf("reading csv row %d: %w", row, err)
		}

		fields := make(map[string][]string, len(header))
		for i, name := range header {
			if v := strings.TrimSpace(cells[i]); v != "" {
				fields[name] = append(fields[name], v)
			}
		}
		records = append(records, types.RawRecord{Index: row, Fields: fields})
	}
	return records, diags, nil
}
