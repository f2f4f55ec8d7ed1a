// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parser turns vendor export files into ordered raw records.
// Each supported format has its own reader; all of them preserve the
// declaration order of entries so downstream citation-key disambiguation
// stays deterministic.
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pdiddy/bibconv/pkg/types"
)

// ErrUnknownFormat is returned for a source format no parser handles.
var ErrUnknownFormat = errors.New("unknown source format")

// Parser reads one export file into raw records. Row-scoped problems are
// reported as diagnostics and never fail the whole file; the returned
// error is reserved for file-level failures.
type Parser interface {
	Parse(r io.Reader) ([]types.RawRecord, []types.Diagnostic, error)
}

// New returns the parser for format.
func New(format types.Format) (Parser, error) {
	switch format {
	case types.FormatRIS:
		return &RISParser{Format: format}, nil
	case types.FormatScopusCSV, types.FormatIEEECSV:
		return &CSVParser{Format: format}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Open opens an export file for parsing. Files ending in .gz are
// transparently decompressed, and a leading UTF-8 byte order mark is
// stripped (Scopus exports carry one).
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	var r io.Reader = f
	closers := []io.Closer{f}
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip input: %w", err)
		}
		r = zr
		closers = append(closers, zr)
	}
	bom := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return &readCloser{Reader: transform.NewReader(r, bom), closers: closers}, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var first error
	for i := len(rc.closers) - 1; i >= 0; i-- {
		if err := rc.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
