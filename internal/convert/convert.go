// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives one conversion run: parse a vendor export file,
// normalize every record through the format's mapping table, and write the
// bibliography. Record-level problems are collected as diagnostics and
// never abort the run; fatal errors (unreadable input, broken mapping
// table, unwritable output) do.
package convert

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/bibconv/internal/mapping"
	"github.com/pdiddy/bibconv/internal/normalize"
	"github.com/pdiddy/bibconv/internal/parser"
	"github.com/pdiddy/bibconv/internal/writer"
	"github.com/pdiddy/bibconv/pkg/types"
)

// Result holds the outcome of one conversion run.
type Result struct {
	// Written is the number of records in the output file.
	Written int

	// Skipped is the number of source records or lines dropped along the way.
	Skipped int

	// Diagnostics describes every skip, in source order.
	Diagnostics []types.Diagnostic
}

// HasSkips reports whether any record was dropped.
func (r Result) HasSkips() bool {
	return r.Skipped > 0
}

// Summary renders a one-line batch summary.
func (r Result) Summary() string {
	return fmt.Sprintf("%d records written, %d skipped", r.Written, r.Skipped)
}

// Runner holds the per-run pieces of the pipeline. Build one with New for
// each conversion; the citation-key accumulator inside is scoped to that
// run alone.
type Runner struct {
	format types.Format
	parser parser.Parser
	norm   *normalize.Normalizer
	writer writer.Writer
	log    *logrus.Logger
}

// New assembles a runner for one conversion run. Mapping-table problems
// surface here, before any input is read.
func New(cfg types.ConvertConfig, format types.Format, log *logrus.Logger) (*Runner, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %q", parser.ErrUnknownFormat, format)
	}
	table, err := mapping.Load(cfg.MappingsDir, format)
	if err != nil {
		return nil, err
	}
	norm, err := normalize.New(table)
	if err != nil {
		return nil, err
	}
	p, err := parser.New(format)
	if err != nil {
		return nil, err
	}
	target := cfg.Target
	if target == "" {
		target = types.TargetBibTeX
	}
	w, err := writer.New(target)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
	}
	return &Runner{format: format, parser: p, norm: norm, writer: w, log: log}, nil
}

// RunFile converts the file at inPath into outPath. An outPath of "-"
// writes to stdout.
func (r *Runner) RunFile(inPath, outPath string) (Result, error) {
	in, err := parser.Open(inPath)
	if err != nil {
		return Result{}, err
	}
	defer in.Close()

	var out io.Writer = os.Stdout
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return Result{}, fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return r.Run(in, out)
}

// Run converts everything readable from in and writes the bibliography to
// out. Records flow through in declaration order: parse all, normalize
// each, write all.
func (r *Runner) Run(in io.Reader, out io.Writer) (Result, error) {
	raws, diags, err := r.parser.Parse(in)
	if err != nil {
		return Result{}, err
	}

	records := make([]types.Record, 0, len(raws))
	for _, raw := range raws {
		rec, err := r.norm.Normalize(raw)
		if err != nil {
			diags = append(diags, types.Diagnostic{
				Format: r.format,
				Stage:  types.StageNormalize,
				Index:  raw.Index,
				Reason: err.Error(),
			})
			continue
		}
		records = append(records, rec)
	}

	keys := writer.NewKeySet()
	written, writeDiags, err := r.writer.Write(out, records, keys)
	if err != nil {
		return Result{}, err
	}
	for i := range writeDiags {
		writeDiags[i].Format = r.format
	}
	diags = append(diags, writeDiags...)

	for _, d := range diags {
		r.log.WithFields(logrus.Fields{
			"format": d.Format,
			"stage":  d.Stage,
			"index":  d.Index,
		}).Warn(d.Reason)
	}

	return Result{Written: written, Skipped: len(diags), Diagnostics: diags}, nil
}
