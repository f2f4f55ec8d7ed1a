// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibconv/pkg/types"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newRunner(t *testing.T, format types.Format, target types.Target) *Runner {
	t.Helper()
	r, err := New(types.ConvertConfig{Target: target}, format, quietLogger())
	require.NoError(t, err)
	return r
}

func TestRunRISToBibTeX(t *testing.T) {
	// The canonical end-to-end scenario: one RIS journal entry becomes a
	// BibTeX entry keyed doe2021.
	input := strings.Join([]string{
		"TY  - JOUR",
		"AU  - Doe, Jane",
		"TI  - A Study",
		"PY  - 2021",
		"ER  -",
	}, "\n")

	r := newRunner(t, types.FormatRIS, types.TargetBibTeX)
	var out bytes.Buffer
	res, err := r.Run(strings.NewReader(input), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Written)
	assert.Equal(t, 0, res.Skipped)

	s := out.String()
	assert.Contains(t, s, "@article{doe2021,")
	assert.Contains(t, s, "author   = {Doe, Jane}")
	assert.Contains(t, s, "title    = {A Study}")
	assert.Contains(t, s, "year     = {2021}")
}

func TestRunMissingTitleSkippedRestWritten(t *testing.T) {
	input := strings.Join([]string{
		"TY  - JOUR",
		"AU  - Doe, Jane",
		"ER  -",
		"TY  - JOUR",
		"AU  - Roe, Richard",
		"TI  - Survivor",
		"PY  - 2022",
		"ER  -",
	}, "\n")

	r := newRunner(t, types.FormatRIS, types.TargetBibTeX)
	var out bytes.Buffer
	res, err := r.Run(strings.NewReader(input), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Written)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, types.StageNormalize, res.Diagnostics[0].Stage)
	assert.Equal(t, 1, res.Diagnostics[0].Index)
	assert.Contains(t, res.Diagnostics[0].Reason, "title")

	// The run still produced output for the valid record.
	assert.Contains(t, out.String(), "@article{roe2022,")
}

func TestRunMalformedCSVRowDiagnosed(t *testing.T) {
	input := "Document Type,Title,Authors,Year\n" +
		"Article,\"First Paper\",\"Smith, J.\",2020\n" +
		"Article,\"Broken Row\"\n" +
		"Article,\"Second Paper\",\"Jones, B.\",2021\n"

	r := newRunner(t, types.FormatScopusCSV, types.TargetBibTeX)
	var out bytes.Buffer
	res, err := r.Run(strings.NewReader(input), &out)
	require.NoError(t, err)

	// Valid rows all survive; the malformed row yields one diagnostic.
	assert.Equal(t, 2, res.Written)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, types.StageParse, res.Diagnostics[0].Stage)
	assert.Equal(t, 3, res.Diagnostics[0].Index)

	assert.Contains(t, out.String(), "@article{smith2020,")
	assert.Contains(t, out.String(), "@article{jones2021,")
}

func TestRunCitationKeyCollisions(t *testing.T) {
	var sb strings.Builder
	for _, title := range []string{"First", "Second", "Third"} {
		sb.WriteString("TY  - JOUR\nAU  - Doe, Jane\nTI  - " + title + "\nPY  - 2021\nER  -\n")
	}

	r := newRunner(t, types.FormatRIS, types.TargetBibTeX)
	var out bytes.Buffer
	res, err := r.Run(strings.NewReader(sb.String()), &out)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Written)

	s := out.String()
	assert.Contains(t, s, "@article{doe2021,")
	assert.Contains(t, s, "@article{doe2021a,")
	assert.Contains(t, s, "@article{doe2021b,")
}

func TestRunKeysDoNotLeakBetweenRuns(t *testing.T) {
	input := "TY  - JOUR\nAU  - Doe, Jane\nTI  - A Study\nPY  - 2021\nER  -\n"
	r := newRunner(t, types.FormatRIS, types.TargetBibTeX)

	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		_, err := r.Run(strings.NewReader(input), &out)
		require.NoError(t, err)
		// The same record converts to the same bare key every run.
		assert.Contains(t, out.String(), "@article{doe2021,", "run %d", i+1)
	}
}

func TestRunTargets(t *testing.T) {
	input := "TY  - JOUR\nAU  - Doe, Jane\nTI  - A Study\nPY  - 2021\nER  -\n"

	tests := []struct {
		target types.Target
		want   string
	}{
		{types.TargetBibTeX, "@article{doe2021,"},
		{types.TargetCSLYAML, "id: doe2021"},
		{types.TargetJSONL, `"key":"doe2021"`},
	}
	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			r := newRunner(t, types.FormatRIS, tt.target)
			var out bytes.Buffer
			res, err := r.Run(strings.NewReader(input), &out)
			require.NoError(t, err)
			assert.Equal(t, 1, res.Written)
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "export.ris")
	out := filepath.Join(dir, "refs.bib")
	input := "TY  - JOUR\nAU  - Doe, Jane\nTI  - A Study\nPY  - 2021\nER  -\n"
	require.NoError(t, os.WriteFile(in, []byte(input), 0o644))

	r := newRunner(t, types.FormatRIS, types.TargetBibTeX)
	res, err := r.RunFile(in, out)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Written)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@article{doe2021,")
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		cfg    types.ConvertConfig
		format types.Format
	}{
		{"unknown format", types.ConvertConfig{}, "endnote"},
		{"unknown target", types.ConvertConfig{Target: "docx"}, types.FormatRIS},
		{"missing mappings dir", types.ConvertConfig{MappingsDir: "/nonexistent"}, types.FormatRIS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, tt.format, quietLogger())
			assert.Error(t, err)
		})
	}
}

func TestResultSummary(t *testing.T) {
	res := Result{Written: 4, Skipped: 2}
	assert.Equal(t, "4 records written, 2 skipped", res.Summary())
	assert.True(t, res.HasSkips())
	assert.False(t, Result{Written: 1}.HasSkips())
}
