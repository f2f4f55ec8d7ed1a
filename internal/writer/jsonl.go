// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/pdiddy/bibconv/pkg/types"
)

// JSONLWriter emits one JSON object per line, the shape downstream
// indexing tools consume.
type JSONLWriter struct{}

// Write serializes records to w.
func (*JSONLWriter) Write(w io.Writer, records []types.Record, keys *KeySet) (int, []types.Diagnostic, error) {
	enc := json.NewEncoder(w)
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
		if err := enc.Encode(rec); err != nil {
			return written, diags, err
		}
		written++
	}
	return written, diags, nil
}
