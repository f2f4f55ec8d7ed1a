// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"strings"

	"github.com/pdiddy/bibconv/pkg/types"
)

// anonSurname stands in for the surname when a record has no authors.
const anonSurname = "anon"

// KeySet tracks the citation keys emitted during one conversion run. It is
// an explicit accumulator: callers create one per run and pass it to the
// writer, so repeated conversions in the same process never leak keys into
// each other.
type KeySet struct {
	counts  map[string]int
	emitted map[string]bool
}

// NewKeySet returns an empty key accumulator for one run.
func NewKeySet() *KeySet {
	return &KeySet{counts: make(map[string]int), emitted: make(map[string]bool)}
}

// Assign derives a citation key for rec and records it. The base key is
// the lowercased first-author surname plus the year; the second record to
// produce the same base key gets suffix "a", the third "b", and so on in
// emission order. Every returned key is checked against the full set of
// keys already handed out, not just its own base: a suffixed key like
// "doe2021a" can later collide with a record whose base key is doe2021a.
func (s *KeySet) Assign(rec types.Record) string {
	base := baseKey(rec)
	for {
		n := s.counts[base]
		s.counts[base] = n + 1
		key := base
		if n > 0 {
			key = base + suffix(n)
		}
		if !s.emitted[key] {
			s.emitted[key] = true
			return key
		}
	}
}

// baseKey builds surname+year, reduced to lowercase letters and digits so
// the key is safe in every target format.
func baseKey(rec types.Record) string {
	surname := anonSurname
	if len(rec.Authors) > 0 {
		surname = surnameOf(rec.Authors[0])
	}
	key := sanitizeKey(surname + rec.Year)
	if key == "" {
		return anonSurname
	}
	return key
}

// surnameOf extracts the surname from an author name. "Doe, Jane" yields
// the part before the comma; "Jane Doe" yields the last token.
func surnameOf(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.Index(name, ","); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	if i := strings.LastIndex(name, " "); i >= 0 {
		return name[i+1:]
	}
	return name
}

// sanitizeKey lowercases s and strips everything but ASCII letters and
// digits.
func sanitizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// suffix converts a collision count to a letter run: 1 is "a", 26 is "z",
// 27 is "aa".
func suffix(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}
