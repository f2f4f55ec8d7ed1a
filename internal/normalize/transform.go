// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

// TransformFunc rewrites one field's raw values into canonical values.
// A nil or empty result means the field ends up absent.
type TransformFunc func(arg string, values []string) []string

// ErrUnknownTransform is returned when a mapping rule names a transform
// that does not exist. Resolution happens once at normalizer construction,
// so a typo in a mapping table is a startup failure, not a silent no-op.
var ErrUnknownTransform = errors.New("unknown transform")

// YearUnknown is the placeholder year-extract degrades to when no year can
// be found. The transform never fails a record over a date it cannot read.
const YearUnknown = "unknown"

var transforms = map[string]TransformFunc{
	"identity":       identity,
	"split":          splitTransform,
	"join":           joinTransform,
	"first-n-words":  firstNWords,
	"year-extract":   yearExtract,
	"scopus-authors": scopusAuthors,
	"pubmed-doi":     pubmedDOI,
}

// resolve returns the transform for a rule, validating its argument. An
// empty name is the identity.
func resolve(name, arg string) (TransformFunc, error) {
	if name == "" {
		return identity, nil
	}
	fn, ok := transforms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
	}
	switch name {
	case "split", "join":
		if arg == "" {
			return nil, fmt.Errorf("transform %q requires a delimiter argument", name)
		}
	case "first-n-words":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("transform %q requires a positive integer argument, got %q", name, arg)
		}
	}
	return fn, nil
}

func identity(_ string, values []string) []string {
	return values
}

// splitTransform turns each delimited value into its parts, preserving
// order across all input values.
func splitTransform(delim string, values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, delim) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// joinTransform is the inverse of split: all values collapse into one.
func joinTransform(delim string, values []string) []string {
	return []string{strings.Join(values, delim)}
}

// firstNWords truncates the joined value to its first n words. Used to cap
// very long abstracts.
func firstNWords(arg string, values []string) []string {
	n, _ := strconv.Atoi(arg)
	words := strings.Fields(strings.Join(values, " "))
	if len(words) > n {
		words = words[:n]
	}
	return []string{strings.Join(words, " ")}
}

// yearDigitsRe matches the first 4-digit run in a free-text date.
var yearDigitsRe = regexp.MustCompile(`\d{4}`)

// yearExtract pulls a 4-digit year out of a free-text date string
// ("2021/05/17", "May 2021"). When no digit run exists, dateparse gets one
// attempt at the text before the value degrades to YearUnknown.
func yearExtract(_ string, values []string) []string {
	s := strings.TrimSpace(strings.Join(values, " "))
	if s == "" {
		return nil
	}
	if m := yearDigitsRe.FindString(s); m != "" {
		return []string{m}
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return []string{strconv.Itoa(t.Year())}
	}
	return []string{YearUnknown}
}

// noAuthorMarker is what Scopus exports when a record has no author data.
const noAuthorMarker = "[No author name available]"

// scopusAuthors canonicalizes the Scopus author cell, a comma-separated
// run like "Smith, J., Jones, B.". Surnames pair with the following token
// when that token looks like initials (contains a dot); a token without a
// dot is a bare surname. The no-author marker yields no authors at all.
func scopusAuthors(_ string, values []string) []string {
	s := strings.TrimSpace(strings.Join(values, ", "))
	if s == "" || s == noAuthorMarker {
		return nil
	}
	parts := strings.Split(s, ",")
	var names []string
	for i := 0; i < len(parts); {
		last := strings.TrimSpace(parts[i])
		if i+1 < len(parts) {
			first := strings.TrimSpace(parts[i+1])
			if strings.Contains(first, ".") {
				names = append(names, last+", "+first)
				i += 2
				continue
			}
		}
		if last != "" {
			names = append(names, last)
		}
		i++
	}
	return names
}

// pubmedDOI selects the DOI from PubMed's semicolon-joined article-ID
// list, where the DOI entry carries a "[doi]" suffix. Without one the
// field stays absent rather than holding a non-DOI identifier.
func pubmedDOI(_ string, values []string) []string {
	for _, v := range values {
		for _, id := range strings.Split(v, ";") {
			id = strings.TrimSpace(id)
			if strings.HasSuffix(id, "[doi]") {
				doi := strings.TrimSpace(strings.TrimSuffix(id, "[doi]"))
				if doi != "" {
					return []string{doi}
				}
			}
		}
	}
	return nil
}
