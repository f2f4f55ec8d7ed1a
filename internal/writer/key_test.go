// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"testing"

	"github.com/pdiddy/bibconv/pkg/types"
)

func TestAssignBaseKeys(t *testing.T) {
	tests := []struct {
		name string
		rec  types.Record
		want string
	}{
		{"surname comma given", types.Record{Authors: []string{"Doe, Jane"}, Year: "2021"}, "doe2021"},
		{"given space surname", types.Record{Authors: []string{"Jane Doe"}, Year: "2021"}, "doe2021"},
		{"single token author", types.Record{Authors: []string{"Madonna"}, Year: "1998"}, "madonna1998"},
		{"no authors", types.Record{Year: "2021"}, "anon2021"},
		{"no year", types.Record{Authors: []string{"Doe, Jane"}}, "doe"},
		{"accents and punctuation stripped", types.Record{Authors: []string{"O'Neil, Pat"}, Year: "2020"}, "oneil2020"},
		{"nothing usable", types.Record{}, "anon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewKeySet().Assign(tt.rec)
			if got != tt.want {
				t.Errorf("Assign(%+v) = %q, want %q", tt.rec, got, tt.want)
			}
		})
	}
}

func TestAssignCollisionSuffixes(t *testing.T) {
	keys := NewKeySet()
	rec := types.Record{Authors: []string{"Doe, Jane"}, Year: "2021"}

	want := []string{"doe2021", "doe2021a", "doe2021b", "doe2021c"}
	for i, w := range want {
		if got := keys.Assign(rec); got != w {
			t.Errorf("Assign #%d = %q, want %q", i+1, got, w)
		}
	}
}

func TestAssignBaseCollidingWithSuffixedKey(t *testing.T) {
	keys := NewKeySet()

	// Two Doe/2021 records take doe2021 and doe2021a. A third record whose
	// own base key is doe2021a must not repeat the suffixed key.
	got := []string{
		keys.Assign(types.Record{Authors: []string{"Doe, Jane"}, Year: "2021"}),
		keys.Assign(types.Record{Authors: []string{"Doe, John"}, Year: "2021"}),
		keys.Assign(types.Record{Authors: []string{"Doe2021a, X"}}),
	}
	seen := make(map[string]bool)
	for i, k := range got {
		if seen[k] {
			t.Errorf("Assign #%d = %q, already emitted in %v", i+1, k, got[:i])
		}
		seen[k] = true
	}
	if got[0] != "doe2021" || got[1] != "doe2021a" {
		t.Errorf("Assign = %v, want doe2021 then doe2021a first", got)
	}

	// The reverse order: the suffixed-looking base goes first, then the
	// plain base collides into it.
	keys = NewKeySet()
	if k := keys.Assign(types.Record{Authors: []string{"Doe2021a, X"}}); k != "doe2021a" {
		t.Errorf("Assign = %q, want %q", k, "doe2021a")
	}
	if k := keys.Assign(types.Record{Authors: []string{"Doe, Jane"}, Year: "2021"}); k != "doe2021" {
		t.Errorf("Assign = %q, want %q", k, "doe2021")
	}
	if k := keys.Assign(types.Record{Authors: []string{"Doe, John"}, Year: "2021"}); k != "doe2021b" {
		t.Errorf("Assign = %q, want %q (doe2021a is taken)", k, "doe2021b")
	}
}

func TestAssignScopedToOneSet(t *testing.T) {
	rec := types.Record{Authors: []string{"Doe, Jane"}, Year: "2021"}

	first := NewKeySet()
	first.Assign(rec)

	// A fresh set must not remember keys from another run.
	if got := NewKeySet().Assign(rec); got != "doe2021" {
		t.Errorf("fresh KeySet Assign = %q, want %q", got, "doe2021")
	}
}

func TestSuffix(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "a"},
		{2, "b"},
		{26, "z"},
		{27, "aa"},
		{28, "ab"},
	}
	for _, tt := range tests {
		if got := suffix(tt.n); got != tt.want {
			t.Errorf("suffix(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
