// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"testing"

	"contract-search/internal/search"
)

type fakeFormatter struct{ name string }

func (f *fakeFormatter) Format(*search.Result, FormatterOptions) (string, error) { return f.name, nil }
func (f *fakeFormatter) Name() string                                           { return f.name }
func (f *fakeFormatter) Description() string                                    { return "fake" }
func (f *fakeFormatter) FileExtension() string                                  { return ".fake" }

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeFormatter{name: "b"})
	r.Register(&fakeFormatter{name: "a"})

	if _, ok := r.Get("a"); !ok {
		t.Error("expected formatter a")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("unexpected formatter")
	}

	names := r.List()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected sorted [a b], got %v", names)
	}
}

func TestFilterCandidates(t *testing.T) {
	candidates := []search.Candidate{
		{Value: "high", Confidence: 0.9},
		{Value: "low", Confidence: 0.3},
	}
	filtered := FilterCandidates(candidates, FormatterOptions{MinConfidence: 0.5})
	if len(filtered) != 1 || filtered[0].Value != "high" {
		t.Errorf("expected only high-confidence candidate, got %v", filtered)
	}
	all := FilterCandidates(candidates, FormatterOptions{})
	if len(all) != 2 {
		t.Errorf("expected passthrough without floor, got %d", len(all))
	}
}
