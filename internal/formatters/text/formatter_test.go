// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"strings"
	"testing"

	"contract-search/internal/formatters"
	"contract-search/internal/search"
)

func sampleResult() *search.Result {
	return &search.Result{
		Query: "kupní cena",
		Candidates: []search.Candidate{{
			Label:          "částka",
			Value:          "7850000 CZK",
			Rank:           1,
			Confidence:     0.95,
			RelevanceScore: 0.82,
			Matches: []search.Match{{
				Span:         search.Span{Start: 28, End: 40},
				Text:         "7 850 000 Kč",
				MatchedBy:    search.MatcherPattern,
				Score:        0.95,
				DetectedType: search.TypeAmount,
			}},
		}},
		Highlights: []search.HighlightRange{{
			Span: search.Span{Start: 28, End: 40}, Type: search.TypeAmount, Value: "7 850 000 Kč",
		}},
	}
}

func TestFormatText(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(sampleResult(), formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"kupní cena", "7850000 CZK", "AMOUNT", "confidence 95%", "částka"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Highlights") {
		t.Error("highlights shown without ShowHighlight")
	}
}

func TestFormatTextVerboseAndHighlights(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(sampleResult(), formatters.FormatterOptions{
		NoColor: true, Verbose: true, ShowHighlight: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"pattern", "Highlights", "7 850 000 Kč"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatTextNoMatch(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(&search.Result{Query: "x", NoMatch: true}, formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No matches found.") {
		t.Errorf("expected no-match message, got:\n%s", out)
	}
}

func TestFormatTextFailedStrategies(t *testing.T) {
	f := NewFormatter()
	result := sampleResult()
	result.FailedStrategies = []string{"semantic"}
	out, err := f.Format(result, formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `strategy "semantic" failed`) {
		t.Errorf("expected failure warning, got:\n%s", out)
	}
}
