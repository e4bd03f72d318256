// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	stdjson "encoding/json"
	"testing"

	"contract-search/internal/formatters"
	"contract-search/internal/search"
)

func TestFormatJSON(t *testing.T) {
	result := &search.Result{
		Query: "ičo",
		Candidates: []search.Candidate{{
			Label:           "IČO",
			Value:           "25596641",
			Rank:            1,
			ComponentScores: map[string]float64{"exact": 1.0},
			Matches: []search.Match{{
				Span: search.Span{Start: 5, End: 13}, Text: "25596641",
				MatchedBy: search.MatcherPattern, Score: 1.0, DetectedType: search.TypeCompanyID,
			}},
		}},
		Highlights: []search.HighlightRange{{Span: search.Span{Start: 5, End: 13}, Value: "25596641"}},
	}

	f := NewFormatter()
	out, err := f.Format(result, formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded search.Result
	if err := stdjson.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Query != "ičo" || len(decoded.Candidates) != 1 {
		t.Errorf("round-trip mismatch: %+v", decoded)
	}
	if decoded.Candidates[0].ComponentScores != nil {
		t.Error("component scores should be omitted without Verbose")
	}
	if decoded.Highlights != nil {
		t.Error("highlights should be omitted without ShowHighlight")
	}

	out, err = f.Format(result, formatters.FormatterOptions{Verbose: true, ShowHighlight: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := stdjson.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Candidates[0].ComponentScores["exact"] != 1.0 {
		t.Error("component scores missing in verbose output")
	}
	if len(decoded.Highlights) != 1 {
		t.Error("highlights missing with ShowHighlight")
	}
}
