// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	stdcsv "encoding/csv"
	"strings"
	"testing"

	"contract-search/internal/formatters"
	"contract-search/internal/search"
)

func TestFormatCSV(t *testing.T) {
	result := &search.Result{
		Query: "účet",
		Candidates: []search.Candidate{{
			Label: "číslo účtu",
			Value: "19-2000145399/0800",
			Rank:  1,
			Matches: []search.Match{
				{Span: search.Span{Start: 10, End: 28}, Text: "19-2000145399/0800",
					MatchedBy: search.MatcherPattern, Score: 0.95, DetectedType: search.TypeAccount},
				{Span: search.Span{Start: 10, End: 28}, Text: "19-2000145399/0800",
					MatchedBy: search.MatcherExact, Score: 1.0, DetectedType: search.TypeAccount},
			},
			Confidence:     1.0,
			RelevanceScore: 0.9,
		}},
	}

	f := NewFormatter()
	out, err := f.Format(result, formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := stdcsv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d rows", len(rows))
	}
	if rows[0][0] != "rank" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	row := rows[1]
	if row[1] != "číslo účtu" || row[2] != "19-2000145399/0800" || row[3] != "ACCOUNT" {
		t.Errorf("unexpected row: %v", row)
	}
	if !strings.Contains(row[6], "exact") || !strings.Contains(row[6], "pattern") {
		t.Errorf("expected both strategies in matched_by, got %q", row[6])
	}
}
