// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strings"

	"contract-search/internal/formatters"
	"contract-search/internal/search"
)

func init() {
	formatters.Register(NewFormatter())
}

// Formatter implements CSV output formatting, one row per candidate
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "CSV output for spreadsheets, one row per candidate"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(result *search.Result, options formatters.FormatterOptions) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{"rank", "label", "value", "type", "relevance", "confidence", "matched_by", "span"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, c := range formatters.FilterCandidates(result.Candidates, options) {
		best := c.BestMatch()
		var kinds []string
		seen := map[search.MatcherKind]bool{}
		for _, m := range c.Matches {
			if !seen[m.MatchedBy] {
				seen[m.MatchedBy] = true
				kinds = append(kinds, string(m.MatchedBy))
			}
		}
		row := []string{
			fmt.Sprintf("%d", c.Rank),
			c.Label,
			c.Value,
			string(best.DetectedType),
			fmt.Sprintf("%.4f", c.RelevanceScore),
			fmt.Sprintf("%.4f", c.Confidence),
			strings.Join(kinds, "|"),
			best.Span.String(),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return b.String(), w.Error()
}
