// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"

	"contract-search/internal/formatters"
	"contract-search/internal/search"
)

func init() {
	formatters.Register(NewFormatter())
}

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Machine-readable JSON output"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

func (f *Formatter) Format(result *search.Result, options formatters.FormatterOptions) (string, error) {
	out := *result
	out.Candidates = formatters.FilterCandidates(result.Candidates, options)
	if !options.ShowHighlight {
		out.Highlights = nil
	}
	if !options.Verbose {
		trimmed := make([]search.Candidate, len(out.Candidates))
		copy(trimmed, out.Candidates)
		for i := range trimmed {
			trimmed[i].ComponentScores = nil
		}
		out.Candidates = trimmed
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
