// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"contract-search/internal/formatters"
	"contract-search/internal/search"
)

func init() {
	formatters.Register(NewFormatter())
}

// Formatter implements human-readable terminal output with colors
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"magenta": color.New(color.FgMagenta),
			"white":   color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(result *search.Result, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", f.colors["white"].Sprint("Query:"), result.Query)

	for _, name := range result.FailedStrategies {
		fmt.Fprintf(&b, "%s strategy %q failed, results may be incomplete\n",
			f.colors["red"].Sprint("warning:"), name)
	}

	candidates := formatters.FilterCandidates(result.Candidates, options)
	if result.NoMatch || len(candidates) == 0 {
		b.WriteString("No matches found.\n")
		return b.String(), nil
	}

	for _, c := range candidates {
		fmt.Fprintf(&b, "%2d. %s %s  %s  %s\n",
			c.Rank,
			f.colors["cyan"].Sprintf("[%s]", c.BestMatch().DetectedType),
			f.colors["white"].Sprint(c.Value),
			f.confidenceColor(c.Confidence).Sprintf("confidence %.0f%%", c.Confidence*100),
			f.colors["magenta"].Sprintf("relevance %.2f", c.RelevanceScore))
		if c.Label != "" {
			fmt.Fprintf(&b, "    label: %s\n", c.Label)
		}
		if len(c.GroupedWith) > 0 {
			fmt.Fprintf(&b, "    grouped with: %s\n", strings.Join(c.GroupedWith, ", "))
		}
		if options.Verbose {
			f.appendVerbose(&b, c)
		}
	}

	if options.ShowHighlight && len(result.Highlights) > 0 {
		b.WriteString(f.colors["white"].Sprint("\nHighlights:\n"))
		for _, h := range result.Highlights {
			fmt.Fprintf(&b, "  %s %s %q\n",
				h.Span.String(), f.colors["cyan"].Sprintf("[%s]", h.Type), h.Value)
		}
	}

	return b.String(), nil
}

func (f *Formatter) appendVerbose(b *strings.Builder, c search.Candidate) {
	for _, m := range c.Matches {
		fmt.Fprintf(b, "    %s %s score %.2f %q\n",
			m.MatchedBy, m.Span.String(), m.Score, m.Text)
	}
	if len(c.ComponentScores) > 0 {
		var parts []string
		for _, name := range []string{"exact", "fuzzy", "semantic", "positional", "contextual", "type_alignment"} {
			if v, ok := c.ComponentScores[name]; ok && v > 0 {
				parts = append(parts, fmt.Sprintf("%s=%.2f", name, v))
			}
		}
		if len(parts) > 0 {
			fmt.Fprintf(b, "    components: %s\n", strings.Join(parts, " "))
		}
	}
}

func (f *Formatter) confidenceColor(confidence float64) *color.Color {
	switch {
	case confidence >= 0.9:
		return f.colors["green"]
	case confidence >= 0.6:
		return f.colors["yellow"]
	default:
		return f.colors["red"]
	}
}
