// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package highlight reconciles the ranked candidates' spans into a final
// non-overlapping list of display-ready ranges. Every range passes a
// validation gate before it reaches the renderer: the document substring at
// the claimed offsets must equal the claimed value, otherwise the range is
// dropped rather than corrected.
package highlight

import (
	"fmt"
	"sort"

	"contract-search/internal/observability"
	"contract-search/internal/search"
)

// Priority selects which source range's metadata survives a merge.
type Priority string

const (
	PriorityScore    Priority = "score"
	PriorityLength   Priority = "length"
	PriorityPosition Priority = "position"
)

// Options control merging.
type Options struct {
	MergeAdjacent     bool
	AdjacentThreshold int
	PrioritizeBy      Priority
}

// DefaultOptions merge ranges that touch within three characters and keep
// the higher-scored range's metadata.
func DefaultOptions() Options {
	return Options{MergeAdjacent: true, AdjacentThreshold: 3, PrioritizeBy: PriorityScore}
}

// Merger merges and validates highlight ranges.
type Merger struct {
	observer *observability.Observer
}

// NewMerger creates a merger reporting dropped ranges to observer.
// A nil observer disables reporting.
func NewMerger(observer *observability.Observer) *Merger {
	return &Merger{observer: observer}
}

// BuildRanges derives highlight ranges from ranked candidates, one range
// per match, carrying the candidate's label and the match's type and score.
func BuildRanges(candidates []search.Candidate) []search.HighlightRange {
	var ranges []search.HighlightRange
	for ci, c := range candidates {
		for mi, m := range c.Matches {
			ranges = append(ranges, search.HighlightRange{
				Span:       m.Span,
				ID:         fmt.Sprintf("hl-%d-%d", ci, mi),
				Type:       m.DetectedType,
				Confidence: m.Score,
				Label:      c.Label,
				Value:      m.Text,
			})
		}
	}
	return ranges
}

// Merge deduplicates and merges overlapping or adjacent ranges, then runs
// the validation gate against the document. The returned ranges are sorted
// by start offset, non-overlapping, and each satisfies
// document[span.Start:span.End] == Value.
func (mg *Merger) Merge(doc string, ranges []search.HighlightRange, opts Options) []search.HighlightRange {
	valid := ranges[:0:0]
	for i, r := range ranges {
		if mg.validate(doc, r) {
			if len(r.MergedFrom) == 0 {
				r.MergedFrom = []int{i}
			}
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Span.Start != valid[j].Span.Start {
			return valid[i].Span.Start < valid[j].Span.Start
		}
		return valid[i].Span.End < valid[j].Span.End
	})

	merged := []search.HighlightRange{valid[0]}
	for _, next := range valid[1:] {
		cur := &merged[len(merged)-1]
		overlaps := next.Span.Start < cur.Span.End
		adjacent := opts.MergeAdjacent && next.Span.Start-cur.Span.End <= opts.AdjacentThreshold
		if !overlaps && !adjacent {
			merged = append(merged, next)
			continue
		}

		winner := pickWinner(*cur, next, opts.PrioritizeBy)
		span := search.Span{Start: cur.Span.Start, End: maxInt(cur.Span.End, next.Span.End)}
		confidence := cur.Confidence
		if next.Confidence > confidence {
			confidence = next.Confidence
		}
		mergedFrom := append(append([]int{}, cur.MergedFrom...), next.MergedFrom...)

		*cur = winner
		cur.Span = span
		cur.Confidence = confidence
		cur.MergedFrom = mergedFrom
		cur.Value = slice(doc, span)
	}

	// Merged spans re-enter the gate: the widened substring is the new value.
	out := merged[:0]
	for _, r := range merged {
		if mg.validate(doc, r) {
			out = append(out, r)
		}
	}
	return out
}

func (mg *Merger) validate(doc string, r search.HighlightRange) bool {
	if r.Span.Valid(len(doc)) && doc[r.Span.Start:r.Span.End] == r.Value {
		return true
	}
	if mg.observer != nil {
		mg.observer.Warn("highlight", "dropping mismatched range",
			"span", r.Span.String(), "label", r.Label)
	}
	return false
}

func pickWinner(a, b search.HighlightRange, by Priority) search.HighlightRange {
	switch by {
	case PriorityLength:
		if b.Span.Len() > a.Span.Len() {
			return b
		}
	case PriorityPosition:
		if b.Span.Start < a.Span.Start {
			return b
		}
	default:
		if b.Confidence > a.Confidence {
			return b
		}
	}
	return a
}

func slice(doc string, s search.Span) string {
	if !s.Valid(len(doc)) {
		return ""
	}
	return doc[s.Start:s.End]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
