// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"contract-search/internal/classifier"
	"contract-search/internal/matcher/exact"
	"contract-search/internal/search"
)

const externalScore = 0.9

// ExternalCandidate is a value extracted by an upstream system, typically a
// language model, whose offsets cannot be trusted as-is.
type ExternalCandidate struct {
	Label string           `json:"label"`
	Value string           `json:"value"`
	Span  search.Span      `json:"span"`
	Type  search.ValueType `json:"type,omitempty"`
}

// VerifyExternal re-validates externally supplied candidates against the
// current document. A candidate survives only if its claimed span slices to
// its claimed value, or if the value can be located in the document by the
// exact matcher. The declared type is rechecked; when it disagrees with what
// the classifier sees at the verified span, the classifier wins.
func (e *Engine) VerifyExternal(ext []ExternalCandidate) []search.Candidate {
	e.mu.RLock()
	proj := e.proj
	e.mu.RUnlock()
	if proj == nil {
		return nil
	}

	var out []search.Candidate
	for _, c := range ext {
		span := c.Span
		if !span.Valid(len(proj.Original)) || proj.Original[span.Start:span.End] != c.Value {
			spans := exact.FindExact(proj, c.Value)
			if len(spans) == 0 {
				e.observer.Warn("engine", "rejecting external candidate",
					"label", c.Label, "span", c.Span.String())
				continue
			}
			e.observer.Debug("engine", "relocated external candidate",
				"label", c.Label, "from", c.Span.String(), "to", spans[0].String())
			span = spans[0]
		}

		text := proj.Original[span.Start:span.End]
		typ := classifier.DetectType(text)
		if c.Type != "" && c.Type != typ {
			e.observer.Warn("engine", "external type disagrees",
				"label", c.Label, "claimed", string(c.Type), "detected", string(typ))
		}

		out = append(out, search.Candidate{
			Label: c.Label,
			Value: classifier.NormalizeValue(typ, text),
			Matches: []search.Match{{
				Span:         span,
				Text:         text,
				MatchedBy:    search.MatcherExternal,
				Score:        externalScore,
				DetectedType: typ,
			}},
		})
	}
	return out
}
