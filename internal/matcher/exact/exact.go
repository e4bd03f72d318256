// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package exact implements substring and per-token search over the
// normalized projection, mapping every hit back to an original-text span.
package exact

import (
	"sort"
	"strings"

	"contract-search/internal/document"
	"contract-search/internal/search"
)

// FindExact returns the original-document spans of every occurrence of
// needle in the projection. The needle is normalized with the same transform
// as the document; the scan restarts one byte past each hit, so overlapping
// occurrences are reported. Every returned span is round-trip verified:
// the original substring it covers re-normalizes to the searched needle.
func FindExact(p *document.Projection, needle string) []search.Span {
	normNeedle := document.NormalizeString(needle)
	if normNeedle == "" || p == nil || p.Normalized == "" {
		return nil
	}

	var spans []search.Span
	for from := 0; ; {
		i := strings.Index(p.Normalized[from:], normNeedle)
		if i < 0 {
			break
		}
		start := from + i
		span, ok := p.SpanFor(start, start+len(normNeedle))
		if ok && document.NormalizeString(p.Slice(span)) == normNeedle {
			spans = append(spans, span)
		}
		from = start + 1
	}
	return spans
}

// FindTokens splits text into alphanumeric/slash tokens, dedupes them, keeps
// tokens of length >= 3 or containing a digit, and unions their exact
// matches. Unlike FindExact, duplicate spans across tokens collapse to one.
func FindTokens(p *document.Projection, text string) []search.Span {
	seen := make(map[string]bool)
	found := make(map[search.Span]bool)
	var spans []search.Span

	for _, tok := range Tokenize(text) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		for _, span := range FindExact(p, tok) {
			if found[span] {
				continue
			}
			found[span] = true
			spans = append(spans, span)
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
	return spans
}

// Tokenize splits text into runs of letters, digits and slashes, keeping
// tokens of length >= 3 or containing a digit. Slashes stay inside tokens so
// values like birth numbers and parcel fractions survive as one token.
func Tokenize(text string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		tok := cur.String()
		cur.Reset()
		if tok == "" {
			return
		}
		if len([]rune(tok)) >= 3 || strings.ContainsAny(tok, "0123456789") {
			tokens = append(tokens, tok)
		}
	}
	for _, r := range text {
		if isTokenRune(r) {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

func isTokenRune(r rune) bool {
	return r == '/' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		r > 127 && isLetterish(r)
}

func isLetterish(r rune) bool {
	// Covers Latin letters with diacritics without pulling in unicode tables
	// for every category; anything else breaks the token.
	return (r >= 0x00C0 && r <= 0x024F) || (r >= 0x1E00 && r <= 0x1EFF)
}
