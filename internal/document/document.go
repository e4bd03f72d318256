// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package document builds a diacritics-free, case-folded projection of a
// contract text together with an offset map back to the original bytes, so
// matchers can scan normalized text while reporting exact original spans.
package document

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"contract-search/internal/search"
)

// Segment is the original-document byte range that produced one normalized
// byte.
type Segment struct {
	OrigStart int
	OrigEnd   int
}

// Projection is the normalized view of a document. Normalized holds the
// diacritics-stripped, lowercased text; Segments has exactly one entry per
// byte of Normalized, giving the original byte range that byte came from.
// A projection is immutable once built and safe for concurrent reads.
type Projection struct {
	Original   string
	Normalized string
	Segments   []Segment

	// Generation tags the projection so in-flight matcher work against a
	// superseded projection can be discarded.
	Generation uint64
}

// Normalize builds the projection for text. For each original rune it applies
// NFD decomposition, drops combining marks, and lowercases what remains;
// every normalized byte the rune expands to maps back to that single rune's
// full byte range. Runes with no decomposition pass through unchanged, so
// the function never fails; empty input yields an empty projection.
func Normalize(text string) *Projection {
	p := &Projection{Original: text}
	if text == "" {
		return p
	}

	var buf []byte
	segs := make([]Segment, 0, len(text))

	for i, r := range text {
		end := i + utf8.RuneLen(r)
		for _, d := range norm.NFD.String(string(r)) {
			if unicode.Is(unicode.Mn, d) {
				continue
			}
			d = unicode.ToLower(d)
			var tmp [utf8.UTFMax]byte
			n := utf8.EncodeRune(tmp[:], d)
			buf = append(buf, tmp[:n]...)
			for j := 0; j < n; j++ {
				segs = append(segs, Segment{OrigStart: i, OrigEnd: end})
			}
		}
	}

	p.Normalized = string(buf)
	p.Segments = segs
	return p
}

// NormalizeString returns only the normalized form of s, using the same
// transform as Normalize. Needles must go through this before being compared
// against Projection.Normalized.
func NormalizeString(s string) string {
	if s == "" {
		return ""
	}
	var buf []byte
	for _, r := range s {
		for _, d := range norm.NFD.String(string(r)) {
			if unicode.Is(unicode.Mn, d) {
				continue
			}
			d = unicode.ToLower(d)
			var tmp [utf8.UTFMax]byte
			n := utf8.EncodeRune(tmp[:], d)
			buf = append(buf, tmp[:n]...)
		}
	}
	return string(buf)
}

// SpanFor maps a half-open range in normalized bytes back to the original
// document span. The second return is false when the range is out of bounds.
func (p *Projection) SpanFor(normStart, normEnd int) (search.Span, bool) {
	if normStart < 0 || normStart >= normEnd || normEnd > len(p.Segments) {
		return search.Span{}, false
	}
	return search.Span{
		Start: p.Segments[normStart].OrigStart,
		End:   p.Segments[normEnd-1].OrigEnd,
	}, true
}

// Slice returns the original text covered by span, or "" when the span is
// not valid for this document.
func (p *Projection) Slice(span search.Span) string {
	if !span.Valid(len(p.Original)) {
		return ""
	}
	return p.Original[span.Start:span.End]
}

// Context extracts up to window bytes of original text on each side of span,
// snapped outward to rune boundaries so the excerpt is always valid UTF-8.
func (p *Projection) Context(span search.Span, window int) search.ContextInfo {
	if !span.Valid(len(p.Original)) {
		return search.ContextInfo{}
	}
	start := span.Start - window
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(p.Original[start]) {
		start--
	}
	end := span.End + window
	if end > len(p.Original) {
		end = len(p.Original)
	}
	for end < len(p.Original) && !utf8.RuneStart(p.Original[end]) {
		end++
	}
	return search.ContextInfo{
		BeforeText: p.Original[start:span.Start],
		AfterText:  p.Original[span.End:end],
	}
}
