// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fuzzy finds approximate occurrences of a query in the normalized
// projection, tolerating typos and small edits. Scoring combines normalized
// Levenshtein distance, Jaro-Winkler similarity and trigram overlap; case
// and diacritics tolerance comes from the shared normalizer.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"

	"contract-search/internal/classifier"
	"contract-search/internal/document"
	"contract-search/internal/search"
)

// Algorithm selects the similarity function.
type Algorithm string

const (
	AlgorithmLevenshtein Algorithm = "levenshtein"
	AlgorithmJaroWinkler Algorithm = "jaro-winkler"
	AlgorithmHybrid      Algorithm = "hybrid"
)

// Options control a fuzzy search pass.
type Options struct {
	MinScore   float64
	MaxResults int
	Algorithm  Algorithm
}

// DefaultOptions match interactive search defaults.
func DefaultOptions() Options {
	return Options{MinScore: 0.3, MaxResults: 20, Algorithm: AlgorithmHybrid}
}

const contextChars = 100

// FindMatches scans word windows of the projection sized to the query's
// word count and scores each against the query. Only windows at or above
// MinScore are returned, ordered by score and truncated to MaxResults.
func FindMatches(p *document.Projection, query string, opts Options) []search.Match {
	normQuery := document.NormalizeString(strings.TrimSpace(query))
	if p == nil || normQuery == "" || p.Normalized == "" {
		return nil
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultOptions().MaxResults
	}
	if opts.Algorithm == "" {
		opts.Algorithm = AlgorithmHybrid
	}

	words := splitWords(p.Normalized)
	windowLen := len(strings.Fields(normQuery))
	if windowLen == 0 {
		return nil
	}

	var matches []search.Match
	for i := 0; i+windowLen <= len(words); i++ {
		start := words[i].start
		end := words[i+windowLen-1].end
		candidate := p.Normalized[start:end]

		score := Similarity(normQuery, candidate, opts.Algorithm)
		if score < opts.MinScore {
			continue
		}
		span, ok := p.SpanFor(start, end)
		if !ok {
			continue
		}
		text := p.Slice(span)
		matches = append(matches, search.Match{
			Span:         span,
			Text:         text,
			MatchedBy:    search.MatcherFuzzy,
			Score:        score,
			DetectedType: classifier.DetectType(text),
			Context:      p.Context(span, contextChars),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}
	return matches
}

// Similarity scores two normalized strings in [0,1]. Identical strings
// always score 1.0 and closer strings score higher than more distant ones.
func Similarity(a, b string, algorithm Algorithm) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0
	}
	switch algorithm {
	case AlgorithmLevenshtein:
		return levenshteinSimilarity(a, b)
	case AlgorithmJaroWinkler:
		return smetrics.JaroWinkler(a, b, 0.7, 4)
	default:
		// Hybrid blends edit distance with Jaro-Winkler and trigram overlap;
		// the edit-distance component dominates so small typos stay close
		// to 1 while unrelated strings fall off quickly.
		lev := levenshteinSimilarity(a, b)
		jw := smetrics.JaroWinkler(a, b, 0.7, 4)
		tri := trigramOverlap(a, b)
		return 0.5*lev + 0.3*jw + 0.2*tri
	}
}

func levenshteinSimilarity(a, b string) float64 {
	dist := levenshtein.ComputeDistance(a, b)
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(dist)/float64(longest)
}

func trigramOverlap(a, b string) float64 {
	ta, tb := trigrams(a), trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for g := range ta {
		if tb[g] {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	return float64(shared) / float64(union)
}

func trigrams(s string) map[string]bool {
	r := []rune(s)
	grams := make(map[string]bool)
	if len(r) < 3 {
		if len(r) > 0 {
			grams[string(r)] = true
		}
		return grams
	}
	for i := 0; i+3 <= len(r); i++ {
		grams[string(r[i:i+3])] = true
	}
	return grams
}

type wordPos struct {
	start int
	end   int
}

// splitWords records the byte offsets of alphanumeric word runs in the
// normalized text.
func splitWords(s string) []wordPos {
	var words []wordPos
	start := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		isWord := c == '/' || c == '+' ||
			(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || c >= 128
		if isWord && start < 0 {
			start = i
		}
		if !isWord && start >= 0 {
			words = append(words, wordPos{start, i})
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, wordPos{start, len(s)})
	}
	return words
}
