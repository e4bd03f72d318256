// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package semantic matches by meaning rather than by surface form: it
// extracts terms from the query, expands them through a curated legal
// thesaurus, detects the query's intent and scores term occurrences in the
// document with context windows.
package semantic

import (
	"regexp"
	"sort"
	"strings"

	"contract-search/internal/classifier"
	"contract-search/internal/document"
	"contract-search/internal/matcher/exact"
	"contract-search/internal/search"
)

const contextChars = 100

// ExtractTerms pulls searchable terms from a query: stop words removed,
// words longer than two characters kept, plus bigrams of adjacent kept
// words and any curated trigram present in the query.
func ExtractTerms(query string) []string {
	norm := document.NormalizeString(query)
	words := strings.Fields(norm)

	var kept []string
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:'\"()[]")
		if len(w) > 2 && !stopWords[w] {
			kept = append(kept, w)
		}
	}

	seen := make(map[string]bool)
	var terms []string
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	for _, w := range kept {
		add(w)
	}
	for i := 0; i+1 < len(kept); i++ {
		add(kept[i] + " " + kept[i+1])
	}
	for _, tri := range curatedTrigrams {
		if strings.Contains(norm, tri) {
			add(tri)
		}
	}
	return terms
}

// ExpandQuery unions the extracted terms with thesaurus synonyms. A
// thesaurus entry applies when its key contains a term or a term contains
// the key, so inflected Czech forms still hit their base entry.
func ExpandQuery(query string) []string {
	terms := ExtractTerms(query)
	seen := make(map[string]bool)
	var expanded []string
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			expanded = append(expanded, t)
		}
	}
	for _, t := range terms {
		add(t)
	}
	for _, t := range terms {
		for key, synonyms := range thesaurus {
			if strings.Contains(t, key) || strings.Contains(key, t) {
				for _, s := range synonyms {
					add(s)
				}
			}
		}
	}
	return expanded
}

// Similarity scores two terms in [0,1] on a fixed ladder: identical 1.0,
// normalized-equal 0.9, direct thesaurus relation 0.8, shared synonyms
// 0.6 + 0.1 per overlap, containment substring-ratio * 0.5, multi-word
// overlap ratio * 0.4, otherwise 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	na, nb := document.NormalizeString(a), document.NormalizeString(b)
	if na == nb {
		return 0.9
	}
	if directRelation(na, nb) || directRelation(nb, na) {
		return 0.8
	}
	if overlap := sharedSynonyms(na, nb); overlap > 0 {
		s := 0.6 + 0.1*float64(overlap)
		if s > 0.8 {
			s = 0.8
		}
		return s
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		shorter, longer := len(na), len(nb)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer) * 0.5
	}
	if ratio := wordOverlapRatio(na, nb); ratio > 0 {
		return ratio * 0.4
	}
	return 0
}

func directRelation(a, b string) bool {
	for _, s := range thesaurus[a] {
		if s == b {
			return true
		}
	}
	return false
}

func sharedSynonyms(a, b string) int {
	sa, oka := thesaurus[a]
	sb, okb := thesaurus[b]
	if !oka || !okb {
		return 0
	}
	set := make(map[string]bool, len(sa))
	for _, s := range sa {
		set[s] = true
	}
	count := 0
	for _, s := range sb {
		if set[s] {
			count++
		}
	}
	return count
}

func wordOverlapRatio(a, b string) float64 {
	wa, wb := strings.Fields(a), strings.Fields(b)
	if len(wa) < 2 && len(wb) < 2 {
		return 0
	}
	set := make(map[string]bool, len(wa))
	for _, w := range wa {
		set[w] = true
	}
	shared := 0
	for _, w := range wb {
		if set[w] {
			shared++
		}
	}
	longer := len(wa)
	if len(wb) > longer {
		longer = len(wb)
	}
	if longer == 0 {
		return 0
	}
	return float64(shared) / float64(longer)
}

// KeywordsFor exposes an intent's keyword list (normalized form) for
// context scoring in the ranker.
func KeywordsFor(intent Intent) []string {
	return intentKeywords[intent]
}

// IntentScore is one detected intent with its confidence.
type IntentScore struct {
	Intent     Intent
	Confidence float64
}

// DetectIntent scores every intent by the fraction of its keyword list
// present in the query, descending by confidence. Intents that score zero
// are omitted.
func DetectIntent(query string) []IntentScore {
	norm := " " + document.NormalizeString(query) + " "
	var scores []IntentScore
	for intent, keywords := range intentKeywords {
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(norm, " "+kw+" ") || strings.Contains(norm, kw+" ") {
				hits++
			}
		}
		if hits > 0 {
			scores = append(scores, IntentScore{
				Intent:     intent,
				Confidence: float64(hits) / float64(len(keywords)),
			})
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Confidence != scores[j].Confidence {
			return scores[i].Confidence > scores[j].Confidence
		}
		return scores[i].Intent < scores[j].Intent
	})
	return scores
}

// focusPatterns restrict IntelligentSearch to value shapes matching the
// primary intent.
var focusPatterns = map[Intent]*regexp.Regexp{
	IntentAmount:   regexp.MustCompile(`\d{1,3}(?:[ \x{00A0}.]\d{3})*(?:,\d{1,2})?\s?(?:kc|czk|eur)`),
	IntentDate:     regexp.MustCompile(`\d{1,2}\.\s?\d{1,2}\.\s?\d{4}`),
	IntentPhone:    regexp.MustCompile(`(?:\+420\s?)?\d{3}\s?\d{3}\s?\d{3}`),
	IntentPerson:   regexp.MustCompile(`\d{6}\s?/\s?\d{3,4}`),
	IntentLocation: regexp.MustCompile(`\d{1,5}/\d{1,4}|\d{3}\s?\d{2}`),
}

// intentMinScore raises the score floor when a primary intent is known; a
// focused search can afford to be stricter.
var intentMinScore = map[Intent]float64{
	IntentAmount: 0.4,
	IntentDate:   0.4,
	IntentPhone:  0.4,
	IntentPerson: 0.35,
}

// Options control a semantic search pass.
type Options struct {
	MinScore   float64
	MaxResults int
}

// DefaultOptions match interactive search defaults.
func DefaultOptions() Options {
	return Options{MinScore: 0.3, MaxResults: 30}
}

// FindMatches locates occurrences of the expanded query terms in the
// document and scores each occurrence by term-to-query similarity. Exact
// term occurrences are found through the shared offset-preserving scan, so
// every span is substring-safe.
func FindMatches(p *document.Projection, query string, opts Options) []search.Match {
	if p == nil || strings.TrimSpace(query) == "" || p.Normalized == "" {
		return nil
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultOptions().MaxResults
	}

	terms := ExtractTerms(query)
	expanded := ExpandQuery(query)

	var matches []search.Match
	for _, term := range expanded {
		spans := exact.FindExact(p, term)
		if len(spans) == 0 {
			continue
		}
		score := termScore(term, terms)
		if score < opts.MinScore {
			continue
		}
		for _, span := range spans {
			text := p.Slice(span)
			matches = append(matches, search.Match{
				Span:         span,
				Text:         text,
				MatchedBy:    search.MatcherSemantic,
				Score:        score,
				DetectedType: classifier.DetectType(text),
				Context:      p.Context(span, contextChars),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}
	return matches
}

// IntelligentSearch runs FindMatches biased by the query's primary intent:
// the score floor rises and, when the intent has a focus pattern, document
// regions matching that pattern are searched for typed values as well.
func IntelligentSearch(p *document.Projection, query string, opts Options) []search.Match {
	intents := DetectIntent(query)
	if len(intents) > 0 {
		primary := intents[0].Intent
		if floor, ok := intentMinScore[primary]; ok && floor > opts.MinScore {
			opts.MinScore = floor
		}
		if re, ok := focusPatterns[primary]; ok {
			matches := FindMatches(p, query, opts)
			matches = append(matches, focusScan(p, re, intents[0].Confidence)...)
			sort.SliceStable(matches, func(i, j int) bool {
				return matches[i].Score > matches[j].Score
			})
			if len(matches) > opts.MaxResults && opts.MaxResults > 0 {
				matches = matches[:opts.MaxResults]
			}
			return matches
		}
	}
	return FindMatches(p, query, opts)
}

// focusScan finds intent-shaped values in the normalized text and maps them
// back to original spans. Scores scale with the intent confidence but stay
// below a direct term hit.
func focusScan(p *document.Projection, re *regexp.Regexp, intentConfidence float64) []search.Match {
	var matches []search.Match
	for _, idx := range re.FindAllStringIndex(p.Normalized, -1) {
		span, ok := p.SpanFor(idx[0], idx[1])
		if !ok {
			continue
		}
		text := p.Slice(span)
		matches = append(matches, search.Match{
			Span:         span,
			Text:         text,
			MatchedBy:    search.MatcherSemantic,
			Score:        0.5 + 0.3*intentConfidence,
			DetectedType: classifier.DetectType(text),
			Context:      p.Context(span, contextChars),
		})
	}
	return matches
}

// termScore rates an expanded term against the original extracted terms:
// an original term scores 1.0, a synonym scores by its best similarity to
// any original term.
func termScore(term string, original []string) float64 {
	best := 0.0
	for _, o := range original {
		if term == o {
			return 1.0
		}
		if s := Similarity(term, o); s > best {
			best = s
		}
	}
	return best
}
