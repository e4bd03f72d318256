// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ranker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-search/internal/document"
	"contract-search/internal/search"
)

func candidateFor(value string, m search.Match) search.Candidate {
	return search.Candidate{Label: value, Value: value, Matches: []search.Match{m}}
}

func TestRankExactBeatsFuzzy(t *testing.T) {
	doc := "kupní cena kupní cesta"
	p := document.Normalize(doc)

	exactMatch := search.Match{
		Span: search.Span{Start: 0, End: len("kupní cena")}, Text: "kupní cena",
		MatchedBy: search.MatcherExact, Score: 1.0, DetectedType: search.TypeText,
	}
	fuzzyMatch := search.Match{
		Span: search.Span{Start: len("kupní cena "), End: len(doc)}, Text: "kupní cesta",
		MatchedBy: search.MatcherFuzzy, Score: 0.5, DetectedType: search.TypeText,
	}

	ranked := Rank([]search.Candidate{
		candidateFor("kupní cesta", fuzzyMatch),
		candidateFor("kupní cena", exactMatch),
	}, "kupní cena", p, Options{MinScore: 0, MaxResults: 10, Weights: DefaultWeights()})

	require.Len(t, ranked, 2)
	assert.Equal(t, "kupní cena", ranked[0].Value)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Greater(t, ranked[0].RelevanceScore, ranked[1].RelevanceScore)
}

func TestRankMinScoreDropsWeakCandidates(t *testing.T) {
	p := document.Normalize("some long document body with many words")
	weak := candidateFor("zzz", search.Match{
		Span: search.Span{Start: 30, End: 35}, Text: "words",
		MatchedBy: search.MatcherFuzzy, Score: 0.05, DetectedType: search.TypeUnknown,
	})
	ranked := Rank([]search.Candidate{weak}, "completely different", p,
		Options{MinScore: 0.9, MaxResults: 10, Weights: DefaultWeights()})
	assert.Empty(t, ranked)
}

func TestRankTruncatesToMaxResults(t *testing.T) {
	p := document.Normalize("a b c d e f g h")
	var candidates []search.Candidate
	for i := 0; i < 8; i += 2 {
		candidates = append(candidates, candidateFor(string(rune('a'+i)), search.Match{
			Span: search.Span{Start: i, End: i + 1}, Text: string(rune('a' + i)),
			MatchedBy: search.MatcherExact, Score: 1.0, DetectedType: search.TypeText,
		}))
	}
	ranked := Rank(candidates, "a", p, Options{MinScore: 0, MaxResults: 2, Weights: DefaultWeights()})
	assert.Len(t, ranked, 2)
	assert.Equal(t, []int{1, 2}, []int{ranked[0].Rank, ranked[1].Rank})
}

func TestDiversityBoostsFirstOfType(t *testing.T) {
	candidates := []search.Candidate{
		{Value: "a", RelevanceScore: 0.5, Matches: []search.Match{{DetectedType: search.TypeAmount, Score: 1}}},
		{Value: "b", RelevanceScore: 0.5, Matches: []search.Match{{DetectedType: search.TypeAmount, Score: 1}}},
	}
	applyDiversity(candidates)
	assert.Greater(t, candidates[0].RelevanceScore, candidates[1].RelevanceScore)
}

func TestGroupSimilarFoldsNearDuplicates(t *testing.T) {
	candidates := []search.Candidate{
		{Value: "7 850 000 Kč", RelevanceScore: 0.8},
		{Value: "7 850 000 Kč", RelevanceScore: 0.6},
		{Value: "Jan Novák", RelevanceScore: 0.5},
	}
	grouped := groupSimilar(candidates)
	require.Len(t, grouped, 2)
	assert.Equal(t, []string{"7 850 000 Kč"}, grouped[0].GroupedWith)
	// Combined score carries the absorbed result at reduced weight.
	assert.InDelta(t, 0.8+0.25*0.6, grouped[0].RelevanceScore, 1e-9)
	assert.Equal(t, "Jan Novák", grouped[1].Value)
}

func TestExactScoreLadder(t *testing.T) {
	q := document.NormalizeString("kupní cena")
	full := search.Match{Text: "Kupní cena"}
	partial := search.Match{Text: "cena"}
	unrelated := search.Match{Text: "traktor"}

	assert.Equal(t, 1.0, exactScore(full, q))
	got := exactScore(partial, q)
	assert.Greater(t, got, 0.0)
	assert.Less(t, got, 1.0)
	assert.Equal(t, 0.0, exactScore(unrelated, q))
}

func TestPositionalScore(t *testing.T) {
	text := "header line\n" + strings.Repeat("filler words everywhere ", 100)
	p := document.Normalize(text)

	early := search.Match{Span: search.Span{Start: 0, End: 6}}
	lineStart := search.Match{Span: search.Span{Start: 12, End: 18}}
	late := search.Match{Span: search.Span{Start: len(text) - 10, End: len(text) - 4}}

	assert.Greater(t, positionalScore(early, p), positionalScore(late, p))
	assert.Greater(t, positionalScore(lineStart, p), 0.0)
	assert.Equal(t, 0.0, positionalScore(late, p))
}

func TestTypeAlignmentPrefersIntentAlignedType(t *testing.T) {
	doc := "Částka 500 000 Kč dne 1. 2. 2024"
	p := document.Normalize(doc)
	amountStart := strings.Index(doc, "500 000 Kč")
	dateStart := strings.Index(doc, "1. 2. 2024")
	amount := candidateFor("500 000 Kč", search.Match{
		Span: search.Span{Start: amountStart, End: amountStart + len("500 000 Kč")}, Text: "500 000 Kč",
		MatchedBy: search.MatcherPattern, Score: 0.95, DetectedType: search.TypeAmount,
	})
	date := candidateFor("1. 2. 2024", search.Match{
		Span: search.Span{Start: dateStart, End: dateStart + len("1. 2. 2024")}, Text: "1. 2. 2024",
		MatchedBy: search.MatcherPattern, Score: 0.95, DetectedType: search.TypeDate,
	})

	ranked := Rank([]search.Candidate{date, amount}, "kolik činí částka",
		p, Options{MinScore: 0, MaxResults: 10, Weights: DefaultWeights()})
	require.Len(t, ranked, 2)
	assert.Equal(t, "500 000 Kč", ranked[0].Value)
}
