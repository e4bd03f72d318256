// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-search/internal/document"
)

func TestExtractTerms(t *testing.T) {
	terms := ExtractTerms("kde je kupní cena nemovitosti")
	assert.Contains(t, terms, "kupni")
	assert.Contains(t, terms, "cena")
	assert.Contains(t, terms, "nemovitosti")
	assert.Contains(t, terms, "kupni cena", "bigrams of kept words are emitted")
	assert.NotContains(t, terms, "kde", "stop words are removed")
	assert.NotContains(t, terms, "je", "short words are removed")
}

func TestExtractTermsCuratedTrigram(t *testing.T) {
	terms := ExtractTerms("jaká je kupní cena nemovitosti v Brně")
	assert.Contains(t, terms, "kupni cena nemovitosti")
}

func TestExpandQueryAddsSynonyms(t *testing.T) {
	expanded := ExpandQuery("kupní cena")
	assert.Contains(t, expanded, "castka")
	assert.Contains(t, expanded, "hodnota")
	// Original terms always survive expansion.
	assert.Contains(t, expanded, "cena")
}

func TestSimilarityLadder(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("cena", "cena"))
	assert.Equal(t, 0.9, Similarity("Cena", "céna"))
	assert.Equal(t, 0.8, Similarity("cena", "castka"), "direct thesaurus relation")

	// cena and castka share synonyms (hodnota, suma) through their entries;
	// platba and uhrada share zaplaceni.
	s := Similarity("platba", "uhrada")
	assert.GreaterOrEqual(t, s, 0.6)
	assert.LessOrEqual(t, s, 0.8)

	// Containment: substring ratio * 0.5.
	assert.InDelta(t, 4.0/9.0*0.5, Similarity("cena", "cena auta"), 1e-9)

	// Multi-word overlap * 0.4.
	got := Similarity("kupni cena bytu", "kupni cena domu")
	assert.InDelta(t, 2.0/3.0*0.4, got, 1e-9)

	assert.Equal(t, 0.0, Similarity("pes", "traktor"))
}

func TestDetectIntent(t *testing.T) {
	scores := DetectIntent("kolik činí kupní cena")
	require.NotEmpty(t, scores)
	assert.Equal(t, IntentAmount, scores[0].Intent)

	scores = DetectIntent("kdy je splatnost faktury")
	require.NotEmpty(t, scores)
	assert.Equal(t, IntentDate, scores[0].Intent)

	assert.Empty(t, DetectIntent("xyzzy"))
}

func TestDetectIntentOrdering(t *testing.T) {
	scores := DetectIntent("kdo je prodávající a jaké má rodné číslo")
	require.NotEmpty(t, scores)
	for i := 1; i < len(scores); i++ {
		assert.GreaterOrEqual(t, scores[i-1].Confidence, scores[i].Confidence)
	}
	assert.Equal(t, IntentPerson, scores[0].Intent)
}

func TestFindMatchesThroughSynonym(t *testing.T) {
	doc := "Celková částka za převod činí 1 200 000 Kč."
	p := document.Normalize(doc)

	matches := FindMatches(p, "kupní cena", DefaultOptions())
	require.NotEmpty(t, matches)

	var hit bool
	for _, m := range matches {
		if m.Text == "částka" {
			hit = true
			assert.Equal(t, doc[m.Span.Start:m.Span.End], m.Text)
			assert.GreaterOrEqual(t, m.Score, 0.3)
			assert.Less(t, m.Score, 1.0, "synonym occurrence scores below a direct hit")
		}
	}
	assert.True(t, hit, "expected a match through the thesaurus synonym 'částka'")
}

func TestFindMatchesDirectTermBeatsSynonym(t *testing.T) {
	doc := "Cena je uvedena níže. Částka se hradí převodem."
	p := document.Normalize(doc)
	matches := FindMatches(p, "cena", DefaultOptions())
	require.NotEmpty(t, matches)
	assert.Equal(t, "Cena", matches[0].Text)
	assert.Equal(t, 1.0, matches[0].Score)
}

func TestIntelligentSearchAmountFocus(t *testing.T) {
	doc := "Kupující uhradí 7 850 000 Kč na účet prodávajícího."
	p := document.Normalize(doc)

	matches := IntelligentSearch(p, "kolik se platí kč", DefaultOptions())
	require.NotEmpty(t, matches)

	var foundAmount bool
	for _, m := range matches {
		if m.Text == "7 850 000 Kč" {
			foundAmount = true
			assert.Equal(t, doc[m.Span.Start:m.Span.End], m.Text)
		}
	}
	assert.True(t, foundAmount, "amount intent should surface the currency value via focus patterns")
}

func TestFindMatchesEmpty(t *testing.T) {
	assert.Empty(t, FindMatches(document.Normalize(""), "cena", DefaultOptions()))
	assert.Empty(t, FindMatches(document.Normalize("text"), "  ", DefaultOptions()))
}
