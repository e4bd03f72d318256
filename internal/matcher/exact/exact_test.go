// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package exact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-search/internal/document"
)

func TestFindExactDiacriticsAndCase(t *testing.T) {
	doc := "Jan Novák, RČ: 940919/1022"
	p := document.Normalize(doc)

	spans := FindExact(p, "jan novak")
	require.Len(t, spans, 1)
	assert.Equal(t, "Jan Novák", doc[spans[0].Start:spans[0].End])
}

func TestFindExactRoundTrip(t *testing.T) {
	doc := "Prodávající: Firma ŽLUŤÁK s.r.o., IČO 25596641. Kontakt: zlutak@example.cz"
	p := document.Normalize(doc)

	for _, needle := range []string{"žluťák", "ZLUTAK", "25596641", "s.r.o."} {
		spans := FindExact(p, needle)
		require.NotEmpty(t, spans, "needle %q", needle)
		for _, s := range spans {
			got := document.NormalizeString(doc[s.Start:s.End])
			assert.Equal(t, document.NormalizeString(needle), got)
		}
	}
}

func TestFindExactOverlapping(t *testing.T) {
	p := document.Normalize("aaaa")
	spans := FindExact(p, "aa")
	// Scan restarts at foundIndex+1, so overlapping hits are reported.
	assert.Len(t, spans, 3)
}

func TestFindExactNoHit(t *testing.T) {
	p := document.Normalize("kupní smlouva")
	assert.Empty(t, FindExact(p, "nájemní"))
	assert.Empty(t, FindExact(p, ""))
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"rodné číslo Jana Dvořáka", []string{"rodné", "číslo", "Jana", "Dvořáka"}},
		{"č. 123/4, ok", []string{"123/4"}},
		{"to be or not", []string{"not"}},
		{"RČ: 940919/1022", []string{"940919/1022"}},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, Tokenize(tc.input))
		})
	}
}

func TestFindTokensDedupes(t *testing.T) {
	doc := "cena cena cena"
	p := document.Normalize(doc)
	spans := FindTokens(p, "cena cena")
	// The duplicate query token contributes nothing extra.
	assert.Len(t, spans, 3)
}

func TestFindTokensSkipsShortTokens(t *testing.T) {
	p := document.Normalize("on a to je")
	assert.Empty(t, FindTokens(p, "on a to je"))
}
