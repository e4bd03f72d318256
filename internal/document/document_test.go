// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-search/internal/search"
)

func TestNormalizeStripsDiacriticsAndCase(t *testing.T) {
	p := Normalize("Jan Novák, RČ: 940919/1022")
	assert.Equal(t, "jan novak, rc: 940919/1022", p.Normalized)
}

func TestNormalizeEmpty(t *testing.T) {
	p := Normalize("")
	assert.Empty(t, p.Normalized)
	assert.Empty(t, p.Segments)
}

func TestNormalizeSegmentInvariants(t *testing.T) {
	texts := []string{
		"Kupní cena nemovitosti činí 7 850 000 Kč včetně DPH",
		"Příliš žluťoučký kůň úpěl ďábelské ódy",
		"plain ascii text",
		"Smlouva č. 2024/001 — § 1234",
	}
	for _, text := range texts {
		p := Normalize(text)
		require.Len(t, p.Segments, len(p.Normalized), "one segment per normalized byte")
		prev := 0
		for i, seg := range p.Segments {
			assert.LessOrEqual(t, seg.OrigStart, seg.OrigEnd, "segment %d ordered", i)
			assert.GreaterOrEqual(t, seg.OrigStart, prev, "segment %d monotonic", i)
			prev = seg.OrigStart
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	texts := []string{
		"Příliš žluťoučký kůň",
		"Jan Novák",
		"already normalized",
	}
	for _, text := range texts {
		once := Normalize(text).Normalized
		twice := Normalize(once).Normalized
		assert.Equal(t, once, twice, "normalizing normalized text must be a no-op")
	}
}

func TestNormalizeUnknownRunesPassThrough(t *testing.T) {
	p := Normalize("§ 12, ★ ok")
	assert.Equal(t, "§ 12, ★ ok", p.Normalized)
}

func TestSpanForMapsBackToOriginal(t *testing.T) {
	original := "Pan Novák"
	p := Normalize(original)
	// "novak" starts at normalized byte 4 and is 5 bytes long.
	span, ok := p.SpanFor(4, 9)
	require.True(t, ok)
	assert.Equal(t, "Novák", original[span.Start:span.End])
}

func TestSpanForOutOfBounds(t *testing.T) {
	p := Normalize("abc")
	_, ok := p.SpanFor(2, 1)
	assert.False(t, ok)
	_, ok = p.SpanFor(0, 99)
	assert.False(t, ok)
	_, ok = p.SpanFor(-1, 2)
	assert.False(t, ok)
}

func TestContextWindowSnapsToRuneBoundary(t *testing.T) {
	original := "ěščřžýáíé HIT ěščřžýáíé"
	p := Normalize(original)
	start := len("ěščřžýáíé ")
	ctx := p.Context(search.Span{Start: start, End: start + 3}, 3)
	assert.True(t, len(ctx.BeforeText) >= 3)
	assert.True(t, len(ctx.AfterText) >= 3)
}
