// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"regexp"

	"contract-search/internal/classifier"
	"contract-search/internal/document"
	"contract-search/internal/search"
)

// Clause identifies a contract-clause pattern group. Clause matches carry a
// wider context window than plain value matches because the clause wording
// itself is part of the evidence.
type Clause string

const (
	ClausePurchasePrice       Clause = "purchase-price"
	ClausePaymentTerms        Clause = "payment-terms"
	ClausePropertyDescription Clause = "property-description"
	ClauseContractingParty    Clause = "contracting-party"
)

const clauseContextChars = 200

// clausePattern captures one value inside clause wording. Group 1 is always
// the value; the clause wording around it stays in the context window.
type clausePattern struct {
	re  *regexp.Regexp
	typ search.ValueType
}

var clausePatterns = map[Clause][]clausePattern{
	ClausePurchasePrice: {
		{regexp.MustCompile(`(?i:kupní\s+cena)[^0-9]{0,60}?(\d{1,3}(?:[ \x{00A0}.]\d{3})*(?:,\d{1,2})?\s?(?:Kč|CZK|,-))`), search.TypeAmount},
		{regexp.MustCompile(`(?i:(?:cena|částka|úplata)\s+(?:činí|ve\s+výši))\s*(\d{1,3}(?:[ \x{00A0}.]\d{3})*(?:,\d{1,2})?\s?(?:Kč|CZK|,-))`), search.TypeAmount},
	},
	ClausePaymentTerms: {
		{regexp.MustCompile(`(?i:splatn[áoý])[^.]{0,80}?(\d{1,2}\.\s?\d{1,2}\.\s?\d{4})`), search.TypeDate},
		{regexp.MustCompile(`(?i:(?:uhradí|zaplatí|převodem)[^.]{0,80}?(?:účet|účtu|č\.\s?ú\.))[^0-9]{0,20}((?:\d{2,6}-)?\d{2,10}/\d{4})`), search.TypeAccount},
		{regexp.MustCompile(`(?i:do)\s+(\d{1,3})\s+dnů`), search.TypeText},
	},
	ClausePropertyDescription: {
		{regexp.MustCompile(`(?i:parc(?:ely|ela|\.)\s*(?:č\.)?)\s*(\d{1,5}(?:/\d{1,4})?)`), search.TypeParcel},
		{regexp.MustCompile(`(?i:katastrální(?:m)?\s+území)\s+(\p{Lu}\p{L}+)`), search.TypeAddress},
		{regexp.MustCompile(`(?i:o\s+výměře)\s+(\d+(?:[,.]\d+)?\s?m2?)`), search.TypeText},
	},
	ClauseContractingParty: {
		{regexp.MustCompile(`(?i:(?:prodávající|kupující|pronajímatel|nájemce|zhotovitel|objednatel)\s*:?\s*)(\p{Lu}\p{Ll}+\s\p{Lu}\p{Ll}+)`), search.TypeName},
		{regexp.MustCompile(`(?i:(?:prodávající|kupující)\s*:?\s*)(\p{Lu}[\p{L} .,&]+?(?:s\.r\.o\.|a\.s\.|v\.o\.s\.))`), search.TypeName},
	},
}

// AllClauses lists every clause group.
var AllClauses = []Clause{
	ClausePurchasePrice,
	ClausePaymentTerms,
	ClausePropertyDescription,
	ClauseContractingParty,
}

// FindClause scans the document with every pattern of one clause group.
// Each pattern is scanned independently; dedup happens at the caller.
func FindClause(p *document.Projection, clause Clause) []search.Match {
	var matches []search.Match
	for _, cp := range clausePatterns[clause] {
		for _, idx := range cp.re.FindAllStringSubmatchIndex(p.Original, -1) {
			if len(idx) < 4 || idx[2] < 0 {
				continue
			}
			span := search.Span{Start: idx[2], End: idx[3]}
			text := p.Original[span.Start:span.End]

			confidence := baseConfidence
			if cp.typ != search.TypeText && classifier.Validate(cp.typ, text) {
				confidence += validatorBonus
			}
			ctx := p.Context(span, clauseContextChars)
			if kw := contextKeywords(cp.typ, ctx); len(kw) > 0 {
				confidence += contextBonus
				ctx.PositiveKeywords = kw
				ctx.ConfidenceImpact = contextBonus
			}

			matches = append(matches, search.Match{
				Span:         span,
				Text:         text,
				MatchedBy:    search.MatcherPattern,
				Score:        confidence,
				DetectedType: cp.typ,
				Context:      ctx,
			})
		}
	}
	return matches
}
