// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pattern finds typed values and contract clauses in the original
// document text using a per-type regex library. Confidence starts at a base
// score and grows when the structural validator accepts the value and when
// type-relevant keywords appear in the surrounding context.
package pattern

import (
	"regexp"
	"sort"
	"strings"

	"contract-search/internal/classifier"
	"contract-search/internal/document"
	"contract-search/internal/search"
)

const (
	baseConfidence    = 0.8
	validatorBonus    = 0.15
	contextBonus      = 0.05
	valueContextChars = 100
)

// typePattern binds a value type to an unanchored regex. When group > 0 the
// value is that capture group; the label prefix (e.g. "IČO:") stays out of
// the reported span.
type typePattern struct {
	typ   search.ValueType
	re    *regexp.Regexp
	group int
}

var typePatterns = []typePattern{
	{search.TypeBirthNumber, regexp.MustCompile(`\b\d{6}\s?/\s?\d{3,4}\b`), 0},
	{search.TypeIBAN, regexp.MustCompile(`\b[A-Z]{2}\d{2}(?:\s?[0-9A-Z]{4}){4,7}(?:\s?[0-9A-Z]{1,3})?\b`), 0},
	{search.TypeAccount, regexp.MustCompile(`\b(?:\d{2,6}-)?\d{2,10}/\d{4}\b`), 0},
	{search.TypeCompanyID, regexp.MustCompile(`(?:IČO?|IČ|ICO)\s*:?\s*(\d{8})\b`), 1},
	{search.TypeCompanyID, regexp.MustCompile(`\b(\d{8})\b`), 1},
	{search.TypePhone, regexp.MustCompile(`(?:\+420|00420)\s?\d{3}\s?\d{3}\s?\d{3}\b|\b\d{3}\s\d{3}\s\d{3}\b`), 0},
	{search.TypeAmount, regexp.MustCompile(`\b\d{1,3}(?:[ \x{00A0}.]\d{3})*(?:,\d{1,2})?\s?(?:Kč|CZK|EUR|€|,-)`), 0},
	{search.TypePercentage, regexp.MustCompile(`\b\d{1,3}(?:[,.]\d{1,2})?\s?%`), 0},
	{search.TypeDate, regexp.MustCompile(`\b\d{1,2}\.\s?\d{1,2}\.\s?\d{4}\b`), 0},
	{search.TypeDate, regexp.MustCompile(`\b\d{1,2}\.\s?(?:ledna|února|března|dubna|května|června|července|srpna|září|října|listopadu|prosince)\s\d{4}\b`), 0},
	{search.TypeParcel, regexp.MustCompile(`(?:parc\.\s?č\.|p\.\s?č\.|st\.)\s?(\d{1,5}(?:/\d{1,4})?)`), 1},
	{search.TypeName, regexp.MustCompile(`\p{Lu}\p{Ll}+\s\p{Lu}\p{Ll}+(?:\s\p{Lu}\p{Ll}+)?`), 0},
}

// typeKeywords raise confidence when present near a match of that type.
var typeKeywords = map[search.ValueType][]string{
	search.TypeBirthNumber: {"rodné číslo", "rodne cislo", "rč", "r.č.", "narozen"},
	search.TypeCompanyID:   {"ičo", "ič", "identifikační číslo", "společnost", "zapsaná"},
	search.TypeIBAN:        {"iban", "účet", "bankovní"},
	search.TypeAccount:     {"účet", "účtu", "č.ú.", "bankovní spojení", "vedený u"},
	search.TypeAmount:      {"cena", "částka", "kupní", "úhrada", "zaplatí", "hodnota", "záloha"},
	search.TypePhone:       {"telefon", "tel", "mobil", "kontakt"},
	search.TypeDate:        {"dne", "datum", "splatnost", "termín", "uzavřena"},
	search.TypePercentage:  {"dph", "úrok", "sazba", "smluvní pokuta"},
	search.TypeParcel:      {"parcela", "pozemek", "katastrální", "nemovitost", "výměra"},
	search.TypeName:        {"pan", "paní", "jméno", "prodávající", "kupující", "narozen", "bytem"},
	search.TypeAddress:     {"bytem", "sídlem", "adresa", "trvale"},
}

// FindByType scans the document for values of one type. Matches are
// deduplicated on (start, end, value) and ordered by confidence.
func FindByType(p *document.Projection, typ search.ValueType) []search.Match {
	var matches []search.Match
	for _, tp := range typePatterns {
		if tp.typ != typ {
			continue
		}
		matches = append(matches, scanPattern(p, tp)...)
	}
	matches = dedupe(matches)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// FindForQuery routes the query to the worth-searching subset of types and
// clauses, scans them, and orders the combined result by confidence with a
// query-relevance tiebreak.
func FindForQuery(p *document.Projection, query string) []search.Match {
	types, clauses := RouteQuery(query)

	var matches []search.Match
	for _, typ := range types {
		for _, tp := range typePatterns {
			if tp.typ == typ {
				matches = append(matches, scanPattern(p, tp)...)
			}
		}
	}
	for _, cl := range clauses {
		matches = append(matches, FindClause(p, cl)...)
	}

	matches = dedupe(matches)
	normQuery := document.NormalizeString(query)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return queryRelevance(matches[i], normQuery) > queryRelevance(matches[j], normQuery)
	})
	return matches
}

func scanPattern(p *document.Projection, tp typePattern) []search.Match {
	var matches []search.Match
	for _, idx := range tp.re.FindAllStringSubmatchIndex(p.Original, -1) {
		start, end := idx[0], idx[1]
		if tp.group > 0 && 2*tp.group+1 < len(idx) && idx[2*tp.group] >= 0 {
			start, end = idx[2*tp.group], idx[2*tp.group+1]
		}
		span := search.Span{Start: start, End: end}
		text := p.Original[start:end]

		confidence := baseConfidence
		if classifier.Validate(tp.typ, text) {
			confidence += validatorBonus
		}
		ctx := p.Context(span, valueContextChars)
		if kw := contextKeywords(tp.typ, ctx); len(kw) > 0 {
			confidence += contextBonus
			ctx.PositiveKeywords = kw
			ctx.ConfidenceImpact = contextBonus
		}

		matches = append(matches, search.Match{
			Span:         span,
			Text:         text,
			MatchedBy:    search.MatcherPattern,
			Score:        confidence,
			DetectedType: tp.typ,
			Context:      ctx,
		})
	}
	return matches
}

func contextKeywords(typ search.ValueType, ctx search.ContextInfo) []string {
	window := document.NormalizeString(ctx.BeforeText + " " + ctx.AfterText)
	var found []string
	for _, kw := range typeKeywords[typ] {
		if strings.Contains(window, document.NormalizeString(kw)) {
			found = append(found, kw)
		}
	}
	return found
}

type matchKey struct {
	start int
	end   int
	value string
}

func dedupe(matches []search.Match) []search.Match {
	seen := make(map[matchKey]bool, len(matches))
	out := matches[:0]
	for _, m := range matches {
		k := matchKey{m.Span.Start, m.Span.End, m.Text}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}

// queryRelevance breaks confidence ties: direct containment of the matched
// value in the query scores highest, type-keyword presence in the query
// scores next.
func queryRelevance(m search.Match, normQuery string) int {
	score := 0
	if normQuery != "" && strings.Contains(normQuery, document.NormalizeString(m.Text)) {
		score += 2
	}
	for _, kw := range typeKeywords[m.DetectedType] {
		if strings.Contains(normQuery, document.NormalizeString(kw)) {
			score++
			break
		}
	}
	return score
}
