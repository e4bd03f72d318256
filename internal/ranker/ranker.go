// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ranker orders candidates from the heterogeneous matcher
// strategies into one relevance-ranked list. Every match gets independent
// component scores; non-zero components are averaged under configurable
// weights, candidates combine their best and mean match scores, and a
// diversity pass plus similar-result grouping keeps the top of the list
// varied.
package ranker

import (
	"sort"
	"strings"

	"contract-search/internal/classifier"
	"contract-search/internal/document"
	"contract-search/internal/matcher/semantic"
	"contract-search/internal/search"
)

// Weights scale the per-match component scores. Zero-valued weights fall
// back to 1.0 so a partially-filled config behaves sanely.
type Weights struct {
	Exact         float64 `yaml:"exact"`
	Fuzzy         float64 `yaml:"fuzzy"`
	Semantic      float64 `yaml:"semantic"`
	Positional    float64 `yaml:"positional"`
	Contextual    float64 `yaml:"contextual"`
	TypeAlignment float64 `yaml:"type_alignment"`
}

// DefaultWeights treat every component equally.
func DefaultWeights() Weights {
	return Weights{Exact: 1, Fuzzy: 1, Semantic: 1, Positional: 1, Contextual: 1, TypeAlignment: 1}
}

func (w Weights) normalized() Weights {
	fix := func(v float64) float64 {
		if v <= 0 {
			return 1
		}
		return v
	}
	return Weights{fix(w.Exact), fix(w.Fuzzy), fix(w.Semantic), fix(w.Positional), fix(w.Contextual), fix(w.TypeAlignment)}
}

// Options control a ranking pass.
type Options struct {
	MinScore   float64
	MaxResults int
	Weights    Weights
}

// DefaultOptions match interactive search defaults.
func DefaultOptions() Options {
	return Options{MinScore: 0.2, MaxResults: 50, Weights: DefaultWeights()}
}

const (
	// Relevance and confidence differences at or below this are ties and
	// fall through to the next sort key.
	tieEpsilon = 0.05

	// Similarity at or above this folds two candidates into one group.
	groupThreshold = 0.8

	bestWeight = 0.6
	meanWeight = 0.4
)

// typeImportance weights the data-type alignment component: registry
// identifiers and money matter more in contract search than free text.
var typeImportance = map[search.ValueType]float64{
	search.TypeBirthNumber: 1.0,
	search.TypeCompanyID:   1.0,
	search.TypeIBAN:        0.95,
	search.TypeAccount:     0.95,
	search.TypeAmount:      0.9,
	search.TypeDate:        0.8,
	search.TypePhone:       0.8,
	search.TypeParcel:      0.8,
	search.TypePercentage:  0.7,
	search.TypeName:        0.7,
	search.TypeAddress:     0.7,
	search.TypeText:        0.4,
	search.TypeUnknown:     0.3,
}

// intentTypes aligns detected query intents with value types.
var intentTypes = map[semantic.Intent][]search.ValueType{
	semantic.IntentAmount:   {search.TypeAmount, search.TypePercentage},
	semantic.IntentPerson:   {search.TypeName, search.TypeBirthNumber},
	semantic.IntentDate:     {search.TypeDate},
	semantic.IntentLocation: {search.TypeAddress, search.TypeParcel},
	semantic.IntentPhone:    {search.TypePhone},
	semantic.IntentDocument: {search.TypeText},
}

// structuralLabels suggest the match sits next to an explicit document
// label, which is strong evidence the value is what the label says.
var structuralLabels = []string{
	"ičo", "ič:", "rč", "r.č.", "rodné číslo", "č. ú", "č.ú", "iban",
	"cena:", "částka:", "datum:", "tel", "č. p", "parc. č", "ve výši",
}

// Rank scores, orders, diversifies and groups candidates. Candidates below
// MinScore are dropped; output is truncated to MaxResults. The input slice
// is not modified.
func Rank(candidates []search.Candidate, query string, p *document.Projection, opts Options) []search.Candidate {
	if len(candidates) == 0 {
		return nil
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultOptions().MaxResults
	}
	w := opts.Weights.normalized()

	normQuery := document.NormalizeString(query)
	queryTerms := semantic.ExtractTerms(query)
	intents := semantic.DetectIntent(query)

	ranked := make([]search.Candidate, len(candidates))
	copy(ranked, candidates)

	for i := range ranked {
		scoreCandidate(&ranked[i], normQuery, queryTerms, intents, p, w)
	}

	// Diversity multipliers apply in relevance order: "first occurrence" of
	// a type or value means the best-scoring one.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})
	applyDiversity(ranked)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if diff := a.RelevanceScore - b.RelevanceScore; diff > tieEpsilon || diff < -tieEpsilon {
			return diff > 0
		}
		if diff := a.Confidence - b.Confidence; diff > tieEpsilon || diff < -tieEpsilon {
			return diff > 0
		}
		return len(a.Matches) > len(b.Matches)
	})

	ranked = groupSimilar(ranked)

	out := ranked[:0]
	for _, c := range ranked {
		if c.RelevanceScore >= opts.MinScore {
			out = append(out, c)
		}
	}
	if len(out) > opts.MaxResults {
		out = out[:opts.MaxResults]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func scoreCandidate(c *search.Candidate, normQuery string, queryTerms []string, intents []semantic.IntentScore, p *document.Projection, w Weights) {
	if len(c.Matches) == 0 {
		c.RelevanceScore = 0
		return
	}

	best, sum := 0.0, 0.0
	components := map[string]float64{}
	for _, m := range c.Matches {
		score, comps := scoreMatch(m, normQuery, queryTerms, intents, p, w)
		sum += score
		if score > best {
			best = score
			components = comps
		}
		if m.Score > c.Confidence {
			c.Confidence = m.Score
		}
	}
	mean := sum / float64(len(c.Matches))
	c.RelevanceScore = clamp01(bestWeight*best + meanWeight*mean)
	c.ComponentScores = components
}

func scoreMatch(m search.Match, normQuery string, queryTerms []string, intents []semantic.IntentScore, p *document.Projection, w Weights) (float64, map[string]float64) {
	comps := map[string]float64{
		"exact":          w.Exact * exactScore(m, normQuery),
		"fuzzy":          w.Fuzzy * strategyScore(m, search.MatcherFuzzy),
		"semantic":       w.Semantic * strategyScore(m, search.MatcherSemantic),
		"positional":     w.Positional * positionalScore(m, p),
		"contextual":     w.Contextual * contextualScore(m, queryTerms, intents),
		"type_alignment": w.TypeAlignment * typeAlignmentScore(m, intents),
	}

	total, nonZero := 0.0, 0
	for _, v := range comps {
		if v > 0 {
			total += v
			nonZero++
		}
	}
	if nonZero == 0 {
		return 0, comps
	}
	score := total/float64(nonZero) + coverageBonus(m, queryTerms)
	return clamp01(score), comps
}

// exactScore: 1.0 for an exact normalized match of the whole query,
// coverage-weighted for partial containment, a word-boundary bonus score
// when the match starts a query word.
func exactScore(m search.Match, normQuery string) float64 {
	if normQuery == "" {
		return 0
	}
	normText := document.NormalizeString(m.Text)
	if normText == normQuery {
		return 1.0
	}
	if strings.Contains(normQuery, normText) && normText != "" {
		return float64(len(normText)) / float64(len(normQuery))
	}
	if strings.Contains(normText, normQuery) {
		return float64(len(normQuery)) / float64(len(normText))
	}
	for _, w := range strings.Fields(normQuery) {
		if strings.HasPrefix(normText, w) || strings.HasSuffix(normText, w) {
			return 0.3
		}
	}
	return 0
}

func strategyScore(m search.Match, kind search.MatcherKind) float64 {
	if m.MatchedBy == kind {
		return m.Score
	}
	return 0
}

// positionalScore rewards matches early in the document, in the first 100
// bytes, or at a line start; contract headers carry the parties, prices and
// identifiers that queries usually want.
func positionalScore(m search.Match, p *document.Projection) float64 {
	if p == nil || len(p.Original) == 0 {
		return 0
	}
	score := 0.0
	if m.Span.Start < len(p.Original)/5 {
		score += 0.5
	}
	if m.Span.Start < 100 {
		score += 0.3
	}
	if m.Span.Start == 0 || (m.Span.Start > 0 && p.Original[m.Span.Start-1] == '\n') {
		score += 0.2
	}
	return clamp01(score)
}

// contextualScore combines query-term density in the context window,
// structural-label presence and intent-keyword presence.
func contextualScore(m search.Match, queryTerms []string, intents []semantic.IntentScore) float64 {
	window := document.NormalizeString(m.Context.BeforeText + " " + m.Context.AfterText)
	if window == "" {
		return 0
	}
	score := 0.0

	if len(queryTerms) > 0 {
		hits := 0
		for _, t := range queryTerms {
			if strings.Contains(window, t) {
				hits++
			}
		}
		score += 0.6 * float64(hits) / float64(len(queryTerms))
	}

	for _, label := range structuralLabels {
		if strings.Contains(window, document.NormalizeString(label)) {
			score += 0.2
			break
		}
	}

	if len(intents) > 0 {
		if kws := intentKeywordHits(window, intents[0].Intent); kws > 0 {
			score += 0.2
		}
	}
	return clamp01(score)
}

func intentKeywordHits(window string, intent semantic.Intent) int {
	hits := 0
	for _, kw := range semantic.KeywordsFor(intent) {
		if strings.Contains(window, kw) {
			hits++
		}
	}
	return hits
}

// typeAlignmentScore: type importance x query-intent alignment x format
// completeness.
func typeAlignmentScore(m search.Match, intents []semantic.IntentScore) float64 {
	importance := typeImportance[m.DetectedType]
	if importance == 0 {
		return 0
	}
	alignment := 0.5
	if len(intents) > 0 {
		for _, t := range intentTypes[intents[0].Intent] {
			if t == m.DetectedType {
				alignment = 1.0
				break
			}
		}
	}
	format := 1.0
	if m.DetectedType != search.TypeText && m.DetectedType != search.TypeUnknown &&
		classifier.Validate(m.DetectedType, m.Text) {
		format = 1.1
	}
	return clamp01(importance * alignment * format)
}

// coverageBonus adds up to 0.1 for matches whose value or context covers
// all query terms.
func coverageBonus(m search.Match, queryTerms []string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}
	haystack := document.NormalizeString(m.Text + " " + m.Context.BeforeText + " " + m.Context.AfterText)
	covered := 0
	for _, t := range queryTerms {
		if strings.Contains(haystack, t) {
			covered++
		}
	}
	return 0.1 * float64(covered) / float64(len(queryTerms))
}

// applyDiversity boosts the first candidate of each detected type and each
// normalized value, and dampens repeats, so one dominant type cannot crowd
// out the whole list.
func applyDiversity(candidates []search.Candidate) {
	seenType := map[search.ValueType]bool{}
	seenValue := map[string]bool{}
	for i := range candidates {
		c := &candidates[i]
		typ := c.BestMatch().DetectedType
		if !seenType[typ] {
			seenType[typ] = true
			c.RelevanceScore *= 1.1
		} else {
			c.RelevanceScore *= 0.95
		}
		val := document.NormalizeString(c.Value)
		if !seenValue[val] {
			seenValue[val] = true
			c.RelevanceScore *= 1.05
		} else {
			c.RelevanceScore *= 0.9
		}
		c.RelevanceScore = clamp01(c.RelevanceScore)
	}
}

// groupSimilar folds near-duplicate candidates (containment or semantic
// similarity >= groupThreshold) into the earlier, higher-ranked one. The
// primary keeps its matches and carries a combined score in which absorbed
// results weigh less.
func groupSimilar(candidates []search.Candidate) []search.Candidate {
	var out []search.Candidate
	absorbed := make([]bool, len(candidates))
	for i := range candidates {
		if absorbed[i] {
			continue
		}
		primary := candidates[i]
		for j := i + 1; j < len(candidates); j++ {
			if absorbed[j] {
				continue
			}
			if candidateSimilarity(primary, candidates[j]) >= groupThreshold {
				absorbed[j] = true
				primary.GroupedWith = append(primary.GroupedWith, candidates[j].Value)
				primary.RelevanceScore = clamp01(primary.RelevanceScore + 0.25*candidates[j].RelevanceScore)
			}
		}
		out = append(out, primary)
	}
	return out
}

func candidateSimilarity(a, b search.Candidate) float64 {
	na, nb := document.NormalizeString(a.Value), document.NormalizeString(b.Value)
	if na == nb {
		return 1.0
	}
	if na != "" && nb != "" && (strings.Contains(na, nb) || strings.Contains(nb, na)) {
		shorter, longer := len(na), len(nb)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		if r := float64(shorter) / float64(longer); r >= groupThreshold {
			return r
		}
	}
	return semantic.Similarity(a.Value, b.Value)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
