// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package search

import "fmt"

// ValueType classifies an extracted value. The set is closed; validators and
// pattern tables are keyed by it.
type ValueType string

const (
	TypeBirthNumber ValueType = "BIRTH_NUMBER" // rodné číslo
	TypeCompanyID   ValueType = "COMPANY_ID"   // IČO
	TypeIBAN        ValueType = "IBAN"
	TypeAccount     ValueType = "ACCOUNT"
	TypeAmount      ValueType = "AMOUNT"
	TypePhone       ValueType = "PHONE"
	TypeDate        ValueType = "DATE"
	TypePercentage  ValueType = "PERCENTAGE"
	TypeParcel      ValueType = "PARCEL"
	TypeName        ValueType = "NAME"
	TypeAddress     ValueType = "ADDRESS"
	TypeText        ValueType = "TEXT"
	TypeUnknown     ValueType = "UNKNOWN"
)

// AllTypes lists every concrete value type in classifier specificity order.
// More specific types come first so that ambiguous strings (a birth number is
// also a plausible parcel fraction) resolve to the strictest validator that
// accepts them.
var AllTypes = []ValueType{
	TypeBirthNumber,
	TypeIBAN,
	TypeAccount,
	TypeCompanyID,
	TypePhone,
	TypeAmount,
	TypePercentage,
	TypeDate,
	TypeParcel,
	TypeName,
	TypeAddress,
}

// MatcherKind identifies which strategy produced a match.
type MatcherKind string

const (
	MatcherExact    MatcherKind = "exact"
	MatcherToken    MatcherKind = "token"
	MatcherPattern  MatcherKind = "pattern"
	MatcherFuzzy    MatcherKind = "fuzzy"
	MatcherSemantic MatcherKind = "semantic"
	MatcherExternal MatcherKind = "external" // re-validated AI-provided span
)

// Span is a half-open byte range [Start, End) into the original document.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Valid reports whether the span is well formed within a document of the
// given length.
func (s Span) Valid(docLen int) bool {
	return s.Start >= 0 && s.Start < s.End && s.End <= docLen
}

// Len returns the span length in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Overlaps reports whether two spans share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s Span) String() string { return fmt.Sprintf("[%d,%d)", s.Start, s.End) }

// ContextInfo stores the text surrounding a match, used for keyword-based
// confidence adjustment and for display excerpts.
type ContextInfo struct {
	BeforeText string `json:"before_text,omitempty"`
	AfterText  string `json:"after_text,omitempty"`

	// Contextual keywords found near the match
	PositiveKeywords []string `json:"positive_keywords,omitempty"`

	// Impact on confidence score
	ConfidenceImpact float64 `json:"confidence_impact,omitempty"`
}

// Match represents one located occurrence of a value in the document.
// Text always equals document[Span.Start:Span.End]; producers validate this
// before emitting, consumers may rely on it.
type Match struct {
	Span         Span        `json:"span"`
	Text         string      `json:"text"`
	MatchedBy    MatcherKind `json:"matched_by"`
	Score        float64     `json:"score"` // in [0,1]
	DetectedType ValueType   `json:"detected_type"`
	Context      ContextInfo `json:"context,omitempty"`
}

// Candidate is a labeled, scored search result bundling one or more matches
// for the same queried value.
type Candidate struct {
	Label           string             `json:"label"`
	Value           string             `json:"value"`
	Matches         []Match            `json:"matches"`
	RelevanceScore  float64            `json:"relevance_score"`
	ComponentScores map[string]float64 `json:"component_scores,omitempty"`

	// Transient ranking state, recomputed every ranking pass.
	Rank       int     `json:"rank,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`

	// GroupedWith holds values of near-duplicate candidates folded into this
	// one by the ranker's similarity grouping.
	GroupedWith []string `json:"grouped_with,omitempty"`
}

// BestMatch returns the highest-scoring match, or a zero Match when empty.
func (c *Candidate) BestMatch() Match {
	var best Match
	for _, m := range c.Matches {
		if m.Score > best.Score {
			best = m
		}
	}
	return best
}

// HighlightRange is a validated, display-ready span with metadata, produced
// by the highlight merger. MergedFrom records the indexes of the source
// ranges that were folded into this one.
type HighlightRange struct {
	Span       Span      `json:"span"`
	ID         string    `json:"id"`
	Type       ValueType `json:"type"`
	Confidence float64   `json:"confidence"`
	Label      string    `json:"label"`
	Value      string    `json:"value"`
	MergedFrom []int     `json:"merged_from,omitempty"`
}

// Result is the engine's complete answer for one query: ranked candidates
// plus validated highlight ranges. NoMatch distinguishes "searched and found
// nothing" from an error, so callers can show a warning instead of a failure.
type Result struct {
	Query      string           `json:"query"`
	Candidates []Candidate      `json:"candidates"`
	Highlights []HighlightRange `json:"highlights"`
	NoMatch    bool             `json:"no_match"`

	// Strategies that failed during this search; failures are local and the
	// remaining strategies' output still counts.
	FailedStrategies []string `json:"failed_strategies,omitempty"`
}
