// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package engine orchestrates a search: it holds the normalized projection
// of the current document, fans the query out to the matching strategies in
// parallel, assembles their hits into candidates, ranks them, and merges the
// winning spans into validated highlight ranges. Strategy failures are
// local; the remaining strategies' output still produces a result.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"contract-search/internal/classifier"
	"contract-search/internal/document"
	"contract-search/internal/highlight"
	"contract-search/internal/matcher/exact"
	"contract-search/internal/matcher/fuzzy"
	"contract-search/internal/matcher/pattern"
	"contract-search/internal/matcher/semantic"
	"contract-search/internal/observability"
	"contract-search/internal/ranker"
	"contract-search/internal/search"
)

// ErrSuperseded is returned when the document changed while a search was
// in flight. The partial result is discarded; the caller re-searches
// against the new document.
var ErrSuperseded = errors.New("search superseded by newer document")

const tokenScore = 0.7

// Options configure the engine and the strategies it drives.
type Options struct {
	Fuzzy     fuzzy.Options
	Semantic  semantic.Options
	Ranker    ranker.Options
	Highlight highlight.Options

	// Workers sizes the goroutine pool shared by the strategies.
	Workers int

	// CacheSize bounds the per-document query cache; zero disables caching.
	CacheSize int
	CacheTTL  time.Duration

	// Clock overrides the cache's time source in tests.
	Clock func() time.Time
}

// DefaultOptions returns the engine defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		Fuzzy:     fuzzy.DefaultOptions(),
		Semantic:  semantic.DefaultOptions(),
		Ranker:    ranker.DefaultOptions(),
		Highlight: highlight.DefaultOptions(),
		Workers:   4,
		CacheSize: 64,
		CacheTTL:  5 * time.Minute,
	}
}

// Engine runs searches against one document at a time. Safe for concurrent
// use; SetDocument supersedes searches still running against the old text.
type Engine struct {
	opts     Options
	observer *observability.Observer
	merger   *highlight.Merger
	pool     *ants.Pool
	cache    *resultCache

	generation atomic.Uint64

	mu   sync.RWMutex
	proj *document.Projection
}

// New creates an engine with its worker pool. Callers must Close it.
func New(opts Options, observer *observability.Observer) (*Engine, error) {
	if opts.Workers <= 0 {
		opts.Workers = DefaultOptions().Workers
	}
	pool, err := ants.NewPool(opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	return &Engine{
		opts:     opts,
		observer: observer,
		merger:   highlight.NewMerger(observer),
		pool:     pool,
		cache:    newResultCache(opts.CacheSize, opts.CacheTTL, opts.Clock),
	}, nil
}

// Close releases the worker pool.
func (e *Engine) Close() {
	e.pool.Release()
}

// SetDocument replaces the current document. The projection is built once
// here and reused by every subsequent search. In-flight searches against the
// previous document return ErrSuperseded, and the query cache is purged.
func (e *Engine) SetDocument(text string) {
	done := e.observer.StartTiming("engine", "normalize")
	proj := document.Normalize(text)
	proj.Generation = e.generation.Add(1)
	done(true)

	e.mu.Lock()
	e.proj = proj
	e.mu.Unlock()
	e.cache.purge()

	e.observer.Metric("engine", "document_bytes", len(text))
}

// Document returns the current original document text.
func (e *Engine) Document() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.proj == nil {
		return ""
	}
	return e.proj.Original
}

// Search runs every strategy for query against the current document and
// returns the ranked, highlighted result. A failing strategy is recorded in
// FailedStrategies and skipped, never fatal. An empty query or document is
// not an error; it yields an empty result with the no-match signal set.
func (e *Engine) Search(ctx context.Context, query string) (*search.Result, error) {
	query = strings.TrimSpace(query)

	e.mu.RLock()
	proj := e.proj
	e.mu.RUnlock()
	if query == "" || proj == nil || len(proj.Normalized) == 0 {
		return &search.Result{Query: query, NoMatch: true}, nil
	}
	gen := proj.Generation

	if cached, ok := e.cache.get(query, gen); ok {
		e.observer.Debug("engine", "cache hit", "query", query)
		return cached, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := e.observer.StartTiming("engine", "search")
	matches, failed := e.runStrategies(proj, query)

	if err := ctx.Err(); err != nil {
		done(false)
		return nil, err
	}
	if e.generation.Load() != gen {
		done(false)
		return nil, ErrSuperseded
	}

	candidates := assembleCandidates(matches)
	ranked := ranker.Rank(candidates, query, proj, e.opts.Ranker)
	highlights := e.merger.Merge(proj.Original, highlight.BuildRanges(ranked), e.opts.Highlight)

	result := &search.Result{
		Query:            query,
		Candidates:       ranked,
		Highlights:       highlights,
		NoMatch:          len(ranked) == 0,
		FailedStrategies: failed,
	}
	done(true)
	e.observer.Metric("engine", "candidates", len(ranked))

	e.cache.put(query, gen, result)
	return result, nil
}

type strategy struct {
	name string
	run  func(p *document.Projection, query string) []search.Match
}

func (e *Engine) strategies() []strategy {
	return []strategy{
		{name: "exact", run: runExact},
		{name: "pattern", run: func(p *document.Projection, q string) []search.Match {
			return pattern.FindForQuery(p, q)
		}},
		{name: "fuzzy", run: func(p *document.Projection, q string) []search.Match {
			return fuzzy.FindMatches(p, q, e.opts.Fuzzy)
		}},
		{name: "semantic", run: func(p *document.Projection, q string) []search.Match {
			return semantic.IntelligentSearch(p, q, e.opts.Semantic)
		}},
	}
}

func (e *Engine) runStrategies(proj *document.Projection, query string) ([]search.Match, []string) {
	var (
		mu     sync.Mutex
		all    []search.Match
		failed []string
		wg     sync.WaitGroup
	)
	for _, st := range e.strategies() {
		st := st
		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					failed = append(failed, st.name)
					mu.Unlock()
					e.observer.Warn("engine", "strategy failed",
						"strategy", st.name, "reason", fmt.Sprint(r))
				}
			}()
			ms := st.run(proj, query)
			mu.Lock()
			all = append(all, ms...)
			mu.Unlock()
		}
		// A saturated or released pool degrades to inline execution.
		if err := e.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()
	sort.Strings(failed)
	return all, failed
}

// runExact surfaces whole-query occurrences at full score and falls back to
// per-token hits when the query as a whole does not appear.
func runExact(p *document.Projection, query string) []search.Match {
	spans := exact.FindExact(p, query)
	var matches []search.Match
	for _, sp := range spans {
		text := p.Slice(sp)
		matches = append(matches, search.Match{
			Span:         sp,
			Text:         text,
			MatchedBy:    search.MatcherExact,
			Score:        1.0,
			DetectedType: classifier.DetectType(text),
		})
	}
	if len(matches) > 0 {
		return matches
	}
	for _, sp := range exact.FindTokens(p, query) {
		text := p.Slice(sp)
		matches = append(matches, search.Match{
			Span:         sp,
			Text:         text,
			MatchedBy:    search.MatcherToken,
			Score:        tokenScore,
			DetectedType: classifier.DetectType(text),
		})
	}
	return matches
}

// assembleCandidates groups matches sharing a detected type and normalized
// value into one candidate, deduplicating identical spans across strategies
// while keeping one match per strategy that found the span.
func assembleCandidates(matches []search.Match) []search.Candidate {
	type groupKey struct {
		typ   search.ValueType
		value string
	}
	type matchKey struct {
		span search.Span
		by   search.MatcherKind
	}

	groups := make(map[groupKey]*search.Candidate)
	seen := make(map[matchKey]bool)
	var order []groupKey

	for _, m := range matches {
		if m.DetectedType == "" {
			m.DetectedType = classifier.DetectType(m.Text)
		}
		mk := matchKey{span: m.Span, by: m.MatchedBy}
		if seen[mk] {
			continue
		}
		seen[mk] = true

		value := classifier.NormalizeValue(m.DetectedType, m.Text)
		gk := groupKey{typ: m.DetectedType, value: value}
		c, ok := groups[gk]
		if !ok {
			c = &search.Candidate{Label: labelFor(m.DetectedType), Value: value}
			groups[gk] = c
			order = append(order, gk)
		}
		c.Matches = append(c.Matches, m)
	}

	out := make([]search.Candidate, 0, len(order))
	for _, gk := range order {
		out = append(out, *groups[gk])
	}
	return out
}

var typeLabels = map[search.ValueType]string{
	search.TypeBirthNumber: "rodné číslo",
	search.TypeCompanyID:   "IČO",
	search.TypeIBAN:        "IBAN",
	search.TypeAccount:     "číslo účtu",
	search.TypeAmount:      "částka",
	search.TypePhone:       "telefon",
	search.TypeDate:        "datum",
	search.TypePercentage:  "procento",
	search.TypeParcel:      "parcela",
	search.TypeName:        "jméno",
	search.TypeAddress:     "adresa",
}

func labelFor(typ search.ValueType) string {
	if label, ok := typeLabels[typ]; ok {
		return label
	}
	return "text"
}
