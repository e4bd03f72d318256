// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration controlling matcher
// thresholds, ranking weights and output defaults. Missing file or fields
// fall back to built-in defaults; an invalid file fails fast.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"contract-search/internal/engine"
	"contract-search/internal/highlight"
	"contract-search/internal/matcher/fuzzy"
	"contract-search/internal/ranker"
)

// Config represents the application configuration.
type Config struct {
	// Default settings
	Defaults struct {
		Format  string `yaml:"format"`
		Types   string `yaml:"types"`
		Verbose bool   `yaml:"verbose"`
		Debug   bool   `yaml:"debug"`
		NoColor bool   `yaml:"no_color"`
	} `yaml:"defaults"`

	Fuzzy struct {
		MinScore   float64 `yaml:"min_score"`
		MaxResults int     `yaml:"max_results"`
		Algorithm  string  `yaml:"algorithm"`
	} `yaml:"fuzzy"`

	Semantic struct {
		MinScore   float64 `yaml:"min_score"`
		MaxResults int     `yaml:"max_results"`
	} `yaml:"semantic"`

	Ranker struct {
		MinScore   float64        `yaml:"min_score"`
		MaxResults int            `yaml:"max_results"`
		Weights    ranker.Weights `yaml:"weights"`
	} `yaml:"ranker"`

	Highlight struct {
		MergeAdjacent     bool   `yaml:"merge_adjacent"`
		AdjacentThreshold int    `yaml:"adjacent_threshold"`
		PrioritizeBy      string `yaml:"prioritize_by"`
	} `yaml:"highlight"`

	Engine struct {
		Workers         int `yaml:"workers"`
		CacheSize       int `yaml:"cache_size"`
		CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	} `yaml:"engine"`

	// Profiles for different search scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile overrides a subset of settings for a named scenario.
type Profile struct {
	Description      string   `yaml:"description"`
	Format           string   `yaml:"format"`
	Types            string   `yaml:"types"`
	FuzzyMinScore    *float64 `yaml:"fuzzy_min_score,omitempty"`
	SemanticMinScore *float64 `yaml:"semantic_min_score,omitempty"`
	RankerMinScore   *float64 `yaml:"ranker_min_score,omitempty"`
	MaxResults       *int     `yaml:"max_results,omitempty"`
	Workers          *int     `yaml:"workers,omitempty"`
}

// LoadConfig loads configuration from the specified file path. An empty
// path returns the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Store defaults before unmarshaling; YAML sets absent bool fields to
	// false, which would silently flip merge_adjacent off.
	defaultMergeAdjacent := config.Highlight.MergeAdjacent

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if !containsField(data, "highlight", "merge_adjacent") {
		config.Highlight.MergeAdjacent = defaultMergeAdjacent
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func defaultConfig() *Config {
	config := &Config{Profiles: make(map[string]Profile)}

	config.Defaults.Format = "text"
	config.Defaults.Types = "all"

	fz := fuzzy.DefaultOptions()
	config.Fuzzy.MinScore = fz.MinScore
	config.Fuzzy.MaxResults = fz.MaxResults
	config.Fuzzy.Algorithm = string(fz.Algorithm)

	config.Semantic.MinScore = 0.3
	config.Semantic.MaxResults = 30

	rk := ranker.DefaultOptions()
	config.Ranker.MinScore = rk.MinScore
	config.Ranker.MaxResults = rk.MaxResults
	config.Ranker.Weights = rk.Weights

	hl := highlight.DefaultOptions()
	config.Highlight.MergeAdjacent = hl.MergeAdjacent
	config.Highlight.AdjacentThreshold = hl.AdjacentThreshold
	config.Highlight.PrioritizeBy = string(hl.PrioritizeBy)

	en := engine.DefaultOptions()
	config.Engine.Workers = en.Workers
	config.Engine.CacheSize = en.CacheSize
	config.Engine.CacheTTLSeconds = int(en.CacheTTL / time.Second)

	fast := 0.5
	fastResults := 10
	fastWorkers := 2
	config.Profiles["fast"] = Profile{
		Description:    "Higher thresholds and fewer results for interactive use",
		FuzzyMinScore:  &fast,
		RankerMinScore: &fast,
		MaxResults:     &fastResults,
		Workers:        &fastWorkers,
	}
	thorough := 0.2
	thoroughFuzzy := 0.25
	thoroughResults := 100
	config.Profiles["thorough"] = Profile{
		Description:    "Lower thresholds and more results for batch review",
		FuzzyMinScore:  &thoroughFuzzy,
		RankerMinScore: &thorough,
		MaxResults:     &thoroughResults,
	}
	return config
}

// ApplyProfile overlays the named profile onto the configuration.
func (c *Config) ApplyProfile(name string) error {
	p, ok := c.Profiles[name]
	if !ok {
		return fmt.Errorf("unknown profile: %s", name)
	}
	if p.Format != "" {
		c.Defaults.Format = p.Format
	}
	if p.Types != "" {
		c.Defaults.Types = p.Types
	}
	if p.FuzzyMinScore != nil {
		c.Fuzzy.MinScore = *p.FuzzyMinScore
	}
	if p.SemanticMinScore != nil {
		c.Semantic.MinScore = *p.SemanticMinScore
	}
	if p.RankerMinScore != nil {
		c.Ranker.MinScore = *p.RankerMinScore
	}
	if p.MaxResults != nil {
		c.Ranker.MaxResults = *p.MaxResults
	}
	if p.Workers != nil {
		c.Engine.Workers = *p.Workers
	}
	return nil
}

// EngineOptions converts the configuration into engine options.
func (c *Config) EngineOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.Fuzzy.MinScore = c.Fuzzy.MinScore
	opts.Fuzzy.MaxResults = c.Fuzzy.MaxResults
	opts.Fuzzy.Algorithm = fuzzy.Algorithm(c.Fuzzy.Algorithm)
	opts.Semantic.MinScore = c.Semantic.MinScore
	opts.Semantic.MaxResults = c.Semantic.MaxResults
	opts.Ranker.MinScore = c.Ranker.MinScore
	opts.Ranker.MaxResults = c.Ranker.MaxResults
	opts.Ranker.Weights = c.Ranker.Weights
	opts.Highlight.MergeAdjacent = c.Highlight.MergeAdjacent
	opts.Highlight.AdjacentThreshold = c.Highlight.AdjacentThreshold
	opts.Highlight.PrioritizeBy = highlight.Priority(c.Highlight.PrioritizeBy)
	opts.Workers = c.Engine.Workers
	opts.CacheSize = c.Engine.CacheSize
	opts.CacheTTL = time.Duration(c.Engine.CacheTTLSeconds) * time.Second
	return opts
}

// FindConfigFile looks for a configuration file in standard locations.
func FindConfigFile() string {
	candidates := []string{
		"config.yaml",
		"contract-search.yaml",
		"contract-search.yml",
		".contract-search.yaml",
		".contract-search.yml",
	}
	for _, c := range candidates {
		if fileExists(c) {
			return c
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		for _, c := range []string{
			filepath.Join(home, ".contract-search", "config.yaml"),
			filepath.Join(home, ".contract-search", "config.yml"),
		} {
			if fileExists(c) {
				return c
			}
		}
	}
	return ""
}

// ValidateConfig checks ranges and enumerations, failing on the first
// problem so a broken file never half-applies.
func ValidateConfig(config *Config) error {
	checkScore := func(name string, v float64) error {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", name, v)
		}
		return nil
	}
	if err := checkScore("fuzzy.min_score", config.Fuzzy.MinScore); err != nil {
		return err
	}
	if err := checkScore("semantic.min_score", config.Semantic.MinScore); err != nil {
		return err
	}
	if err := checkScore("ranker.min_score", config.Ranker.MinScore); err != nil {
		return err
	}

	switch fuzzy.Algorithm(config.Fuzzy.Algorithm) {
	case fuzzy.AlgorithmLevenshtein, fuzzy.AlgorithmJaroWinkler, fuzzy.AlgorithmHybrid:
	default:
		return fmt.Errorf("unknown fuzzy algorithm: %s", config.Fuzzy.Algorithm)
	}

	switch highlight.Priority(config.Highlight.PrioritizeBy) {
	case highlight.PriorityScore, highlight.PriorityLength, highlight.PriorityPosition:
	default:
		return fmt.Errorf("unknown highlight priority: %s", config.Highlight.PrioritizeBy)
	}

	switch config.Defaults.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unknown output format: %s", config.Defaults.Format)
	}

	if config.Engine.Workers < 0 {
		return fmt.Errorf("engine.workers must not be negative, got %d", config.Engine.Workers)
	}
	if config.Highlight.AdjacentThreshold < 0 {
		return fmt.Errorf("highlight.adjacent_threshold must not be negative, got %d", config.Highlight.AdjacentThreshold)
	}
	return nil
}

// containsField reports whether the YAML document sets the given nested key
// path explicitly.
func containsField(data []byte, path ...string) bool {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false
	}
	var cur interface{} = doc
	for _, key := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return false
		}
		cur, ok = m[key]
		if !ok {
			return false
		}
	}
	return true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
