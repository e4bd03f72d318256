// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"contract-search/internal/config"
	"contract-search/internal/engine"
	"contract-search/internal/loader"
	"contract-search/internal/observability"
	"contract-search/internal/search"
	"contract-search/internal/version"

	"contract-search/internal/formatters"
	_ "contract-search/internal/formatters/csv"
	_ "contract-search/internal/formatters/json"
	_ "contract-search/internal/formatters/text"
)

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

// parseTypesToRun parses the -types flag: "all" or a comma-separated list of
// value type names, case-insensitive. A nil map means no filtering.
func parseTypesToRun(spec string) (map[search.ValueType]bool, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, "all") {
		return nil, nil
	}

	known := make(map[string]search.ValueType, len(search.AllTypes))
	for _, t := range search.AllTypes {
		known[string(t)] = t
	}
	known[string(search.TypeText)] = search.TypeText

	selected := make(map[search.ValueType]bool)
	for _, part := range strings.Split(spec, ",") {
		name := strings.ToUpper(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		t, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("unknown value type %q (available: %s)", part, availableTypes())
		}
		selected[t] = true
	}
	if len(selected) == 0 {
		return nil, nil
	}
	return selected, nil
}

func availableTypes() string {
	names := make([]string, 0, len(search.AllTypes)+1)
	for _, t := range search.AllTypes {
		names = append(names, string(t))
	}
	names = append(names, string(search.TypeText))
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// filterByTypes drops candidates and highlights whose type is not selected.
func filterByTypes(result *search.Result, selected map[search.ValueType]bool) {
	if selected == nil {
		return
	}
	candidates := result.Candidates[:0]
	for _, c := range result.Candidates {
		if selected[c.BestMatch().DetectedType] {
			candidates = append(candidates, c)
		}
	}
	result.Candidates = candidates

	highlights := result.Highlights[:0]
	for _, h := range result.Highlights {
		if selected[h.Type] {
			highlights = append(highlights, h)
		}
	}
	result.Highlights = highlights
	result.NoMatch = len(result.Candidates) == 0
}

func observerLevel(verbose, debug bool) observability.Level {
	switch {
	case debug:
		return observability.LevelDebug
	case verbose:
		return observability.LevelMetrics
	default:
		return observability.LevelWarnings
	}
}

func listProfiles(cfg *config.Config) {
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("Available profiles:")
	for _, name := range names {
		p := cfg.Profiles[name]
		if p.Description != "" {
			fmt.Printf("  %-12s %s\n", name, p.Description)
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
}

func run() int {
	inputFile := flag.String("file", "", "Path to the contract document (plain text or PDF)")
	query := flag.String("query", "", "Search query, e.g. 'kupní cena' or 'rodné číslo prodávajícího'")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	showProfiles := flag.Bool("list-profiles", false, "List available profiles and exit")
	showFormats := flag.Bool("list-formats", false, "List available output formats and exit")
	outputFormat := flag.String("format", "", "Output format: text, json, csv (default: text)")
	typesToRun := flag.String("types", "", "Value types to report: 'all' or combinations like 'AMOUNT,DATE'")
	minScore := flag.Float64("min-score", -1, "Minimum relevance score for reported candidates (0..1)")
	maxResults := flag.Int("max-results", 0, "Maximum number of reported candidates")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	verbose := flag.Bool("verbose", false, "Display component scores and per-match detail")
	debug := flag.Bool("debug", false, "Enable debug logging of strategy and cache activity")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showHighlights := flag.Bool("highlights", false, "Include merged highlight ranges in the output")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return 0
	}

	cfg := loadConfiguration(*configFile)

	if *showProfiles {
		listProfiles(cfg)
		return 0
	}
	if *showFormats {
		fmt.Printf("Available formats: %s\n", strings.Join(formatters.List(), ", "))
		return 0
	}

	if *profileName != "" {
		if err := cfg.ApplyProfile(*profileName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
	}

	// Flags override both config file and profile.
	if *outputFormat != "" {
		cfg.Defaults.Format = *outputFormat
	}
	if *typesToRun != "" {
		cfg.Defaults.Types = *typesToRun
	}
	if *minScore >= 0 {
		cfg.Ranker.MinScore = *minScore
	}
	if *maxResults > 0 {
		cfg.Ranker.MaxResults = *maxResults
	}
	if *verbose {
		cfg.Defaults.Verbose = true
	}
	if *debug {
		cfg.Defaults.Debug = true
	}
	if *noColor {
		cfg.Defaults.NoColor = true
	}

	if *inputFile == "" || *query == "" {
		fmt.Fprintln(os.Stderr, "Error: -file and -query are required")
		flag.Usage()
		return 2
	}

	selectedTypes, err := parseTypesToRun(cfg.Defaults.Types)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	document, err := loader.Load(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	observer := observability.NewObserver(observerLevel(cfg.Defaults.Verbose, cfg.Defaults.Debug), os.Stderr)
	eng, err := engine.New(cfg.EngineOptions(), observer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	defer eng.Close()

	eng.SetDocument(document)
	result, err := eng.Search(context.Background(), *query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	filterByTypes(result, selectedTypes)

	output, err := formatters.Export(cfg.Defaults.Format, result, formatters.FormatterOptions{
		Verbose:       cfg.Defaults.Verbose,
		NoColor:       cfg.Defaults.NoColor,
		ShowHighlight: *showHighlights,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			return 2
		}
	} else {
		fmt.Print(output)
	}

	if result.NoMatch {
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
