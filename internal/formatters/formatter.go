// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package formatters renders search results for the terminal and for
// machine consumption. Concrete formatters live in subpackages and register
// themselves with the default registry at init time.
package formatters

import (
	"fmt"
	"sort"
	"strings"

	"contract-search/internal/search"
)

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Verbose       bool    // Whether to display component scores and per-match detail
	NoColor       bool    // Whether to disable colored output
	ShowHighlight bool    // Whether to include the merged highlight ranges
	MinConfidence float64 // Hide candidates below this confidence
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders the result according to the formatter's output format
	Format(result *search.Result, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]Formatter)}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names, sorted
func (r *Registry) List() []string {
	var names []string
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders result in the named format using the default registry
func Export(format string, result *search.Result, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s",
			format, strings.Join(List(), ", "))
	}
	return formatter.Format(result, options)
}

// FilterCandidates drops candidates below the configured confidence floor.
func FilterCandidates(candidates []search.Candidate, options FormatterOptions) []search.Candidate {
	if options.MinConfidence <= 0 {
		return candidates
	}
	var filtered []search.Candidate
	for _, c := range candidates {
		if c.Confidence >= options.MinConfidence {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
