// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search defines the external search collaborator used by the
// discovery and query-execution stages, with LLM-backed implementations.
// The pipeline tolerates empty responses, missing citations, and outright
// failure from any Searcher: all three mean "no evidence from this query".
package search

import "context"

// Result is the raw output of one collaborator query: free-form response
// text plus any source citations, index-aligned with the blocks the
// collaborator described when it provides them.
type Result struct {
	Response  string   `json:"response" yaml:"response"`
	Citations []string `json:"citations,omitempty" yaml:"citations,omitempty"`
}

// Searcher executes one natural-language search query against an external
// service. Implementations may be LLM-backed, scraper-backed, or mocks.
type Searcher interface {
	Search(ctx context.Context, query string) (Result, error)
}

// Func adapts a plain function to the Searcher interface.
type Func func(ctx context.Context, query string) (Result, error)

// Search implements Searcher.
func (f Func) Search(ctx context.Context, query string) (Result, error) {
	return f(ctx, query)
}
