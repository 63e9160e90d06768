// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by searchers that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "painscout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the external search collaborator.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the searcher implementation: gemini or sonar.
	Provider string `json:"provider" yaml:"provider"`

	// Model is the model identifier passed to the provider
	// (e.g. "gemini-2.5-flash" or "sonar").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ResearchConfig holds the budgets and caps for one pipeline run.
type ResearchConfig struct {
	// MaxResults is the maximum number of ranked evidence records returned
	// (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MaxDorkQueries caps how many synthesized search queries are issued,
	// in priority order (default 10). Queries past the cap are never sent.
	MaxDorkQueries int `json:"max_dork_queries" yaml:"max_dork_queries"`

	// MaxCommunityQueries caps how many targeted community searches are
	// issued per run (default 5).
	MaxCommunityQueries int `json:"max_community_queries" yaml:"max_community_queries"`
}

// Defaults for ResearchConfig budgets.
const (
	DefaultMaxResults          = 10
	DefaultMaxDorkQueries      = 10
	DefaultMaxCommunityQueries = 5
)

// WithDefaults returns a copy with zero-valued budgets replaced by defaults.
func (c ResearchConfig) WithDefaults() ResearchConfig {
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.MaxDorkQueries <= 0 {
		c.MaxDorkQueries = DefaultMaxDorkQueries
	}
	if c.MaxCommunityQueries <= 0 {
		c.MaxCommunityQueries = DefaultMaxCommunityQueries
	}
	return c
}

// StoreConfig holds settings for the evidence store.
type StoreConfig struct {
	// ResearchDir is the base directory for stored runs (contains index/).
	ResearchDir string `json:"research_dir" yaml:"research_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Search   SearchConfig   `json:"search" yaml:"search"`
	Research ResearchConfig `json:"research" yaml:"research"`
	Store    StoreConfig    `json:"store" yaml:"store"`
}
