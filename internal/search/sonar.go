// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/painscout/internal/httputil"
	"github.com/pdiddy/painscout/pkg/types"
)

// sonarAPIBase is the Perplexity-compatible chat completions endpoint.
// Declared as a var so tests can substitute an httptest server.
var sonarAPIBase = "https://api.perplexity.ai"

const defaultSonarModel = "sonar"

// SonarSearcher queries a Perplexity-style chat completions API. The model
// answers with web-grounded free text and a citation list.
type SonarSearcher struct {
	Client *http.Client
	APIKey string
	Model  string

	userAgent string
}

// NewSonarSearcher creates a searcher from cfg.
func NewSonarSearcher(cfg types.SearchConfig) (*SonarSearcher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sonar API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultSonarModel
	}
	return &SonarSearcher{
		Client:    &http.Client{Timeout: cfg.Timeout},
		APIKey:    cfg.APIKey,
		Model:     model,
		userAgent: cfg.UserAgent,
	}, nil
}

// Search posts the query as a single user message and returns the first
// choice's content plus the response citations.
func (s *SonarSearcher) Search(ctx context.Context, query string) (Result, error) {
	body := sonarRequest{
		Model: s.Model,
		Messages: []sonarMessage{
			{Role: "user", Content: query},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Result{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sonarAPIBase+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return Result{}, fmt.Errorf("sonar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("sonar API returned HTTP %d", resp.StatusCode)
	}

	var sr sonarResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return Result{}, fmt.Errorf("parsing sonar response: %w", err)
	}

	result := Result{Citations: sr.Citations}
	if len(sr.Choices) > 0 {
		result.Response = sr.Choices[0].Message.Content
	}
	return result, nil
}

// Perplexity-compatible API JSON structures.
type sonarRequest struct {
	Model    string         `json:"model"`
	Messages []sonarMessage `json:"messages"`
}

type sonarMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type sonarResponse struct {
	Choices []struct {
		Message sonarMessage `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}
