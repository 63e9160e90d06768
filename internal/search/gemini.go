// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/pdiddy/painscout/pkg/types"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiSearcher runs queries through the Gemini API with the Google Search
// tool enabled, so responses carry grounded web content and citations.
type GeminiSearcher struct {
	client *genai.Client
	model  string
}

// NewGeminiSearcher creates a searcher authenticated with cfg.APIKey.
func NewGeminiSearcher(ctx context.Context, cfg types.SearchConfig) (*GeminiSearcher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiSearcher{client: client, model: model}, nil
}

// Search sends the query with the Google Search tool and returns the
// response text plus the grounding citations, when present.
func (g *GeminiSearcher) Search(ctx context.Context, query string) (Result, error) {
	tools := []*genai.Tool{
		{GoogleSearch: &genai.GoogleSearch{}},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(query), &genai.GenerateContentConfig{
		Tools: tools,
	})
	if err != nil {
		return Result{}, fmt.Errorf("gemini search: %w", err)
	}

	result := Result{Response: resp.Text()}
	for _, cand := range resp.Candidates {
		if cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Web != nil && chunk.Web.URI != "" {
				result.Citations = append(result.Citations, chunk.Web.URI)
			}
		}
	}
	return result, nil
}
