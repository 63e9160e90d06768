// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/painscout/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(types.StoreConfig{ResearchDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleEvidence() []types.Evidence {
	return []types.Evidence{
		{
			Platform:        types.PlatformReddit,
			SourceURL:       "https://www.reddit.com/r/Bookkeeping/comments/abc",
			Title:           "Invoice matching is killing me",
			Content:         "I hate spending hours matching invoices manually, it's such a waste of time.",
			Author:          "tiredbookkeeper",
			Engagement:      map[string]int{"upvotes": 40, "comments": 12},
			EngagementScore: 44,
			DatePosted:      "2 days ago",
			RelevanceScore:  0.76,
			Cluster:         &types.ClusterInfo{Name: "hate + waste of time", Size: 2, RelatedCount: 1},
		},
		{
			Platform:       types.PlatformHackerNews,
			SourceURL:      "https://news.ycombinator.com/item?id=1",
			Content:        "We keep losing receipts because the scanner crashes constantly on mobile.",
			RelevanceScore: 0.41,
		},
	}
}

func TestSaveRunAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	runID, err := s.SaveRun(ctx, Run{
		ProblemStatement: "manual invoice reconciliation takes hours",
		TargetMarket:     "freelance bookkeepers",
	}, sampleEvidence())
	require.NoError(t, err)
	assert.Positive(t, runID)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "freelance bookkeepers", runs[0].TargetMarket)
	assert.Equal(t, 2, runs[0].EvidenceCount)
	assert.False(t, runs[0].CreatedAt.IsZero())
}

func TestRetrieveFullText(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SaveRun(ctx, Run{ProblemStatement: "p", TargetMarket: "m"}, sampleEvidence())
	require.NoError(t, err)

	results, err := s.Retrieve(ctx, QueryOptions{Query: "invoices"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, types.PlatformReddit, results[0].Platform)
	assert.Equal(t, 40, results[0].Engagement["upvotes"])
	require.NotNil(t, results[0].Cluster)
	assert.Equal(t, "hate + waste of time", results[0].Cluster.Name)
}

func TestRetrieveFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	runID, err := s.SaveRun(ctx, Run{ProblemStatement: "p", TargetMarket: "m"}, sampleEvidence())
	require.NoError(t, err)

	byPlatform, err := s.Retrieve(ctx, QueryOptions{Platform: types.PlatformHackerNews})
	require.NoError(t, err)
	require.Len(t, byPlatform, 1)
	assert.Equal(t, "https://news.ycombinator.com/item?id=1", byPlatform[0].SourceURL)

	byScore, err := s.Retrieve(ctx, QueryOptions{MinScore: 0.5})
	require.NoError(t, err)
	require.Len(t, byScore, 1)
	assert.Equal(t, types.PlatformReddit, byScore[0].Platform)

	byRun, err := s.Retrieve(ctx, QueryOptions{RunID: runID})
	require.NoError(t, err)
	assert.Len(t, byRun, 2)
	// Sorted by relevance descending for non-FTS queries.
	assert.Equal(t, 0.76, byRun[0].RelevanceScore)

	other, err := s.Retrieve(ctx, QueryOptions{RunID: runID + 1})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestExportYAML(t *testing.T) {
	dir := t.TempDir()
	s, err := New(types.StoreConfig{ResearchDir: dir})
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	_, err = s.SaveRun(ctx, Run{ProblemStatement: "p", TargetMarket: "m"}, sampleEvidence())
	require.NoError(t, err)

	require.NoError(t, s.ExportYAML(ctx, QueryOptions{}))

	data, err := os.ReadFile(filepath.Join(dir, "index", "export.yaml"))
	require.NoError(t, err)

	var exported []QueryResult
	require.NoError(t, yaml.Unmarshal(data, &exported))
	assert.Len(t, exported, 2)
}
