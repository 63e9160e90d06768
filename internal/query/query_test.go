// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"strings"
	"testing"

	"github.com/pdiddy/painscout/pkg/types"
)

func TestExtractPainTerms(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      string
	}{
		{
			name:      "verbs and nouns picked up",
			statement: "manual reconciliation wastes hours and causes billing errors",
			want:      "wastes errors",
		},
		{
			name:      "inflected forms match by substring",
			statement: "exports keep failing and crashing for everyone",
			want:      "failing crashing",
		},
		{
			name:      "no matches falls back to truncated statement",
			statement: "scheduling dog walking appointments",
			want:      "scheduling dog walking appoint",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPainTerms(tt.statement); got != tt.want {
				t.Errorf("ExtractPainTerms(%q) = %q, want %q", tt.statement, got, tt.want)
			}
		})
	}
}

func TestDorksCategoryOrder(t *testing.T) {
	communities := types.NewCommunityMap()
	communities.Add(types.KindReddit, "bookkeeping")
	communities.Add(types.KindReddit, "accounting")

	dorks := Dorks("manual invoice reconciliation takes hours", "freelance bookkeepers", "invoice tools", communities)

	// Two communities, four dorks each, then three general Reddit dorks.
	if len(dorks) < 8+3 {
		t.Fatalf("len(dorks) = %d, want at least 11", len(dorks))
	}
	if !strings.HasPrefix(dorks[0].Text, "site:reddit.com/r/bookkeeping") {
		t.Errorf("dorks[0] = %q, want per-community dork first", dorks[0].Text)
	}
	if !strings.Contains(dorks[8].Text, "anyone else") {
		t.Errorf("dorks[8] = %q, want general Reddit dork after per-community block", dorks[8].Text)
	}
	for _, d := range dorks {
		if d.SourceTag != d.Text {
			t.Errorf("dork source tag %q differs from text", d.SourceTag)
		}
	}
}

func TestDorksCapsCommunities(t *testing.T) {
	communities := types.NewCommunityMap()
	for _, sub := range []string{"one1", "two2", "three", "four4", "five5", "six66", "seven"} {
		communities.Add(types.KindReddit, sub)
	}

	dorks := Dorks("problem", "market", "focus", communities)

	for _, d := range dorks {
		if strings.Contains(d.Text, "site:reddit.com/r/six66") || strings.Contains(d.Text, "site:reddit.com/r/seven") {
			t.Errorf("dork targets community beyond the top five: %q", d.Text)
		}
	}
}

func TestDorksTechnicalGate(t *testing.T) {
	communities := types.NewCommunityMap()

	technical := Dorks("builds are slow", "software developers", "CI tools", communities)
	general := Dorks("builds are slow", "bakery owners", "CI tools", communities)

	hasStackOverflow := func(qs []Query) bool {
		for _, q := range qs {
			if strings.Contains(q.Text, "stackoverflow.com") {
				return true
			}
		}
		return false
	}
	if !hasStackOverflow(technical) {
		t.Error("technical market should produce Stack Overflow dorks")
	}
	if hasStackOverflow(general) {
		t.Error("non-technical market should not produce Stack Overflow dorks")
	}
}

func TestCommunityQueries(t *testing.T) {
	communities := types.NewCommunityMap()
	communities.Add(types.KindReddit, "bookkeeping")
	communities.Add(types.KindReddit, "accounting")
	communities.Add(types.KindReddit, "smallbusiness")

	queries := CommunityQueries("manual invoice reconciliation takes hours every week", communities, 2)

	if len(queries) != 2 {
		t.Fatalf("len(queries) = %d, want 2", len(queries))
	}
	if queries[0].SourceTag != "reddit.com/r/bookkeeping" {
		t.Errorf("SourceTag = %q", queries[0].SourceTag)
	}
	if !strings.Contains(queries[0].Text, "r/bookkeeping") {
		t.Errorf("query text should target the subreddit: %q", queries[0].Text)
	}
	if !strings.Contains(queries[0].Text, "not summaries") {
		t.Errorf("query text should request actual posts: %q", queries[0].Text)
	}
}
