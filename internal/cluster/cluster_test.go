// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"sort"
	"testing"

	"github.com/pdiddy/painscout/internal/taxonomy"
	"github.com/pdiddy/painscout/pkg/types"
)

func TestAnnotateSharedPhrase(t *testing.T) {
	evidence := []types.Evidence{
		{Content: "manually matching these invoices is a waste of time for everyone"},
		{Content: "the weekly export dance is a waste of time, nothing more"},
		{Content: "the vendor shipped a new reporting screen last quarter"},
	}

	got := Annotate(evidence, taxonomy.Default())

	if got[0].Cluster == nil || got[1].Cluster == nil || got[2].Cluster == nil {
		t.Fatal("Annotate left cluster info unset")
	}
	if got[0].Cluster.Name != got[1].Cluster.Name {
		t.Errorf("records sharing %q split into clusters %q and %q",
			"waste of time", got[0].Cluster.Name, got[1].Cluster.Name)
	}
	if got[0].Cluster.Size != 2 || got[0].Cluster.RelatedCount != 1 {
		t.Errorf("cluster size = %d related = %d, want 2 and 1", got[0].Cluster.Size, got[0].Cluster.RelatedCount)
	}
	if got[2].Cluster.Name != "uncategorized" {
		t.Errorf("phrase-free record in cluster %q, want uncategorized", got[2].Cluster.Name)
	}
	// Input untouched.
	if evidence[0].Cluster != nil {
		t.Error("Annotate mutated its input")
	}
}

func TestAnnotateKeyIsSorted(t *testing.T) {
	evidence := []types.Evidence{
		{Content: "I hate this, it is such a waste of time honestly"},
	}
	got := Annotate(evidence, taxonomy.Default())
	name := got[0].Cluster.Name
	if name != "hate + waste of time" {
		t.Errorf("cluster name = %q, want phrases joined in sorted order", name)
	}
}

func TestDedupRank(t *testing.T) {
	evidence := []types.Evidence{
		{SourceURL: "https://a.example", RelevanceScore: 0.4},
		{SourceURL: "https://b.example", RelevanceScore: 0.9},
		{SourceURL: "https://a.example", RelevanceScore: 0.7},
		{SourceURL: "https://c.example", RelevanceScore: 0.6},
	}

	got := DedupRank(evidence, 10)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 after URL dedup", len(got))
	}
	// Highest-scoring duplicate wins.
	if got[1].SourceURL != "https://a.example" || got[1].RelevanceScore != 0.7 {
		t.Errorf("got[1] = %+v, want the 0.7 a.example record", got[1])
	}
	// URL uniqueness.
	seen := map[string]bool{}
	for _, ev := range got {
		if seen[ev.SourceURL] {
			t.Errorf("duplicate URL %q in output", ev.SourceURL)
		}
		seen[ev.SourceURL] = true
	}
	// Sorting idempotence: output is already score-sorted.
	if !sort.SliceIsSorted(got, func(i, j int) bool {
		return got[i].RelevanceScore > got[j].RelevanceScore
	}) {
		t.Error("output is not sorted by relevance descending")
	}
}

func TestDedupRankCap(t *testing.T) {
	evidence := []types.Evidence{
		{SourceURL: "u1", RelevanceScore: 0.9},
		{SourceURL: "u2", RelevanceScore: 0.8},
		{SourceURL: "u3", RelevanceScore: 0.7},
	}
	if got := DedupRank(evidence, 2); len(got) != 2 {
		t.Errorf("len = %d, want cap of 2", len(got))
	}
	if got := DedupRank(evidence, 0); len(got) != 3 {
		t.Errorf("len = %d, want all records when uncapped", len(got))
	}
}
