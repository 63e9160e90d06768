// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cluster groups similar evidence by shared pain-phrase signature and
// produces the final deduplicated, ranked list.
package cluster

import (
	"sort"
	"strings"

	"github.com/pdiddy/painscout/internal/taxonomy"
	"github.com/pdiddy/painscout/pkg/types"
)

// maxClusterPhrases caps how many taxonomy phrases form a cluster key.
const maxClusterPhrases = 3

// uncategorized is the bucket for evidence matching no taxonomy phrase.
const uncategorized = "uncategorized"

// Annotate assigns cluster info to each record. The cluster key is the
// sorted list of up to three taxonomy phrases literally occurring in the
// record's content; records sharing a key form one cluster. Annotation never
// removes or merges records; the returned slice preserves input order.
func Annotate(evidence []types.Evidence, tax *taxonomy.Taxonomy) []types.Evidence {
	keys := make([]string, len(evidence))
	sizes := make(map[string]int)
	for i, ev := range evidence {
		phrases := tax.FoundPhrases(ev.Content, maxClusterPhrases)
		if len(phrases) == 0 {
			keys[i] = uncategorized
		} else {
			sort.Strings(phrases)
			keys[i] = strings.Join(phrases, " + ")
		}
		sizes[keys[i]]++
	}

	out := make([]types.Evidence, len(evidence))
	for i, ev := range evidence {
		size := sizes[keys[i]]
		ev.Cluster = &types.ClusterInfo{
			Name:         keys[i],
			Size:         size,
			RelatedCount: size - 1,
		}
		out[i] = ev
	}
	return out
}

// DedupRank sorts evidence by relevance score descending, keeps only the
// first record seen for each source URL, and truncates to max results. A
// non-positive max means no cap. The result is URL-unique and score-sorted.
func DedupRank(evidence []types.Evidence, max int) []types.Evidence {
	ranked := make([]types.Evidence, len(evidence))
	copy(ranked, evidence)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	seen := make(map[string]bool)
	out := make([]types.Evidence, 0, len(ranked))
	for _, ev := range ranked {
		if seen[ev.SourceURL] {
			continue
		}
		seen[ev.SourceURL] = true
		out = append(out, ev)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}
