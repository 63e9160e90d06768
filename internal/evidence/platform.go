// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/painscout/pkg/types"
)

// countPattern names one engagement metric and the pattern that captures its
// count in a free-text block.
type countPattern struct {
	field string
	re    *regexp.Regexp
}

// platformSpec bundles everything platform-specific: the author pattern, the
// engagement count patterns, and the weighting that folds the counts into a
// single engagement score. Looked up once per block.
type platformSpec struct {
	author *regexp.Regexp
	counts []countPattern
	weigh  func(counts map[string]int) float64
}

var platformRegistry = map[types.Platform]platformSpec{
	types.PlatformReddit: {
		author: regexp.MustCompile(`(?i)(?:u/|user:|username:|by\s+)(\w+)`),
		counts: []countPattern{
			{"upvotes", regexp.MustCompile(`(?i)([\d.]+[km]?)\s*(?:upvotes?|points?|karma)`)},
			{"comments", regexp.MustCompile(`(?i)([\d.]+[km]?)\s*comments?`)},
			{"awards", regexp.MustCompile(`(?i)([\d.]+[km]?)\s*awards?`)},
		},
		weigh: func(c map[string]int) float64 {
			return float64(c["upvotes"])*0.5 + float64(c["comments"])*2 + float64(c["awards"])*10
		},
	},
	types.PlatformTwitter: {
		author: regexp.MustCompile(`@(\w+)`),
		counts: []countPattern{
			{"likes", regexp.MustCompile(`(?i)([\d.]+[km]?)\s*(?:likes?|hearts?)`)},
			{"retweets", regexp.MustCompile(`(?i)([\d.]+[km]?)\s*(?:retweets?|RTs?)`)},
			{"replies", regexp.MustCompile(`(?i)([\d.]+[km]?)\s*(?:replies|comments)`)},
		},
		weigh: func(c map[string]int) float64 {
			return float64(c["likes"])*0.3 + float64(c["retweets"])*2 + float64(c["replies"])*1
		},
	},
	types.PlatformHackerNews: {
		author: regexp.MustCompile(`(?i)by\s+(\w+)`),
		counts: []countPattern{
			{"points", regexp.MustCompile(`(?i)([\d.]+[km]?)\s*points?`)},
			{"comments", regexp.MustCompile(`(?i)([\d.]+[km]?)\s*comments?`)},
		},
		weigh: func(c map[string]int) float64 {
			return float64(c["points"])*1 + float64(c["comments"])*3
		},
	},
	types.PlatformStackOverflow: {
		author: regexp.MustCompile(`(?i)asked by\s+(\w+)`),
		counts: []countPattern{
			{"score", regexp.MustCompile(`(?i)score:\s*([\d.]+[km]?)`)},
			{"views", regexp.MustCompile(`(?i)([\d.]+[km]?)\s*views?`)},
			{"answers", regexp.MustCompile(`(?i)([\d.]+[km]?)\s*answers?`)},
		},
		weigh: func(c map[string]int) float64 {
			return float64(c["score"])*2 + float64(c["answers"])*5 + float64(c["views"])*0.01
		},
	},
}

// platformKeywords maps source-tag substrings to platforms, checked in order.
var platformKeywords = []struct {
	keyword  string
	platform types.Platform
}{
	{"reddit", types.PlatformReddit},
	{"twitter", types.PlatformTwitter},
	{"x.com", types.PlatformTwitter},
	{"hackernews", types.PlatformHackerNews},
	{"ycombinator", types.PlatformHackerNews},
	{"stackoverflow", types.PlatformStackOverflow},
	{"facebook", types.PlatformFacebook},
	{"linkedin", types.PlatformLinkedIn},
	{"discord", types.PlatformDiscord},
	{"slack", types.PlatformSlack},
	{"quora", types.PlatformQuora},
}

// InferPlatform resolves a platform from a source tag by keyword containment,
// defaulting to Forum.
func InferPlatform(sourceTag string) types.Platform {
	lower := strings.ToLower(sourceTag)
	for _, pk := range platformKeywords {
		if strings.Contains(lower, pk.keyword) {
			return pk.platform
		}
	}
	return types.PlatformForum
}

// parseVoteCount parses an engagement count that may carry a k or m suffix,
// as scraped text often does ("1.2k upvotes"). Unparseable input counts as 0.
func parseVoteCount(text string) int {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if r == '.' || r == 'k' || r == 'm' || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return 0
	}

	mult := 1.0
	switch {
	case strings.Contains(clean, "k"):
		mult = 1000
		clean = strings.ReplaceAll(clean, "k", "")
	case strings.Contains(clean, "m"):
		mult = 1000000
		clean = strings.ReplaceAll(clean, "m", "")
	}

	n, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return int(n * mult)
}

// extractMetadata pulls the author and engagement counts for the platform out
// of a block. Platforms without a registry entry yield no metadata and a zero
// engagement score.
func extractMetadata(block string, platform types.Platform) (author string, counts map[string]int, score float64) {
	spec, ok := platformRegistry[platform]
	if !ok {
		return "", nil, 0
	}

	if m := spec.author.FindStringSubmatch(block); m != nil {
		author = m[1]
	}

	counts = make(map[string]int)
	for _, cp := range spec.counts {
		if m := cp.re.FindStringSubmatch(block); m != nil {
			counts[cp.field] = parseVoteCount(m[1])
		}
	}
	if len(counts) == 0 {
		counts = nil
	}
	return author, counts, spec.weigh(counts)
}
