// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evidence turns raw free-text search responses into structured
// evidence records and filters out synthesized summaries.
package evidence

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/painscout/pkg/types"
)

const (
	// minBlockLen is the shortest block that can carry a real complaint.
	minBlockLen = 50

	// minContentLen is the floor on cleaned content length.
	minContentLen = 30

	// maxBlocks bounds how many blocks one response contributes.
	maxBlocks = 10
)

// Extract parses a raw collaborator response into candidate evidence records.
// The source tag determines the platform; citations resolve URLs for blocks
// that carry none. Candidates are unfiltered; callers apply Accept to drop
// synthesized summaries.
func Extract(response string, citations []string, sourceTag string) []types.Evidence {
	blocks := segment(response)
	if len(blocks) > maxBlocks {
		blocks = blocks[:maxBlocks]
	}

	var out []types.Evidence
	for i, block := range blocks {
		block = strings.TrimSpace(block)
		if len(block) < minBlockLen {
			continue
		}
		ev, ok := parseBlock(block, sourceTag, i, citations)
		if !ok {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// Block segmentation markers, tried in priority order. The first marker set
// that matches anywhere in the response wins; otherwise the response is split
// on blank lines and rules.
var segmentMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?:Comment|Post|Tweet|Pain Point)[ \t\d]+:?[ \t]*\n`),
	regexp.MustCompile(`(?m)^\d+\.[ \t]*`),
	regexp.MustCompile(`(?m)^•[ \t]*`),
	regexp.MustCompile(`(?m)^-[ \t]*`),
	regexp.MustCompile(`(?m)^\*[ \t]*`),
	regexp.MustCompile(`(?:Problem|Issue|Complaint):[ \t]*`),
}

var blankSplitRe = regexp.MustCompile(`\n\n+|\n---+\n|\n\*{3,}\n`)

func segment(response string) []string {
	for _, marker := range segmentMarkers {
		locs := marker.FindAllStringIndex(response, -1)
		if len(locs) == 0 {
			continue
		}
		blocks := make([]string, 0, len(locs))
		for i, loc := range locs {
			end := len(response)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			blocks = append(blocks, response[loc[1]:end])
		}
		return blocks
	}
	return blankSplitRe.Split(response, -1)
}

var (
	urlRe  = regexp.MustCompile(`https?://\S+`)
	dateRe = regexp.MustCompile(`(?i)\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2}|\d+\s+(?:hours?|days?|weeks?|months?)\s+ago`)

	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Title:\s*([^\n]+)`),
		regexp.MustCompile(`Post:\s*([^\n]+)`),
		regexp.MustCompile(`^([^.!?\n]{10,100})[.!?]`),
	}

	contentSkipPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(Title|Author|Posted|Upvotes|Comments|Score|Date|Link|URL|Source):`),
		regexp.MustCompile(`^\[.*?\]$`),
		regexp.MustCompile(`^https?://`),
		regexp.MustCompile(`(?i)^\d+\s+(upvotes?|comments?|points?)`),
	}

	whitespaceRe  = regexp.MustCompile(`\s+`)
	subredditRe   = regexp.MustCompile(`r/(\w+)`)
	urlTrailChars = ".,!?"
)

func parseBlock(block, sourceTag string, index int, citations []string) (types.Evidence, bool) {
	content := cleanContent(block)
	if len(content) < minContentLen {
		return types.Evidence{}, false
	}

	platform := InferPlatform(sourceTag)
	author, counts, engagement := extractMetadata(block, platform)

	ev := types.Evidence{
		Platform:        platform,
		SourceURL:       resolveURL(block, index, citations),
		Title:           extractTitle(block),
		Content:         content,
		Author:          author,
		Engagement:      counts,
		EngagementScore: engagement,
		DatePosted:      dateRe.FindString(block),
		SourceTag:       sourceTag,
	}
	return ev, true
}

// cleanContent strips metadata-labeled lines, bracketed placeholders, bare
// URLs, and bare engagement-count lines, then collapses whitespace.
func cleanContent(block string) string {
	var kept []string
lines:
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, re := range contentSkipPatterns {
			if re.MatchString(line) {
				continue lines
			}
		}
		kept = append(kept, line)
	}
	content := strings.Join(kept, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(content, " "))
}

func extractTitle(block string) string {
	for _, re := range titlePatterns {
		if m := re.FindStringSubmatch(block); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// resolveURL finds a source URL for a block: a literal URL in the text, the
// citation matching the block's index, or a synthesized platform search URL
// built from a short content excerpt. It never returns "".
func resolveURL(block string, index int, citations []string) string {
	if u := urlRe.FindString(block); u != "" {
		return strings.TrimRight(u, urlTrailChars)
	}
	if index < len(citations) && citations[index] != "" {
		return citations[index]
	}
	return searchFallbackURL(block)
}

func searchFallbackURL(block string) string {
	excerpt := block
	if len(excerpt) > 50 {
		excerpt = excerpt[:50]
	}
	excerpt = strings.ReplaceAll(excerpt, "\n", " ")
	excerpt = strings.ReplaceAll(excerpt, `"`, "")
	terms := url.QueryEscape(excerpt)

	lower := strings.ToLower(block)
	switch {
	case strings.Contains(lower, "reddit") || strings.Contains(lower, "r/"):
		if m := subredditRe.FindStringSubmatch(block); m != nil {
			return fmt.Sprintf("https://www.reddit.com/r/%s/search?q=%s&restrict_sr=1", m[1], terms)
		}
		return "https://www.reddit.com/search?q=" + terms
	case strings.Contains(lower, "twitter") || strings.Contains(block, "@"):
		return "https://twitter.com/search?q=" + terms
	default:
		return "https://www.google.com/search?q=" + terms
	}
}
