// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"regexp"

	"github.com/pdiddy/painscout/internal/taxonomy"
	"github.com/pdiddy/painscout/pkg/types"
)

// minQualityLen is the floor on content length for a real post.
const minQualityLen = 50

// aggregatePatterns mark content as a synthesized summary of many posts
// rather than one real post. Summaries corrupt downstream scoring.
var aggregatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)users? (?:often|frequently|commonly|typically) (?:complain|mention|report)`),
	regexp.MustCompile(`(?i)common (?:complaints?|issues?|problems?)`),
	regexp.MustCompile(`(?i)based on (?:user|community) feedback`),
	regexp.MustCompile(`(?i)analysis (?:shows|reveals|indicates)`),
	regexp.MustCompile(`(?i)survey results?`),
	regexp.MustCompile(`(?i)aggregate[ds]? (?:from|data)`),
}

// personalPatterns signal first-person voice.
var personalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(I|my|me|we|our|us)\b`),
	regexp.MustCompile(`(?i)(?:I'm|we're|I've|we've)`),
	regexp.MustCompile(`(?i)personally`),
	regexp.MustCompile(`(?i)in my experience`),
}

// Accept reports whether a candidate looks like a real user post: long
// enough, not aggregate phrasing, and carrying either personal voice or a
// literal pain phrase from the taxonomy.
func Accept(ev types.Evidence, tax *taxonomy.Taxonomy) bool {
	content := ev.Content
	if len(content) < minQualityLen {
		return false
	}
	for _, re := range aggregatePatterns {
		if re.MatchString(content) {
			return false
		}
	}
	for _, re := range personalPatterns {
		if re.MatchString(content) {
			return true
		}
	}
	return len(tax.FoundPhrases(content, 1)) > 0
}
