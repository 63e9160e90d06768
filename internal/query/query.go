// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query synthesizes targeted search expressions (Google dorks and
// community prompts) from a problem statement and a discovered community map.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/painscout/pkg/types"
)

// Query is one synthesized search expression. SourceTag identifies the
// community or strategy that produced it and is used downstream to infer
// the platform of extracted evidence.
type Query struct {
	Text      string `json:"text" yaml:"text"`
	SourceTag string `json:"source_tag" yaml:"source_tag"`
}

// maxDorkCommunities bounds how many communities get per-community dorks.
const maxDorkCommunities = 5

var (
	painVerbs = []string{"struggle", "waste", "lose", "miss", "fail", "break", "crash"}
	painNouns = []string{"problem", "issue", "error", "delay", "confusion", "frustration"}
)

// ExtractPainTerms scans the problem statement for tokens containing a known
// pain verb or noun as a substring. Substring containment is intentional so
// inflections ("struggling", "wasted") still match. Falls back to the first
// 30 characters of the statement when nothing matches.
func ExtractPainTerms(problemStatement string) string {
	var terms []string
	for _, word := range strings.Fields(strings.ToLower(problemStatement)) {
		matched := false
		for _, verb := range painVerbs {
			if strings.Contains(word, verb) {
				matched = true
				break
			}
		}
		if !matched {
			for _, noun := range painNouns {
				if strings.Contains(word, noun) {
					matched = true
					break
				}
			}
		}
		if matched {
			terms = append(terms, word)
		}
	}
	if len(terms) == 0 {
		return clip(problemStatement, 30)
	}
	return strings.Join(terms, " ")
}

// clip truncates s to at most n bytes, like a prompt fragment cap.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Dorks generates the ordered dork list. Categories, most targeted first:
// per-community, general Reddit, forum keyword, technical (gated on
// technical-role keywords in the target market), industry report, and
// recency-biased queries. Each dork doubles as its own source tag.
func Dorks(problemStatement, targetMarket, marketFocus string, communities types.CommunityMap) []Query {
	painTerms := ExtractPainTerms(problemStatement)
	var dorks []string

	subs := communities[types.KindReddit]
	if len(subs) > maxDorkCommunities {
		subs = subs[:maxDorkCommunities]
	}
	for _, sub := range subs {
		dorks = append(dorks,
			fmt.Sprintf(`site:reddit.com/r/%s intitle:"rant" OR intitle:"frustrated" %s`, sub, targetMarket),
			fmt.Sprintf(`site:reddit.com/r/%s "hate when" OR "drives me crazy" %s`, sub, painTerms),
			fmt.Sprintf(`site:reddit.com/r/%s "looking for solution" OR "need help with" %s`, sub, clip(problemStatement, 30)),
			fmt.Sprintf(`site:reddit.com/r/%s "waste of time" OR "inefficient" %s`, sub, painTerms),
		)
	}

	dorks = append(dorks,
		fmt.Sprintf(`site:reddit.com "%s" "anyone else" OR "am I the only one"`, clip(problemStatement, 40)),
		fmt.Sprintf(`site:reddit.com intext:"%s" intext:"problem" OR intext:"issue" %s`, targetMarket, marketFocus),
		fmt.Sprintf(`site:reddit.com "PSA:" OR "Warning:" %s %s`, targetMarket, painTerms),
	)

	for _, domain := range []string{"forum", "community", "discuss", "talk"} {
		dorks = append(dorks,
			fmt.Sprintf(`inurl:%s "%s" intitle:"problem" OR intitle:"issue" %s`, domain, targetMarket, clip(problemStatement, 30)),
		)
	}

	if isTechnicalMarket(targetMarket) {
		dorks = append(dorks,
			fmt.Sprintf(`site:stackoverflow.com "%s" is:question score:5`, clip(problemStatement, 40)),
			fmt.Sprintf(`site:dev.to "%s" "frustrating" OR "annoying" %s`, targetMarket, marketFocus),
			fmt.Sprintf(`site:news.ycombinator.com "%s" complaints`, clip(problemStatement, 30)),
		)
	}

	dorks = append(dorks,
		fmt.Sprintf(`"%s" "pain points" OR "challenges" filetype:pdf`, targetMarket),
		fmt.Sprintf(`intitle:"survey results" "%s" problems %s`, targetMarket, painTerms),
		fmt.Sprintf(`"case study" "%s" "struggled with" OR "challenges faced"`, targetMarket),
		fmt.Sprintf(`"%s" "%s" after:%d`, clip(problemStatement, 30), targetMarket, time.Now().Year()),
		fmt.Sprintf(`"still no solution for" "%s" %s`, painTerms, targetMarket),
	)

	queries := make([]Query, len(dorks))
	for i, d := range dorks {
		queries[i] = Query{Text: d, SourceTag: d}
	}
	return queries
}

func isTechnicalMarket(targetMarket string) bool {
	lower := strings.ToLower(targetMarket)
	for _, kw := range []string{"developer", "engineer", "tech", "software"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DorkPrompt wraps a dork into the collaborator prompt that asks for actual
// user posts rather than a summary of the results.
func DorkPrompt(dork string) string {
	return "Search using this exact Google query and return the actual user posts/complaints found: " + dork
}

// CommunityQueries builds direct per-subreddit search prompts for up to max
// communities, tagged with the subreddit URL so extraction can attribute the
// platform.
func CommunityQueries(problemStatement string, communities types.CommunityMap, max int) []Query {
	subs := communities[types.KindReddit]
	if len(subs) > max {
		subs = subs[:max]
	}
	queries := make([]Query, 0, len(subs))
	for _, sub := range subs {
		text := fmt.Sprintf(`Find the most recent posts in r/%s where users complain about %s.
Include:
- The exact post title and content
- Username, upvotes, awards, comment count
- Most upvoted comments that agree or add to the complaint
- Date posted

Return actual posts, not summaries.`, sub, clip(problemStatement, 60))
		queries = append(queries, Query{Text: text, SourceTag: "reddit.com/r/" + sub})
	}
	return queries
}
