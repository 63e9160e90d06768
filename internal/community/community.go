// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package community discovers candidate discussion communities for a target
// market by querying the search collaborator and parsing its free-text
// answers, merging in a static fallback table so the result is usable even
// when the collaborator fails.
package community

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/pdiddy/painscout/internal/search"
	"github.com/pdiddy/painscout/pkg/types"
)

// Discover returns a community map for the given market description. It
// issues two collaborator queries concurrently (one Reddit-focused, one for
// all other platforms); a failure of either is logged to w and does not fail
// the other. The static fallback communities are always merged in last.
func Discover(ctx context.Context, searcher search.Searcher, targetMarket, marketFocus, problemArea string, w io.Writer) types.CommunityMap {
	communities := types.NewCommunityMap()

	queries := []struct {
		name  string
		query string
		parse func(types.CommunityMap, string)
	}{
		{
			name:  "reddit",
			query: redditDiscoveryQuery(targetMarket, marketFocus, problemArea),
			parse: func(m types.CommunityMap, response string) {
				for _, sub := range extractSubredditNames(response) {
					m.Add(types.KindReddit, sub)
				}
			},
		},
		{
			name:  "cross-platform",
			query: otherCommunitiesQuery(targetMarket, marketFocus),
			parse: func(m types.CommunityMap, response string) {
				m.Merge(extractOtherCommunities(response))
			},
		},
	}

	type discovery struct {
		parsed types.CommunityMap
		err    error
		name   string
	}

	ch := make(chan discovery, len(queries))
	var wg sync.WaitGroup
	for _, q := range queries {
		wg.Add(1)
		go func(name, query string, parse func(types.CommunityMap, string)) {
			defer wg.Done()
			result, err := searcher.Search(ctx, query)
			if err != nil {
				ch <- discovery{err: err, name: name}
				return
			}
			m := types.NewCommunityMap()
			parse(m, result.Response)
			ch <- discovery{parsed: m, name: name}
		}(q.name, q.query, q.parse)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	for d := range ch {
		if d.err != nil {
			fmt.Fprintf(w, "warning: %s community discovery failed: %v\n", d.name, d.err)
			continue
		}
		communities.Merge(d.parsed)
	}

	communities.Merge(Fallback(targetMarket, marketFocus))
	return communities
}

func redditDiscoveryQuery(targetMarket, marketFocus, problemArea string) string {
	focus := problemArea
	if focus == "" {
		focus = "professional challenges"
	}
	return fmt.Sprintf(`Find the most active Reddit subreddits where %s discuss pain points and problems related to %s.

Include subreddits that:
1. Have daily or weekly complaint threads
2. Allow rant and vent posts
3. Focus on %s
4. Have active daily posts

Also find niche subreddits specific to %s subgroups.

Format: list subreddit names without the r/ prefix`, targetMarket, marketFocus, focus, targetMarket)
}

func otherCommunitiesQuery(targetMarket, marketFocus string) string {
	return fmt.Sprintf(`Find active online communities beyond Reddit where %s discuss problems with %s.

Include:
1. Discord servers (with invite links if public)
2. Slack communities
3. Specialized forums (include URLs)
4. Facebook groups
5. LinkedIn groups

Focus on communities known for problem-solving discussions, tool
recommendations, workflow complaints, and feature requests.

Provide community names and how to find them.`, targetMarket, marketFocus)
}

// maxNameLine caps how long a line can be and still be considered a
// community name rather than prose.
const maxNameLine = 50

// subredditPatterns are tried in order against each cleaned line.
var subredditPatterns = []*regexp.Regexp{
	regexp.MustCompile(`r/(\w+)`),
	regexp.MustCompile(`^(\w+)$`),
	regexp.MustCompile(`(?:^|\s)(\w+)(?:\s|$)`),
}

// extractSubredditNames scans a free-text answer line by line for subreddit
// names. Lines longer than maxNameLine are prose and skipped; candidate
// names must be alphanumeric-plus-underscore and longer than two characters.
func extractSubredditNames(response string) []string {
	var subs []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > maxNameLine {
			continue
		}
		line = stripListPrefix(line)

		for _, re := range subredditPatterns {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if name := m[1]; validCommunityName(name) {
				subs = append(subs, name)
			}
			break
		}
	}
	return subs
}

// validCommunityName accepts names of letters, digits, and underscores
// longer than two characters.
func validCommunityName(name string) bool {
	if len(name) <= 2 || len(name) > maxNameLine {
		return false
	}
	for _, r := range name {
		if r != '_' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

// platformTriggers maps a community kind to the keywords that mark a line as
// opening that platform's section of the answer.
var platformTriggers = []struct {
	kind     types.CommunityKind
	keywords []string
}{
	{types.KindDiscord, []string{"discord", "server", "invite"}},
	{types.KindSlack, []string{"slack", "workspace"}},
	{types.KindForum, []string{"forum", "community", "board"}},
	{types.KindFacebookGroup, []string{"facebook", "fb", "group"}},
	{types.KindLinkedInGroup, []string{"linkedin", "professional"}},
}

var (
	listPrefixRe    = regexp.MustCompile(`^[-*•]\s*|^\d+\.\s*`)
	parentheticalRe = regexp.MustCompile(`\s*\(.*?\)\s*$`)
	urlRe           = regexp.MustCompile(`https?://\S+`)
)

func stripListPrefix(line string) string {
	return listPrefixRe.ReplaceAllString(line, "")
}

// extractOtherCommunities scans an answer for platform keyword triggers and
// attributes subsequent lines (URLs or short names) to the current platform
// until a new trigger is seen.
func extractOtherCommunities(response string) types.CommunityMap {
	communities := types.NewCommunityMap()
	var current types.CommunityKind

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
	triggers:
		for _, trigger := range platformTriggers {
			for _, kw := range trigger.keywords {
				if strings.Contains(lower, kw) {
					current = trigger.kind
					break triggers
				}
			}
		}

		if current == "" {
			continue
		}

		clean := stripListPrefix(line)
		clean = parentheticalRe.ReplaceAllString(clean, "")

		if url := urlRe.FindString(clean); url != "" {
			communities.Add(current, url)
		} else if len(clean) > 3 && len(clean) < 100 {
			communities.Add(current, clean)
		}
	}
	return communities
}

// fallbackTable supplies baseline communities keyed by coarse demographic
// keywords found in the target market description.
var fallbackTable = []struct {
	keywords    []string
	communities map[types.CommunityKind][]string
}{
	{
		keywords: []string{"developer", "engineer", "programmer"},
		communities: map[types.CommunityKind][]string{
			types.KindReddit:  {"programming", "webdev", "cscareerquestions"},
			types.KindDiscord: {"https://discord.gg/programming"},
			types.KindForum:   {"news.ycombinator.com", "dev.to"},
		},
	},
	{
		keywords: []string{"business", "entrepreneur", "founder"},
		communities: map[types.CommunityKind][]string{
			types.KindReddit: {"Entrepreneur", "smallbusiness", "startups"},
		},
	},
	{
		keywords: []string{"designer"},
		communities: map[types.CommunityKind][]string{
			types.KindReddit: {"web_design", "graphic_design", "userexperience"},
		},
	},
	{
		keywords: []string{"bookkeeper", "accountant", "accounting", "finance"},
		communities: map[types.CommunityKind][]string{
			types.KindReddit: {"Bookkeeping", "Accounting", "smallbusiness"},
			types.KindForum:  {"proformative.com"},
		},
	},
	{
		keywords: []string{"marketer", "marketing"},
		communities: map[types.CommunityKind][]string{
			types.KindReddit: {"marketing", "digital_marketing", "PPC"},
		},
	},
}

// genericFallback is used when no demographic keyword matches, so discovery
// never returns an empty map.
var genericFallback = map[types.CommunityKind][]string{
	types.KindReddit: {"smallbusiness", "Entrepreneur"},
	types.KindForum:  {"news.ycombinator.com"},
}

// Fallback returns the static baseline communities for a target market.
func Fallback(targetMarket, marketFocus string) types.CommunityMap {
	m := types.NewCommunityMap()
	haystack := strings.ToLower(targetMarket + " " + marketFocus)

	matched := false
	for _, row := range fallbackTable {
		for _, kw := range row.keywords {
			if strings.Contains(haystack, kw) {
				matched = true
				for kind, ids := range row.communities {
					for _, id := range ids {
						m.Add(kind, id)
					}
				}
				break
			}
		}
	}

	if !matched {
		for kind, ids := range genericFallback {
			for _, id := range ids {
				m.Add(kind, id)
			}
		}
	}
	return m
}
