// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the painscout pipeline.
package types

import "strings"

// Platform identifies where a piece of evidence was posted.
type Platform string

const (
	PlatformReddit        Platform = "Reddit"
	PlatformTwitter       Platform = "Twitter"
	PlatformHackerNews    Platform = "HackerNews"
	PlatformStackOverflow Platform = "StackOverflow"
	PlatformFacebook      Platform = "Facebook"
	PlatformLinkedIn      Platform = "LinkedIn"
	PlatformDiscord       Platform = "Discord"
	PlatformSlack         Platform = "Slack"
	PlatformQuora         Platform = "Quora"
	PlatformForum         Platform = "Forum"
	PlatformWeb           Platform = "Web"
	PlatformUnknown       Platform = "Unknown"
)

// ClusterInfo describes the group of similar evidence a record belongs to,
// assigned by the clustering stage.
type ClusterInfo struct {
	// Name is the joined list of taxonomy phrases forming the cluster key,
	// or "uncategorized" when no phrase matched.
	Name string `json:"name" yaml:"name"`

	// Size is the number of records sharing this cluster key.
	Size int `json:"size" yaml:"size"`

	// RelatedCount is Size minus this record itself.
	RelatedCount int `json:"related_count" yaml:"related_count"`
}

// Evidence is one discovered candidate pain-point post or comment. Evidence
// values are treated as immutable: each pipeline stage returns new, possibly
// annotated copies rather than mutating records owned by a prior stage.
type Evidence struct {
	// Platform is the inferred source platform.
	Platform Platform `json:"platform" yaml:"platform"`

	// SourceURL is the best-effort origin of the post. When no literal URL
	// is found a synthesized search URL is substituted; it is never empty
	// after extraction.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Title is the post title, when one could be identified.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Content is the cleaned body text with metadata lines stripped.
	// Always at least 30 characters after extraction.
	Content string `json:"content" yaml:"content"`

	// Author is the posting user, when identified.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Engagement holds the platform-specific counts that were found in the
	// block (upvotes, comments, likes, retweets, score, views, answers,
	// awards). Only fields meaningful to the platform are populated.
	Engagement map[string]int `json:"engagement_metrics,omitempty" yaml:"engagement_metrics,omitempty"`

	// EngagementScore is the platform-specific weighted combination of the
	// engagement counts.
	EngagementScore float64 `json:"engagement_score" yaml:"engagement_score"`

	// DatePosted is the free-form date found in the block: an absolute
	// numeric date or a relative "N days ago" phrase.
	DatePosted string `json:"date_posted,omitempty" yaml:"date_posted,omitempty"`

	// RelevanceScore is the pipeline's confidence in [0,1] that this is a
	// genuine, relevant pain signal. Set by the scoring stage.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// ScoringBreakdown records each normalized sub-score for explainability.
	ScoringBreakdown map[string]float64 `json:"scoring_breakdown,omitempty" yaml:"scoring_breakdown,omitempty"`

	// Cluster is set once clustering completes.
	Cluster *ClusterInfo `json:"cluster_info,omitempty" yaml:"cluster_info,omitempty"`

	// SourceTag identifies which query or community produced this record.
	SourceTag string `json:"source_tag,omitempty" yaml:"source_tag,omitempty"`
}

// snippetLimit caps the snippet length in the flat record.
const snippetLimit = 1000

// FlatEvidence is the flat, serializable form of an Evidence record returned
// by the pipeline's public entry point.
type FlatEvidence struct {
	Platform     Platform `json:"platform" yaml:"platform"`
	SourceURL    string   `json:"source_url" yaml:"source_url"`
	Title        string   `json:"title,omitempty" yaml:"title,omitempty"`
	Snippet      string   `json:"snippet" yaml:"snippet"`
	Author       string   `json:"author,omitempty" yaml:"author,omitempty"`
	Upvotes      int      `json:"upvotes,omitempty" yaml:"upvotes,omitempty"`
	DatePosted   string   `json:"date_posted,omitempty" yaml:"date_posted,omitempty"`
	Relevance    float64  `json:"relevance_score" yaml:"relevance_score"`
	Subreddit    string   `json:"subreddit,omitempty" yaml:"subreddit,omitempty"`
	CommentCount int      `json:"comment_count,omitempty" yaml:"comment_count,omitempty"`
}

// Flatten converts an Evidence record to its flat serializable form,
// truncating content to the snippet limit.
func (e Evidence) Flatten() FlatEvidence {
	snippet := e.Content
	if len(snippet) > snippetLimit {
		snippet = snippet[:snippetLimit]
	}
	return FlatEvidence{
		Platform:     e.Platform,
		SourceURL:    e.SourceURL,
		Title:        e.Title,
		Snippet:      snippet,
		Author:       e.Author,
		Upvotes:      e.Engagement["upvotes"],
		DatePosted:   e.DatePosted,
		Relevance:    e.RelevanceScore,
		Subreddit:    e.Subreddit(),
		CommentCount: e.Engagement["comments"],
	}
}

// Subreddit returns the subreddit extracted from the source URL or tag for
// Reddit evidence, and "" otherwise.
func (e Evidence) Subreddit() string {
	if e.Platform != PlatformReddit {
		return ""
	}
	for _, s := range []string{e.SourceURL, e.SourceTag} {
		if sub := subredditFrom(s); sub != "" {
			return sub
		}
	}
	return ""
}

func subredditFrom(s string) string {
	idx := strings.Index(s, "r/")
	if idx < 0 {
		return ""
	}
	rest := s[idx+2:]
	end := 0
	for end < len(rest) && isWordByte(rest[end]) {
		end++
	}
	return rest[:end]
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
