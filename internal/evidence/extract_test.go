// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"strings"
	"testing"

	"github.com/pdiddy/painscout/pkg/types"
)

func TestSegmentChainPriority(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
		contains string
	}{
		{
			name:     "labeled posts win over numbered lists",
			response: "Post 1:\nI hate this tool so much. 1. it crashes\n\nPost 2:\nStill broken after the update, unbelievable.",
			want:     2,
			contains: "I hate this tool",
		},
		{
			name:     "numbered list",
			response: "1. First complaint about sync delays that keeps recurring\n2. Second complaint about billing confusion every month",
			want:     2,
			contains: "First complaint",
		},
		{
			name:     "bulleted list",
			response: "- A long bullet complaint about export failures in the tool\n- Another bullet complaint about constant crashes at startup",
			want:     2,
			contains: "export failures",
		},
		{
			name:     "problem labels",
			response: "Problem: invoices never reconcile cleanly and totals drift\nIssue: the mobile app logs everyone out twice a day",
			want:     2,
			contains: "invoices never reconcile",
		},
		{
			name:     "blank line fallback",
			response: "I hate spending my whole morning re-entering data by hand.\n\nWe keep losing receipts because the scanner app crashes.",
			want:     2,
			contains: "re-entering data",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := segment(tt.response)
			if len(blocks) != tt.want {
				t.Fatalf("segment() returned %d blocks, want %d: %q", len(blocks), tt.want, blocks)
			}
			if !strings.Contains(blocks[0], tt.contains) {
				t.Errorf("blocks[0] = %q, want to contain %q", blocks[0], tt.contains)
			}
		})
	}
}

func TestExtractRedditBlock(t *testing.T) {
	response := `Post 1:
Title: Invoice matching is killing me
I hate spending 3 hours every week matching invoices manually, it's such a waste of time.
u/tiredbookkeeper complained 2 days ago
1.2k upvotes, 45 comments, 2 awards
https://www.reddit.com/r/Bookkeeping/comments/xyz.
`
	got := Extract(response, nil, "reddit.com/r/Bookkeeping")
	if len(got) != 1 {
		t.Fatalf("Extract() returned %d records, want 1", len(got))
	}
	ev := got[0]

	if ev.Platform != types.PlatformReddit {
		t.Errorf("Platform = %q, want Reddit", ev.Platform)
	}
	if ev.Title != "Invoice matching is killing me" {
		t.Errorf("Title = %q", ev.Title)
	}
	if ev.Author != "tiredbookkeeper" {
		t.Errorf("Author = %q", ev.Author)
	}
	if ev.SourceURL != "https://www.reddit.com/r/Bookkeeping/comments/xyz" {
		t.Errorf("SourceURL = %q (trailing punctuation must be stripped)", ev.SourceURL)
	}
	if ev.DatePosted != "2 days ago" {
		t.Errorf("DatePosted = %q", ev.DatePosted)
	}
	if ev.Engagement["upvotes"] != 1200 {
		t.Errorf("upvotes = %d, want 1200 (k suffix)", ev.Engagement["upvotes"])
	}
	if ev.Engagement["comments"] != 45 {
		t.Errorf("comments = %d", ev.Engagement["comments"])
	}
	// 1200*0.5 + 45*2 + 2*10 = 710.
	if ev.EngagementScore != 710 {
		t.Errorf("EngagementScore = %v, want 710", ev.EngagementScore)
	}
	if strings.Contains(ev.Content, "http") || strings.Contains(ev.Content, "Title:") {
		t.Errorf("Content should have metadata stripped: %q", ev.Content)
	}
}

func TestExtractDropsShortBlocks(t *testing.T) {
	got := Extract("too short\n\nalso tiny", nil, "reddit.com")
	if len(got) != 0 {
		t.Errorf("Extract() = %d records, want 0", len(got))
	}
}

func TestResolveURL(t *testing.T) {
	citations := []string{"https://cite.example/0", "https://cite.example/1"}
	tests := []struct {
		name  string
		block string
		index int
		want  string
	}{
		{
			name:  "literal URL wins",
			block: "content here https://real.example/post, more",
			index: 0,
			want:  "https://real.example/post",
		},
		{
			name:  "citation by block index",
			block: "no links in this block at all",
			index: 1,
			want:  "https://cite.example/1",
		},
		{
			name:  "reddit fallback with subreddit",
			block: "seen this complaint on r/Bookkeeping lately",
			index: 5,
			want:  "https://www.reddit.com/r/Bookkeeping/search?q=seen+this+complaint+on+r%2FBookkeeping+lately&restrict_sr=1",
		},
		{
			name:  "twitter fallback",
			block: "@someone keeps tweeting about this outage",
			index: 5,
			want:  "https://twitter.com/search?q=%40someone+keeps+tweeting+about+this+outage",
		},
		{
			name:  "generic web fallback",
			block: "a plain complaint with no platform hints at all",
			index: 5,
			want:  "https://www.google.com/search?q=a+plain+complaint+with+no+platform+hints+at+all",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveURL(tt.block, tt.index, citations); got != tt.want {
				t.Errorf("resolveURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseVoteCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"42", 42},
		{"1.2k", 1200},
		{"3k", 3000},
		{"1.5m", 1500000},
		{"  87 upvotes", 87},
		{"", 0},
		{"no numbers", 0},
	}
	for _, tt := range tests {
		if got := parseVoteCount(tt.in); got != tt.want {
			t.Errorf("parseVoteCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestInferPlatform(t *testing.T) {
	tests := []struct {
		tag  string
		want types.Platform
	}{
		{"reddit.com/r/Bookkeeping", types.PlatformReddit},
		{"site:reddit.com rant", types.PlatformReddit},
		{"https://x.com/someone", types.PlatformTwitter},
		{"news.ycombinator.com complaints", types.PlatformHackerNews},
		{"site:stackoverflow.com question", types.PlatformStackOverflow},
		{"quora.com answers", types.PlatformQuora},
		{"inurl:forum bookkeepers", types.PlatformForum},
		{"", types.PlatformForum},
	}
	for _, tt := range tests {
		if got := InferPlatform(tt.tag); got != tt.want {
			t.Errorf("InferPlatform(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestCleanContent(t *testing.T) {
	block := `Title: something broke
[deleted]
https://example.com/thread
12 upvotes
The actual complaint   text with
enough length to survive cleaning.`

	got := cleanContent(block)
	want := "The actual complaint text with enough length to survive cleaning."
	if got != want {
		t.Errorf("cleanContent() = %q, want %q", got, want)
	}
}
