// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package community

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/painscout/internal/search"
	"github.com/pdiddy/painscout/pkg/types"
)

func TestExtractSubredditNames(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{
			name:     "r-slash prefixed list",
			response: "- r/Bookkeeping\n- r/Accounting\n- r/smallbusiness",
			want:     []string{"Bookkeeping", "Accounting", "smallbusiness"},
		},
		{
			name:     "bare names on numbered lines",
			response: "1. programming\n2. webdev\n3. cscareerquestions",
			want:     []string{"programming", "webdev", "cscareerquestions"},
		},
		{
			name:     "prose lines are skipped",
			response: "Here are several very active subreddits where freelance bookkeepers gather to vent:\nr/Bookkeeping",
			want:     []string{"Bookkeeping"},
		},
		{
			name:     "short and invalid names rejected",
			response: "r/ab\nr/ok-name\nvalid_sub",
			want:     []string{"valid_sub"},
		},
		{
			name:     "empty response",
			response: "",
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractSubredditNames(tt.response)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractSubredditNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractOtherCommunities(t *testing.T) {
	response := `Discord servers:
- https://discord.gg/bookkeepers (public invite)
- Bookkeeper Hangout

Slack communities:
- Accounting Pros Workspace

Specialized forums:
- https://proformative.com`

	got := extractOtherCommunities(response)

	contains := func(kind types.CommunityKind, want string) {
		t.Helper()
		for _, id := range got[kind] {
			if id == want {
				return
			}
		}
		t.Errorf("%s = %v, want to contain %q", kind, got[kind], want)
	}
	contains(types.KindDiscord, "https://discord.gg/bookkeepers")
	contains(types.KindDiscord, "Bookkeeper Hangout")
	contains(types.KindSlack, "Accounting Pros Workspace")
	contains(types.KindForum, "https://proformative.com")
}

func TestExtractOtherCommunitiesIgnoresPreamble(t *testing.T) {
	response := "Happy to help!\nSome options below.\nDiscord servers:\n- https://discord.gg/devs"
	got := extractOtherCommunities(response)
	if len(got[types.KindDiscord]) == 0 {
		t.Fatalf("discord = %v, want the invite URL", got[types.KindDiscord])
	}
	for _, kind := range types.CommunityKinds {
		if kind != types.KindDiscord && len(got[kind]) != 0 {
			t.Errorf("%s = %v, want nothing (preamble before any trigger must be ignored)", kind, got[kind])
		}
	}
}

func TestFallbackTable(t *testing.T) {
	tests := []struct {
		name         string
		targetMarket string
		wantReddit   string
	}{
		{"developer keyword", "freelance software developers", "programming"},
		{"accounting keyword", "freelance bookkeepers", "Bookkeeping"},
		{"designer keyword", "UX designers", "web_design"},
		{"no keyword falls back to generic", "dog walkers", "smallbusiness"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Fallback(tt.targetMarket, "")
			found := false
			for _, sub := range m[types.KindReddit] {
				if sub == tt.wantReddit {
					found = true
				}
			}
			if !found {
				t.Errorf("Fallback(%q) reddit = %v, want to contain %q", tt.targetMarket, m[types.KindReddit], tt.wantReddit)
			}
		})
	}
}

func TestDiscoverMergesBothQueries(t *testing.T) {
	searcher := search.Func(func(_ context.Context, query string) (search.Result, error) {
		if strings.Contains(query, "subreddits") {
			return search.Result{Response: "r/Bookkeeping\nr/Accounting"}, nil
		}
		return search.Result{Response: "Discord servers:\n- https://discord.gg/books"}, nil
	})

	var buf bytes.Buffer
	got := Discover(context.Background(), searcher, "freelance bookkeepers", "invoice tools", "", &buf)

	if buf.Len() != 0 {
		t.Errorf("unexpected warnings: %q", buf.String())
	}
	reddit := got[types.KindReddit]
	if len(reddit) == 0 || reddit[0] != "Bookkeeping" {
		t.Errorf("reddit = %v, want discovered names first", reddit)
	}
	discordFound := false
	for _, id := range got[types.KindDiscord] {
		if id == "https://discord.gg/books" {
			discordFound = true
		}
	}
	if !discordFound {
		t.Errorf("discord = %v, want the invite URL", got[types.KindDiscord])
	}
}

func TestDiscoverSurvivesSearchFailure(t *testing.T) {
	searcher := search.Func(func(_ context.Context, _ string) (search.Result, error) {
		return search.Result{}, errors.New("rate limited")
	})

	var buf bytes.Buffer
	got := Discover(context.Background(), searcher, "freelance bookkeepers", "invoice tools", "", &buf)

	if !strings.Contains(buf.String(), "warning:") {
		t.Errorf("expected warnings, got %q", buf.String())
	}
	// The static fallback still supplies communities.
	if got.Total() == 0 {
		t.Error("Discover() returned an empty map even with fallback")
	}
}
