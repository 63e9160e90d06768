// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"testing"

	"github.com/pdiddy/painscout/internal/taxonomy"
	"github.com/pdiddy/painscout/pkg/types"
)

func TestAccept(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "aggregate phrasing rejected",
			content: "Based on user feedback, users often complain about slow load times.",
			want:    false,
		},
		{
			name:    "personal voice with strong pain phrase accepted",
			content: "I hate when the app crashes every single time I try to export, it's driving me insane.",
			want:    true,
		},
		{
			name:    "too short rejected",
			content: "I hate this so much.",
			want:    false,
		},
		{
			name:    "third person but pain phrase accepted",
			content: "The export tool is a complete waste of time according to everyone on the forum thread.",
			want:    true,
		},
		{
			name:    "personal voice without pain phrase accepted",
			content: "In my experience the report builder takes forever to open on older laptops.",
			want:    true,
		},
		{
			name:    "neutral third-person noise rejected",
			content: "The vendor published release notes describing several changes to the export module.",
			want:    false,
		},
		{
			name:    "survey summary rejected even with length",
			content: "Survey results show that a large share of respondents found the onboarding flow confusing overall.",
			want:    false,
		},
	}
	tax := taxonomy.Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := types.Evidence{Content: tt.content}
			if got := Accept(ev, tax); got != tt.want {
				t.Errorf("Accept(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}
