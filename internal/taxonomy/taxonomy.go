// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package taxonomy holds the fixed pain-indicator tiers shared by the
// extraction, quality-filter, scoring, and clustering stages. The default
// taxonomy is process-wide, read-only at runtime, and safe for unsynchronized
// concurrent reads.
package taxonomy

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Tier names, in fixed scan order from strongest to weakest.
const (
	TierStrong         = "strong"
	TierMedium         = "medium"
	TierWeak           = "weak"
	TierFeatureRequest = "feature_request"
)

// Tier is one severity level: a weight plus the literal phrases and regexp
// patterns that signal it.
type Tier struct {
	Name    string   `yaml:"name"`
	Weight  int      `yaml:"weight"`
	Phrases []string `yaml:"phrases"`
	// Patterns are uncompiled regexp sources; compiled once at load.
	Patterns []string `yaml:"patterns,omitempty"`

	compiled []*regexp.Regexp
}

// Taxonomy is an ordered list of tiers.
type Taxonomy struct {
	tiers []Tier
}

// Default returns the built-in four-tier taxonomy. The returned value is
// shared; callers must not modify it.
func Default() *Taxonomy {
	return defaultTaxonomy
}

var defaultTaxonomy = mustNew([]Tier{
	{
		Name:   TierStrong,
		Weight: 3,
		Phrases: []string{
			"hate", "frustrated", "annoying", "terrible", "nightmare", "awful",
			"waste of time", "kills me", "drives me crazy", "ridiculous", "impossible",
		},
		Patterns: []string{
			`hate\s+(?:when|that|how)`,
			`drives?\s+me\s+(?:crazy|nuts|insane)`,
			`waste\s+of\s+(?:time|money)`,
			`(?:really|so)\s+frustrat(?:ing|ed)`,
			`(?:sick|tired)\s+of\s+(?:dealing|having)`,
			`why\s+is\s+(?:it|this)\s+so\s+(?:hard|difficult|complicated)`,
		},
	},
	{
		Name:   TierMedium,
		Weight: 2,
		Phrases: []string{
			"difficult", "struggle", "problem", "issue", "challenge", "pain",
			"wish", "need", "looking for", "anyone else", "help",
		},
		Patterns: []string{
			`struggle\s+(?:with|to)`,
			`looking\s+for\s+(?:a\s+)?(?:solution|alternative)`,
			`(?:annoying|annoyed)\s+(?:that|when)`,
			`(?:difficult|hard)\s+to`,
		},
	},
	{
		Name:   TierWeak,
		Weight: 1,
		Phrases: []string{
			"wondering", "curious", "thinking about", "considering", "maybe",
		},
	},
	{
		Name:   TierFeatureRequest,
		Weight: 1,
		Phrases: []string{
			"feature request", "would be great if", "need a way to",
		},
		Patterns: []string{
			`would\s+be\s+(?:great|nice|cool)\s+if`,
			`(?:should|could)\s+(?:add|have|implement)`,
			`(?:need|want)\s+(?:a\s+)?way\s+to`,
			`(?:missing|lacks?)\s+(?:a\s+)?(?:feature|functionality)`,
			`why\s+(?:can't|doesn't)\s+(?:it|this)`,
		},
	},
})

// New builds a taxonomy from tiers, compiling any regexp patterns.
func New(tiers []Tier) (*Taxonomy, error) {
	out := make([]Tier, len(tiers))
	for i, tier := range tiers {
		if tier.Name == "" {
			return nil, fmt.Errorf("tier %d: missing name", i)
		}
		if tier.Weight <= 0 {
			return nil, fmt.Errorf("tier %q: weight must be positive", tier.Name)
		}
		for j, p := range tier.Phrases {
			tier.Phrases[j] = strings.ToLower(p)
		}
		tier.compiled = make([]*regexp.Regexp, 0, len(tier.Patterns))
		for _, src := range tier.Patterns {
			re, err := regexp.Compile(`(?i)` + src)
			if err != nil {
				return nil, fmt.Errorf("tier %q: pattern %q: %w", tier.Name, src, err)
			}
			tier.compiled = append(tier.compiled, re)
		}
		out[i] = tier
	}
	return &Taxonomy{tiers: out}, nil
}

func mustNew(tiers []Tier) *Taxonomy {
	tx, err := New(tiers)
	if err != nil {
		panic(err)
	}
	return tx
}

// LoadFile reads a taxonomy override from a YAML file containing a list of
// tiers. Missing weights and empty tiers are rejected.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy %s: %w", path, err)
	}
	var tiers []Tier
	if err := yaml.Unmarshal(data, &tiers); err != nil {
		return nil, fmt.Errorf("parsing taxonomy %s: %w", path, err)
	}
	if len(tiers) == 0 {
		return nil, fmt.Errorf("taxonomy %s: no tiers defined", path)
	}
	return New(tiers)
}

// Tiers returns the tiers in scan order.
func (t *Taxonomy) Tiers() []Tier {
	return t.tiers
}

// FoundPhrases returns up to max literal phrases that occur in content,
// scanning tiers in order. Matching is case-insensitive substring
// containment.
func (t *Taxonomy) FoundPhrases(content string, max int) []string {
	lower := strings.ToLower(content)
	var found []string
	for _, tier := range t.tiers {
		for _, phrase := range tier.Phrases {
			if strings.Contains(lower, phrase) {
				found = append(found, phrase)
				if len(found) >= max {
					return found
				}
			}
		}
	}
	return found
}

// HasIndicator reports whether content contains any literal phrase or
// matches any tier pattern.
func (t *Taxonomy) HasIndicator(content string) bool {
	lower := strings.ToLower(content)
	for _, tier := range t.tiers {
		for _, phrase := range tier.Phrases {
			if strings.Contains(lower, phrase) {
				return true
			}
		}
		for _, re := range tier.compiled {
			if re.MatchString(content) {
				return true
			}
		}
	}
	return false
}

// WeightedMatchCount sums tier weight times the number of literal phrases
// from that tier occurring in content. The scorer normalizes this raw count.
func (t *Taxonomy) WeightedMatchCount(content string) int {
	lower := strings.ToLower(content)
	total := 0
	for _, tier := range t.tiers {
		for _, phrase := range tier.Phrases {
			if strings.Contains(lower, phrase) {
				total += tier.Weight
			}
		}
	}
	return total
}
