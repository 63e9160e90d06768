// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes relevance scores for evidence records from five
// weighted signals: keyword overlap, pain intensity, engagement, recency,
// and content quality. Scoring is pure and deterministic.
package score

import (
	"strings"

	"github.com/pdiddy/painscout/internal/taxonomy"
	"github.com/pdiddy/painscout/pkg/types"
)

// Weights holds the scoring constants. The defaults are empirically chosen;
// they are exposed as configuration rather than buried in the formula so
// they can be tuned without code edits.
type Weights struct {
	// ProblemKeyword and TargetKeyword split the keyword-relevance share.
	ProblemKeyword float64
	TargetKeyword  float64

	// Pain intensity: weighted taxonomy match count divided by PainDivisor,
	// capped at PainCap.
	PainDivisor float64
	PainCap     float64

	// Engagement: engagement score divided by EngagementDivisor, capped at
	// EngagementCap.
	EngagementDivisor float64
	EngagementCap     float64

	// Recency contributions by coarse age bucket of the date string.
	RecencyDay   float64
	RecencyWeek  float64
	RecencyMonth float64

	// Quality: LongContent is the content length above which QualityLength
	// is added; QualityAuthor is added when an author was identified.
	LongContent   int
	QualityLength float64
	QualityAuthor float64
}

// DefaultWeights returns the standard weighting: 30% keywords (split 15/15),
// 25% pain intensity, 20% engagement, 15% recency, 10% quality.
func DefaultWeights() Weights {
	return Weights{
		ProblemKeyword:    0.15,
		TargetKeyword:     0.15,
		PainDivisor:       10,
		PainCap:           0.25,
		EngagementDivisor: 100,
		EngagementCap:     0.20,
		RecencyDay:        0.15,
		RecencyWeek:       0.10,
		RecencyMonth:      0.05,
		LongContent:       200,
		QualityLength:     0.05,
		QualityAuthor:     0.05,
	}
}

// Scorer annotates evidence with a relevance score and breakdown.
type Scorer struct {
	Weights  Weights
	Taxonomy *taxonomy.Taxonomy
}

// New returns a scorer with the default weights and taxonomy.
func New() *Scorer {
	return &Scorer{Weights: DefaultWeights(), Taxonomy: taxonomy.Default()}
}

// ScoreAll returns a new slice of scored copies.
func (s *Scorer) ScoreAll(evidence []types.Evidence, problemStatement, targetMarket string) []types.Evidence {
	out := make([]types.Evidence, len(evidence))
	for i, ev := range evidence {
		out[i] = s.Score(ev, problemStatement, targetMarket)
	}
	return out
}

// Score returns a copy of ev with RelevanceScore and ScoringBreakdown set.
// The final score is the sum of the five weighted signals clamped to [0,1];
// the breakdown records each signal's contribution before clamping.
func (s *Scorer) Score(ev types.Evidence, problemStatement, targetMarket string) types.Evidence {
	w := s.Weights
	content := strings.ToLower(ev.Content)
	fullText := strings.ToLower(ev.Title) + " " + content

	problemKeywords := distinctTokens(problemStatement)
	targetKeywords := distinctTokens(targetMarket)
	problemMatches := countContained(problemKeywords, fullText)
	targetMatches := countContained(targetKeywords, fullText)

	total := 0.0
	total += fraction(problemMatches, len(problemKeywords)) * w.ProblemKeyword
	total += fraction(targetMatches, len(targetKeywords)) * w.TargetKeyword

	painRaw := float64(s.Taxonomy.WeightedMatchCount(content))
	pain := capAt(painRaw/w.PainDivisor, w.PainCap)
	total += pain

	engagement := capAt(ev.EngagementScore/w.EngagementDivisor, w.EngagementCap)
	total += engagement

	recency := s.recency(ev.DatePosted)
	total += recency

	quality := 0.0
	if len(ev.Content) > w.LongContent {
		quality += w.QualityLength
	}
	if ev.Author != "" {
		quality += w.QualityAuthor
	}
	total += quality

	scored := ev
	scored.RelevanceScore = clamp01(total)
	scored.ScoringBreakdown = map[string]float64{
		"keyword_relevance": fraction(problemMatches+targetMatches, len(problemKeywords)+len(targetKeywords)),
		"pain_intensity":    capAt(painRaw/w.PainDivisor, 1.0),
		"engagement":        capAt(ev.EngagementScore/w.EngagementDivisor, 1.0),
		"recency":           recency,
		"quality":           quality,
	}
	return scored
}

func (s *Scorer) recency(datePosted string) float64 {
	switch {
	case datePosted == "":
		return 0
	case strings.Contains(datePosted, "hour") || strings.Contains(datePosted, "day"):
		return s.Weights.RecencyDay
	case strings.Contains(datePosted, "week"):
		return s.Weights.RecencyWeek
	case strings.Contains(datePosted, "month"):
		return s.Weights.RecencyMonth
	default:
		return 0
	}
}

func distinctTokens(s string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		if !seen[tok] {
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func countContained(tokens []string, text string) int {
	n := 0
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			n++
		}
	}
	return n
}

func fraction(n, d int) float64 {
	if d < 1 {
		d = 1
	}
	return float64(n) / float64(d)
}

func capAt(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
