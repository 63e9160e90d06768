// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates a full evidence discovery run: community
// discovery, query synthesis, concurrent search fan-out, extraction,
// filtering, scoring, clustering, and final ranking.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/painscout/internal/cluster"
	"github.com/pdiddy/painscout/internal/community"
	"github.com/pdiddy/painscout/internal/evidence"
	"github.com/pdiddy/painscout/internal/query"
	"github.com/pdiddy/painscout/internal/score"
	"github.com/pdiddy/painscout/internal/search"
	"github.com/pdiddy/painscout/internal/taxonomy"
	"github.com/pdiddy/painscout/pkg/types"
)

// Request describes one discovery run.
type Request struct {
	ProblemStatement string `json:"problem_statement" yaml:"problem_statement"`
	TargetMarket     string `json:"target_market" yaml:"target_market"`
	MarketFocus      string `json:"market_focus" yaml:"market_focus"`
	ProblemArea      string `json:"problem_area,omitempty" yaml:"problem_area,omitempty"`

	// MaxResults overrides the configured result cap when positive.
	MaxResults int `json:"max_results,omitempty" yaml:"max_results,omitempty"`
}

// Pipeline wires the discovery stages around one search collaborator.
// Warnings (failed queries, failed discovery) go to Log; they never abort
// the run.
type Pipeline struct {
	Searcher search.Searcher
	Config   types.ResearchConfig
	Scorer   *score.Scorer
	Taxonomy *taxonomy.Taxonomy
	Log      io.Writer
}

// New returns a pipeline with the default scorer and taxonomy.
func New(searcher search.Searcher, cfg types.ResearchConfig, log io.Writer) *Pipeline {
	return &Pipeline{
		Searcher: searcher,
		Config:   cfg.WithDefaults(),
		Scorer:   score.New(),
		Taxonomy: taxonomy.Default(),
		Log:      log,
	}
}

// Communities runs only the discovery stage.
func (p *Pipeline) Communities(ctx context.Context, req Request) types.CommunityMap {
	return community.Discover(ctx, p.Searcher, req.TargetMarket, req.MarketFocus, req.ProblemArea, p.Log)
}

// Queries returns the search queries a run would issue, budget-capped, for
// inspection without executing them.
func (p *Pipeline) Queries(ctx context.Context, req Request) []query.Query {
	communities := p.Communities(ctx, req)
	return p.plan(req, communities)
}

// plan synthesizes and budget-caps the query batch: top dork queries first,
// then the targeted community searches.
func (p *Pipeline) plan(req Request, communities types.CommunityMap) []query.Query {
	dorks := query.Dorks(req.ProblemStatement, req.TargetMarket, req.MarketFocus, communities)
	if len(dorks) > p.Config.MaxDorkQueries {
		dorks = dorks[:p.Config.MaxDorkQueries]
	}

	batch := make([]query.Query, 0, len(dorks)+p.Config.MaxCommunityQueries)
	for _, d := range dorks {
		batch = append(batch, query.Query{Text: query.DorkPrompt(d.Text), SourceTag: d.SourceTag})
	}
	batch = append(batch, query.CommunityQueries(req.ProblemStatement, communities, p.Config.MaxCommunityQueries)...)
	return batch
}

// Run executes the full pipeline and returns the ranked, URL-unique evidence
// list. An empty list is a valid outcome: absence of evidence is an expected
// result of best-effort discovery, not an error.
func (p *Pipeline) Run(ctx context.Context, req Request) ([]types.Evidence, error) {
	communities := p.Communities(ctx, req)
	batch := p.plan(req, communities)

	candidates := p.fanOut(ctx, batch)

	accepted := make([]types.Evidence, 0, len(candidates))
	for _, ev := range candidates {
		if evidence.Accept(ev, p.Taxonomy) {
			accepted = append(accepted, ev)
		}
	}

	scored := p.Scorer.ScoreAll(accepted, req.ProblemStatement, req.TargetMarket)
	clustered := cluster.Annotate(scored, p.Taxonomy)

	max := req.MaxResults
	if max <= 0 {
		max = p.Config.MaxResults
	}
	return cluster.DedupRank(clustered, max), nil
}

// fanOut issues every query concurrently and aggregates the extracted
// candidates in submission order. A failed query contributes nothing and is
// logged; siblings are never cancelled on its account.
func (p *Pipeline) fanOut(ctx context.Context, batch []query.Query) []types.Evidence {
	results := make([][]types.Evidence, len(batch))
	errs := make([]error, len(batch))

	var wg sync.WaitGroup
	for i, q := range batch {
		wg.Add(1)
		go func(i int, q query.Query) {
			defer wg.Done()
			res, err := p.Searcher.Search(ctx, q.Text)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = evidence.Extract(res.Response, res.Citations, q.SourceTag)
		}(i, q)
	}
	wg.Wait()

	var all []types.Evidence
	for i, r := range results {
		if errs[i] != nil {
			fmt.Fprintf(p.Log, "warning: query %d failed: %v\n", i+1, errs[i])
			continue
		}
		all = append(all, r...)
	}
	return all
}
