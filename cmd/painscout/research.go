// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/painscout/internal/pipeline"
	"github.com/pdiddy/painscout/internal/store"
	"github.com/pdiddy/painscout/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Run a full evidence discovery pipeline",
	Long: `Research runs the full pipeline: community discovery, query synthesis,
concurrent search fan-out, evidence extraction, quality filtering, scoring,
clustering, and final ranking. Failed queries are reported as warnings and
never abort the run; finding zero evidence is a valid outcome.

Results print as a table by default, or as JSON with --json. Use --save to
persist the run to the evidence store.`,
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().String("problem", "", "problem statement to find evidence for (required)")
	researchCmd.Flags().String("market", "", "target market / demographic (required)")
	researchCmd.Flags().String("focus", "", "market focus, e.g. the tool category involved")
	researchCmd.Flags().String("area", "", "optional problem area to narrow community discovery")
	researchCmd.Flags().Int("max-results", 0, "maximum ranked results to return (default 10)")
	researchCmd.Flags().Bool("json", false, "output results as JSON")
	researchCmd.Flags().Bool("save", false, "persist the run to the evidence store")
	researchCmd.Flags().String("research-dir", "", "base directory for the evidence store (default: research)")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	searcher, err := newSearcher(cmd)
	if err != nil {
		return err
	}

	p := pipeline.New(searcher, researchConfig(), os.Stderr)
	evidence, err := p.Run(context.Background(), req)
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := saveRun(cmd, req, evidence); err != nil {
			return err
		}
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatEvidenceOutput(evidence, jsonOutput)
}

func requestFromFlags(cmd *cobra.Command) (pipeline.Request, error) {
	problem, _ := cmd.Flags().GetString("problem")
	market, _ := cmd.Flags().GetString("market")
	if problem == "" || market == "" {
		return pipeline.Request{}, fmt.Errorf("--problem and --market are required")
	}
	focus, _ := cmd.Flags().GetString("focus")
	area, _ := cmd.Flags().GetString("area")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return pipeline.Request{
		ProblemStatement: problem,
		TargetMarket:     market,
		MarketFocus:      focus,
		ProblemArea:      area,
		MaxResults:       maxResults,
	}, nil
}

func saveRun(cmd *cobra.Command, req pipeline.Request, evidence []types.Evidence) error {
	s, err := store.New(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	runID, err := s.SaveRun(context.Background(), store.Run{
		ProblemStatement: req.ProblemStatement,
		TargetMarket:     req.TargetMarket,
		MarketFocus:      req.MarketFocus,
		ProblemArea:      req.ProblemArea,
	}, evidence)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved run %d (%d records)\n", runID, len(evidence))
	return nil
}

func formatEvidenceOutput(evidence []types.Evidence, jsonOutput bool) error {
	flat := make([]types.FlatEvidence, len(evidence))
	for i, ev := range evidence {
		flat[i] = ev.Flatten()
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(flat)
	}

	if len(flat) == 0 {
		fmt.Println("No evidence found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-6s  %-13s  %-60s  %-12s  %s\n",
		"Rank", "Score", "Platform", "Snippet", "Author", "Upvotes")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range flat {
		snippet := r.Snippet
		if len(snippet) > 60 {
			snippet = snippet[:57] + "..."
		}
		author := r.Author
		if len(author) > 12 {
			author = author[:9] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-6.2f  %-13s  %-60s  %-12s  %d\n",
			i+1, r.Relevance, r.Platform, snippet, author, r.Upvotes)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(flat))
	return nil
}
