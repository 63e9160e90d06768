// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/painscout/internal/pipeline"
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "Preview the search queries a research run would issue",
	Long: `Queries runs community discovery and query synthesis, then prints the
budget-capped batch of search queries without executing any of them. Useful
for inspecting what a research run would send to the collaborator.`,
	RunE: runQueries,
}

func init() {
	queriesCmd.Flags().String("problem", "", "problem statement to find evidence for (required)")
	queriesCmd.Flags().String("market", "", "target market / demographic (required)")
	queriesCmd.Flags().String("focus", "", "market focus, e.g. the tool category involved")
	queriesCmd.Flags().String("area", "", "optional problem area to narrow discovery")
	queriesCmd.Flags().Bool("json", false, "output queries as JSON")

	rootCmd.AddCommand(queriesCmd)
}

func runQueries(cmd *cobra.Command, args []string) error {
	problem, _ := cmd.Flags().GetString("problem")
	market, _ := cmd.Flags().GetString("market")
	if problem == "" || market == "" {
		return fmt.Errorf("--problem and --market are required")
	}
	focus, _ := cmd.Flags().GetString("focus")
	area, _ := cmd.Flags().GetString("area")

	searcher, err := newSearcher(cmd)
	if err != nil {
		return err
	}

	p := pipeline.New(searcher, researchConfig(), os.Stderr)
	queries := p.Queries(context.Background(), pipeline.Request{
		ProblemStatement: problem,
		TargetMarket:     market,
		MarketFocus:      focus,
		ProblemArea:      area,
	})

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(queries)
	}

	for i, q := range queries {
		fmt.Fprintf(os.Stdout, "%2d. [%s]\n    %s\n", i+1, q.SourceTag, q.Text)
	}
	fmt.Fprintf(os.Stdout, "\n%d queries\n", len(queries))
	return nil
}
