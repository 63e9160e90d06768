// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/painscout/internal/pipeline"
	"github.com/pdiddy/painscout/pkg/types"
)

var communitiesCmd = &cobra.Command{
	Use:   "communities",
	Short: "Discover candidate communities for a target market",
	Long: `Communities runs only the discovery stage: it asks the search collaborator
where the target market gathers and congregates online, parses the answers,
and merges in the static fallback communities. The result maps each platform
kind (reddit, discord, slack, forum, ...) to community identifiers.`,
	RunE: runCommunities,
}

func init() {
	communitiesCmd.Flags().String("market", "", "target market / demographic (required)")
	communitiesCmd.Flags().String("focus", "", "market focus, e.g. the tool category involved")
	communitiesCmd.Flags().String("area", "", "optional problem area to narrow discovery")
	communitiesCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(communitiesCmd)
}

func runCommunities(cmd *cobra.Command, args []string) error {
	market, _ := cmd.Flags().GetString("market")
	if market == "" {
		return fmt.Errorf("--market is required")
	}
	focus, _ := cmd.Flags().GetString("focus")
	area, _ := cmd.Flags().GetString("area")

	searcher, err := newSearcher(cmd)
	if err != nil {
		return err
	}

	p := pipeline.New(searcher, researchConfig(), os.Stderr)
	communities := p.Communities(context.Background(), pipeline.Request{
		TargetMarket: market,
		MarketFocus:  focus,
		ProblemArea:  area,
	})

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(communities)
	}

	for _, kind := range types.CommunityKinds {
		ids := communities[kind]
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintf(os.Stdout, "%s (%d):\n", kind, len(ids))
		for _, id := range ids {
			fmt.Fprintf(os.Stdout, "  %s\n", id)
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d communities\n", communities.Total())
	return nil
}
