// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/painscout/internal/store"
	"github.com/pdiddy/painscout/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the evidence store (list, retrieve, export)",
	Long: `Store manages the local SQLite evidence database written by
"research --save". Use subcommands to list stored runs, query evidence with
full-text search and filters, or export to YAML or JSON.`,
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored discovery runs",
	RunE:  runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	s, err := store.New(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.Runs(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No stored runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-40s  %-25s  %s\n",
		"ID", "Created", "Problem", "Market", "Records")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, run := range runs {
		problem := run.ProblemStatement
		if len(problem) > 40 {
			problem = problem[:37] + "..."
		}
		market := run.TargetMarket
		if len(market) > 25 {
			market = market[:22] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-40s  %-25s  %d\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), problem, market, run.EvidenceCount)
	}
	return nil
}

// --- retrieve subcommand ---

var storeRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query stored evidence with full-text search and filters",
	Long: `Retrieve searches stored evidence using FTS5 full-text search over
content, structured filters (platform, run, minimum score), or both.
Full-text queries rank by match relevance; otherwise results sort by
relevance score descending.`,
	RunE: runStoreRetrieve,
}

func runStoreRetrieve(cmd *cobra.Command, args []string) error {
	s, err := store.New(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	opts := storeQueryOpts(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --platform, --run, or --min-score")
	}

	results, err := s.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-6s  %-13s  %-60s  %s\n",
		"Run", "Score", "Platform", "Content", "Cluster")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, r := range results {
		content := r.Content
		if len(content) > 60 {
			content = content[:57] + "..."
		}
		clusterName := ""
		if r.Cluster != nil {
			clusterName = r.Cluster.Name
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-6.2f  %-13s  %-60s  %s\n",
			r.RunID, r.RelevanceScore, r.Platform, content, clusterName)
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored evidence to YAML or JSON",
	Long: `Export writes stored evidence (or a filtered subset) to
research/index/export.yaml or export.json. Supports the same filter flags
as retrieve for partial exports.`,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	s, err := store.New(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	opts := storeQueryOpts(cmd, args)

	switch format {
	case "yaml", "":
		if err := s.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to research/index/export.yaml")
	case "json":
		if err := s.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to research/index/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	return nil
}

// --- shared helpers ---

func storeConfig(cmd *cobra.Command) types.StoreConfig {
	researchDir, _ := cmd.Flags().GetString("research-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return types.StoreConfig{
		ResearchDir: researchDir,
		MaxResults:  maxResults,
	}
}

func storeQueryOpts(cmd *cobra.Command, args []string) store.QueryOptions {
	platform, _ := cmd.Flags().GetString("platform")
	runID, _ := cmd.Flags().GetInt64("run")
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	opts := store.QueryOptions{
		Platform:   types.Platform(platform),
		RunID:      runID,
		MinScore:   minScore,
		MaxResults: maxResults,
	}
	if len(args) > 0 {
		opts.Query = strings.Join(args, " ")
	}
	return opts
}

func init() {
	for _, cmd := range []*cobra.Command{storeListCmd, storeRetrieveCmd, storeExportCmd} {
		cmd.Flags().String("research-dir", "", "base directory for the evidence store (default: research)")
		cmd.Flags().Int("max-results", 0, "maximum number of results")
	}
	storeRetrieveCmd.Flags().String("platform", "", "filter by platform (Reddit, Twitter, HackerNews, ...)")
	storeRetrieveCmd.Flags().Int64("run", 0, "filter by run ID")
	storeRetrieveCmd.Flags().Float64("min-score", 0, "minimum relevance score")
	storeRetrieveCmd.Flags().Bool("json", false, "output results as JSON")
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	storeExportCmd.Flags().String("platform", "", "filter by platform")
	storeExportCmd.Flags().Int64("run", 0, "filter by run ID")
	storeExportCmd.Flags().Float64("min-score", 0, "minimum relevance score")

	storeCmd.AddCommand(storeListCmd, storeRetrieveCmd, storeExportCmd)
	rootCmd.AddCommand(storeCmd)
}
