// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the painscout CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/painscout/internal/search"
	"github.com/pdiddy/painscout/internal/secrets"
	"github.com/pdiddy/painscout/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, else the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the painscout CLI.
var rootCmd = &cobra.Command{
	Use:   "painscout",
	Short: "Discover and rank user pain-point evidence from online communities",
	Long: `painscout turns a problem statement and a target market into a ranked,
deduplicated list of pain-point evidence: real complaints, rants, and feature
requests found across Reddit, forums, and other communities.

A run discovers candidate communities, synthesizes targeted search queries,
fans them out to an LLM-backed search collaborator, extracts structured
evidence from the free-text answers, filters out synthesized summaries,
scores every record across five signals, and clusters similar complaints.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./painscout.yaml or ~/.config/painscout/config.yaml)")
	rootCmd.PersistentFlags().String("provider", "", "search provider: gemini or sonar (default: gemini)")
	rootCmd.PersistentFlags().String("model", "", "model identifier for the search provider")
	rootCmd.PersistentFlags().String("api-key", "", "API key for the search provider (default: from .secrets/)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("painscout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "painscout"))
		}
	}

	viper.SetEnvPrefix("PAINSCOUT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newSearcher builds the configured search collaborator. Flags win over the
// config file; API keys fall back to .secrets/.
func newSearcher(cmd *cobra.Command) (search.Searcher, error) {
	provider, _ := cmd.Flags().GetString("provider")
	if provider == "" {
		provider = viper.GetString("search.provider")
	}
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("search.model")
	}
	apiKey, _ := cmd.Flags().GetString("api-key")

	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   60 * time.Second,
			UserAgent: "painscout/" + version,
		},
		Provider: provider,
		Model:    model,
	}

	switch provider {
	case "sonar":
		cfg.APIKey = secretDefault("perplexity-api-key", apiKey)
		return search.NewSonarSearcher(cfg)
	case "gemini", "":
		cfg.APIKey = secretDefault("gemini-api-key", apiKey)
		return search.NewGeminiSearcher(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("unknown search provider %q: use gemini or sonar", provider)
	}
}

// researchConfig reads the run budgets from the config file.
func researchConfig() types.ResearchConfig {
	return types.ResearchConfig{
		MaxResults:          viper.GetInt("research.max_results"),
		MaxDorkQueries:      viper.GetInt("research.max_dork_queries"),
		MaxCommunityQueries: viper.GetInt("research.max_community_queries"),
	}.WithDefaults()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
