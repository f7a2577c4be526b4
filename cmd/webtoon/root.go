package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/webtoon/internal/config"
	"github.com/agenthands/webtoon/internal/llm"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "webtoon",
	Short: "Webnovel to webtoon conversion pipeline",
	Long: `Webtoon converts prose webnovel chapters into webtoon cut drafts.

The pipeline includes:
  - Scene segmentation into cuts
  - Character continuity tracking across cuts
  - Composition, background and dialogue extraction
  - Image prompt generation and text-to-image rendering`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config/config.toml)",
	)

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(segmentCmd)
}

// loadConfig resolves configuration for a command run: file, then env overrides.
func loadConfig() *config.Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	path := cfgFile
	if path == "" {
		path = "config/config.toml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", path, err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()
	return cfg
}

// buildLLM returns nil when no client can be built; every stage degrades.
func buildLLM(ctx context.Context, cfg *config.Config) llm.LLMClient {
	if cfg.LLM.APIKey == "" && cfg.LLM.Provider != "ollama" {
		log.Printf("Warning: no LLM api key configured; extraction will run degraded")
		return nil
	}
	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Printf("Warning: failed to initialize LLM client: %v; extraction will run degraded", err)
		return nil
	}
	return client
}
