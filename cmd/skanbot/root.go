package main

import (
	"github.com/spf13/cobra"

	"github.com/skanbot/skanbot/internal/api"
	"github.com/skanbot/skanbot/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "skanbot",
	Short: "OCR consensus pipeline for noisy Russian-language photos",
	Long: `Skanbot recognizes text on photos and scanned documents by running the
image through a batch of pre/post-processing templates, scoring every
variant and assembling the best consensus result.

The pipeline includes:
  - Multi-template OCR with per-candidate quality scoring
  - Semantic and human-readable text assembly
  - Grammar correction via a local LanguageTool server
  - Garbage-line filtering with a self-learning dictionary
  - Best-effort cleanup through a local language model`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.skanbot/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "skanbot home directory (default: ~/.skanbot)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
