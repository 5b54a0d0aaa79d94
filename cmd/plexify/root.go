package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
	logLevel   string
	offline    bool
)

var rootCmd = &cobra.Command{
	Use:   "plexify",
	Short: "Rename media folders for Plex",
	Long: `plexify - rename movie and TV folders into Plex naming

Scans a folder, detects whether it holds a movie or a TV show, resolves
its IMDb ID and renames folders and files so Plex matches them.

Examples:
  plexify scan ~/Downloads/The.Matrix.1999.1080p
  plexify plan ~/Downloads/*
  plexify apply ~/Downloads/Band.of.Brothers --imdb tt0185906`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Resolve IMDb IDs from the cache only")

	rootCmd.SilenceErrors = true
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("plexify {{.Version}}\n")
}
