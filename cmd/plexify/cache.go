package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexify/internal/metadata"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the IMDb ID cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached IMDb IDs",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached IMDb ID",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache location",
	Args:  cobra.NoArgs,
	RunE:  runCachePath,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheListCmd, cacheClearCmd, cachePathCmd)
}

type cacheEntry struct {
	Key string `json:"key"`
	metadata.Entry
}

func runCacheList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	all, err := a.store.All(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading cache: %w", err)
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	entries := make([]cacheEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, cacheEntry{Key: k, Entry: all[k]})
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "Cache is empty")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%-50s %s", e.Key, e.ExternalID)
		if e.ProviderID != 0 {
			fmt.Fprintf(out, "  (tmdb %d)", e.ProviderID)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
	return nil
}

func runCachePath(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cfg.CachePath())
	return nil
}
