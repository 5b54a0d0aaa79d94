package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexify/internal/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>...",
	Short: "Scan folders and show what was detected",
	Long: `Scan folders without resolving or renaming anything.

Shows the detected media type, the media files kept after filtering
extras and samples, parsed episodes and any warnings.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	results := make([]*scanner.Result, 0, len(args))
	for _, path := range args {
		r, err := a.scanner.Scan(path)
		if err != nil {
			return err
		}
		results = append(results, r)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, results)
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printScan(out, r)
	}
	return nil
}
