package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexify/internal/renamer"
)

var applyCmd = &cobra.Command{
	Use:   "apply <path>...",
	Short: "Rename folders and files",
	Long: `Build the rename plan for each folder, ask for confirmation and
apply it. A failed apply is rolled back.

Examples:
  plexify apply ~/Downloads/The.Matrix.1999.1080p
  plexify apply ~/Downloads/Heat --imdb tt0113277 --yes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApplyCmd,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().String("imdb", "", "Use this IMDb ID instead of looking one up (single folder only)")
	applyCmd.Flags().BoolP("yes", "y", false, "Apply without asking for confirmation")
}

func runApplyCmd(cmd *cobra.Command, args []string) error {
	manualID, _ := cmd.Flags().GetString("imdb")
	yes, _ := cmd.Flags().GetBool("yes")
	if manualID != "" && len(args) > 1 {
		return errors.New("--imdb applies to a single folder")
	}
	if jsonOutput && !yes {
		return errors.New("--json requires --yes")
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	var results []*renamer.Result

	// Folders are applied one at a time.
	for i, path := range args {
		pv, err := a.pipeline.Preview(ctx, path)
		if err != nil {
			return err
		}
		if manualID != "" {
			if pv, err = a.pipeline.WithManualID(ctx, pv, manualID); err != nil {
				return err
			}
		}

		if !jsonOutput {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printPreview(out, pv)
			if !yes && !confirm(cmd.InOrStdin(), out, "Apply these changes?") {
				fmt.Fprintln(out, "Skipped")
				continue
			}
		}

		res, err := a.pipeline.Apply(pv)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		results = append(results, res)
		if !jsonOutput {
			printApplyResult(out, res)
		}
	}

	if jsonOutput {
		return printJSON(out, results)
	}
	return nil
}
