package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan <path>...",
	Short: "Show the rename plan for folders",
	Long: `Scan folders, resolve their IMDb IDs and show the renames that
'plexify apply' would perform. Nothing on disk is changed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlanCmd,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().String("imdb", "", "Use this IMDb ID instead of looking one up (single folder only)")
}

func runPlanCmd(cmd *cobra.Command, args []string) error {
	manualID, _ := cmd.Flags().GetString("imdb")
	if manualID != "" && len(args) > 1 {
		return errors.New("--imdb applies to a single folder")
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	previews, err := a.pipeline.PreviewAll(ctx, args)
	if err != nil {
		return err
	}
	if manualID != "" {
		pv, err := a.pipeline.WithManualID(ctx, previews[0], manualID)
		if err != nil {
			return err
		}
		previews[0] = pv
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, previews)
	}
	for i, pv := range previews {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printPreview(out, pv)
	}
	return nil
}
