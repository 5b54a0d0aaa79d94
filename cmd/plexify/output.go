package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmunix/plexify/internal/renamer"
	"github.com/vmunix/plexify/internal/scanner"
	"github.com/vmunix/plexify/internal/workflow"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printScan(w io.Writer, r *scanner.Result) {
	fmt.Fprintf(w, "%s\n", r.FolderPath)
	fmt.Fprintf(w, "  Type:      %s\n", r.MediaType)
	fmt.Fprintf(w, "  Files:     %d\n", len(r.MediaFiles))
	for _, f := range r.MediaFiles {
		fmt.Fprintf(w, "    %s\n", relPath(r.FolderPath, f))
	}
	if len(r.Episodes) > 0 {
		fmt.Fprintf(w, "  Episodes:  %d\n", len(r.Episodes))
		for _, ep := range r.Episodes {
			marker := fmt.Sprintf("s%02de%02d", ep.Season, ep.Episode)
			if ep.IsDateBased() {
				marker = ep.AirDate.Format("2006-01-02")
			}
			line := marker + "  " + relPath(r.FolderPath, ep.SourcePath)
			if ep.Title != "" {
				line += "  (" + ep.Title + ")"
			}
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
	if len(r.ExcludedItems) > 0 {
		fmt.Fprintf(w, "  Excluded:  %d\n", len(r.ExcludedItems))
		for _, e := range r.ExcludedItems {
			fmt.Fprintf(w, "    %s\n", relPath(r.FolderPath, e))
		}
	}
	printWarnings(w, r.Warnings)
}

func printPreview(w io.Writer, pv *workflow.Preview) {
	p := pv.Plan
	fmt.Fprintf(w, "%s\n", filepath.Base(p.SourceFolderPath))
	fmt.Fprintf(w, "  → %s\n", p.TargetFolderName)

	id := pv.Item.ExternalID
	switch {
	case id == "":
		id = "-"
	case pv.Item.ExternalIDIsManual:
		id += " (manual)"
	}
	fmt.Fprintf(w, "  Type: %s   IMDb: %s\n", pv.Item.MediaType, id)

	if len(p.FileRenames) > 0 {
		fmt.Fprintln(w, "  Files:")
		for _, fr := range p.FileRenames {
			fmt.Fprintf(w, "    %s → %s\n", relPath(p.SourceFolderPath, fr.SourcePath), planTarget(p, fr))
		}
	}
	printWarnings(w, pv.Warnings)
}

func planTarget(p renamer.Plan, fr renamer.FileRename) string {
	if fr.SeasonNumber == nil {
		return fr.TargetName
	}
	sf, _ := p.SeasonFolder(*fr.SeasonNumber)
	return sf.TargetName + "/" + fr.TargetName
}

func printApplyResult(w io.Writer, r *renamer.Result) {
	fmt.Fprintf(w, "Renamed to %s\n", r.TargetFolderPath)
	fmt.Fprintf(w, "  Files moved:     %d\n", r.MovedFiles)
	if len(r.CreatedDirs) > 0 {
		fmt.Fprintf(w, "  Folders created: %d\n", len(r.CreatedDirs))
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "  Skipped (destination exists): %d\n", len(r.Skipped))
		for _, s := range r.Skipped {
			fmt.Fprintf(w, "    %s\n", s)
		}
	}
}

func printWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w, "  Warnings:")
	for _, warn := range warnings {
		fmt.Fprintf(w, "    ! %s\n", warn)
	}
}

// relPath shows path relative to root when it lies inside it.
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// confirm asks a yes/no question. Anything but y/yes is no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
