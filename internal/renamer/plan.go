// Package renamer builds declarative rename plans for media items and
// applies them with rollback on failure.
package renamer

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vmunix/plexify/internal/media"
	"github.com/vmunix/plexify/internal/naming"
)

// Plan warning texts.
const (
	WarnMissingExternalID = "Missing IMDb ID; Plex may not match this item (set one with --imdb)"
	WarnMissingYear       = "Missing year; Plex matching may be less accurate"
	WarnMultipleFiles     = "Multiple files detected; every file gets the movie name"
	WarnEpisodesRequired  = "Episode information is required for TV shows"
	WarnNoOrganization    = "Files cannot be organized into season folders without episode data"
	warnDuplicateFmt      = "Multiple files map to %q"
)

// FileRename renames one file. A set SeasonNumber places the file in the
// matching season folder.
type FileRename struct {
	SourcePath   string `json:"source_path"`
	TargetName   string `json:"target_name"`
	SeasonNumber *int   `json:"season_number,omitempty"`
}

// SeasonFolder is a "Season NN" directory the plan creates.
type SeasonFolder struct {
	SeasonNumber int    `json:"season_number"`
	TargetName   string `json:"target_name"`
}

// Plan is the full set of renames for one media folder. Plans never touch
// the filesystem; Applier executes them.
type Plan struct {
	SourceFolderPath string         `json:"source_folder_path"`
	TargetFolderName string         `json:"target_folder_name"`
	FileRenames      []FileRename   `json:"file_renames"`
	SeasonFolders    []SeasonFolder `json:"season_folders,omitempty"`
	Warnings         []string       `json:"warnings"`
}

// TargetFolderPath is the folder's path after the rename.
func (p Plan) TargetFolderPath() string {
	return filepath.Join(filepath.Dir(filepath.Clean(p.SourceFolderPath)), p.TargetFolderName)
}

// SeasonFolder returns the season folder for n.
func (p Plan) SeasonFolder(n int) (SeasonFolder, bool) {
	for _, sf := range p.SeasonFolders {
		if sf.SeasonNumber == n {
			return sf, true
		}
	}
	return SeasonFolder{}, false
}

// Validate checks that season folders are unique and well named and that
// every file's season has a folder.
func (p Plan) Validate() error {
	name := p.TargetFolderName
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("%w: target folder name %q", ErrInvalidPlan, name)
	}

	seen := make(map[int]bool, len(p.SeasonFolders))
	for _, sf := range p.SeasonFolders {
		if seen[sf.SeasonNumber] {
			return fmt.Errorf("%w: duplicate season folder %d", ErrInvalidPlan, sf.SeasonNumber)
		}
		seen[sf.SeasonNumber] = true
		if sf.TargetName != naming.FormatSeasonFolderName(sf.SeasonNumber) {
			return fmt.Errorf("%w: season folder %d named %q", ErrInvalidPlan, sf.SeasonNumber, sf.TargetName)
		}
	}

	for _, fr := range p.FileRenames {
		if fr.TargetName == "" || strings.ContainsRune(fr.TargetName, filepath.Separator) {
			return fmt.Errorf("%w: target name %q", ErrInvalidPlan, fr.TargetName)
		}
		if fr.SeasonNumber != nil && !seen[*fr.SeasonNumber] {
			return fmt.Errorf("%w: no season folder for season %d", ErrInvalidPlan, *fr.SeasonNumber)
		}
	}
	return nil
}

// BuildPlan renders the rename plan for item. files are the scanned media
// files; TV items with episodes use the episodes' source paths instead.
func BuildPlan(item media.Item, files []string) Plan {
	var p Plan
	if item.MediaType == media.TVShow {
		p = buildTVPlan(item, files)
	} else {
		p = buildMoviePlan(item, files)
	}
	p.Warnings = append(p.Warnings, duplicateTargets(p)...)
	return p
}

func buildMoviePlan(item media.Item, files []string) Plan {
	name := naming.FormatMovieName(item.Title, item.Year, item.ExternalID, item.Edition)

	p := Plan{
		SourceFolderPath: item.SourceFolderPath,
		TargetFolderName: name,
		FileRenames:      make([]FileRename, 0, len(files)),
		Warnings:         metadataWarnings(item),
	}
	for _, f := range files {
		p.FileRenames = append(p.FileRenames, FileRename{
			SourcePath: f,
			TargetName: withExt(name, f),
		})
	}
	if len(files) > 1 {
		p.Warnings = append(p.Warnings, WarnMultipleFiles)
	}
	return p
}

func buildTVPlan(item media.Item, files []string) Plan {
	p := Plan{
		SourceFolderPath: item.SourceFolderPath,
		TargetFolderName: naming.FormatTVShowFolderName(item.Title, item.Year, item.ExternalID),
		Warnings:         metadataWarnings(item),
	}

	// No episode data: nil and empty are the same here.
	if len(item.Episodes) == 0 {
		p.FileRenames = make([]FileRename, 0, len(files))
		for _, f := range files {
			p.FileRenames = append(p.FileRenames, FileRename{
				SourcePath: f,
				TargetName: filepath.Base(f),
			})
		}
		p.Warnings = append(p.Warnings, WarnEpisodesRequired, WarnNoOrganization)
		return p
	}

	episodes := slices.Clone(item.Episodes)
	slices.SortStableFunc(episodes, func(a, b media.Episode) int {
		return cmp.Or(
			cmp.Compare(a.Season, b.Season),
			cmp.Compare(a.Episode, b.Episode),
			a.AirDate.Compare(b.AirDate),
		)
	})

	p.FileRenames = make([]FileRename, 0, len(episodes))
	for _, ep := range episodes {
		if _, ok := p.SeasonFolder(ep.Season); !ok {
			p.SeasonFolders = append(p.SeasonFolders, SeasonFolder{
				SeasonNumber: ep.Season,
				TargetName:   naming.FormatSeasonFolderName(ep.Season),
			})
		}

		ext := extOf(ep.SourcePath)
		var name string
		if ep.IsDateBased() {
			name = naming.FormatTVEpisodeNameDateBased(item.Title, item.Year, ep.AirDate, ep.Title, ext)
		} else {
			name = naming.FormatTVEpisodeName(item.Title, item.Year, ep.Season, ep.Episode, ep.Title, ext)
		}

		season := ep.Season
		p.FileRenames = append(p.FileRenames, FileRename{
			SourcePath:   ep.SourcePath,
			TargetName:   name,
			SeasonNumber: &season,
		})
	}
	return p
}

func metadataWarnings(item media.Item) []string {
	warnings := []string{}
	if item.ExternalID == "" {
		warnings = append(warnings, WarnMissingExternalID)
	}
	if item.Year == 0 {
		warnings = append(warnings, WarnMissingYear)
	}
	return warnings
}

// duplicateTargets reports destinations more than one file maps to.
func duplicateTargets(p Plan) []string {
	counts := make(map[string]int, len(p.FileRenames))
	var order []string
	for _, fr := range p.FileRenames {
		dest := fr.TargetName
		if fr.SeasonNumber != nil {
			dest = naming.FormatSeasonFolderName(*fr.SeasonNumber) + string(filepath.Separator) + fr.TargetName
		}
		if counts[dest] == 1 {
			order = append(order, dest)
		}
		counts[dest]++
	}
	warnings := make([]string, 0, len(order))
	for _, dest := range order {
		warnings = append(warnings, fmt.Sprintf(warnDuplicateFmt, dest))
	}
	return warnings
}

// extOf returns the file's extension without the dot.
func extOf(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

func withExt(name, path string) string {
	if ext := extOf(path); ext != "" {
		return name + "." + ext
	}
	return name
}
