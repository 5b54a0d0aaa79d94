// Package scanner inspects a media folder: it filters extras and samples,
// classifies the folder as a movie or a TV show, and parses episode numbers
// out of release-style file names.
package scanner

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/vmunix/plexify/internal/fsys"
	"github.com/vmunix/plexify/internal/media"
)

// Warning texts.
const (
	WarnNoMediaFiles     = "No media files found in folder"
	WarnNoSeasonFolders  = "TV show detected but no season folders found"
	WarnEpisodesRequired = "Episode information is required for TV shows"
	warnUnparsedFmt      = "Some episode files could not be parsed (%d)"
)

// Result is the outcome of scanning one folder.
type Result struct {
	FolderPath    string          `json:"folder_path"`
	MediaType     media.MediaType `json:"media_type"`
	MediaFiles    []string        `json:"media_files"`
	ExcludedItems []string        `json:"excluded_items"`
	Warnings      []string        `json:"warnings"`
	Episodes      []media.Episode `json:"episodes,omitempty"`
}

// Scanner scans media folders through a filesystem boundary. A Scanner has
// no mutable state and may be shared between goroutines.
type Scanner struct {
	fs        fsys.FileSystem
	sampleMax int64
	log       *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithSampleMaxBytes sets the size below which "sample" files are dropped.
func WithSampleMaxBytes(n int64) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.sampleMax = n
		}
	}
}

// WithLogger sets the scanner's logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a scanner.
func New(fs fsys.FileSystem, opts ...Option) *Scanner {
	s := &Scanner{
		fs:        fs,
		sampleMax: DefaultSampleMaxBytes,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// level is one filtered directory listing.
type level struct {
	files    []string // surviving video files
	dirs     []string // surviving subdirectories
	excluded []string
}

// Scan inspects path. It never modifies the filesystem.
func (s *Scanner) Scan(path string) (*Result, error) {
	start := time.Now()
	path = filepath.Clean(path)

	info, err := s.fs.Stat(path)
	if err != nil {
		if fsys.IsNotExist(err) {
			return nil, newScanError(path, ErrNotFound, nil)
		}
		return nil, newScanError(path, ErrIO, err)
	}
	if !info.IsDir() {
		return nil, newScanError(path, ErrNotADirectory, nil)
	}

	top, err := s.listLevel(path)
	if err != nil {
		return nil, err
	}

	result := &Result{
		FolderPath:    path,
		MediaType:     classify(top),
		MediaFiles:    []string{},
		ExcludedItems: []string{},
	}

	unparsed := 0
	if result.MediaType == media.TVShow {
		walked, err := s.walk(path, nil)
		if err != nil {
			return nil, err
		}
		result.ExcludedItems = append(result.ExcludedItems, walked.excluded...)
		result.MediaFiles = append(result.MediaFiles, walked.files...)
		result.Episodes, unparsed = s.parseEpisodes(path, walked.files)
	} else {
		result.ExcludedItems = append(result.ExcludedItems, top.excluded...)
		result.MediaFiles = append(result.MediaFiles, top.files...)
	}

	result.Warnings = buildWarnings(result, len(top.dirs), unparsed)

	s.log.Debug("scan complete",
		"path", path,
		"type", result.MediaType,
		"files", len(result.MediaFiles),
		"excluded", len(result.ExcludedItems),
		"episodes", len(result.Episodes),
		"unparsed", unparsed,
		"duration_ms", time.Since(start).Milliseconds())
	return result, nil
}

// listLevel applies the exclusion and extension filters to one directory.
func (s *Scanner) listLevel(dir string) (*level, error) {
	infos, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, newScanError(dir, ErrIO, err)
	}

	lv := &level{}
	for _, info := range infos {
		name := info.Name()
		if isHidden(name) {
			continue
		}
		full := filepath.Join(dir, name)

		if info.IsDir() {
			if isExcludedDir(name) {
				lv.excluded = append(lv.excluded, full)
				continue
			}
			lv.dirs = append(lv.dirs, full)
			continue
		}

		if isExcludedName(name) || isExcludedFile(name, info.Size(), s.sampleMax) {
			lv.excluded = append(lv.excluded, full)
			continue
		}
		if !IsVideoFile(name) {
			continue
		}
		lv.files = append(lv.files, full)
	}
	return lv, nil
}

// walk collects surviving files and excluded items below dir, depth first in
// name order. Excluded directories are not descended into.
func (s *Scanner) walk(dir string, acc *level) (*level, error) {
	if acc == nil {
		acc = &level{}
	}
	lv, err := s.listLevel(dir)
	if err != nil {
		return nil, err
	}
	acc.excluded = append(acc.excluded, lv.excluded...)
	acc.files = append(acc.files, lv.files...)
	for _, sub := range lv.dirs {
		if _, err := s.walk(sub, acc); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// classify decides the media type from the top-level listing. Any single
// indicator makes it a TV show.
func classify(top *level) media.MediaType {
	for _, d := range top.dirs {
		name := strings.ToLower(filepath.Base(d))
		if strings.HasPrefix(name, "season") || name == "specials" {
			return media.TVShow
		}
	}
	for _, f := range top.files {
		name := filepath.Base(f)
		if reEpisodeMarker.MatchString(name) || reSeasonEpisodeWords.MatchString(name) || reDateMarker.MatchString(name) {
			return media.TVShow
		}
	}
	return media.Movie
}

var (
	reEpisodeMarker      = regexp.MustCompile(`(?i)s\d+e\d+`)
	reSeasonEpisodeWords = regexp.MustCompile(`(?i)season\s*\d+\s*episode\s*\d+`)
	reDateMarker         = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// parseEpisodes runs every file through the episode rule table. It returns
// the parsed episodes and the number of files no rule matched.
func (s *Scanner) parseEpisodes(root string, files []string) ([]media.Episode, int) {
	var episodes []media.Episode
	unparsed := 0

	for _, file := range files {
		name := filepath.Base(file)
		base := strings.TrimSuffix(name, filepath.Ext(name))

		p, ok := ParseEpisode(base)
		if !ok {
			unparsed++
			s.log.Debug("unparsed episode file", "path", file)
			continue
		}

		season := 1
		if p.Season != nil {
			season = *p.Season
		} else if n, found := seasonFromDirs(ancestorDirs(root, file)); found {
			season = n
		}

		episodes = append(episodes, media.Episode{
			Season:     season,
			Episode:    p.Episode,
			Title:      p.Title,
			SourcePath: file,
			AirDate:    p.AirDate,
		})
	}
	return episodes, unparsed
}

// ancestorDirs returns the directory components between root and file,
// root excluded, ordered root to leaf.
func ancestorDirs(root, file string) []string {
	rel, err := filepath.Rel(root, filepath.Dir(file))
	if err != nil || rel == "." {
		return nil
	}
	return strings.Split(rel, string(filepath.Separator))
}

func buildWarnings(r *Result, topDirs, unparsed int) []string {
	warnings := []string{}
	if len(r.MediaFiles) == 0 {
		warnings = append(warnings, WarnNoMediaFiles)
	}
	if r.MediaType != media.TVShow {
		return warnings
	}
	if topDirs == 0 {
		warnings = append(warnings, WarnNoSeasonFolders)
	}
	if len(r.Episodes) == 0 {
		warnings = append(warnings, WarnEpisodesRequired)
	} else if unparsed > 0 {
		warnings = append(warnings, fmt.Sprintf(warnUnparsedFmt, unparsed))
	}
	return warnings
}
