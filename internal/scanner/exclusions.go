package scanner

import (
	"path/filepath"
	"strings"
)

// DefaultSampleMaxBytes is the size below which "sample" files are dropped.
const DefaultSampleMaxBytes int64 = 300 * 1024 * 1024

// excludedNames are folder names that never hold the main feature.
var excludedNames = map[string]bool{
	"extras":            true,
	"samples":           true,
	"bonus":             true,
	"bonus disc":        true,
	"featurettes":       true,
	"trailers":          true,
	"behind the scenes": true,
	"deleted scenes":    true,
	"scenes":            true,
	"video_ts":          true,
	"bdmv":              true,
	"audio_ts":          true,
}

// excludedSubstrings exclude any directory whose name contains them.
// Files use them through isExcludedFile.
var excludedSubstrings = []string{"sample", "trailer"}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".mpg":  true,
	".mpeg": true,
	".3gp":  true,
	".ogv":  true,
	".ts":   true,
	".m2ts": true,
	".vob":  true,
}

// IsVideoFile reports whether name has a video extension.
func IsVideoFile(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

// isExcludedName reports whether a child is excluded by name alone.
func isExcludedName(name string) bool {
	return excludedNames[strings.ToLower(name)]
}

// isExcludedDir reports whether a directory is excluded by name or substring.
func isExcludedDir(name string) bool {
	if isExcludedName(name) {
		return true
	}
	lower := strings.ToLower(name)
	for _, s := range excludedSubstrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// isExcludedFile reports whether a file is a sample or a trailer. Large
// "sample" video files are kept; real episodes sometimes carry the word.
func isExcludedFile(name string, size, sampleMax int64) bool {
	lower := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	if strings.Contains(lower, "trailer") {
		return true
	}
	if !strings.Contains(lower, "sample") {
		return false
	}
	return !IsVideoFile(name) || size < sampleMax
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
