// Package naming renders Plex-style folder and file names.
package naming

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrPathTraversal indicates a path would escape its expected root.
var ErrPathTraversal = errors.New("path traversal detected")

// forbiddenChars are characters not allowed in names on common filesystems.
var forbiddenChars = regexp.MustCompile(`[/:\\?%*|"<>\x00]`)

// multiSpace matches runs of whitespace.
var multiSpace = regexp.MustCompile(`\s+`)

// Sanitize removes characters that are unsafe in file and folder names.
// Removed characters become spaces, whitespace runs collapse to one space,
// and the result is trimmed. Sanitize is idempotent.
func Sanitize(name string) string {
	name = forbiddenChars.ReplaceAllString(name, " ")
	name = multiSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// ValidatePath ensures the path is within the expected root directory.
// Returns ErrPathTraversal if the path would escape the root.
func ValidatePath(path, expectedRoot string) error {
	cleanPath := filepath.Clean(path)
	cleanRoot := filepath.Clean(expectedRoot)

	if cleanPath == cleanRoot {
		return nil
	}

	prefix := cleanRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(cleanPath, prefix) {
		return ErrPathTraversal
	}
	return nil
}
