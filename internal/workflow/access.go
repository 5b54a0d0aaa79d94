package workflow

import (
	"fmt"
	"path/filepath"

	"github.com/vmunix/plexify/internal/fsys"
)

// CheckAccess verifies that path exists and is readable and that its parent
// directory is writable, so the folder can be renamed in place.
func CheckAccess(fs fsys.FileSystem, path string) error {
	path = filepath.Clean(path)
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	}

	if info.IsDir() {
		if _, err := fs.ReadDir(path); err != nil {
			return fmt.Errorf("%w: %w", ErrAccessDenied, err)
		}
	}

	parent := filepath.Dir(path)
	if err := fs.Writable(parent); err != nil {
		return fmt.Errorf("%w: %s is not writable: %w", ErrAccessDenied, parent, err)
	}
	return nil
}
