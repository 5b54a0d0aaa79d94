// internal/fsys/fsys.go

// Package fsys is the filesystem boundary used by the scanner and the
// rename applier. All failures are reported as *Error with a kind.
package fsys

import (
	"io/fs"
	"os"
	"sort"
)

// FileSystem is the set of filesystem operations plexify needs.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	// ReadDir lists a directory, sorted by name.
	ReadDir(path string) ([]fs.FileInfo, error)
	Mkdir(path string) error
	Rename(oldPath, newPath string) error
	Remove(path string) error
	// SameFile reports whether both paths name the same file (same inode).
	SameFile(a, b string) (bool, error)
	// Writable fails unless entries can be created in and removed from dir.
	Writable(dir string) error
}

// DirMode is the permission used for created directories.
const DirMode = 0o755

// OS implements FileSystem on the host filesystem.
type OS struct{}

// New returns the host filesystem.
func New() OS { return OS{} }

func (OS) Stat(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, wrap("stat", path, err)
	}
	return info, nil
}

func (OS) ReadDir(path string) ([]fs.FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, wrap("readdir", path, err)
	}
	infos := make([]fs.FileInfo, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			return nil, wrap("readdir", path, err)
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	return infos, nil
}

func (OS) Mkdir(path string) error {
	return wrap("mkdir", path, os.Mkdir(path, DirMode))
}

// Rename refuses to replace an existing destination.
func (OS) Rename(oldPath, newPath string) error {
	if _, err := os.Lstat(newPath); err == nil {
		if same, _ := sameFile(oldPath, newPath); !same {
			return &Error{Op: "rename", Path: newPath, Kind: ErrExist, Err: fs.ErrExist}
		}
	}
	return wrap("rename", oldPath, os.Rename(oldPath, newPath))
}

func (OS) Remove(path string) error {
	return wrap("remove", path, os.Remove(path))
}

func (OS) SameFile(a, b string) (bool, error) {
	return sameFile(a, b)
}

func (OS) Writable(dir string) error {
	return wrap("access", dir, writable(dir))
}

func sameFile(a, b string) (bool, error) {
	ia, err := os.Stat(a)
	if err != nil {
		return false, wrap("stat", a, err)
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false, wrap("stat", b, err)
	}
	return os.SameFile(ia, ib), nil
}

// Exists reports whether path exists. Errors other than not-exist count as
// existing so callers do not overwrite what they cannot see.
func Exists(fsys FileSystem, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil || !IsNotExist(err)
}
