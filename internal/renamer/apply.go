package renamer

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmunix/plexify/internal/fsys"
	"github.com/vmunix/plexify/internal/naming"
)

// Result summarizes a successful apply.
type Result struct {
	TargetFolderPath string   `json:"target_folder_path"`
	MovedFolder      bool     `json:"moved_folder"`
	CreatedDirs      []string `json:"created_dirs,omitempty"`
	MovedFiles       int      `json:"moved_files"`
	Skipped          []string `json:"skipped,omitempty"`
}

// Applier executes plans against a filesystem.
type Applier struct {
	fs  fsys.FileSystem
	log *slog.Logger
}

// NewApplier returns an Applier for fs.
func NewApplier(fs fsys.FileSystem, log *slog.Logger) *Applier {
	return &Applier{fs: fs, log: log}
}

// Apply renames the folder, creates season folders and moves files. Any
// failure undoes the completed steps and returns an *ApplyError. Applying
// the same plan twice is a no-op the second time.
func (a *Applier) Apply(plan Plan) (*Result, error) {
	start := time.Now()

	if err := plan.Validate(); err != nil {
		return nil, &ApplyError{Kind: ErrInvalidPlan, Op: "validate", Path: plan.SourceFolderPath, Err: err}
	}

	source := filepath.Clean(plan.SourceFolderPath)
	parent := filepath.Dir(source)
	target := filepath.Join(parent, plan.TargetFolderName)
	if err := naming.ValidatePath(target, parent); err != nil {
		return nil, &ApplyError{Kind: ErrInvalidPlan, Op: "validate", Path: target, Err: err}
	}

	res := &Result{TargetFolderPath: target}
	var j journal

	working, err := a.moveFolder(source, target, res, &j)
	if err != nil {
		return nil, err
	}

	if err := a.createSeasonFolders(plan, working, res, &j); err != nil {
		return nil, a.fail(err, &j)
	}
	if err := a.moveFiles(plan, source, working, res, &j); err != nil {
		return nil, a.fail(err, &j)
	}

	a.log.Info("plan applied",
		"path", source,
		"target", target,
		"moved_folder", res.MovedFolder,
		"moved_files", res.MovedFiles,
		"skipped", len(res.Skipped),
		"duration_ms", time.Since(start).Milliseconds())
	return res, nil
}

// moveFolder renames source to target and returns the folder files are
// resolved against afterwards.
func (a *Applier) moveFolder(source, target string, res *Result, j *journal) (string, error) {
	if source == target {
		return source, nil
	}

	if fsys.Exists(a.fs, target) {
		same, err := a.fs.SameFile(source, target)
		switch {
		case err == nil && same && caseOnly(source, target):
			// Case-insensitive filesystem: the names differ only in case.
			if err := a.fs.Rename(source, target); err != nil {
				return "", applyErr("rename", source, err)
			}
			j.record(opMovedFolder, source, target)
			res.MovedFolder = true
			return target, nil
		case err == nil && same:
			// Symlink or mount alias of the source.
			a.log.Debug("target is the source folder, skipping move", "path", source, "target", target)
			return target, nil
		case err != nil && fsys.IsNotExist(err) && !fsys.Exists(a.fs, source):
			a.log.Debug("folder already renamed", "path", target)
			return target, nil
		default:
			return "", &ApplyError{Kind: ErrConflict, Op: "rename", Path: target, Err: fsys.ErrExist}
		}
	}

	if err := a.fs.Rename(source, target); err != nil {
		return "", applyErr("rename", source, err)
	}
	j.record(opMovedFolder, source, target)
	res.MovedFolder = true
	a.log.Debug("renamed folder", "from", source, "to", target)
	return target, nil
}

func (a *Applier) createSeasonFolders(plan Plan, working string, res *Result, j *journal) error {
	for _, sf := range plan.SeasonFolders {
		dir := filepath.Join(working, sf.TargetName)
		if fsys.Exists(a.fs, dir) {
			continue
		}
		if err := a.fs.Mkdir(dir); err != nil {
			return applyErr("mkdir", dir, err)
		}
		j.record(opCreatedDirectory, "", dir)
		res.CreatedDirs = append(res.CreatedDirs, dir)
		a.log.Debug("created season folder", "path", dir, "season", sf.SeasonNumber)
	}
	return nil
}

func (a *Applier) moveFiles(plan Plan, source, working string, res *Result, j *journal) error {
	for _, fr := range plan.FileRenames {
		src := filepath.Join(working, relativeTo(source, fr.SourcePath))

		dstDir := working
		if fr.SeasonNumber != nil {
			sf, _ := plan.SeasonFolder(*fr.SeasonNumber)
			dstDir = filepath.Join(working, sf.TargetName)
		}
		dst := filepath.Join(dstDir, fr.TargetName)
		if err := naming.ValidatePath(dst, working); err != nil {
			return &ApplyError{Kind: ErrInvalidPlan, Op: "validate", Path: dst, Err: err}
		}

		if src == dst {
			continue
		}
		if fsys.Exists(a.fs, dst) {
			if !fsys.Exists(a.fs, src) {
				a.log.Debug("file already renamed", "path", dst)
				continue
			}
			a.log.Warn("destination exists, skipping file", "source", src, "target", dst)
			res.Skipped = append(res.Skipped, src)
			continue
		}

		if err := a.fs.Rename(src, dst); err != nil {
			return applyErr("rename", src, err)
		}
		j.record(opMovedFile, src, dst)
		res.MovedFiles++
	}
	return nil
}

// fail rolls back the journal and attaches the count to err.
func (a *Applier) fail(err error, j *journal) error {
	entries := j.len()
	undone := j.rollback(a.fs, a.log)
	a.log.Error("apply failed, rolled back", "error", err, "entries", entries, "undone", undone)

	var ae *ApplyError
	if errors.As(err, &ae) {
		ae.RolledBack = undone
		return ae
	}
	return &ApplyError{Kind: ErrIO, Err: err, RolledBack: undone}
}

// relativeTo resolves path against the original source folder. Paths
// outside it keep only their base name.
func relativeTo(source, path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(source, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(path)
	}
	return rel
}

// caseOnly reports whether source and target differ only in the case of
// their final element.
func caseOnly(source, target string) bool {
	a, b := filepath.Base(source), filepath.Base(target)
	return a != b && strings.EqualFold(a, b) && filepath.Dir(source) == filepath.Dir(target)
}

// applyErr wraps a filesystem failure. An *fsys.Error already names the
// operation and path, so they are not repeated.
func applyErr(op, path string, err error) *ApplyError {
	kind := ErrIO
	if errors.Is(err, fsys.ErrExist) {
		kind = ErrConflict
	}
	var fe *fsys.Error
	if errors.As(err, &fe) {
		return &ApplyError{Kind: kind, Err: err}
	}
	return &ApplyError{Kind: kind, Op: op, Path: path, Err: err}
}
