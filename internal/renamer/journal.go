package renamer

import (
	"log/slog"

	"github.com/vmunix/plexify/internal/fsys"
)

type opKind int

const (
	opMovedFolder opKind = iota
	opCreatedDirectory
	opMovedFile
)

func (k opKind) String() string {
	switch k {
	case opMovedFolder:
		return "moved_folder"
	case opCreatedDirectory:
		return "created_directory"
	case opMovedFile:
		return "moved_file"
	default:
		return "unknown"
	}
}

// operation is one completed filesystem change. From is empty for created
// directories.
type operation struct {
	kind opKind
	from string
	to   string
}

// journal records completed operations so a failed apply can undo them.
type journal struct {
	ops []operation
}

func (j *journal) record(kind opKind, from, to string) {
	j.ops = append(j.ops, operation{kind: kind, from: from, to: to})
}

func (j *journal) len() int { return len(j.ops) }

// rollback undoes recorded operations newest first. A step that fails is
// logged and the remaining steps still run. Returns the number undone.
func (j *journal) rollback(fs fsys.FileSystem, log *slog.Logger) int {
	undone := 0
	for i := len(j.ops) - 1; i >= 0; i-- {
		op := j.ops[i]
		var err error
		switch op.kind {
		case opMovedFolder, opMovedFile:
			err = fs.Rename(op.to, op.from)
		case opCreatedDirectory:
			err = fs.Remove(op.to)
		}
		if err != nil {
			log.Warn("rollback step failed", "op", op.kind.String(), "path", op.to, "error", err)
			continue
		}
		undone++
	}
	j.ops = nil
	return undone
}
