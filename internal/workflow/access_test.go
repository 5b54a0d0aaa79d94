package workflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/plexify/internal/fsys"
)

// readOnlyFS reports every directory as not writable.
type readOnlyFS struct {
	fsys.FileSystem
}

func (readOnlyFS) Writable(dir string) error {
	return &fsys.Error{Op: "access", Path: dir, Kind: fsys.ErrPermission}
}

func TestCheckAccess(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "movie")
	require.NoError(t, os.Mkdir(dir, 0o755))

	assert.NoError(t, CheckAccess(fsys.New(), dir))
	assert.ErrorIs(t, CheckAccess(fsys.New(), filepath.Join(root, "missing")), ErrAccessDenied)
}

func TestCheckAccess_UsesFileSystem(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "movie")
	require.NoError(t, os.Mkdir(dir, 0o755))

	err := CheckAccess(readOnlyFS{fsys.New()}, dir)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, err, fsys.ErrPermission)
}

func TestCheckAccess_ReadOnlyParent(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	dir := filepath.Join(root, "movie")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.Chmod(root, 0o555))
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	assert.ErrorIs(t, CheckAccess(fsys.New(), dir), ErrAccessDenied)
}

func TestPipelineApply_AccessDenied(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "The Matrix (1999)")
	writeFiles(t, dir, "matrix.mkv")

	p := newTestPipeline(t, stubLookup(), WithFileSystem(readOnlyFS{fsys.New()}))
	pv, err := p.Preview(context.Background(), dir)
	require.NoError(t, err)

	_, err = p.Apply(pv)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.DirExists(t, dir)
}
