package metadata

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/vmunix/plexify/internal/migrations"
)

// setupTestDB creates an in-memory SQLite database with the cache schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	require.NoError(t, migrations.Apply(context.Background(), db))

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestSQLiteStore_GetSet_RoundTrip(t *testing.T) {
	store := NewSQLiteStore(setupTestDB(t))
	ctx := context.Background()

	key := CacheKey("The Matrix", 1999, "movie")
	entry := Entry{ExternalID: "tt0133093", Year: 1999, ProviderID: 603}

	require.NoError(t, store.Set(ctx, key, entry))

	got, ok := store.Get(ctx, key)
	assert.True(t, ok, "expected to find cached value")
	assert.Equal(t, entry, got)
}

func TestSQLiteStore_Get_NotFound(t *testing.T) {
	store := NewSQLiteStore(setupTestDB(t))

	got, ok := store.Get(context.Background(), "nonexistent-key")
	assert.False(t, ok)
	assert.Equal(t, Entry{}, got)
}

func TestSQLiteStore_Set_Overwrite(t *testing.T) {
	store := NewSQLiteStore(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", Entry{ExternalID: "tt1"}))
	require.NoError(t, store.Set(ctx, "k", Entry{ExternalID: "tt2", Year: 2001}))

	got, ok := store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "tt2", got.ExternalID)
	assert.Equal(t, 2001, got.Year)
}

func TestSQLiteStore_DeleteAllClear(t *testing.T) {
	store := NewSQLiteStore(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", Entry{ExternalID: "tt1"}))
	require.NoError(t, store.Set(ctx, "b", Entry{ExternalID: "tt2"}))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, store.Delete(ctx, "a"))
	_, ok := store.Get(ctx, "a")
	assert.False(t, ok)

	require.NoError(t, store.Clear(ctx))
	all, err = store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOpenSQLiteStore_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.db")
	ctx := context.Background()

	store, err := OpenSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", Entry{ExternalID: "tt1"}))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "tt1", got.ExternalID)
	assert.Equal(t, path, reopened.Path())
}

func TestSQLiteStore_ConcurrentWrites(t *testing.T) {
	store := NewSQLiteStore(setupTestDB(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set(ctx, "shared", Entry{ExternalID: "tt1"})
		}()
	}
	wg.Wait()

	got, ok := store.Get(ctx, "shared")
	require.True(t, ok)
	assert.Equal(t, "tt1", got.ExternalID)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "the matrix|1999|movie", CacheKey("The Matrix", 1999, "movie"))
	assert.Equal(t, "band of brothers|0|tv", CacheKey("  Band of Brothers ", 0, "tv"))
	assert.Equal(t, "x|0|tv", CacheKey("X", -1, "tv"))
}
