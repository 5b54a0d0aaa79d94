package metadata

import (
	"context"
	"strconv"
	"strings"

	"github.com/vmunix/plexify/internal/media"
)

// Entry is one cached resolution.
type Entry struct {
	ExternalID string `json:"external_id"`
	Year       int    `json:"year,omitempty"`
	ProviderID int    `json:"provider_id,omitempty"`
}

// Store persists resolved external IDs. Implementations are safe for
// concurrent use; concurrent writes to one key are last-write-wins.
type Store interface {
	// Get returns the entry for key. A miss or unreadable entry is false.
	Get(ctx context.Context, key string) (Entry, bool)
	Set(ctx context.Context, key string, entry Entry) error
	Delete(ctx context.Context, key string) error
	// All returns a snapshot of every entry.
	All(ctx context.Context) (map[string]Entry, error)
	Clear(ctx context.Context) error
	Close() error
}

// CacheKey builds the store key "title|year|type". Title is lowercased;
// year 0 means unknown.
func CacheKey(title string, year int, mediaType media.MediaType) string {
	if year < 0 {
		year = 0
	}
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strconv.Itoa(year) + "|" + string(mediaType)
}
