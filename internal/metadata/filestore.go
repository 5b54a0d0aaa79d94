package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the cache as one flat JSON object on disk. The file is
// loaded once at open and rewritten in full on every write.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Entry
	log     *slog.Logger
}

// OpenFileStore loads the cache at path. A missing or corrupt file is an
// empty cache, never an error.
func OpenFileStore(path string, log *slog.Logger) *FileStore {
	s := &FileStore{
		path:    path,
		entries: make(map[string]Entry),
		log:     log,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) && s.log != nil {
			s.log.Warn("cache file unreadable, starting empty", "path", path, "error", err)
		}
		return s
	}

	entries, err := decodeEntries(data)
	if err != nil {
		if s.log != nil {
			s.log.Warn("cache file corrupt, starting empty", "path", path, "error", err)
		}
		return s
	}
	s.entries = entries
	return s
}

// decodeEntries reads the cache object. Values are either entry objects or
// bare external-ID strings.
func decodeEntries(data []byte) (map[string]Entry, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	entries := make(map[string]Entry, len(raw))
	for key, msg := range raw {
		var id string
		if err := json.Unmarshal(msg, &id); err == nil {
			entries[key] = Entry{ExternalID: id}
			continue
		}
		var e Entry
		if err := json.Unmarshal(msg, &e); err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		entries[key] = e
	}
	return entries, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(_ context.Context, key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok || e.ExternalID == "" {
		return Entry{}, false
	}
	return e, true
}

func (s *FileStore) Set(_ context.Context, key string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	return s.flush()
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.flush()
}

func (s *FileStore) All(_ context.Context) (map[string]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.entries), nil
}

// Clear empties the cache and removes the file.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Entry)
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

// flush writes the whole cache through a temp file and rename so readers
// never see a partial file. Caller holds mu.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cache-*.json")
	if err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("cache write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("cache sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("cache rename: %w", err)
	}
	return nil
}
