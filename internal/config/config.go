// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Cache backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the root configuration structure.
type Config struct {
	Log      LogConfig      `toml:"log"`
	TMDB     TMDBConfig     `toml:"tmdb"`
	Cache    CacheConfig    `toml:"cache"`
	Scan     ScanConfig     `toml:"scan"`
	Workflow WorkflowConfig `toml:"workflow"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type TMDBConfig struct {
	APIKey  string   `toml:"api_key"`
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

type CacheConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type ScanConfig struct {
	SampleMaxMB int `toml:"sample_max_mb"`
}

type WorkflowConfig struct {
	PreviewConcurrency  int  `toml:"preview_concurrency"`
	EnrichEpisodeTitles bool `toml:"enrich_episode_titles"`
}

// Duration is a time.Duration written as a string ("10s") in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in configuration used when no file is found.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info"},
		TMDB:  TMDBConfig{Timeout: Duration{10 * time.Second}},
		Cache: CacheConfig{Backend: BackendFile},
		Scan:  ScanConfig{SampleMaxMB: 300},
		Workflow: WorkflowConfig{
			PreviewConcurrency:  4,
			EnrichEpisodeTitles: true,
		},
	}
}

// Load reads and parses the configuration file. Unresolved environment
// variables and validation failures are reported together as *Error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	cfg := Default()
	if _, err := toml.Decode(content, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	cerr := &Error{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cerr.HasErrors() {
		return nil, cerr
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.TMDB.Timeout.Duration == 0 {
		c.TMDB.Timeout = d.TMDB.Timeout
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = d.Cache.Backend
	}
	if c.Workflow.PreviewConcurrency == 0 {
		c.Workflow.PreviewConcurrency = d.Workflow.PreviewConcurrency
	}
}

// CachePath returns the configured cache path, or the backend's default
// under $XDG_CACHE_HOME/plexify.
func (c *Config) CachePath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	name := "imdb_cache.json"
	if c.Cache.Backend == BackendSQLite {
		name = "imdb_cache.db"
	}
	return filepath.Join(cacheHome(), "plexify", name)
}

// SampleMaxBytes is the sample size threshold in bytes.
func (c *Config) SampleMaxBytes() int64 {
	return int64(c.Scan.SampleMaxMB) << 20
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func cacheHome() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".cache")
}
