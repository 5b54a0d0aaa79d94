package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/vmunix/plexify/internal/config"
	"github.com/vmunix/plexify/internal/fsys"
	"github.com/vmunix/plexify/internal/metadata"
	"github.com/vmunix/plexify/internal/renamer"
	"github.com/vmunix/plexify/internal/scanner"
	"github.com/vmunix/plexify/internal/tmdb"
	"github.com/vmunix/plexify/internal/workflow"
)

// app holds the wired components for one command invocation.
type app struct {
	cfg      *config.Config
	cfgPath  string
	log      *slog.Logger
	store    metadata.Store
	scanner  *scanner.Scanner
	pipeline *workflow.Pipeline
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loadConfig() (*config.Config, string, error) {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		return cfg, configPath, err
	}
	return config.LoadDiscovered()
}

// newApp loads configuration and wires the pipeline.
func newApp(ctx context.Context) (*app, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	fs := fsys.New()
	sc := scanner.New(fs,
		scanner.WithSampleMaxBytes(cfg.SampleMaxBytes()),
		scanner.WithLogger(log.With("component", "scanner")))

	resolver := metadata.NewResolver(newLookup(cfg, log), store,
		log.With("component", "resolver"),
		metadata.WithTimeout(cfg.TMDB.Timeout.Duration))

	pipeline := workflow.New(sc, resolver,
		renamer.NewApplier(fs, log.With("component", "renamer")),
		workflow.WithConcurrency(cfg.Workflow.PreviewConcurrency),
		workflow.WithEpisodeTitles(cfg.Workflow.EnrichEpisodeTitles),
		workflow.WithFileSystem(fs),
		workflow.WithLogger(log.With("component", "workflow")))

	return &app{
		cfg:      cfg,
		cfgPath:  path,
		log:      log,
		store:    store,
		scanner:  sc,
		pipeline: pipeline,
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// newLookup returns the TMDB client, or nil when offline or unconfigured so
// the resolver only consults the cache.
func newLookup(cfg *config.Config, log *slog.Logger) metadata.Lookup {
	if offline {
		return nil
	}
	if cfg.TMDB.APIKey == "" {
		log.Warn("no TMDB API key configured, resolving from cache only")
		return nil
	}
	return tmdb.NewClient(cfg.TMDB.APIKey,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithTimeout(cfg.TMDB.Timeout.Duration),
		tmdb.WithLogger(log.With("component", "tmdb")))
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (metadata.Store, error) {
	path := cfg.CachePath()
	switch cfg.Cache.Backend {
	case config.BackendSQLite:
		store, err := metadata.OpenSQLiteStore(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		return store, nil
	default:
		return metadata.OpenFileStore(path, log.With("component", "cache")), nil
	}
}
