package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad base url", func(c *Config) { c.TMDB.BaseURL = "ftp://example.com" }, "tmdb.base_url"},
		{"relative base url", func(c *Config) { c.TMDB.BaseURL = "api.themoviedb.org" }, "tmdb.base_url"},
		{"good base url", func(c *Config) { c.TMDB.BaseURL = "https://api.themoviedb.org" }, ""},
		{"negative timeout", func(c *Config) { c.TMDB.Timeout = Duration{-time.Second} }, "tmdb.timeout"},
		{"bad backend", func(c *Config) { c.Cache.Backend = "bolt" }, "cache.backend"},
		{"negative sample size", func(c *Config) { c.Scan.SampleMaxMB = -1 }, "scan.sample_max_mb"},
		{"too much concurrency", func(c *Config) { c.Workflow.PreviewConcurrency = 1000 }, "workflow.preview_concurrency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()
			if tt.field == "" {
				assert.Empty(t, errs)
				return
			}
			if assert.Len(t, errs, 1) {
				assert.Contains(t, errs[0], tt.field)
			}
		})
	}
}
