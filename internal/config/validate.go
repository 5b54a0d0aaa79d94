// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validBackends = map[string]bool{
	BackendFile: true, BackendSQLite: true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.TMDB.BaseURL != "" {
		u, err := url.Parse(c.TMDB.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("tmdb.base_url: must be an http(s) URL; got %q", c.TMDB.BaseURL))
		}
	}
	if c.TMDB.Timeout.Duration < 0 {
		errs = append(errs, fmt.Sprintf("tmdb.timeout: must be positive; got %s", c.TMDB.Timeout))
	}

	if !validBackends[c.Cache.Backend] {
		errs = append(errs, fmt.Sprintf("cache.backend: must be one of file, sqlite; got %q", c.Cache.Backend))
	}

	if c.Scan.SampleMaxMB < 0 {
		errs = append(errs, fmt.Sprintf("scan.sample_max_mb: must not be negative; got %d", c.Scan.SampleMaxMB))
	}

	if c.Workflow.PreviewConcurrency < 0 || c.Workflow.PreviewConcurrency > 64 {
		errs = append(errs, fmt.Sprintf("workflow.preview_concurrency: must be between 1 and 64; got %d", c.Workflow.PreviewConcurrency))
	}

	return errs
}
