// internal/config/error_test.go
package config

import (
	"strings"
	"testing"
)

func TestError_Error_Empty(t *testing.T) {
	e := &Error{Path: "/etc/plexify/config.toml"}
	if got := e.Error(); got != "" {
		t.Errorf("expected empty string for no errors, got %q", got)
	}
	if e.HasErrors() {
		t.Error("expected HasErrors to be false")
	}
}

func TestError_Error_MissingVars(t *testing.T) {
	e := &Error{
		Path:    "/etc/plexify/config.toml",
		Missing: []string{"TMDB_API_KEY", "SECRET"},
	}
	got := e.Error()
	if !strings.Contains(got, "missing environment variables") {
		t.Errorf("expected 'missing environment variables', got %q", got)
	}
	if !strings.Contains(got, "TMDB_API_KEY") || !strings.Contains(got, "SECRET") {
		t.Errorf("expected var names in error, got %q", got)
	}
}

func TestError_Error_Both(t *testing.T) {
	e := &Error{
		Path:    "/etc/plexify/config.toml",
		Missing: []string{"TMDB_API_KEY"},
		Errors:  []string{"cache.backend: invalid"},
	}
	got := e.Error()
	if !strings.HasPrefix(got, "config /etc/plexify/config.toml:") {
		t.Errorf("expected path prefix, got %q", got)
	}
	if !strings.Contains(got, "missing environment variables") {
		t.Errorf("expected missing vars section, got %q", got)
	}
	if !strings.Contains(got, "validation failed:\n  - cache.backend: invalid") {
		t.Errorf("expected validation section, got %q", got)
	}
}
