package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if conflicts := settings.Validate(); len(conflicts) != 0 {
		t.Errorf("default settings should validate cleanly, got conflicts: %v", conflicts)
	}
	if settings.Search.MinQueryLength != 2 {
		t.Errorf("default MinQueryLength = %d, want 2", settings.Search.MinQueryLength)
	}
	if settings.Search.MaxSuggestions != 5 {
		t.Errorf("default MaxSuggestions = %d, want 5", settings.Search.MaxSuggestions)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero min query length", func(s *Settings) { s.Search.MinQueryLength = 0 }},
		{"zero max suggestions", func(s *Settings) { s.Search.MaxSuggestions = 0 }},
		{"zero page size", func(s *Settings) { s.Search.DefaultPageSize = 0 }},
		{"zero count workers", func(s *Settings) { s.Search.CountWorkers = 0 }},
		{"empty port", func(s *Settings) { s.Server.Port = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := DefaultSettings()
			tc.mutate(settings)
			if conflicts := settings.Validate(); len(conflicts) == 0 {
				t.Error("expected validation conflicts, got none")
			}
		})
	}
}

func TestLoadSettings(t *testing.T) {
	t.Run("layers file over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		content := "[search]\nmin_query_length = 3\nmax_suggestions = 7\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write settings file: %v", err)
		}

		settings, err := LoadSettings(path)
		if err != nil {
			t.Fatalf("LoadSettings() error = %v", err)
		}
		if settings.Search.MinQueryLength != 3 {
			t.Errorf("MinQueryLength = %d, want 3", settings.Search.MinQueryLength)
		}
		if settings.Search.MaxSuggestions != 7 {
			t.Errorf("MaxSuggestions = %d, want 7", settings.Search.MaxSuggestions)
		}
		// Untouched values keep their defaults.
		if settings.Search.DefaultPageSize != 10 {
			t.Errorf("DefaultPageSize = %d, want default 10", settings.Search.DefaultPageSize)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing settings file")
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		content := "[search]\nmax_suggestions = 0\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write settings file: %v", err)
		}
		if _, err := LoadSettings(path); err == nil {
			t.Error("expected error for invalid settings values")
		}
	})
}
