// Package config provides runtime configuration for the search service.
// Settings can be loaded from a TOML file or fall back to defaults.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Settings contains all tunables for the search and suggestion
// services. The scoring weights themselves are fixed (they encode the
// field-priority contract), so only behavioral knobs live here.
type Settings struct {
	Server ServerSettings `toml:"server" json:"server"`
	Search SearchSettings `toml:"search" json:"search"`
}

// ServerSettings configures the HTTP surface and data feeds.
type ServerSettings struct {
	Port          string `toml:"port" json:"port"`
	GazetteerPath string `toml:"gazetteer_path" json:"gazetteer_path"`
	FacilityPath  string `toml:"facility_path" json:"facility_path"`
}

// SearchSettings configures search and suggestion behavior.
type SearchSettings struct {
	// MinQueryLength is the minimum normalized query length for
	// suggestions. Shorter queries short-circuit without touching the
	// collaborators; this guards usability (overly broad matches), not
	// performance.
	MinQueryLength int `toml:"min_query_length" json:"min_query_length"`

	// MaxSuggestions caps the suggestion list returned to the caller.
	MaxSuggestions int `toml:"max_suggestions" json:"max_suggestions"`

	// DefaultPageSize applies when a search request omits page_size.
	DefaultPageSize int `toml:"default_page_size" json:"default_page_size"`

	// CountWorkers sizes the worker pool used for the per-candidate
	// facility-count fan-out.
	CountWorkers int `toml:"count_workers" json:"count_workers"`
}

// DefaultSettings returns the settings used when no config file is
// provided.
func DefaultSettings() *Settings {
	return &Settings{
		Server: ServerSettings{
			Port:          "8080",
			GazetteerPath: "./data/gazetteer.csv",
			FacilityPath:  "./data/facilities.csv",
		},
		Search: SearchSettings{
			MinQueryLength:  2,
			MaxSuggestions:  5,
			DefaultPageSize: 10,
			CountWorkers:    8,
		},
	}
}

// LoadSettings reads settings from a TOML file, layering the file's
// values over the defaults.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()
	if _, err := toml.DecodeFile(path, settings); err != nil {
		return nil, fmt.Errorf("failed to load settings from %s: %w", path, err)
	}
	if conflicts := settings.Validate(); len(conflicts) > 0 {
		return nil, fmt.Errorf("invalid settings in %s: %v", path, conflicts)
	}
	return settings, nil
}

// Validate checks the settings for basic consistency and returns a list
// of human-readable conflicts. An empty list means the settings are
// usable.
func (s *Settings) Validate() []string {
	var conflicts []string

	if s.Search.MinQueryLength < 1 {
		conflicts = append(conflicts, "search.min_query_length must be at least 1")
	}
	if s.Search.MaxSuggestions < 1 {
		conflicts = append(conflicts, "search.max_suggestions must be at least 1")
	}
	if s.Search.DefaultPageSize < 1 {
		conflicts = append(conflicts, "search.default_page_size must be at least 1")
	}
	if s.Search.CountWorkers < 1 {
		conflicts = append(conflicts, "search.count_workers must be at least 1")
	}
	if s.Server.Port == "" {
		conflicts = append(conflicts, "server.port cannot be empty")
	}

	return conflicts
}
