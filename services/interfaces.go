package services

import (
	"github.com/carepoint/caresearch/model"
)

// SearchQuery describes a free-text facility search.
type SearchQuery struct {
	Query    string             `json:"query"`
	Type     model.FacilityType `json:"type,omitempty"` // optional facility-type filter
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// SearchResult is the outgoing shape of a facility search. Hits carry
// the facility records only: relevance scores are internal to the core
// and stripped before results leave it.
type SearchResult struct {
	Hits     []model.Facility `json:"hits"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Took     int64            `json:"took"`     // milliseconds
	QueryID  string           `json:"query_id"` // unique UUID for this search query
}

// SuggestQuery describes an autocomplete request. Region and District
// optionally scope the gazetteer lookup; Type filters the facility
// counts attached to each suggestion.
type SuggestQuery struct {
	Query    string             `json:"query"`
	Region   string             `json:"region,omitempty"`
	District string             `json:"district,omitempty"`
	Type     model.FacilityType `json:"type,omitempty"`
}

// SuggestResult is the outgoing shape of an autocomplete request.
// TotalCount is the number of locations with at least one live facility
// before capping; Truncated tells the caller a "show all" affordance
// makes sense. Message explains empty results (e.g. query too short).
type SuggestResult struct {
	Suggestions []model.Suggestion `json:"suggestions"`
	TotalCount  int                `json:"total_count"`
	Truncated   bool               `json:"truncated"`
	Message     string             `json:"message,omitempty"`
	QueryID     string             `json:"query_id"`
}

// Gazetteer is the reference-dataset collaborator. Lookup returns the
// locations whose normalized name contains normalizedQuery, optionally
// restricted to a region and/or district. Implementations treat it as a
// pure query; errors mean the collaborator is unavailable.
type Gazetteer interface {
	Lookup(normalizedQuery, region, district string) ([]model.GazetteerLocation, error)
	CoversRegion(region string) bool
}

// FacilityCounter is the facility-catalogue collaborator consumed by
// the suggestion ranker.
type FacilityCounter interface {
	// CountInDistrict returns the number of live facilities located in
	// the given district, optionally filtered by facility type.
	// Dual-registered facilities count toward both type filters.
	CountInDistrict(district string, typ model.FacilityType) (int, error)

	// SuggestionsByCity groups facilities matching normalizedQuery by
	// city and returns one pre-counted suggestion per city. Used for
	// regions the gazetteer does not cover.
	SuggestionsByCity(normalizedQuery, region string, typ model.FacilityType) ([]model.Suggestion, error)
}

// Searcher defines the exposed facility search operation.
type Searcher interface {
	Search(query SearchQuery) (SearchResult, error)
}

// Suggester defines the exposed autocomplete operation.
type Suggester interface {
	Suggest(query SuggestQuery) (SuggestResult, error)
}
