package api

import (
	"github.com/carepoint/caresearch/services"
)

const (
	maxQueryLength = 200
	maxPageSize    = 100
)

// validFacilityTypes lists the accepted type filter values. Empty means
// no filter.
var validFacilityTypes = map[string]struct{}{
	"":        {},
	"DPS":     {},
	"SDS":     {},
	"DPS+SDS": {},
}

// ValidateSearchRequest checks request-level constraints the transport
// owns: bounds and enumerations, not search semantics.
func ValidateSearchRequest(req *SearchRequest) []ErrorDetail {
	var details []ErrorDetail

	if len(req.Query) > maxQueryLength {
		details = append(details, ErrorDetail{Field: "query", Message: "query is too long"})
	}
	if _, ok := validFacilityTypes[req.Type]; !ok {
		details = append(details, ErrorDetail{Field: "type", Message: "unknown facility type"})
	}
	if req.Page < 0 {
		details = append(details, ErrorDetail{Field: "page", Message: "page cannot be negative"})
	}
	if req.PageSize < 0 || req.PageSize > maxPageSize {
		details = append(details, ErrorDetail{Field: "page_size", Message: "page_size out of range"})
	}

	return details
}

// ValidateSuggestQuery checks transport-level constraints of an
// autocomplete request. The minimum-length rule is intentionally NOT
// enforced here: short queries are an expected condition the core
// answers with an explanatory status, not a client error.
func ValidateSuggestQuery(query *services.SuggestQuery) []ErrorDetail {
	var details []ErrorDetail

	if len(query.Query) > maxQueryLength {
		details = append(details, ErrorDetail{Field: "q", Message: "query is too long"})
	}
	if _, ok := validFacilityTypes[string(query.Type)]; !ok {
		details = append(details, ErrorDetail{Field: "type", Message: "unknown facility type"})
	}

	return details
}
