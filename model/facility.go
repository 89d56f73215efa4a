package model

import "strings"

// FacilityType identifies the kind of care a facility provides.
// A facility may be dual-registered (e.g. "DPS+SDS"), in which case its
// Type contains both markers and it matches either type filter.
type FacilityType string

const (
	// TypeResidential is a residential care home (dom pomocy społecznej).
	TypeResidential FacilityType = "DPS"
	// TypeDayCare is a community day-care center (środowiskowy dom samopomocy).
	TypeDayCare FacilityType = "SDS"
	// TypeAll matches every facility regardless of registration.
	TypeAll FacilityType = ""
)

// Facility is a single care-service location from the catalogue.
// City, Commune, District and Region are denormalized location strings
// kept exactly as imported; comparisons always go through normalization.
type Facility struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     FacilityType `json:"type"`
	City     string       `json:"city"`
	Commune  string       `json:"commune"`
	District string       `json:"district"`
	Region   string       `json:"region"`
	Phone    string       `json:"phone,omitempty"`
	Cost     float64      `json:"cost,omitempty"`
}

// MatchesType reports whether the facility satisfies a type filter.
// Dual-registered facilities carry both markers in Type, so a substring
// check makes them count toward each individual filter.
func (f Facility) MatchesType(filter FacilityType) bool {
	if filter == TypeAll {
		return true
	}
	return strings.Contains(string(f.Type), string(filter))
}
