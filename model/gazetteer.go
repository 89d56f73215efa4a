package model

// GazetteerLocation is a named administrative place from the reference
// gazetteer, independent of the facility catalogue. Loaded once at
// startup and immutable afterwards.
type GazetteerLocation struct {
	Name           string `json:"name"`            // canonical display name
	NormalizedName string `json:"normalized_name"` // ASCII-folded lookup key
	District       string `json:"district"`
	Region         string `json:"region"`
}

// Suggestion is one entry of an autocomplete response: a location plus
// the number of live facilities serving it. Built per request, never
// persisted.
type Suggestion struct {
	Name          string `json:"name"`
	District      string `json:"district"`
	Region        string `json:"region"`
	FacilityCount int    `json:"facility_count"`
}
