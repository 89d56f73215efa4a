// Package store holds the in-memory facility catalogue. It backs both
// the facility search service and the facility-count collaborator used
// by the suggestion ranker.
package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/carepoint/caresearch/internal/gazetteer"
	"github.com/carepoint/caresearch/internal/polish"
	"github.com/carepoint/caresearch/model"
)

// FacilityStore is a mutex-guarded snapshot of the facility catalogue.
// Facilities are loaded at startup and replaced wholesale; per-request
// reads take the read lock only.
type FacilityStore struct {
	Mu         sync.RWMutex
	Facilities []model.Facility
}

// NewFacilityStore creates an empty facility store.
func NewFacilityStore() *FacilityStore {
	return &FacilityStore{Facilities: make([]model.Facility, 0)}
}

// Add appends facilities to the catalogue.
func (s *FacilityStore) Add(facilities ...model.Facility) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.Facilities = append(s.Facilities, facilities...)
}

// All returns a copy of the catalogue for iteration outside the lock.
func (s *FacilityStore) All() []model.Facility {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	out := make([]model.Facility, len(s.Facilities))
	copy(out, s.Facilities)
	return out
}

// Len returns the number of facilities in the catalogue.
func (s *FacilityStore) Len() int {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	return len(s.Facilities)
}

// CountInDistrict returns the number of facilities located in the given
// district, optionally filtered by facility type. District comparison
// is bidirectional containment on normalized forms: the gazetteer and
// the catalogue spell districts differently (noun vs adjectival forms),
// so either side containing the other counts as a match.
func (s *FacilityStore) CountInDistrict(district string, typ model.FacilityType) (int, error) {
	normalizedDistrict := polish.Normalize(district)

	s.Mu.RLock()
	defer s.Mu.RUnlock()

	count := 0
	for _, f := range s.Facilities {
		if !f.MatchesType(typ) {
			continue
		}
		if districtsOverlap(polish.Normalize(f.District), normalizedDistrict) {
			count++
		}
	}
	return count, nil
}

// SuggestionsByCity groups facilities whose normalized city name
// contains normalizedQuery and returns one pre-counted suggestion per
// city. This serves regions without gazetteer coverage, where the
// catalogue itself is the only source of place names.
func (s *FacilityStore) SuggestionsByCity(normalizedQuery, region string, typ model.FacilityType) ([]model.Suggestion, error) {
	normalizedRegion := polish.Normalize(gazetteer.CanonicalRegion(region))

	s.Mu.RLock()
	defer s.Mu.RUnlock()

	groups := make(map[string]*model.Suggestion)
	for _, f := range s.Facilities {
		if !f.MatchesType(typ) {
			continue
		}
		if normalizedRegion != "" && polish.Normalize(f.Region) != normalizedRegion {
			continue
		}
		if normalizedQuery == "" || !strings.Contains(polish.Normalize(f.City), normalizedQuery) {
			continue
		}
		if g, ok := groups[f.City]; ok {
			g.FacilityCount++
			continue
		}
		groups[f.City] = &model.Suggestion{
			Name:          f.City,
			District:      f.District,
			Region:        f.Region,
			FacilityCount: 1,
		}
	}

	suggestions := make([]model.Suggestion, 0, len(groups))
	for _, g := range groups {
		suggestions = append(suggestions, *g)
	}
	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Name < suggestions[j].Name
	})
	return suggestions, nil
}

// CountByRegion counts facilities per region, keyed by the URL slug
// form of the region name.
func (s *FacilityStore) CountByRegion() map[string]int {
	s.Mu.RLock()
	defer s.Mu.RUnlock()

	counts := make(map[string]int)
	for _, f := range s.Facilities {
		counts[gazetteer.RegionSlug(f.Region)]++
	}
	return counts
}

func districtsOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
