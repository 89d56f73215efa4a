// Package gazetteer holds the in-memory reference dataset of Polish
// administrative place names used by the suggestion ranker.
package gazetteer

import (
	"sort"
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/carepoint/caresearch/internal/polish"
	"github.com/carepoint/caresearch/model"
)

// entry is a stored location with its match keys precomputed at load
// time so Lookup never normalizes per call.
type entry struct {
	loc                model.GazetteerLocation
	normalizedRegion   string
	normalizedDistrict string
}

// Store is an in-memory gazetteer. Locations are loaded once at startup
// and immutable during a search session. The trie indexes every suffix
// of each normalized name, so a single subtree visit answers both
// prefix and infix queries without scanning the location list.
type Store struct {
	mu       sync.RWMutex
	entries  []entry
	bySuffix *patricia.Trie      // name suffix -> []int indexes into entries
	regions  map[string]struct{} // normalized names of covered regions
}

// NewStore creates an empty gazetteer store.
func NewStore() *Store {
	return &Store{
		bySuffix: patricia.NewTrie(),
		regions:  make(map[string]struct{}),
	}
}

// Add inserts locations into the store, filling in NormalizedName when
// the loader left it empty.
func (s *Store) Add(locations ...model.GazetteerLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, loc := range locations {
		if loc.NormalizedName == "" {
			loc.NormalizedName = polish.Normalize(loc.Name)
		}
		idx := len(s.entries)
		s.entries = append(s.entries, entry{
			loc:                loc,
			normalizedRegion:   polish.Normalize(loc.Region),
			normalizedDistrict: polish.Normalize(loc.District),
		})
		s.regions[polish.Normalize(loc.Region)] = struct{}{}

		// One key per rune-boundary suffix: "olkusz" indexes under
		// "olkusz", "lkusz", "kusz", ... so infix queries hit the trie.
		for i := range loc.NormalizedName {
			s.indexSuffix(loc.NormalizedName[i:], idx)
		}
	}
}

func (s *Store) indexSuffix(suffix string, idx int) {
	key := patricia.Prefix(suffix)
	if item := s.bySuffix.Get(key); item != nil {
		s.bySuffix.Set(key, append(item.([]int), idx))
	} else {
		s.bySuffix.Insert(key, []int{idx})
	}
}

// Len returns the number of locations in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// CoversRegion reports whether the gazetteer has reference data for the
// given region (slug or display form).
func (s *Store) CoversRegion(region string) bool {
	normalized := polish.Normalize(CanonicalRegion(region))
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.regions[normalized]
	return ok
}

// Lookup returns the locations whose normalized name contains
// normalizedQuery, optionally restricted by region and district. The
// candidate set comes entirely from the suffix trie; only candidates
// are filtered. Result order follows insertion order, deterministically.
func (s *Store) Lookup(normalizedQuery, region, district string) ([]model.GazetteerLocation, error) {
	if normalizedQuery == "" {
		return []model.GazetteerLocation{}, nil
	}

	normalizedRegion := ""
	if region != "" {
		normalizedRegion = polish.Normalize(CanonicalRegion(region))
	}
	normalizedDistrict := polish.Normalize(district)

	s.mu.RLock()
	defer s.mu.RUnlock()

	// A name containing the query has a suffix starting with it, so the
	// subtree under the query covers every containment match. The same
	// entry can surface via several suffixes; dedupe by index.
	matched := make(map[int]struct{})
	_ = s.bySuffix.VisitSubtree(patricia.Prefix(normalizedQuery), func(_ patricia.Prefix, item patricia.Item) error {
		for _, idx := range item.([]int) {
			matched[idx] = struct{}{}
		}
		return nil
	})

	candidates := make([]int, 0, len(matched))
	for idx := range matched {
		candidates = append(candidates, idx)
	}
	sort.Ints(candidates)

	results := make([]model.GazetteerLocation, 0, len(candidates))
	for _, idx := range candidates {
		e := s.entries[idx]
		if normalizedRegion != "" && e.normalizedRegion != normalizedRegion {
			continue
		}
		if normalizedDistrict != "" && e.normalizedDistrict != normalizedDistrict {
			continue
		}
		results = append(results, e.loc)
	}
	return results, nil
}
