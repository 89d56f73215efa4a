// Package suggest implements the autocomplete ranker: it matches a
// query against the gazetteer, attaches live facility counts to each
// candidate location and returns a capped, count-ranked suggestion
// list.
package suggest

import (
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/carepoint/caresearch/config"
	apperrors "github.com/carepoint/caresearch/internal/errors"
	"github.com/carepoint/caresearch/internal/polish"
	"github.com/carepoint/caresearch/model"
	"github.com/carepoint/caresearch/services"
)

// Status messages for empty results. These explain expected, common
// conditions (user still typing, nothing found); they are not errors.
const (
	MessageQueryTooShort = "type at least 2 characters"
	MessageNoLocations   = "no matching locations"
)

// Service implements services.Suggester. It is stateless per call; the
// worker pool only bounds the concurrency of count lookups.
type Service struct {
	gazetteer services.Gazetteer
	counter   services.FacilityCounter
	settings  *config.Settings
	pool      *ants.Pool
}

// NewService creates a new suggest Service with its count-lookup worker
// pool. Callers own the service lifecycle and should Close it when done.
func NewService(gaz services.Gazetteer, counter services.FacilityCounter, settings *config.Settings) (*Service, error) {
	if gaz == nil {
		return nil, fmt.Errorf("gazetteer cannot be nil")
	}
	if counter == nil {
		return nil, fmt.Errorf("facility counter cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}

	pool, err := ants.NewPool(settings.Search.CountWorkers)
	if err != nil {
		return nil, fmt.Errorf("failed to create count worker pool: %w", err)
	}

	return &Service{
		gazetteer: gaz,
		counter:   counter,
		settings:  settings,
		pool:      pool,
	}, nil
}

// Close releases the worker pool.
func (s *Service) Close() {
	s.pool.Release()
}

// Suggest resolves a partial query into ranked location suggestions.
// Queries below the minimum length short-circuit without touching the
// collaborators. Any collaborator failure fails the whole request: a
// partially counted suggestion list would misrepresent availability.
func (s *Service) Suggest(query services.SuggestQuery) (services.SuggestResult, error) {
	queryID := uuid.New().String()

	normalizedQuery := polish.Normalize(query.Query)
	if utf8.RuneCountInString(normalizedQuery) < s.settings.Search.MinQueryLength {
		return services.SuggestResult{
			Suggestions: []model.Suggestion{},
			Message:     MessageQueryTooShort,
			QueryID:     queryID,
		}, nil
	}

	var suggestions []model.Suggestion
	var err error
	if query.Region != "" && !s.gazetteer.CoversRegion(query.Region) {
		suggestions, err = s.suggestFromCatalogue(normalizedQuery, query)
	} else {
		suggestions, err = s.suggestFromGazetteer(normalizedQuery, query)
	}
	if err != nil {
		return services.SuggestResult{}, err
	}

	if len(suggestions) == 0 {
		return services.SuggestResult{
			Suggestions: []model.Suggestion{},
			Message:     MessageNoLocations,
			QueryID:     queryID,
		}, nil
	}

	s.rank(normalizedQuery, suggestions)

	totalCount := len(suggestions)
	capped := suggestions
	if len(capped) > s.settings.Search.MaxSuggestions {
		capped = capped[:s.settings.Search.MaxSuggestions]
	}

	return services.SuggestResult{
		Suggestions: capped,
		TotalCount:  totalCount,
		Truncated:   totalCount > s.settings.Search.MaxSuggestions,
		QueryID:     queryID,
	}, nil
}

// suggestFromGazetteer matches the query against the gazetteer,
// deduplicates candidates by (name, district) and attaches a live
// facility count to each. Zero-count candidates are dropped.
func (s *Service) suggestFromGazetteer(normalizedQuery string, query services.SuggestQuery) ([]model.Suggestion, error) {
	locations, err := s.gazetteer.Lookup(normalizedQuery, query.Region, query.District)
	if err != nil {
		return nil, apperrors.NewGazetteerError(err)
	}

	candidates := dedupeLocations(locations)
	if len(candidates) == 0 {
		return nil, nil
	}

	counts, err := s.countCandidates(candidates, query.Type)
	if err != nil {
		return nil, err
	}

	suggestions := make([]model.Suggestion, 0, len(candidates))
	for i, candidate := range candidates {
		if counts[i] == 0 {
			continue
		}
		suggestions = append(suggestions, model.Suggestion{
			Name:          candidate.Name,
			District:      candidate.District,
			Region:        candidate.Region,
			FacilityCount: counts[i],
		})
	}
	return suggestions, nil
}

// suggestFromCatalogue serves regions without gazetteer coverage by
// grouping the facility catalogue itself by city.
func (s *Service) suggestFromCatalogue(normalizedQuery string, query services.SuggestQuery) ([]model.Suggestion, error) {
	suggestions, err := s.counter.SuggestionsByCity(normalizedQuery, query.Region, query.Type)
	if err != nil {
		return nil, apperrors.NewFacilityCountsError(err)
	}
	return suggestions, nil
}

// countCandidates fans the count lookups out over the worker pool. The
// lookups are independent; results land in a slice indexed by candidate
// so output ordering never depends on completion order. The first
// lookup error fails the batch.
func (s *Service) countCandidates(candidates []model.GazetteerLocation, typ model.FacilityType) ([]int, error) {
	counts := make([]int, len(candidates))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := range candidates {
		i := i
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			count, err := s.counter.CountInDistrict(candidates[i].District, typ)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			counts[i] = count
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, apperrors.NewFacilityCountsError(firstErr)
	}
	return counts, nil
}

// rank orders suggestions in place: a name exactly equal to the query
// first, then facility count descending, then name ascending so
// same-count candidates come out in a stable, deterministic order.
func (s *Service) rank(normalizedQuery string, suggestions []model.Suggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		iExact := polish.Normalize(suggestions[i].Name) == normalizedQuery
		jExact := polish.Normalize(suggestions[j].Name) == normalizedQuery
		if iExact != jExact {
			return iExact
		}
		if suggestions[i].FacilityCount != suggestions[j].FacilityCount {
			return suggestions[i].FacilityCount > suggestions[j].FacilityCount
		}
		return suggestions[i].Name < suggestions[j].Name
	})
}

// dedupeLocations keeps the first location for each (name, district)
// pair. A place name can repeat across districts; each distinct pair is
// its own suggestion candidate.
func dedupeLocations(locations []model.GazetteerLocation) []model.GazetteerLocation {
	seen := make(map[string]struct{}, len(locations))
	deduplicated := make([]model.GazetteerLocation, 0, len(locations))
	for _, loc := range locations {
		key := loc.Name + "\x00" + loc.District
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduplicated = append(deduplicated, loc)
	}
	return deduplicated
}
