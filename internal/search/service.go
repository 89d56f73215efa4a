// Package search implements the facility search service: it scores the
// in-memory catalogue against a free-text query and returns ranked,
// score-stripped results.
package search

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carepoint/caresearch/config"
	"github.com/carepoint/caresearch/internal/scoring"
	"github.com/carepoint/caresearch/model"
	"github.com/carepoint/caresearch/services"
	"github.com/carepoint/caresearch/store"
)

// Service implements services.Searcher over the facility store.
type Service struct {
	facilityStore *store.FacilityStore
	settings      *config.Settings
}

// NewService creates a new search Service.
func NewService(facilityStore *store.FacilityStore, settings *config.Settings) (*Service, error) {
	if facilityStore == nil {
		return nil, fmt.Errorf("facility store cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	return &Service{
		facilityStore: facilityStore,
		settings:      settings,
	}, nil
}

// candidateHit pairs a facility with its relevance score while ranking.
// The score never leaves this package.
type candidateHit struct {
	facility model.Facility
	score    int
}

// Search scores every facility against the query, drops non-matches,
// sorts by score and paginates. An empty query lists the whole
// catalogue (subject to the type filter) in name order.
func (s *Service) Search(query services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()

	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = s.settings.Search.DefaultPageSize
	}

	trimmedQuery := strings.TrimSpace(query.Query)
	browsing := trimmedQuery == ""

	candidates := make([]candidateHit, 0)
	for _, facility := range s.facilityStore.All() {
		if !facility.MatchesType(query.Type) {
			continue
		}
		if browsing {
			candidates = append(candidates, candidateHit{facility: facility})
			continue
		}
		score := scoring.Score(trimmedQuery, scoring.SearchableFields{
			FacilityName: facility.Name,
			CityName:     facility.City,
			CommuneName:  facility.Commune,
			DistrictName: facility.District,
		})
		if score == 0 {
			continue
		}
		candidates = append(candidates, candidateHit{facility: facility, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].facility.Name < candidates[j].facility.Name
	})

	total := len(candidates)
	startIndex := (page - 1) * pageSize
	endIndex := startIndex + pageSize
	if startIndex > total {
		startIndex = total
	}
	if endIndex > total {
		endIndex = total
	}

	hits := make([]model.Facility, 0, endIndex-startIndex)
	for _, candidate := range candidates[startIndex:endIndex] {
		hits = append(hits, candidate.facility)
	}

	return services.SearchResult{
		Hits:     hits,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Took:     time.Since(startTime).Milliseconds(),
		QueryID:  uuid.New().String(),
	}, nil
}
