package suggest

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carepoint/caresearch/config"
	apperrors "github.com/carepoint/caresearch/internal/errors"
	"github.com/carepoint/caresearch/internal/polish"
	"github.com/carepoint/caresearch/model"
	"github.com/carepoint/caresearch/services"
)

// --- Test Doubles ---

type fakeGazetteer struct {
	mu        sync.Mutex
	locations []model.GazetteerLocation
	covered   map[string]bool
	lookupErr error
	lookups   int
}

func (f *fakeGazetteer) Lookup(normalizedQuery, region, district string) ([]model.GazetteerLocation, error) {
	f.mu.Lock()
	f.lookups++
	f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	matches := make([]model.GazetteerLocation, 0)
	for _, loc := range f.locations {
		name := loc.NormalizedName
		if name == "" {
			name = polish.Normalize(loc.Name)
		}
		if normalizedQuery != "" && strings.Contains(name, normalizedQuery) {
			matches = append(matches, loc)
		}
	}
	return matches, nil
}

func (f *fakeGazetteer) CoversRegion(region string) bool {
	if f.covered == nil {
		return true
	}
	return f.covered[region]
}

type fakeCounter struct {
	mu          sync.Mutex
	counts      map[string]int // district -> count
	countErr    error
	countCalls  int
	cityGroups  []model.Suggestion
	cityErr     error
	cityCalls   int
	lastTypeArg model.FacilityType
}

func (f *fakeCounter) CountInDistrict(district string, typ model.FacilityType) (int, error) {
	f.mu.Lock()
	f.countCalls++
	f.lastTypeArg = typ
	f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.counts[district], nil
}

func (f *fakeCounter) SuggestionsByCity(normalizedQuery, region string, typ model.FacilityType) ([]model.Suggestion, error) {
	f.mu.Lock()
	f.cityCalls++
	f.mu.Unlock()
	if f.cityErr != nil {
		return nil, f.cityErr
	}
	return f.cityGroups, nil
}

func (f *fakeCounter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countCalls
}

// --- Helpers ---

func newTestService(t *testing.T, gaz *fakeGazetteer, counter *fakeCounter) *Service {
	t.Helper()
	service, err := NewService(gaz, counter, config.DefaultSettings())
	require.NoError(t, err)
	t.Cleanup(service.Close)
	return service
}

func location(name, district string) model.GazetteerLocation {
	return model.GazetteerLocation{Name: name, District: district, Region: "małopolskie"}
}

// --- Test Cases ---

func TestNewService(t *testing.T) {
	gaz := &fakeGazetteer{}
	counter := &fakeCounter{}

	_, err := NewService(nil, counter, config.DefaultSettings())
	assert.Error(t, err, "nil gazetteer must be rejected")

	_, err = NewService(gaz, nil, config.DefaultSettings())
	assert.Error(t, err, "nil counter must be rejected")

	_, err = NewService(gaz, counter, nil)
	assert.Error(t, err, "nil settings must be rejected")

	service, err := NewService(gaz, counter, config.DefaultSettings())
	require.NoError(t, err)
	service.Close()
}

func TestSuggest_MinimumQueryLengthGate(t *testing.T) {
	gaz := &fakeGazetteer{locations: []model.GazetteerLocation{location("Kraków", "Kraków")}}
	counter := &fakeCounter{counts: map[string]int{"Kraków": 3}}
	service := newTestService(t, gaz, counter)

	result, err := service.Suggest(services.SuggestQuery{Query: "k"})
	require.NoError(t, err)

	assert.Empty(t, result.Suggestions)
	assert.Equal(t, 0, result.TotalCount)
	assert.False(t, result.Truncated)
	assert.Equal(t, MessageQueryTooShort, result.Message)
	assert.Equal(t, 0, counter.calls(), "short queries must not reach the facility-count collaborator")
	assert.Equal(t, 0, gaz.lookups, "short queries must not reach the gazetteer")
}

func TestSuggest_MinimumLengthUsesNormalizedQuery(t *testing.T) {
	gaz := &fakeGazetteer{}
	counter := &fakeCounter{}
	service := newTestService(t, gaz, counter)

	// Whitespace padding does not count toward the minimum.
	result, err := service.Suggest(services.SuggestQuery{Query: "  k  "})
	require.NoError(t, err)
	assert.Equal(t, MessageQueryTooShort, result.Message)

	// Two diacritic characters do.
	_, err = service.Suggest(services.SuggestQuery{Query: "łó"})
	require.NoError(t, err)
	assert.Equal(t, 1, gaz.lookups)
}

func TestSuggest_CapAndTruncation(t *testing.T) {
	locations := make([]model.GazetteerLocation, 0, 8)
	counts := make(map[string]int)
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("Nowa Wieś %d", i)
		district := fmt.Sprintf("powiat%d", i)
		locations = append(locations, location(name, district))
		counts[district] = i + 1
	}
	gaz := &fakeGazetteer{locations: locations}
	counter := &fakeCounter{counts: counts}
	service := newTestService(t, gaz, counter)

	result, err := service.Suggest(services.SuggestQuery{Query: "nowa"})
	require.NoError(t, err)

	assert.Len(t, result.Suggestions, 5)
	assert.Equal(t, 8, result.TotalCount)
	assert.True(t, result.Truncated)
	// Count descending: the top suggestion has the biggest count.
	assert.Equal(t, 8, result.Suggestions[0].FacilityCount)
	assert.Equal(t, 4, result.Suggestions[4].FacilityCount)
}

func TestSuggest_ZeroCountFiltering(t *testing.T) {
	gaz := &fakeGazetteer{locations: []model.GazetteerLocation{
		location("Olkusz", "olkuski"),
		location("Olkusz Stary", "pusty"), // best textual match, no facilities
	}}
	counter := &fakeCounter{counts: map[string]int{"olkuski": 4, "pusty": 0}}
	service := newTestService(t, gaz, counter)

	result, err := service.Suggest(services.SuggestQuery{Query: "olkusz"})
	require.NoError(t, err)

	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "Olkusz", result.Suggestions[0].Name)
	assert.Equal(t, 1, result.TotalCount, "zero-count candidates are excluded before totalCount")
	assert.False(t, result.Truncated)
}

func TestSuggest_DeduplicatesByNameAndDistrict(t *testing.T) {
	gaz := &fakeGazetteer{locations: []model.GazetteerLocation{
		location("Nowa Wieś", "olkuski"),
		location("Nowa Wieś", "olkuski"), // duplicate pair
		location("Nowa Wieś", "krakowski"),
	}}
	counter := &fakeCounter{counts: map[string]int{"olkuski": 2, "krakowski": 3}}
	service := newTestService(t, gaz, counter)

	result, err := service.Suggest(services.SuggestQuery{Query: "nowa"})
	require.NoError(t, err)

	assert.Len(t, result.Suggestions, 2, "same name in distinct districts stays; exact duplicates collapse")
	assert.Equal(t, 2, counter.calls(), "duplicate pairs must not trigger extra count lookups")
}

func TestSuggest_Ranking(t *testing.T) {
	t.Run("count descending with name tie-break", func(t *testing.T) {
		gaz := &fakeGazetteer{locations: []model.GazetteerLocation{
			location("Brzeg Dolny", "d1"),
			location("Brzeg Górny", "d2"),
			location("Brzegowa", "d3"),
		}}
		counter := &fakeCounter{counts: map[string]int{"d1": 2, "d2": 5, "d3": 2}}
		service := newTestService(t, gaz, counter)

		result, err := service.Suggest(services.SuggestQuery{Query: "brzeg"})
		require.NoError(t, err)

		require.Len(t, result.Suggestions, 3)
		assert.Equal(t, "Brzeg Górny", result.Suggestions[0].Name)
		// Same count: name ascending keeps the order deterministic.
		assert.Equal(t, "Brzeg Dolny", result.Suggestions[1].Name)
		assert.Equal(t, "Brzegowa", result.Suggestions[2].Name)
	})

	t.Run("exact name match ranks first regardless of count", func(t *testing.T) {
		gaz := &fakeGazetteer{locations: []model.GazetteerLocation{
			location("Olkusz", "olkuski"),
			location("Olkuszowice", "inny"),
		}}
		counter := &fakeCounter{counts: map[string]int{"olkuski": 1, "inny": 99}}
		service := newTestService(t, gaz, counter)

		result, err := service.Suggest(services.SuggestQuery{Query: "Olkusz"})
		require.NoError(t, err)

		require.Len(t, result.Suggestions, 2)
		assert.Equal(t, "Olkusz", result.Suggestions[0].Name)
	})
}

func TestSuggest_NoMatches(t *testing.T) {
	gaz := &fakeGazetteer{locations: []model.GazetteerLocation{location("Kraków", "Kraków")}}
	counter := &fakeCounter{}
	service := newTestService(t, gaz, counter)

	result, err := service.Suggest(services.SuggestQuery{Query: "gdynia"})
	require.NoError(t, err)

	assert.Empty(t, result.Suggestions)
	assert.Equal(t, 0, result.TotalCount)
	assert.Equal(t, MessageNoLocations, result.Message)
	assert.Equal(t, 0, counter.calls())
}

func TestSuggest_CollaboratorFailures(t *testing.T) {
	t.Run("gazetteer failure fails the request", func(t *testing.T) {
		gaz := &fakeGazetteer{lookupErr: errors.New("connection reset")}
		counter := &fakeCounter{}
		service := newTestService(t, gaz, counter)

		_, err := service.Suggest(services.SuggestQuery{Query: "krakow"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrGazetteerUnavailable)
	})

	t.Run("count failure fails the whole request", func(t *testing.T) {
		gaz := &fakeGazetteer{locations: []model.GazetteerLocation{
			location("Olkusz", "olkuski"),
			location("Olkuszowice", "inny"),
		}}
		counter := &fakeCounter{countErr: errors.New("timeout")}
		service := newTestService(t, gaz, counter)

		_, err := service.Suggest(services.SuggestQuery{Query: "olkusz"})
		require.Error(t, err, "a failed count must not degrade to zero")
		assert.ErrorIs(t, err, apperrors.ErrFacilityCountsUnavailable)
	})
}

func TestSuggest_TypeFilterReachesCounter(t *testing.T) {
	gaz := &fakeGazetteer{locations: []model.GazetteerLocation{location("Olkusz", "olkuski")}}
	counter := &fakeCounter{counts: map[string]int{"olkuski": 2}}
	service := newTestService(t, gaz, counter)

	_, err := service.Suggest(services.SuggestQuery{Query: "olkusz", Type: model.TypeDayCare})
	require.NoError(t, err)
	assert.Equal(t, model.TypeDayCare, counter.lastTypeArg)
}

func TestSuggest_UncoveredRegionUsesCatalogue(t *testing.T) {
	gaz := &fakeGazetteer{covered: map[string]bool{"malopolskie": true}}
	counter := &fakeCounter{cityGroups: []model.Suggestion{
		{Name: "Radom", District: "radomski", Region: "mazowieckie", FacilityCount: 2},
		{Name: "Radomsko", District: "radomszczański", Region: "łódzkie", FacilityCount: 7},
	}}
	service := newTestService(t, gaz, counter)

	result, err := service.Suggest(services.SuggestQuery{Query: "radom", Region: "mazowieckie"})
	require.NoError(t, err)

	assert.Equal(t, 1, counter.cityCalls, "uncovered regions group the catalogue by city")
	assert.Equal(t, 0, gaz.lookups, "uncovered regions skip the gazetteer lookup")
	require.Len(t, result.Suggestions, 2)
	// Exact name match boost applies in catalogue mode too.
	assert.Equal(t, "Radom", result.Suggestions[0].Name)
}

func TestSuggest_CatalogueModeFailure(t *testing.T) {
	gaz := &fakeGazetteer{covered: map[string]bool{}}
	counter := &fakeCounter{cityErr: errors.New("store offline")}
	service := newTestService(t, gaz, counter)

	_, err := service.Suggest(services.SuggestQuery{Query: "radom", Region: "mazowieckie"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrFacilityCountsUnavailable)
}
