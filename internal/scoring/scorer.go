// Package scoring computes the relevance of a facility record against a
// free-text query. Fields contribute independently and additively, with
// location fields weighted above facility names.
package scoring

import (
	"strings"

	"github.com/carepoint/caresearch/internal/polish"
)

// SearchableFields holds the named text attributes of a candidate
// record. Any field may be empty; empty fields contribute nothing.
type SearchableFields struct {
	FacilityName string
	CityName     string
	CommuneName  string
	DistrictName string
}

// Field weights. Exact and substring bonuses for the same field are
// mutually exclusive; exact wins.
const (
	cityExactScore       = 100
	cityContainsScore    = 50
	communeExactScore    = 80
	communeContainsScore = 40

	districtExactScore    = 60
	districtStrongScore   = 55
	districtDecentScore   = 40
	districtContainsScore = 30

	facilityNameContainsScore = 20
)

// Prefix-similarity thresholds for district matching. Polish grammar
// inflects a city noun into an adjectival district name with a shared
// stem and a changed suffix ("olkusz" -> "olkuski"), so a long common
// prefix recovers matches plain substring checks miss.
const (
	strongPrefixSimilarity = 0.75
	strongPrefixMinChars   = 4
	decentPrefixSimilarity = 0.6
	decentPrefixMinChars   = 3
)

// Score returns a non-negative relevance score for fields against
// query. Zero means no match. Both sides are normalized before
// comparison; callers should not invoke Score with an empty query, but
// if they do the result is a deterministic 0.
func Score(query string, fields SearchableFields) int {
	normalizedQuery := polish.Normalize(query)
	if normalizedQuery == "" {
		return 0
	}

	score := 0
	score += fieldScore(normalizedQuery, fields.CityName, cityExactScore, cityContainsScore)
	score += fieldScore(normalizedQuery, fields.CommuneName, communeExactScore, communeContainsScore)
	score += districtScore(normalizedQuery, fields.DistrictName)

	// Facility names are the weakest signal: substring only, no exact bonus.
	if name := polish.Normalize(fields.FacilityName); name != "" && strings.Contains(name, normalizedQuery) {
		score += facilityNameContainsScore
	}

	return score
}

// fieldScore applies the exact-then-substring ladder for a single
// field. Exact match short-circuits so a field never collects both
// bonuses.
func fieldScore(normalizedQuery, field string, exactScore, containsScore int) int {
	normalized := polish.Normalize(field)
	if normalized == "" {
		return 0
	}
	if normalized == normalizedQuery {
		return exactScore
	}
	if strings.Contains(normalized, normalizedQuery) {
		return containsScore
	}
	return 0
}

// districtScore handles noun-vs-adjective suffix variation between a
// queried place name and its district name.
func districtScore(normalizedQuery, district string) int {
	normalized := polish.Normalize(district)
	if normalized == "" {
		return 0
	}
	if normalized == normalizedQuery {
		return districtExactScore
	}

	prefixLen := commonPrefixLen(normalizedQuery, normalized)
	similarity := float64(prefixLen) / float64(len([]rune(normalizedQuery)))

	switch {
	case similarity >= strongPrefixSimilarity && prefixLen >= strongPrefixMinChars:
		return districtStrongScore
	case similarity >= decentPrefixSimilarity && prefixLen >= decentPrefixMinChars:
		return districtDecentScore
	case strings.Contains(normalized, normalizedQuery):
		return districtContainsScore
	}
	return 0
}

// commonPrefixLen counts matching leading runes, stopping at the first
// difference.
func commonPrefixLen(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	n := len(ra)
	if len(rb) < n {
		n = len(rb)
	}
	count := 0
	for i := 0; i < n; i++ {
		if ra[i] != rb[i] {
			break
		}
		count++
	}
	return count
}
