package gazetteer

import "github.com/carepoint/caresearch/internal/polish"

// canonicalRegions maps URL-slug region names to their canonical
// display spelling. Keys are the normalized form, so both slugs and
// display names resolve.
var canonicalRegions = map[string]string{
	"dolnoslaskie":        "dolnośląskie",
	"kujawsko-pomorskie":  "kujawsko-pomorskie",
	"lubelskie":           "lubelskie",
	"lubuskie":            "lubuskie",
	"lodzkie":             "łódzkie",
	"malopolskie":         "małopolskie",
	"mazowieckie":         "mazowieckie",
	"opolskie":            "opolskie",
	"podkarpackie":        "podkarpackie",
	"podlaskie":           "podlaskie",
	"pomorskie":           "pomorskie",
	"slaskie":             "śląskie",
	"swietokrzyskie":      "świętokrzyskie",
	"warminsko-mazurskie": "warmińsko-mazurskie",
	"wielkopolskie":       "wielkopolskie",
	"zachodniopomorskie":  "zachodniopomorskie",
}

// CanonicalRegion resolves a region given as a URL slug or display name
// to its canonical display spelling. Unknown names pass through
// unchanged.
func CanonicalRegion(name string) string {
	if canonical, ok := canonicalRegions[polish.Normalize(name)]; ok {
		return canonical
	}
	return name
}

// RegionSlug converts a region name to its URL slug form.
func RegionSlug(name string) string {
	return polish.Normalize(name)
}
