package app

import (
	"context"
	"sort"
	"strings"
)

// tagOptions is the fixed genre/tag vocabulary offered by the admin and
// onboarding forms. Scoring does not depend on this list; it only keeps
// both sides of the data entry consistent.
var tagOptions = []string{
	"concert",
	"lang_greek",
	"lang_english",
	"laiko",
	"entehno",
	"rebetiko",
	"greek_pop",
	"greek_rock",
	"rock",
	"pop",
	"indie",
	"alternative",
	"metal",
	"jazz",
	"soul",
	"rnb",
	"electronic",
	"edm",
	"techno",
	"house",
	"latin",
	"reggaeton",
	"reggae",
	"classical",
	"acoustic",
	"instrumental",
	"live",
	"festival",
	"club",
}

// TagOptions returns the tag vocabulary for dropdowns and checkboxes.
func (s *Service) TagOptions(_ context.Context) []string {
	out := make([]string, len(tagOptions))
	copy(out, tagOptions)
	return out
}

// ArtistOptions returns the unique artists across the current
// catalogue, sorted case-insensitively.
func (s *Service) ArtistOptions(ctx context.Context) []string {
	seen := make(map[string]string)
	for _, ev := range s.events.List(ctx) {
		for _, a := range ev.Artists {
			a = strings.TrimSpace(a)
			if a == "" {
				continue
			}
			seen[strings.ToLower(a)] = a
		}
	}

	out := make([]string, 0, len(seen))
	for _, a := range seen {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
