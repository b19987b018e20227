// Package feature computes the raw match signals between a user profile
// and a candidate event. Extraction is a pure function over its inputs;
// every signal is bounded to [0, 1], which the scorer relies on.
package feature

import (
	"strings"

	"github.com/okian/encore/internal/domain/model"
)

// Default context-signal policy. The language bonus is a documented
// default, not a discovered constant; it is tunable via options.
const (
	defaultLanguageBonus = 0.2
	defaultContextCap    = 1.0
)

// Vector holds the per-(profile, event) signals plus the raw counts the
// explainer needs to phrase them. Ephemeral; recomputed every request.
type Vector struct {
	// ContentOverlap is the share of the user's genres present on the
	// event: |G_u ∩ G_e| / |G_u|. Deliberately not Jaccard, so the
	// explanation reads "matched 2 of your 3 favorite genres".
	ContentOverlap float64

	// ContextMatch combines city match (dominant) with a small language
	// bonus, capped at the configured ceiling.
	ContextMatch float64

	// ArtistOverlap is |A_u ∩ A_e| / max(1, |A_u|).
	ArtistOverlap float64

	MatchedGenres  int
	ProfileGenres  int
	MatchedArtists int
	CityMatch      bool
	LanguageMatch  bool
}

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithLanguageBonus sets the context bonus applied on a language match.
func WithLanguageBonus(bonus float64) Option {
	return func(x *Extractor) {
		if bonus >= 0 {
			x.languageBonus = bonus
		}
	}
}

// WithContextCap sets the ceiling for the combined context signal.
func WithContextCap(cap float64) Option {
	return func(x *Extractor) {
		if cap > 0 {
			x.contextCap = cap
		}
	}
}

// Extractor computes feature vectors. Stateless after construction and
// safe for concurrent use.
type Extractor struct {
	languageBonus float64
	contextCap    float64
}

// NewExtractor creates an extractor with the default context policy.
func NewExtractor(opts ...Option) *Extractor {
	x := &Extractor{
		languageBonus: defaultLanguageBonus,
		contextCap:    defaultContextCap,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Extract computes the feature vector for one (profile, event) pair.
// Total for well-formed inputs: empty sets yield zero overlap, not an
// error.
func (x *Extractor) Extract(profile *model.UserProfile, event *model.Event) Vector {
	v := Vector{ProfileGenres: len(normalizeSet(profile.Genres))}

	v.MatchedGenres = overlapCount(profile.Genres, event.Genres)
	if v.ProfileGenres > 0 {
		v.ContentOverlap = float64(v.MatchedGenres) / float64(v.ProfileGenres)
	}

	v.CityMatch = equalFold(profile.City, event.City)
	v.LanguageMatch = profile.Language != "" && equalFold(profile.Language, event.Language)
	if v.CityMatch {
		v.ContextMatch = 1.0
	}
	if v.LanguageMatch {
		v.ContextMatch += x.languageBonus
	}
	if v.ContextMatch > x.contextCap {
		v.ContextMatch = x.contextCap
	}

	v.MatchedArtists = overlapCount(profile.FavoriteArtists, event.Artists)
	denom := len(normalizeSet(profile.FavoriteArtists))
	if denom < 1 {
		denom = 1
	}
	v.ArtistOverlap = float64(v.MatchedArtists) / float64(denom)

	return v
}

// normalizeSet lowercases and trims values, dropping empties and
// duplicates. Matching is case-insensitive, as in the tag vocabulary.
func normalizeSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func overlapCount(a, b []string) int {
	as := normalizeSet(a)
	bs := normalizeSet(b)
	n := 0
	for v := range as {
		if _, ok := bs[v]; ok {
			n++
		}
	}
	return n
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
