// Package scoring combines raw match signals into a weighted total with
// a faithful additive breakdown.
package scoring

import (
	"github.com/okian/encore/internal/domain/feature"
)

// Default scoring weights. Artist affinity is weighted higher than the
// other signals: a favorite-artist match is a stronger recommendation
// signal than generic tag overlap. Weights need not sum to 1; the
// artist component acts as a boost.
const (
	defaultContentWeight = 1.0
	defaultContextWeight = 1.0
	defaultArtistWeight  = 1.5
)

// Weights is the immutable scoring configuration. Swap the struct, not
// global state, to change policy.
type Weights struct {
	Content float64
	Context float64
	Artist  float64
}

// DefaultWeights returns the documented default policy.
func DefaultWeights() Weights {
	return Weights{
		Content: defaultContentWeight,
		Context: defaultContextWeight,
		Artist:  defaultArtistWeight,
	}
}

// Breakdown is the additive decomposition of a total score. Total is
// always the exact sum of the three components; no hidden terms. That
// invariant is what keeps explanations faithful.
type Breakdown struct {
	ContentScore float64 `json:"content_score"`
	ContextScore float64 `json:"context_score"`
	ArtistScore  float64 `json:"artist_score"`
	Total        float64 `json:"total"`
}

// Score applies the weights to a feature vector. Deterministic and
// pure; no normalization across events, so totals are comparable only
// within one ranking call.
func (w Weights) Score(v feature.Vector) Breakdown {
	b := Breakdown{
		ContentScore: w.Content * v.ContentOverlap,
		ContextScore: w.Context * v.ContextMatch,
		ArtistScore:  w.Artist * v.ArtistOverlap,
	}
	b.Total = b.ContentScore + b.ContextScore + b.ArtistScore
	return b
}
