// Package ranking orders scored events deterministically.
package ranking

import (
	"sort"

	"github.com/okian/encore/internal/domain/feature"
	"github.com/okian/encore/internal/domain/model"
	"github.com/okian/encore/internal/domain/scoring"
)

// Scored pairs an event with its score breakdown and the vector it was
// scored from.
type Scored struct {
	Event     model.Event
	Vector    feature.Vector
	Breakdown scoring.Breakdown
}

// Rank sorts by total descending, breaking ties by ascending event id
// so repeated calls on identical inputs return identical order. When
// limit > 0 the result is truncated after sorting; truncation never
// changes the relative order of kept entries. The input slice is not
// mutated. An empty candidate set yields an empty result.
func Rank(scored []Scored, limit int) []Scored {
	out := make([]Scored, len(scored))
	copy(out, scored)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Breakdown.Total != out[j].Breakdown.Total {
			return out[i].Breakdown.Total > out[j].Breakdown.Total
		}
		return out[i].Event.ID < out[j].Event.ID
	})

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
