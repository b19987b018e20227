// Package explain renders a score breakdown into a short human-readable
// justification. Components that contributed nothing are never
// mentioned, so users are not shown reasons that did not count.
package explain

import (
	"fmt"
	"strings"

	"github.com/okian/encore/internal/domain/feature"
	"github.com/okian/encore/internal/domain/scoring"
)

// Explain produces the explanation text for one ranked event. Pure
// formatting; never mutates its inputs. A component is mentioned only
// when its score is non-zero.
func Explain(v feature.Vector, b scoring.Breakdown) string {
	var reasons []string

	if b.ContentScore != 0 {
		noun := "genres"
		if v.ProfileGenres == 1 {
			noun = "genre"
		}
		reasons = append(reasons, fmt.Sprintf("matched %d of your %d favorite %s",
			v.MatchedGenres, v.ProfileGenres, noun))
	}

	if b.ContextScore != 0 {
		if v.CityMatch {
			reasons = append(reasons, "the event is in your city")
		}
		if v.LanguageMatch {
			reasons = append(reasons, "the event is in your preferred language")
		}
	}

	if b.ArtistScore != 0 {
		if v.MatchedArtists == 1 {
			reasons = append(reasons, "it features one of your favorite artists")
		} else {
			reasons = append(reasons, fmt.Sprintf("it features %d of your favorite artists", v.MatchedArtists))
		}
	}

	if len(reasons) == 0 {
		return "No specific match with your preferences."
	}

	text := strings.Join(reasons, "; ")
	return strings.ToUpper(text[:1]) + text[1:] + "."
}
