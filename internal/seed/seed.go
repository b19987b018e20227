// Package seed provides the demo event catalogue loaded at startup
// when seeding is enabled.
package seed

import (
	"time"

	"github.com/google/uuid"
	"github.com/okian/encore/internal/domain/model"
)

// Events returns the demo catalogue. Dates are placed a few weeks out
// so the events survive the future-only candidate filter.
func Events() []model.Event {
	now := time.Now()
	return []model.Event{
		{
			ID:       uuid.NewString(),
			Title:    "Limassol Rock Festival",
			City:     "Limassol",
			Language: "english",
			Date:     now.AddDate(0, 0, 14),
			Genres:   []string{"concert", "lang_english", "rock", "live", "festival"},
			Artists:  []string{"Imagine Dragons", "Arctic Monkeys"},
		},
		{
			ID:       uuid.NewString(),
			Title:    "Nicosia Techno Night",
			City:     "Nicosia",
			Language: "english",
			Date:     now.AddDate(0, 0, 21),
			Genres:   []string{"concert", "lang_english", "electronic", "techno", "club"},
			Artists:  []string{"Charlotte de Witte"},
		},
		{
			ID:       uuid.NewString(),
			Title:    "Paphos Greek Night",
			City:     "Paphos",
			Language: "greek",
			Date:     now.AddDate(0, 0, 28),
			Genres:   []string{"concert", "lang_greek", "laiko", "live"},
			Artists:  []string{"Antonis Remos"},
		},
		{
			ID:       uuid.NewString(),
			Title:    "Larnaca Jazz Evening",
			City:     "Larnaca",
			Language: "english",
			Date:     now.AddDate(0, 0, 35),
			Genres:   []string{"concert", "lang_english", "jazz", "soul", "live"},
			Artists:  []string{"Local Jazz Quartet"},
		},
	}
}
