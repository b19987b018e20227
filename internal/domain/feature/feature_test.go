package feature_test

import (
	"testing"

	"github.com/okian/encore/internal/domain/feature"
	"github.com/okian/encore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtractor_ContentOverlap(t *testing.T) {
	Convey("Given an extractor with defaults", t, func() {
		x := feature.NewExtractor()

		Convey("When the event covers some of the user's genres", func() {
			profile := model.UserProfile{
				Username: "alice",
				City:     "NYC",
				Genres:   []string{"rock", "jazz"},
			}
			event := model.Event{ID: "e1", City: "LA", Genres: []string{"rock"}}

			v := x.Extract(&profile, &event)

			Convey("Then the overlap is relative to the user's genre count", func() {
				So(v.ContentOverlap, ShouldEqual, 0.5)
				So(v.MatchedGenres, ShouldEqual, 1)
				So(v.ProfileGenres, ShouldEqual, 2)
			})
		})

		Convey("When the user has no genres", func() {
			profile := model.UserProfile{Username: "bob", City: "NYC"}
			event := model.Event{ID: "e1", City: "NYC", Genres: []string{"rock"}}

			v := x.Extract(&profile, &event)

			Convey("Then the overlap is zero, not an error", func() {
				So(v.ContentOverlap, ShouldEqual, 0.0)
			})
		})

		Convey("When genres differ only in case and spacing", func() {
			profile := model.UserProfile{
				Username: "carol",
				City:     "NYC",
				Genres:   []string{" Rock ", "JAZZ"},
			}
			event := model.Event{ID: "e1", City: "NYC", Genres: []string{"rock", "jazz"}}

			v := x.Extract(&profile, &event)

			Convey("Then matching is case-insensitive", func() {
				So(v.ContentOverlap, ShouldEqual, 1.0)
				So(v.MatchedGenres, ShouldEqual, 2)
			})
		})

		Convey("When the profile repeats a genre", func() {
			profile := model.UserProfile{
				Username: "dave",
				City:     "NYC",
				Genres:   []string{"rock", "Rock", "jazz"},
			}
			event := model.Event{ID: "e1", City: "NYC", Genres: []string{"rock"}}

			v := x.Extract(&profile, &event)

			Convey("Then duplicates collapse before counting", func() {
				So(v.ProfileGenres, ShouldEqual, 2)
				So(v.ContentOverlap, ShouldEqual, 0.5)
			})
		})
	})
}

func TestExtractor_ContextMatch(t *testing.T) {
	Convey("Given an extractor with defaults", t, func() {
		x := feature.NewExtractor()
		profile := model.UserProfile{Username: "alice", City: "NYC", Language: "en"}

		Convey("When city and language both match", func() {
			event := model.Event{ID: "e1", City: "NYC", Language: "en"}
			v := x.Extract(&profile, &event)

			Convey("Then the context signal is capped at 1.0", func() {
				So(v.ContextMatch, ShouldEqual, 1.0)
				So(v.CityMatch, ShouldBeTrue)
				So(v.LanguageMatch, ShouldBeTrue)
			})
		})

		Convey("When only the language matches", func() {
			event := model.Event{ID: "e1", City: "LA", Language: "en"}
			v := x.Extract(&profile, &event)

			Convey("Then only the bonus applies", func() {
				So(v.ContextMatch, ShouldAlmostEqual, 0.2)
				So(v.CityMatch, ShouldBeFalse)
			})
		})

		Convey("When neither matches", func() {
			event := model.Event{ID: "e1", City: "LA", Language: "fr"}
			v := x.Extract(&profile, &event)

			So(v.ContextMatch, ShouldEqual, 0.0)
		})

		Convey("When the profile has no language", func() {
			bare := model.UserProfile{Username: "bob", City: "NYC"}
			event := model.Event{ID: "e1", City: "LA", Language: ""}
			v := x.Extract(&bare, &event)

			Convey("Then empty languages never count as a match", func() {
				So(v.LanguageMatch, ShouldBeFalse)
				So(v.ContextMatch, ShouldEqual, 0.0)
			})
		})

		Convey("When a custom bonus and cap are configured", func() {
			custom := feature.NewExtractor(
				feature.WithLanguageBonus(0.5),
				feature.WithContextCap(1.2),
			)
			event := model.Event{ID: "e1", City: "NYC", Language: "en"}
			v := custom.Extract(&profile, &event)

			So(v.ContextMatch, ShouldAlmostEqual, 1.2)
		})
	})
}

func TestExtractor_ArtistOverlap(t *testing.T) {
	Convey("Given an extractor with defaults", t, func() {
		x := feature.NewExtractor()

		Convey("When the event features one of two favorites", func() {
			profile := model.UserProfile{
				Username:        "alice",
				City:            "NYC",
				FavoriteArtists: []string{"X", "Y"},
			}
			event := model.Event{ID: "e1", City: "NYC", Artists: []string{"X", "Z"}}

			v := x.Extract(&profile, &event)

			So(v.ArtistOverlap, ShouldEqual, 0.5)
			So(v.MatchedArtists, ShouldEqual, 1)
		})

		Convey("When the user has no favorite artists", func() {
			profile := model.UserProfile{Username: "bob", City: "NYC"}
			event := model.Event{ID: "e1", City: "NYC", Artists: []string{"X"}}

			v := x.Extract(&profile, &event)

			Convey("Then the max(1, n) denominator keeps the signal at zero", func() {
				So(v.ArtistOverlap, ShouldEqual, 0.0)
			})
		})
	})
}

func TestExtractor_SignalBounds(t *testing.T) {
	Convey("Given a variety of profiles and events", t, func() {
		x := feature.NewExtractor()

		profiles := []model.UserProfile{
			{Username: "a", City: "NYC", Language: "en", Genres: []string{"rock"}, FavoriteArtists: []string{"X"}},
			{Username: "b", City: "LA"},
			{Username: "c", City: "Nicosia", Genres: []string{"laiko", "entehno", "rebetiko"}},
		}
		events := []model.Event{
			{ID: "e1", City: "NYC", Language: "en", Genres: []string{"rock", "jazz"}, Artists: []string{"X", "Y"}},
			{ID: "e2", City: "Nicosia", Language: "greek", Genres: []string{"laiko"}},
			{ID: "e3", City: "Berlin"},
		}

		Convey("Then every signal stays within [0, 1]", func() {
			for i := range profiles {
				for j := range events {
					v := x.Extract(&profiles[i], &events[j])
					So(v.ContentOverlap, ShouldBeBetweenOrEqual, 0.0, 1.0)
					So(v.ContextMatch, ShouldBeBetweenOrEqual, 0.0, 1.0)
					So(v.ArtistOverlap, ShouldBeBetweenOrEqual, 0.0, 1.0)
				}
			}
		})
	})
}
