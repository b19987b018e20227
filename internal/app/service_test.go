package app_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/okian/encore/internal/adapters/repository"
	"github.com/okian/encore/internal/app"
	"github.com/okian/encore/internal/domain/model"
	"github.com/okian/encore/internal/domain/scoring"
	"github.com/okian/encore/internal/domain/types"
	"github.com/okian/encore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func startedService(opts ...app.Option) (*app.Service, func()) {
	svc := app.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc, svc.Stop
}

func futureEvent(id, city string, daysAhead int, genres, artists []string) model.Event {
	return model.Event{
		ID:       id,
		Title:    "Event " + id,
		City:     city,
		Language: "en",
		Date:     time.Now().AddDate(0, 0, daysAhead),
		Genres:   genres,
		Artists:  artists,
	}
}

// enqueueAndWait submits events and polls until the workers have
// indexed all of them.
func enqueueAndWait(ctx context.Context, svc *app.Service, events ...model.Event) bool {
	for _, ev := range events {
		if !svc.Enqueue(ctx, ev) {
			return false
		}
	}
	want := len(events)
	deadline := time.After(2 * time.Second)
	for {
		if stats := svc.GetStats(); stats["totalEvents"] == want {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestService_IngestToRecommend(t *testing.T) {
	Convey("Given a started service with a profile and indexed events", t, func() {
		svc, stop := startedService()
		Reset(stop)
		ctx := context.Background()

		So(svc.SaveProfile(ctx, model.UserProfile{
			Username:        "alice",
			City:            "NYC",
			Language:        "en",
			Genres:          []string{"rock", "jazz"},
			FavoriteArtists: []string{"X"},
		}), ShouldBeNil)

		ok := enqueueAndWait(ctx, svc,
			futureEvent("a", "NYC", 7, []string{"rock"}, []string{"X"}),
			futureEvent("b", "LA", 7, []string{"jazz"}, nil),
		)
		So(ok, ShouldBeTrue)

		Convey("When recommending for the user", func() {
			result, err := svc.Recommend(ctx, "alice", types.RecommendQuery{})

			So(err, ShouldBeNil)
			So(result.Entries, ShouldHaveLength, 2)

			Convey("Then the in-city, artist-matched event wins", func() {
				So(result.Entries[0].Event.ID, ShouldEqual, "a")
				So(result.Entries[0].Breakdown.Total, ShouldEqual, 3.0)
				So(result.Entries[1].Event.ID, ShouldEqual, "b")
				So(result.Entries[1].Breakdown.Total, ShouldAlmostEqual, 0.7)
			})
		})

		Convey("When recommending for an unknown user", func() {
			_, err := svc.Recommend(ctx, "nobody", types.RecommendQuery{})

			Convey("Then the not-found error surfaces", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the request overrides the weights", func() {
			override := scoring.Weights{Content: 1, Context: 0, Artist: 0}
			result, err := svc.Recommend(ctx, "alice", types.RecommendQuery{Weights: &override})

			Convey("Then only the content signal contributes", func() {
				So(err, ShouldBeNil)
				So(result.Entries[0].Breakdown.Total, ShouldEqual, 0.5)
				So(result.Entries[1].Breakdown.Total, ShouldEqual, 0.5)
			})
		})
	})
}

func TestService_DateWindow(t *testing.T) {
	Convey("Given events spread across dates", t, func() {
		svc, stop := startedService()
		Reset(stop)
		ctx := context.Background()

		So(svc.SaveProfile(ctx, model.UserProfile{
			Username: "bob",
			City:     "NYC",
			Genres:   []string{"rock"},
		}), ShouldBeNil)

		soon := futureEvent("soon", "NYC", 3, []string{"rock"}, nil)
		later := futureEvent("later", "NYC", 30, []string{"rock"}, nil)
		past := futureEvent("past", "NYC", -3, []string{"rock"}, nil)
		So(enqueueAndWait(ctx, svc, soon, later, past), ShouldBeTrue)

		Convey("When recommending without a window", func() {
			result, err := svc.Recommend(ctx, "bob", types.RecommendQuery{})

			Convey("Then past events are never candidates", func() {
				So(err, ShouldBeNil)
				So(result.Entries, ShouldHaveLength, 2)
				for _, e := range result.Entries {
					So(e.Event.ID, ShouldNotEqual, "past")
				}
			})
		})

		Convey("When a date window is requested", func() {
			from := time.Now().AddDate(0, 0, 20)
			to := time.Now().AddDate(0, 0, 40)
			result, err := svc.Recommend(ctx, "bob", types.RecommendQuery{DateFrom: &from, DateTo: &to})

			Convey("Then only events inside the window remain", func() {
				So(err, ShouldBeNil)
				So(result.Entries, ShouldHaveLength, 1)
				So(result.Entries[0].Event.ID, ShouldEqual, "later")
			})
		})
	})
}

func TestService_Deduplication(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc, stop := startedService()
		Reset(stop)
		ctx := context.Background()

		Convey("When the same id is recorded twice", func() {
			So(svc.SeenAndRecord(ctx, "ev-1"), ShouldBeFalse)
			So(svc.SeenAndRecord(ctx, "ev-1"), ShouldBeTrue)
			So(svc.Size(), ShouldEqual, 1)

			Convey("And unrecording allows a retry", func() {
				svc.Unrecord(ctx, "ev-1")
				So(svc.SeenAndRecord(ctx, "ev-1"), ShouldBeFalse)
			})
		})
	})
}

func TestService_Vocabulary(t *testing.T) {
	Convey("Given a service with an indexed catalogue", t, func() {
		svc, stop := startedService()
		Reset(stop)
		ctx := context.Background()

		So(enqueueAndWait(ctx, svc,
			futureEvent("a", "NYC", 7, []string{"rock"}, []string{"Zebra", "alpha band"}),
			futureEvent("b", "LA", 7, []string{"jazz"}, []string{"ALPHA BAND", "Miles"}),
		), ShouldBeTrue)

		Convey("When asking for tag options", func() {
			tags := svc.TagOptions(ctx)

			Convey("Then the fixed vocabulary is returned", func() {
				So(tags, ShouldContain, "rock")
				So(tags, ShouldContain, "techno")
				So(tags, ShouldContain, "lang_greek")

				Convey("And mutating the copy does not leak back", func() {
					tags[0] = "mutated"
					So(svc.TagOptions(ctx)[0], ShouldNotEqual, "mutated")
				})
			})
		})

		Convey("When asking for artist options", func() {
			artists := svc.ArtistOptions(ctx)

			Convey("Then artists are unique and sorted case-insensitively", func() {
				So(artists, ShouldHaveLength, 3)
				So(strings.ToLower(artists[0]), ShouldEqual, "alpha band")
				So(artists[1], ShouldEqual, "Miles")
				So(artists[2], ShouldEqual, "Zebra")
			})
		})
	})
}

func TestService_Stats(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc, stop := startedService(app.WithWorkerCount(2), app.WithQueueSize(64))
		Reset(stop)
		ctx := context.Background()

		So(svc.SaveProfile(ctx, model.UserProfile{Username: "carol", City: "Nicosia"}), ShouldBeNil)
		So(enqueueAndWait(ctx, svc, futureEvent("a", "Nicosia", 7, nil, nil)), ShouldBeTrue)

		Convey("When reading stats", func() {
			stats := svc.GetStats()

			Convey("Then counters reflect the stores", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["workerCount"], ShouldEqual, 2)
				So(stats["totalEvents"], ShouldEqual, 1)
				So(stats["totalProfiles"], ShouldEqual, 1)
			})
		})
	})
}
