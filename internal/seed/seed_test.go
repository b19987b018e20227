package seed_test

import (
	"testing"
	"time"

	"github.com/okian/encore/internal/seed"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEvents(t *testing.T) {
	Convey("Given the demo catalogue", t, func() {
		events := seed.Events()

		Convey("Then every event is valid and in the future", func() {
			So(events, ShouldNotBeEmpty)
			for _, ev := range events {
				So(ev.Validate(), ShouldBeNil)
				So(ev.Date.After(time.Now()), ShouldBeTrue)
			}
		})

		Convey("And ids are unique", func() {
			ids := make(map[string]bool)
			for _, ev := range events {
				So(ids[ev.ID], ShouldBeFalse)
				ids[ev.ID] = true
			}
		})

		Convey("And the catalogue spans more than one city", func() {
			cities := make(map[string]bool)
			for _, ev := range events {
				cities[ev.City] = true
			}
			So(len(cities), ShouldBeGreaterThan, 1)
		})
	})
}
