package dedupe_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/okian/encore/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeduper_SeenAndRecord(t *testing.T) {
	Convey("Given a fresh deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()
		ctx := context.Background()

		Convey("When recording a new id", func() {
			seen := d.SeenAndRecord(ctx, "ev-1")

			Convey("Then it is reported as new", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again reports it as seen", func() {
				So(d.SeenAndRecord(ctx, "ev-1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an id", func() {
			d.SeenAndRecord(ctx, "ev-1")
			d.Unrecord(ctx, "ev-1")

			Convey("Then it can be recorded again", func() {
				So(d.SeenAndRecord(ctx, "ev-1"), ShouldBeFalse)
			})
		})

		Convey("When unrecording an unknown id", func() {
			d.Unrecord(ctx, "never-seen")

			Convey("Then nothing changes", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})
	})
}

func TestDeduper_BoundedEviction(t *testing.T) {
	Convey("Given a deduper bounded to 3 ids", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			d.SeenAndRecord(ctx, "ev-"+strconv.Itoa(i))
		}

		Convey("When a fourth id arrives", func() {
			d.SeenAndRecord(ctx, "ev-3")

			Convey("Then the oldest id is evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "ev-0"), ShouldBeFalse) // forgotten
				So(d.SeenAndRecord(ctx, "ev-3"), ShouldBeTrue)  // still known
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		ctx := context.Background()

		Convey("When many ids are recorded", func() {
			for i := 0; i < 1000; i++ {
				d.SeenAndRecord(ctx, "ev-"+strconv.Itoa(i))
			}

			Convey("Then nothing is evicted", func() {
				So(d.Size(), ShouldEqual, 1000)
			})
		})
	})
}
