package journal_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/mergington/internal/domain/journal"
	"github.com/okian/mergington/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func event(i int) model.RosterEvent {
	return model.RosterEvent{
		ID:       fmt.Sprintf("evt-%d", i),
		Kind:     model.EventSignedUp,
		Activity: "Chess Club",
		Email:    fmt.Sprintf("s%d@mergington.edu", i),
	}
}

func TestJournal(t *testing.T) {
	Convey("Given a journal bounded to three events", t, func() {
		ctx := context.Background()
		j := journal.New(journal.WithMaxSize(3))

		Convey("When it is empty", func() {
			So(j.Size(), ShouldEqual, 0)
			So(j.Recent(ctx, 10), ShouldBeEmpty)
		})

		Convey("When two events are recorded", func() {
			So(j.Record(ctx, event(1)), ShouldBeNil)
			So(j.Record(ctx, event(2)), ShouldBeNil)

			Convey("Then they are returned newest first", func() {
				got := j.Recent(ctx, 0)
				So(len(got), ShouldEqual, 2)
				So(got[0].ID, ShouldEqual, "evt-2")
				So(got[1].ID, ShouldEqual, "evt-1")
			})
		})

		Convey("When more events than the bound are recorded", func() {
			for i := 1; i <= 5; i++ {
				So(j.Record(ctx, event(i)), ShouldBeNil)
			}

			Convey("Then the oldest are evicted", func() {
				So(j.Size(), ShouldEqual, 3)
				got := j.Recent(ctx, 3)
				So(got[0].ID, ShouldEqual, "evt-5")
				So(got[2].ID, ShouldEqual, "evt-3")
			})

			Convey("And Recent honours n", func() {
				got := j.Recent(ctx, 1)
				So(len(got), ShouldEqual, 1)
				So(got[0].ID, ShouldEqual, "evt-5")
			})
		})

		Convey("When an event has no id", func() {
			err := j.Record(ctx, model.RosterEvent{Activity: "Chess Club", Kind: model.EventCancelled})

			Convey("Then it is rejected", func() {
				So(err, ShouldEqual, journal.ErrInvalidEvent)
				So(j.Size(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a journal with the default bound", t, func() {
		ctx := context.Background()
		j := journal.New(journal.WithMaxSize(0))

		Convey("When recording concurrently", func() {
			var wg sync.WaitGroup
			for i := 0; i < 100; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_ = j.Record(ctx, event(i))
				}(i)
			}
			wg.Wait()

			So(j.Size(), ShouldEqual, 100)
		})
	})
}
