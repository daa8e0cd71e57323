package tracking_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/ninebox/internal/domain/tracking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLedgerNetChange(t *testing.T) {
	Convey("Given an empty change ledger", t, func() {
		ctx := context.Background()
		ledger := tracking.NewLedger()

		Convey("When a person first diverges from the original cell", func() {
			rec := ledger.RecordMove(ctx, "a", 5, 9)

			Convey("Then one entry exists with from pinned to the original", func() {
				So(rec, ShouldNotBeNil)
				So(rec.From, ShouldEqual, 5)
				So(rec.To, ShouldEqual, 9)
				So(ledger.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When the person keeps moving", func() {
			ledger.RecordMove(ctx, "a", 5, 9)
			ledger.RecordMove(ctx, "a", 5, 3)
			rec := ledger.RecordMove(ctx, "a", 5, 7)

			Convey("Then still exactly one entry, from untouched, to latest", func() {
				So(ledger.Len(ctx), ShouldEqual, 1)
				So(rec.From, ShouldEqual, 5)
				So(rec.To, ShouldEqual, 7)
			})
		})

		Convey("When the person returns to the original cell", func() {
			ledger.RecordMove(ctx, "a", 5, 9)
			ledger.RecordMove(ctx, "a", 5, 3)
			rec := ledger.RecordMove(ctx, "a", 5, 5)

			Convey("Then the entry disappears regardless of intermediate moves", func() {
				So(rec, ShouldBeNil)
				So(ledger.Len(ctx), ShouldEqual, 0)
				So(ledger.Has(ctx, "a"), ShouldBeFalse)
			})
		})

		Convey("When a move lands directly on the original cell with no entry", func() {
			rec := ledger.RecordMove(ctx, "a", 5, 5)

			Convey("Then nothing is created", func() {
				So(rec, ShouldBeNil)
				So(ledger.Len(ctx), ShouldEqual, 0)
			})
		})
	})
}

func TestLedgerOrdering(t *testing.T) {
	Convey("Given several people moving", t, func() {
		ctx := context.Background()
		ledger := tracking.NewLedger()

		ledger.RecordMove(ctx, "b", 5, 1)
		ledger.RecordMove(ctx, "a", 5, 9)
		ledger.RecordMove(ctx, "c", 5, 3)

		Convey("When listing changes", func() {
			list := ledger.List(ctx)

			Convey("Then entries come in first-became-modified order", func() {
				So(len(list), ShouldEqual, 3)
				So(list[0].PersonID, ShouldEqual, "b")
				So(list[1].PersonID, ShouldEqual, "a")
				So(list[2].PersonID, ShouldEqual, "c")
			})
		})

		Convey("When a person in the middle reverts and diverges again", func() {
			ledger.RecordMove(ctx, "a", 5, 5)
			ledger.RecordMove(ctx, "a", 5, 2)
			list := ledger.List(ctx)

			Convey("Then they rejoin at the end of the order", func() {
				So(len(list), ShouldEqual, 3)
				So(list[0].PersonID, ShouldEqual, "b")
				So(list[1].PersonID, ShouldEqual, "c")
				So(list[2].PersonID, ShouldEqual, "a")
			})
		})

		Convey("When later moves update an existing entry", func() {
			ledger.RecordMove(ctx, "b", 5, 8)
			list := ledger.List(ctx)

			Convey("Then the order does not reshuffle", func() {
				So(list[0].PersonID, ShouldEqual, "b")
				So(list[0].To, ShouldEqual, 8)
			})
		})
	})
}

func TestLedgerClock(t *testing.T) {
	Convey("Given a ledger with a fixed clock", t, func() {
		ctx := context.Background()
		fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		ledger := tracking.NewLedger(tracking.WithClock(func() time.Time { return fixed }))

		Convey("When recording a move", func() {
			rec := ledger.RecordMove(ctx, "a", 5, 9)

			Convey("Then the timestamp comes from the clock", func() {
				So(rec.ModifiedAt, ShouldResemble, fixed)
			})
		})
	})
}
