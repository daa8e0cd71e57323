package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/ninebox/internal/adapters/repository"
	"github.com/okian/ninebox/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func makePerson(id string, perf, pot model.Rating) *model.Person {
	return &model.Person{ID: id, Performance: perf, Potential: pot}
}

func TestRosterStoreLoad(t *testing.T) {
	Convey("Given an empty roster store", t, func() {
		ctx := context.Background()
		store := repository.NewRosterStore()

		Convey("When loading a valid roster", func() {
			err := store.Load(ctx, []*model.Person{
				makePerson("a", model.RatingMedium, model.RatingMedium),
				makePerson("b", model.RatingHigh, model.RatingHigh),
			})

			Convey("Then positions and originals are stamped", func() {
				So(err, ShouldBeNil)
				a, err := store.Get(ctx, "a")
				So(err, ShouldBeNil)
				So(a.Position, ShouldEqual, 5)
				So(a.OriginalPosition, ShouldEqual, 5)
				b, err := store.Get(ctx, "b")
				So(err, ShouldBeNil)
				So(b.Position, ShouldEqual, 9)
			})
		})

		Convey("When loading duplicate ids", func() {
			err := store.Load(ctx, []*model.Person{
				makePerson("a", model.RatingLow, model.RatingLow),
				makePerson("a", model.RatingHigh, model.RatingHigh),
			})

			Convey("Then it fails with a validation error", func() {
				So(errors.Is(err, repository.ErrValidation), ShouldBeTrue)
			})
		})

		Convey("When loading an unrecognized rating", func() {
			err := store.Load(ctx, []*model.Person{
				{ID: "a", Performance: "stellar", Potential: model.RatingLow},
			})

			Convey("Then it fails with a validation error", func() {
				So(errors.Is(err, repository.ErrValidation), ShouldBeTrue)
			})
		})

		Convey("When loading mutates the caller's slice afterwards", func() {
			in := []*model.Person{makePerson("a", model.RatingLow, model.RatingLow)}
			So(store.Load(ctx, in), ShouldBeNil)
			in[0].Notes = "scribbled outside"

			Convey("Then the store holds its own copy", func() {
				a, err := store.Get(ctx, "a")
				So(err, ShouldBeNil)
				So(a.Notes, ShouldBeEmpty)
			})
		})
	})
}

func TestRosterStoreMutations(t *testing.T) {
	Convey("Given a loaded roster store", t, func() {
		ctx := context.Background()
		store := repository.NewRosterStore()
		So(store.Load(ctx, []*model.Person{
			makePerson("a", model.RatingMedium, model.RatingMedium),
			makePerson("b", model.RatingLow, model.RatingLow),
		}), ShouldBeNil)

		Convey("When moving a person to a valid cell", func() {
			p, err := store.SetPosition(ctx, "a", 9)

			Convey("Then position and ratings follow the cell", func() {
				So(err, ShouldBeNil)
				So(p.Position, ShouldEqual, 9)
				So(p.Performance, ShouldEqual, model.RatingHigh)
				So(p.Potential, ShouldEqual, model.RatingHigh)
				So(p.OriginalPosition, ShouldEqual, 5)
			})
		})

		Convey("When moving to an out-of-range cell", func() {
			_, err := store.SetPosition(ctx, "a", 10)

			Convey("Then it fails with a validation error", func() {
				So(errors.Is(err, repository.ErrValidation), ShouldBeTrue)
			})
		})

		Convey("When moving an unknown person", func() {
			_, err := store.SetPosition(ctx, "ghost", 5)

			Convey("Then it fails with not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When setting notes", func() {
			So(store.SetNotes(ctx, "b", "good performer"), ShouldBeNil)

			Convey("Then the note is stored on the person", func() {
				b, err := store.Get(ctx, "b")
				So(err, ShouldBeNil)
				So(b.Notes, ShouldEqual, "good performer")
			})
		})

		Convey("When setting notes beyond the configured cap", func() {
			small := repository.NewRosterStore(repository.WithMaxNoteLength(4))
			So(small.Load(ctx, []*model.Person{makePerson("a", model.RatingLow, model.RatingLow)}), ShouldBeNil)
			err := small.SetNotes(ctx, "a", "too long for the cap")

			Convey("Then it fails with a validation error", func() {
				So(errors.Is(err, repository.ErrValidation), ShouldBeTrue)
			})
		})
	})
}

func TestRosterStoreListOrder(t *testing.T) {
	Convey("Given a store loaded with several people", t, func() {
		ctx := context.Background()
		store := repository.NewRosterStore()
		So(store.Load(ctx, []*model.Person{
			makePerson("c", model.RatingLow, model.RatingLow),
			makePerson("a", model.RatingMedium, model.RatingMedium),
			makePerson("b", model.RatingHigh, model.RatingHigh),
		}), ShouldBeNil)

		Convey("When listing after mutations", func() {
			_, err := store.SetPosition(ctx, "a", 1)
			So(err, ShouldBeNil)
			people := store.List(ctx)

			Convey("Then import order is preserved", func() {
				So(len(people), ShouldEqual, 3)
				So(people[0].ID, ShouldEqual, "c")
				So(people[1].ID, ShouldEqual, "a")
				So(people[2].ID, ShouldEqual, "b")
			})
		})
	})
}
