package roster_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/okian/ninebox/internal/adapters/roster"
	service "github.com/okian/ninebox/internal/app"
	"github.com/okian/ninebox/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleCSV = `id,name,department,location,job level,manager,performance,potential,gender
p1,Alice,Eng,Berlin,IC3,mgr-1,High,High,female
p2,Bob,Sales,London,IC2,mgr-2,Medium,Low,male
p3,Cara,Eng,Berlin,M1,,Low,Medium,female
`

func TestReadRoster(t *testing.T) {
	Convey("Given a well-formed roster file", t, func() {
		Convey("When reading it", func() {
			people, err := roster.Read(strings.NewReader(sampleCSV))

			Convey("Then people parse with normalized columns and attrs", func() {
				So(err, ShouldBeNil)
				So(len(people), ShouldEqual, 3)

				So(people[0].ID, ShouldEqual, "p1")
				So(people[0].Name, ShouldEqual, "Alice")
				So(people[0].JobLevel, ShouldEqual, "IC3")
				So(people[0].Performance, ShouldEqual, model.RatingHigh)
				So(people[0].Attrs["gender"], ShouldEqual, "female")

				So(people[1].Potential, ShouldEqual, model.RatingLow)
				So(people[2].Manager, ShouldBeEmpty)
			})
		})
	})

	Convey("Given malformed roster files", t, func() {
		Convey("When a required column is missing", func() {
			_, err := roster.Read(strings.NewReader("id,name\np1,Alice\n"))

			Convey("Then import fails", func() {
				So(errors.Is(err, roster.ErrImport), ShouldBeTrue)
			})
		})

		Convey("When a rating is unrecognized", func() {
			_, err := roster.Read(strings.NewReader("id,performance,potential\np1,great,high\n"))

			Convey("Then import fails before reaching the core", func() {
				So(errors.Is(err, roster.ErrImport), ShouldBeTrue)
			})
		})

		Convey("When an id repeats", func() {
			_, err := roster.Read(strings.NewReader("id,performance,potential\np1,high,high\np1,low,low\n"))

			Convey("Then import fails", func() {
				So(errors.Is(err, roster.ErrImport), ShouldBeTrue)
			})
		})

		Convey("When current_position contradicts the ratings", func() {
			_, err := roster.Read(strings.NewReader("id,performance,potential,current_position\np1,high,high,3\n"))

			Convey("Then import fails", func() {
				So(errors.Is(err, roster.ErrImport), ShouldBeTrue)
			})
		})
	})
}

func TestRoundTrip(t *testing.T) {
	Convey("Given a session whose roster was imported from CSV", t, func() {
		ctx := context.Background()
		people, err := roster.Read(strings.NewReader(sampleCSV))
		So(err, ShouldBeNil)

		svc := service.New()
		id, err := svc.Begin(ctx, people, "sample.csv")
		So(err, ShouldBeNil)

		// Shuffle some people around, including a note on a mover.
		_, _, err = svc.Move(ctx, id, "p2", 7)
		So(err, ShouldBeNil)
		So(svc.SetNotes(ctx, id, "p2", "stretch assignment"), ShouldBeNil)
		_, _, err = svc.Move(ctx, id, "p3", 1)
		So(err, ShouldBeNil)

		Convey("When exporting and re-importing", func() {
			records, err := svc.Export(ctx, id)
			So(err, ShouldBeNil)

			var buf bytes.Buffer
			So(roster.Write(&buf, records), ShouldBeNil)
			out := buf.String()

			reimported, err := roster.Read(&buf)
			So(err, ShouldBeNil)

			Convey("Then every person keeps their current grid position", func() {
				So(len(reimported), ShouldEqual, len(records))
				byID := map[string]int{}
				for _, p := range reimported {
					byID[p.ID] = model.Position(p.Performance, p.Potential)
				}
				for _, rec := range records {
					So(byID[rec.ID], ShouldEqual, rec.Position)
				}
			})

			Convey("And the change-notes column is filled only for movers", func() {
				So(out, ShouldContainSubstring, "stretch assignment")
				lines := strings.Split(strings.TrimSpace(out), "\n")
				So(lines[0], ShouldContainSubstring, "change_notes")
				// p1 never moved, so its row ends with an empty notes cell.
				So(lines[1], ShouldContainSubstring, "p1")
				So(strings.HasSuffix(lines[1], ",false,"), ShouldBeTrue)
			})
		})
	})
}
