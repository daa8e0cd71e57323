package rostergen_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/okian/ninebox/internal/adapters/roster"
	"github.com/okian/ninebox/internal/rostergen"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given generation defaults with a planted cluster", t, func() {
		ctx := context.Background()
		cfg := rostergen.NewConfig()
		cfg.NumPeople = 100
		cfg.ClusterSize = 6
		cfg.ClusterCell = 9
		cfg.ClusterDepartment = "Engineering"

		Convey("When generating", func() {
			people, err := rostergen.Generate(ctx, cfg)

			Convey("Then the roster has the requested size and cluster", func() {
				So(err, ShouldBeNil)
				So(len(people), ShouldEqual, 100)

				clustered := 0
				ids := map[string]bool{}
				for _, p := range people {
					So(ids[p.ID], ShouldBeFalse)
					ids[p.ID] = true
					if p.Department == "Engineering" && p.Position == 9 {
						clustered++
					}
				}
				So(clustered, ShouldBeGreaterThanOrEqualTo, 6)
			})
		})

		Convey("When the cluster exceeds the roster", func() {
			cfg.ClusterSize = 500
			_, err := rostergen.Generate(ctx, cfg)

			Convey("Then generation fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When writing the roster and reading it back", func() {
			people, err := rostergen.Generate(ctx, cfg)
			So(err, ShouldBeNil)

			var buf bytes.Buffer
			So(rostergen.WriteCSV(&buf, people), ShouldBeNil)
			parsed, err := roster.Read(&buf)

			Convey("Then the file is a valid import", func() {
				So(err, ShouldBeNil)
				So(len(parsed), ShouldEqual, len(people))
			})
		})
	})
}
