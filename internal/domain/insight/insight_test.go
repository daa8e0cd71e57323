package insight_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/okian/ninebox/internal/domain/insight"
	"github.com/okian/ninebox/internal/domain/model"
	"github.com/okian/ninebox/internal/domain/stats"
	"github.com/okian/ninebox/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func personIn(id, dept string, pos int) *model.Person {
	perf, pot := model.RatingsForPosition(pos)
	return &model.Person{ID: id, Department: dept, Performance: perf, Potential: pot, Position: pos}
}

func TestAnalyzeEdgeCases(t *testing.T) {
	Convey("Given an intelligence engine", t, func() {
		ctx := context.Background()
		engine := insight.NewEngine(stats.NewEngine())

		Convey("When analyzing an empty roster", func() {
			insights, err := engine.Analyze(ctx, nil)

			Convey("Then there are vacuously no anomalies and no error", func() {
				So(err, ShouldBeNil)
				So(insights, ShouldBeEmpty)
			})
		})

		Convey("When every value's per-cell share matches its overall share", func() {
			// Two departments, one person of each in every cell: shares
			// are identical everywhere, so nothing deviates.
			people := make([]*model.Person, 0, 18)
			for pos := 1; pos <= 9; pos++ {
				people = append(people, personIn(fmt.Sprintf("a%d", pos), "A", pos))
				people = append(people, personIn(fmt.Sprintf("b%d", pos), "B", pos))
			}
			insights, err := engine.Analyze(ctx, people)

			Convey("Then no insights are emitted", func() {
				So(err, ShouldBeNil)
				So(insights, ShouldBeEmpty)
			})
		})

		Convey("When a subgroup is smaller than the minimum sample size", func() {
			strict := insight.NewEngine(stats.NewEngine(), insight.WithMinSampleSize(50))
			people := make([]*model.Person, 0, 40)
			for i := 0; i < 36; i++ {
				people = append(people, personIn(fmt.Sprintf("x%d", i), "Big", i%9+1))
			}
			// Four people clustered hard, but below the threshold.
			for i := 0; i < 4; i++ {
				people = append(people, personIn(fmt.Sprintf("t%d", i), "Tiny", 9))
			}
			insights, err := strict.Analyze(ctx, people)

			Convey("Then the tiny subgroup is skipped", func() {
				So(err, ShouldBeNil)
				for _, ins := range insights {
					So(ins.Value, ShouldNotEqual, "Tiny")
				}
			})
		})
	})
}

func TestAnalyzeDetectsPlantedCluster(t *testing.T) {
	Convey("Given a thousand-person roster with a small clustered department", t, func() {
		ctx := context.Background()
		engine := insight.NewEngine(stats.NewEngine())

		// 992 people spread evenly over cells 1..8, 8 Eng people all in
		// cell 9. Eng's overall share is 0.8%, so its expected presence
		// in cell 9 is a fraction of a person.
		people := make([]*model.Person, 0, 1000)
		for i := 0; i < 992; i++ {
			people = append(people, personIn(fmt.Sprintf("p%d", i), "Other", i%8+1))
		}
		for i := 0; i < 8; i++ {
			people = append(people, personIn(fmt.Sprintf("eng%d", i), "Eng", 9))
		}

		Convey("When analyzing", func() {
			insights, err := engine.Analyze(ctx, people)

			Convey("Then a severe insight names Eng and cell 9", func() {
				So(err, ShouldBeNil)

				var found *types.Insight
				for i := range insights {
					if insights[i].Dimension == "department" && insights[i].Value == "Eng" {
						found = &insights[i]
						break
					}
				}
				So(found, ShouldNotBeNil)
				So(found.Severity, ShouldEqual, types.SeveritySevere)
				So(found.PValue, ShouldBeLessThan, 0.01)
				So(found.Observed[8], ShouldEqual, 8)
				So(found.Explanation, ShouldContainSubstring, "Eng")
				So(found.Explanation, ShouldContainSubstring, "cell 9")
				So(found.Explanation, ShouldContainSubstring, "over-represented")
			})

			Convey("Then results are ordered most significant first", func() {
				So(err, ShouldBeNil)
				for i := 1; i < len(insights); i++ {
					So(insights[i-1].PValue, ShouldBeLessThanOrEqualTo, insights[i].PValue)
				}
			})
		})
	})
}

func TestSeverityTiers(t *testing.T) {
	Convey("Given custom significance cutoffs", t, func() {
		ctx := context.Background()
		// Absurdly loose cutoffs make almost any wobble significant,
		// proving the tiers are tunable rather than hard-wired.
		loose := insight.NewEngine(stats.NewEngine(),
			insight.WithSignificanceLevels(0.99, 0.9))

		people := make([]*model.Person, 0, 40)
		for i := 0; i < 20; i++ {
			people = append(people, personIn(fmt.Sprintf("a%d", i), "A", i%4+1))
		}
		for i := 0; i < 20; i++ {
			// B leans toward higher cells, a mild imbalance.
			people = append(people, personIn(fmt.Sprintf("b%d", i), "B", i%4+2))
		}

		Convey("When analyzing with loose cutoffs", func() {
			insights, err := loose.Analyze(ctx, people)

			Convey("Then mild imbalances surface as insights", func() {
				So(err, ShouldBeNil)
				So(len(insights), ShouldBeGreaterThan, 0)
			})
		})
	})
}
