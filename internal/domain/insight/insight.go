// Package insight flags categorical values that are statistically over- or
// under-represented in particular grid cells relative to their overall share
// of the roster.
package insight

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/okian/ninebox/internal/domain/model"
	"github.com/okian/ninebox/internal/domain/stats"
	"github.com/okian/ninebox/internal/domain/types"
)

// Default tuning. Both are deliberately adjustable: the minimum sample size
// guards against tiny subgroups producing significant-looking noise, and the
// tier cutoffs follow the conventional 0.05/0.01 significance levels.
const (
	defaultMinSampleSize = 5
	defaultModerateP     = 0.05
	defaultSevereP       = 0.01
)

// Engine runs goodness-of-fit tests per dimension value. Stateless between
// calls; insights are recomputed from the snapshot every time and never
// cached.
type Engine struct {
	statistics *stats.Engine

	minSample int
	moderateP float64
	severeP   float64
}

// NewEngine creates an intelligence engine on top of a statistics engine.
func NewEngine(statistics *stats.Engine, opts ...Option) *Engine {
	e := &Engine{
		statistics: statistics,
		minSample:  defaultMinSampleSize,
		moderateP:  defaultModerateP,
		severeP:    defaultSevereP,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze tests every dimension value against its expected spread across the
// nine cells. An empty roster vacuously yields no insights. Results are
// ordered most significant first.
func (e *Engine) Analyze(ctx context.Context, people []*model.Person) ([]types.Insight, error) {
	if len(people) == 0 {
		return nil, nil
	}

	cellTotals := [9]int{}
	for _, p := range people {
		cellTotals[p.Position-1]++
	}
	total := len(people)

	var out []types.Insight
	for _, dim := range e.statistics.Dimensions(ctx, people) {
		groups, err := e.statistics.GroupBy(ctx, people, dim)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			ins, err := e.testGroup(dim, g, cellTotals, total)
			if err != nil {
				return nil, err
			}
			if ins != nil {
				out = append(out, *ins)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PValue < out[j].PValue
	})
	return out, nil
}

// testGroup runs the chi-squared goodness-of-fit test for one dimension
// value and returns nil when the value is unremarkable or too small to test.
func (e *Engine) testGroup(dim string, g types.GroupCells, cellTotals [9]int, total int) (*types.Insight, error) {
	if g.Total < e.minSample {
		return nil, nil
	}

	share := float64(g.Total) / float64(total)

	var expected [9]float64
	statistic := 0.0
	populated := 0
	for c := 0; c < 9; c++ {
		expected[c] = share * float64(cellTotals[c])
		if expected[c] <= 0 {
			// A cell nobody occupies contributes no expectation, and
			// the group cannot have anyone there either.
			continue
		}
		populated++
		diff := float64(g.Cells[c]) - expected[c]
		statistic += diff * diff / expected[c]
	}

	df := populated - 1
	if df < 1 {
		// Everyone sits in one cell; there is no spread to test.
		return nil, nil
	}
	if math.IsNaN(statistic) || math.IsInf(statistic, 0) || statistic < 0 {
		return nil, fmt.Errorf("%w: chi-squared statistic %v for %s=%q", ErrAnalysis, statistic, dim, g.Value)
	}

	p := distuv.ChiSquared{K: float64(df)}.Survival(statistic)
	severity := ""
	switch {
	case p < e.severeP:
		severity = types.SeveritySevere
	case p < e.moderateP:
		severity = types.SeverityModerate
	default:
		return nil, nil
	}

	ins := &types.Insight{
		Dimension:   dim,
		Value:       g.Value,
		SampleSize:  g.Total,
		Observed:    g.Cells,
		Expected:    expected,
		Statistic:   statistic,
		PValue:      p,
		Severity:    severity,
		Explanation: explain(dim, g, expected, p),
	}
	return ins, nil
}

// cellDeviation pairs a cell with how far its observed count strays from
// expectation.
type cellDeviation struct {
	cell     int // 1..9
	observed int
	expected float64
}

func (d cellDeviation) magnitude() float64 {
	return math.Abs(float64(d.observed) - d.expected)
}

// explain builds the human-readable summary naming the value, the most
// deviant cells, and the direction of each deviation.
func explain(dim string, g types.GroupCells, expected [9]float64, p float64) string {
	devs := make([]cellDeviation, 0, 9)
	for c := 0; c < 9; c++ {
		if expected[c] <= 0 && g.Cells[c] == 0 {
			continue
		}
		devs = append(devs, cellDeviation{cell: c + 1, observed: g.Cells[c], expected: expected[c]})
	}
	sort.SliceStable(devs, func(i, j int) bool {
		return devs[i].magnitude() > devs[j].magnitude()
	})

	parts := make([]string, 0, 2)
	for _, d := range devs {
		if len(parts) == 2 || d.magnitude() < 1 {
			break
		}
		direction := "over-represented"
		if float64(d.observed) < d.expected {
			direction = "under-represented"
		}
		parts = append(parts, fmt.Sprintf("%s in cell %s (%d observed vs %.1f expected)",
			direction, model.PositionLabel(d.cell), d.observed, d.expected))
	}
	if len(parts) == 0 {
		parts = append(parts, "distributed unevenly across the grid")
	}

	return fmt.Sprintf("%s %q (%d people) is %s; p=%.4g", dim, g.Value, g.Total, strings.Join(parts, " and "), p)
}
