// Package stats computes aggregate counts and percentages over a roster.
package stats

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/okian/ninebox/internal/domain/model"
	"github.com/okian/ninebox/internal/domain/types"
)

// MissingBucket labels absent categorical values so grouping never fails on
// an unset attribute (e.g. the manager link at the top of the hierarchy).
const MissingBucket = "(unspecified)"

// Built-in categorical dimensions, in presentation order. Extra dimensions
// come from source-file columns carried in Person.Attrs.
var builtinDimensions = []string{"department", "location", "job_level", "manager"}

// Engine computes distributions and categorical breakdowns. Stateless; safe
// for concurrent use on distinct snapshots.
type Engine struct{}

// NewEngine creates a statistics engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Distribution returns nine cell counts and nine percentages. Percentages
// are in tenths of a percent and sum to exactly 100.0 for non-empty input;
// the largest cell absorbs the rounding remainder (lowest cell wins ties).
// An empty roster yields all zeros, not an error.
func (e *Engine) Distribution(ctx context.Context, people []*model.Person) types.DistributionView {
	view := types.DistributionView{Total: len(people)}
	if len(people) == 0 {
		return view
	}

	for _, p := range people {
		view.Counts[p.Position-1]++
	}

	// Work in integer tenths so the sum adjustment is exact.
	tenths := [9]int{}
	sum := 0
	for i, c := range view.Counts {
		tenths[i] = int(math.Round(float64(c) * 1000 / float64(view.Total)))
		sum += tenths[i]
	}

	largest := 0
	for i := 1; i < len(view.Counts); i++ {
		if view.Counts[i] > view.Counts[largest] {
			largest = i
		}
	}
	tenths[largest] += 1000 - sum

	for i, t := range tenths {
		view.Percentages[i] = float64(t) / 10
	}
	return view
}

// GroupBy returns, per observed value of dimension, a nine-cell count
// vector. Every person lands in exactly one value bucket (missing values go
// to MissingBucket), so counts summed across cells and values equal
// len(people). Values are sorted for stable output, missing bucket last.
// An unknown dimension name is ErrValidation territory.
func (e *Engine) GroupBy(ctx context.Context, people []*model.Person, dimension string) ([]types.GroupCells, error) {
	if !e.knownDimension(people, dimension) {
		return nil, fmt.Errorf("%w: unknown dimension %q", model.ErrValidation, dimension)
	}

	byValue := make(map[string]*types.GroupCells)
	for _, p := range people {
		v := DimensionValue(p, dimension)
		g, ok := byValue[v]
		if !ok {
			g = &types.GroupCells{Value: v}
			byValue[v] = g
		}
		g.Cells[p.Position-1]++
		g.Total++
	}

	out := make([]types.GroupCells, 0, len(byValue))
	for _, g := range byValue {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value == MissingBucket {
			return false
		}
		if out[j].Value == MissingBucket {
			return true
		}
		return out[i].Value < out[j].Value
	})
	return out, nil
}

// Dimensions enumerates the groupable dimensions for a roster: the built-in
// ones plus every attribute key observed on any person, sorted for
// stability.
func (e *Engine) Dimensions(ctx context.Context, people []*model.Person) []string {
	extra := map[string]struct{}{}
	for _, p := range people {
		for k := range p.Attrs {
			extra[k] = struct{}{}
		}
	}

	out := append([]string{}, builtinDimensions...)
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return append(out, keys...)
}

// DimensionValue resolves a person's value for a dimension, mapping absent
// values to MissingBucket.
func DimensionValue(p *model.Person, dimension string) string {
	var v string
	switch dimension {
	case "department":
		v = p.Department
	case "location":
		v = p.Location
	case "job_level":
		v = p.JobLevel
	case "manager":
		v = p.Manager
	default:
		v = p.Attrs[dimension]
	}
	if v == "" {
		return MissingBucket
	}
	return v
}

func (e *Engine) knownDimension(people []*model.Person, dimension string) bool {
	for _, d := range builtinDimensions {
		if d == dimension {
			return true
		}
	}
	for _, p := range people {
		if _, ok := p.Attrs[dimension]; ok {
			return true
		}
	}
	return false
}
