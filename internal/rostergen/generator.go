// Package rostergen produces synthetic roster files for exercising the
// calibration service: realistic categorical spread plus an optional planted
// cluster so anomaly detection has something to find.
package rostergen

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/ninebox/internal/adapters/roster"
	"github.com/okian/ninebox/internal/domain/model"
	"github.com/okian/ninebox/internal/domain/types"
	"github.com/okian/ninebox/pkg/logger"
)

// Categorical pools for generated people.
var (
	departments = []string{"Engineering", "Sales", "Marketing", "Finance", "Operations", "Support"}
	locations   = []string{"Berlin", "London", "New York", "Remote", "Singapore"}
	jobLevels   = []string{"IC1", "IC2", "IC3", "IC4", "M1", "M2"}
	genders     = []string{"female", "male", "nonbinary"}
)

// Rating probability weights: the middle of each axis is the most common,
// mirroring how real calibration rosters skew toward the center cells.
var ratingWeights = []struct {
	rating model.Rating
	weight int64
}{
	{model.RatingLow, 25},
	{model.RatingMedium, 50},
	{model.RatingHigh, 25},
}

const (
	managerMissingPercent = 10 // top-of-hierarchy people with no manager
	managerPoolDivisor    = 12 // roughly one manager per 12 people
)

// randomInt returns a uniform int in [0, n) using crypto/rand.
func randomInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

func randomRating() model.Rating {
	total := int64(0)
	for _, rw := range ratingWeights {
		total += rw.weight
	}
	pick := randomInt(total)
	for _, rw := range ratingWeights {
		if pick < rw.weight {
			return rw.rating
		}
		pick -= rw.weight
	}
	return model.RatingMedium
}

func pickFrom(pool []string) string {
	return pool[randomInt(int64(len(pool)))]
}

// Generate builds the synthetic roster. The first ClusterSize people are
// assigned to ClusterDepartment and pinned to ClusterCell so the anomaly
// detector produces a severe insight for that pairing.
func Generate(ctx context.Context, cfg *Config) ([]*model.Person, error) {
	if cfg.NumPeople <= 0 {
		return nil, fmt.Errorf("num people must be positive, got %d", cfg.NumPeople)
	}
	if cfg.ClusterSize > cfg.NumPeople {
		return nil, fmt.Errorf("cluster size %d exceeds roster size %d", cfg.ClusterSize, cfg.NumPeople)
	}

	managerPool := make([]string, 0, cfg.NumPeople/managerPoolDivisor+1)
	for i := 0; i < cfg.NumPeople/managerPoolDivisor+1; i++ {
		managerPool = append(managerPool, fmt.Sprintf("mgr-%03d", i))
	}

	people := make([]*model.Person, cfg.NumPeople)
	for i := range people {
		p := &model.Person{
			ID:         uuid.NewString(),
			Name:       fmt.Sprintf("Person %04d", i+1),
			Department: pickFrom(departments),
			Location:   pickFrom(locations),
			JobLevel:   pickFrom(jobLevels),
			Attrs:      map[string]string{"gender": pickFrom(genders)},

			Performance: randomRating(),
			Potential:   randomRating(),
		}
		if randomInt(100) >= managerMissingPercent {
			p.Manager = pickFrom(managerPool)
		}

		if i < cfg.ClusterSize {
			p.Department = cfg.ClusterDepartment
			p.Performance, p.Potential = model.RatingsForPosition(cfg.ClusterCell)
		}
		p.Position = model.Position(p.Performance, p.Potential)
		people[i] = p
	}

	logger.Get().Info(ctx, "roster generated",
		logger.Int("people", cfg.NumPeople),
		logger.Int("cluster", cfg.ClusterSize),
		logger.String("clusterDepartment", cfg.ClusterDepartment),
	)
	return people, nil
}

// WriteCSV emits the generated roster in the import column layout.
func WriteCSV(w io.Writer, people []*model.Person) error {
	records := make([]types.ExportRecord, len(people))
	for i, p := range people {
		records[i] = types.ExportRecord{
			ID:          p.ID,
			Name:        p.Name,
			Department:  p.Department,
			Location:    p.Location,
			JobLevel:    p.JobLevel,
			Manager:     p.Manager,
			Attrs:       p.Attrs,
			Performance: string(p.Performance),
			Potential:   string(p.Potential),
			Position:    p.Position,
		}
	}
	return roster.Write(w, records)
}
