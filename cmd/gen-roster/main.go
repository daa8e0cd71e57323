// Command gen-roster writes a synthetic roster CSV for demos and load tests.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/okian/ninebox/internal/domain/model"
	"github.com/okian/ninebox/internal/rostergen"
	"github.com/okian/ninebox/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	ctx := context.Background()

	cfg := rostergen.NewConfig()
	flag.IntVar(&cfg.NumPeople, "people", cfg.NumPeople, "total roster size")
	flag.StringVar(&cfg.ClusterDepartment, "cluster-department", cfg.ClusterDepartment, "department of the planted cluster")
	flag.IntVar(&cfg.ClusterCell, "cluster-cell", cfg.ClusterCell, "grid cell (1-9) of the planted cluster")
	flag.IntVar(&cfg.ClusterSize, "cluster-size", cfg.ClusterSize, "people in the planted cluster (0 disables)")
	flag.StringVar(&cfg.Output, "out", cfg.Output, "output file path, or - for stdout")
	flag.Parse()

	if cfg.ClusterSize > 0 && !model.ValidPosition(cfg.ClusterCell) {
		os.Stderr.WriteString("cluster-cell must be between 1 and 9\n")
		os.Exit(2)
	}

	people, err := rostergen.Generate(ctx, cfg)
	if err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	out := os.Stdout
	if cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			os.Stderr.WriteString("cannot create output: " + err.Error() + "\n")
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := rostergen.WriteCSV(out, people); err != nil {
		os.Stderr.WriteString("write failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
