package rostergen

// Config controls synthetic roster generation.
type Config struct {
	// NumPeople is the total roster size.
	NumPeople int

	// ClusterDepartment, ClusterCell, and ClusterSize plant a subgroup
	// concentrated in one grid cell. Zero ClusterSize disables planting.
	ClusterDepartment string
	ClusterCell       int
	ClusterSize       int

	// Output is the target file path; "-" writes to stdout.
	Output string
}

// NewConfig returns generation defaults: a thousand-person roster with a
// small engineering cluster pinned to the top-right cell.
func NewConfig() *Config {
	return &Config{
		NumPeople:         1000,
		ClusterDepartment: "Engineering",
		ClusterCell:       9,
		ClusterSize:       8,
		Output:            "roster.csv",
	}
}
