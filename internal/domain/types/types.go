// Package types contains common read-model types used across the application.
package types

import "time"

// PersonView is the read shape of a roster member returned to callers.
type PersonView struct {
	ID               string            `json:"id"`
	Name             string            `json:"name,omitempty"`
	Department       string            `json:"department,omitempty"`
	Location         string            `json:"location,omitempty"`
	JobLevel         string            `json:"job_level,omitempty"`
	Manager          string            `json:"manager,omitempty"`
	Attrs            map[string]string `json:"attrs,omitempty"`
	Performance      string            `json:"performance"`
	Potential        string            `json:"potential"`
	Position         int               `json:"position"`
	OriginalPosition int               `json:"original_position"`
	Notes            string            `json:"notes,omitempty"`
	Modified         bool              `json:"modified"`
}

// ChangeView is one entry of the ordered change list.
type ChangeView struct {
	PersonID   string    `json:"person_id"`
	Name       string    `json:"name,omitempty"`
	From       int       `json:"from"`
	To         int       `json:"to"`
	FromLabel  string    `json:"from_label"`
	ToLabel    string    `json:"to_label"`
	Notes      string    `json:"notes,omitempty"`
	ModifiedAt time.Time `json:"modified_at"`
}

// DistributionView holds the nine-cell counts and percentages. Percentages
// sum to exactly 100 for a non-empty roster and are all zero otherwise.
type DistributionView struct {
	Total       int        `json:"total"`
	Counts      [9]int     `json:"counts"`
	Percentages [9]float64 `json:"percentages"`
}

// GroupCells is one dimension value's nine-cell count vector.
type GroupCells struct {
	Value string `json:"value"`
	Cells [9]int `json:"cells"`
	Total int    `json:"total"`
}

// StatisticsView is the full statistics payload: overall distribution plus
// per-dimension breakdowns.
type StatisticsView struct {
	Distribution DistributionView        `json:"distribution"`
	Dimensions   map[string][]GroupCells `json:"dimensions,omitempty"`
}

// Severity tiers for anomaly insights.
const (
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Insight flags one dimension value whose spread across the grid deviates
// significantly from its overall roster share. Derived per analysis call and
// never persisted.
type Insight struct {
	Dimension   string     `json:"dimension"`
	Value       string     `json:"value"`
	SampleSize  int        `json:"sample_size"`
	Observed    [9]int     `json:"observed"`
	Expected    [9]float64 `json:"expected"`
	Statistic   float64    `json:"statistic"`
	PValue      float64    `json:"p_value"`
	Severity    string     `json:"severity"`
	Explanation string     `json:"explanation"`
}

// ExportRecord carries everything the export adapter needs for one person:
// all original columns plus current position, the modified flag, and notes
// populated only while the person carries a change record.
type ExportRecord struct {
	ID               string
	Name             string
	Department       string
	Location         string
	JobLevel         string
	Manager          string
	Attrs            map[string]string
	Performance      string
	Potential        string
	Position         int
	OriginalPosition int
	Modified         bool
	ChangeNotes      string
}
