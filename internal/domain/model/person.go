// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Rating is one of the two ordinal axes of the 9-box grid.
type Rating string

// Recognized rating values.
const (
	RatingLow    Rating = "low"
	RatingMedium Rating = "medium"
	RatingHigh   Rating = "high"
)

// Grid bounds. Cells are numbered 1..9: performance grows left to right,
// potential grows bottom to top, so cell 1 is low/low and cell 9 is high/high.
const (
	MinPosition = 1
	MaxPosition = 9
)

// ParseRating normalizes a raw rating string. The zero Rating is never
// returned alongside a nil error.
func ParseRating(s string) (Rating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return RatingLow, nil
	case "medium", "med", "m":
		return RatingMedium, nil
	case "high", "h":
		return RatingHigh, nil
	}
	return "", fmt.Errorf("unknown rating %q", s)
}

// index maps a rating to its 0-based ordinal.
func (r Rating) index() int {
	switch r {
	case RatingMedium:
		return 1
	case RatingHigh:
		return 2
	default:
		return 0
	}
}

// Valid reports whether r is one of the three recognized values.
func (r Rating) Valid() bool {
	return r == RatingLow || r == RatingMedium || r == RatingHigh
}

// Position derives the 1..9 grid cell from a performance/potential pair.
func Position(performance, potential Rating) int {
	return potential.index()*3 + performance.index() + 1
}

// RatingsForPosition inverts Position for a valid cell number.
func RatingsForPosition(pos int) (performance, potential Rating) {
	ratings := [3]Rating{RatingLow, RatingMedium, RatingHigh}
	return ratings[(pos-1)%3], ratings[(pos-1)/3]
}

// ValidPosition reports whether pos is a real grid cell.
func ValidPosition(pos int) bool {
	return pos >= MinPosition && pos <= MaxPosition
}

// PositionLabel renders a cell as "5 (Medium/Medium)" for change lists
// and explanations.
func PositionLabel(pos int) string {
	if !ValidPosition(pos) {
		return fmt.Sprintf("%d (invalid)", pos)
	}
	perf, pot := RatingsForPosition(pos)
	return fmt.Sprintf("%d (%s/%s)", pos, titleCase(perf), titleCase(pot))
}

func titleCase(r Rating) string {
	s := string(r)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Person is one roster member in a calibration session. Position and Notes
// are the only fields that change after load; OriginalPosition is stamped
// once by the store and never rewritten. Whether a person counts as modified
// is derived from the change tracker, not stored here.
type Person struct {
	ID         string
	Name       string
	Department string
	Location   string
	JobLevel   string
	// Manager is the management-chain link; empty at the top of the
	// hierarchy and treated as an explicit missing bucket by grouping.
	Manager string
	// Attrs carries any extra categorical columns from the source file,
	// e.g. demographic flags, keyed by normalized column name.
	Attrs map[string]string

	Performance Rating
	Potential   Rating

	Position         int
	OriginalPosition int

	Notes string
}

// Clone returns a deep copy so read snapshots never alias store state.
func (p *Person) Clone() *Person {
	cp := *p
	if p.Attrs != nil {
		cp.Attrs = make(map[string]string, len(p.Attrs))
		for k, v := range p.Attrs {
			cp.Attrs[k] = v
		}
	}
	return &cp
}

// ChangeRecord is the single net-change entry for a person: From is always
// the session-start position, To the latest one. It exists only while the
// two differ.
type ChangeRecord struct {
	PersonID   string
	From       int
	To         int
	ModifiedAt time.Time
}
