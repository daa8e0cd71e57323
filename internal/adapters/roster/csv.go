// Package roster converts between tabular roster files and domain records.
// It is the import/export collaborator of the session core: column layout
// and format concerns live here, never in the engines.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/ninebox/internal/domain/model"
	"github.com/okian/ninebox/internal/domain/types"
)

// Recognized column names after normalization (lowercase, spaces to
// underscores). Any other column is carried as a categorical attribute.
const (
	colID          = "id"
	colName        = "name"
	colDepartment  = "department"
	colLocation    = "location"
	colJobLevel    = "job_level"
	colManager     = "manager"
	colPerformance = "performance"
	colPotential   = "potential"

	// Export-only columns, skipped on import so an exported file can be
	// read back unchanged.
	colPosition    = "current_position"
	colModified    = "modified"
	colChangeNotes = "change_notes"
)

var exportOnly = map[string]bool{
	colModified:    true,
	colChangeNotes: true,
}

// Read parses a header-driven CSV roster. Required columns: id,
// performance, potential. Duplicate ids and malformed ratings are rejected
// with ErrImport before the core sees them. Unrecognized columns become
// per-person attributes.
func Read(r io.Reader) ([]*model.Person, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header: %v", ErrImport, err)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = normalize(h)
	}
	for _, required := range []string{colID, colPerformance, colPotential} {
		if !contains(cols, required) {
			return nil, fmt.Errorf("%w: missing required column %q", ErrImport, required)
		}
	}

	seen := make(map[string]bool)
	var people []*model.Person
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrImport, line+1, err)
		}
		line++

		p, err := parseRow(cols, row, line)
		if err != nil {
			return nil, err
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: line %d: duplicate id %q", ErrImport, line, p.ID)
		}
		seen[p.ID] = true
		people = append(people, p)
	}
	return people, nil
}

func parseRow(cols []string, row []string, line int) (*model.Person, error) {
	p := &model.Person{}
	declaredPos := 0

	for i, col := range cols {
		if i >= len(row) {
			break
		}
		v := strings.TrimSpace(row[i])
		switch col {
		case colID:
			p.ID = v
		case colName:
			p.Name = v
		case colDepartment:
			p.Department = v
		case colLocation:
			p.Location = v
		case colJobLevel:
			p.JobLevel = v
		case colManager:
			p.Manager = v
		case colPerformance:
			rating, err := model.ParseRating(v)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: performance: %v", ErrImport, line, err)
			}
			p.Performance = rating
		case colPotential:
			rating, err := model.ParseRating(v)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: potential: %v", ErrImport, line, err)
			}
			p.Potential = rating
		case colPosition:
			if v != "" {
				n, err := strconv.Atoi(v)
				if err != nil || !model.ValidPosition(n) {
					return nil, fmt.Errorf("%w: line %d: bad current_position %q", ErrImport, line, v)
				}
				declaredPos = n
			}
		default:
			if exportOnly[col] || v == "" {
				continue
			}
			if p.Attrs == nil {
				p.Attrs = make(map[string]string)
			}
			p.Attrs[col] = v
		}
	}

	if p.ID == "" {
		return nil, fmt.Errorf("%w: line %d: empty id", ErrImport, line)
	}
	if declaredPos != 0 && declaredPos != model.Position(p.Performance, p.Potential) {
		return nil, fmt.Errorf("%w: line %d: current_position %d contradicts ratings %s/%s",
			ErrImport, line, declaredPos, p.Performance, p.Potential)
	}
	return p, nil
}

// Write emits the export table: all original columns plus current position,
// the modified flag, and a change-notes column populated only for people
// currently carrying a change record. The rating columns hold the current
// ratings, so reading the file back reproduces every current position.
func Write(w io.Writer, records []types.ExportRecord) error {
	attrs := attrColumns(records)

	header := []string{colID, colName, colDepartment, colLocation, colJobLevel, colManager}
	header = append(header, attrs...)
	header = append(header, colPerformance, colPotential, colPosition, colModified, colChangeNotes)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}

	for _, rec := range records {
		row := []string{rec.ID, rec.Name, rec.Department, rec.Location, rec.JobLevel, rec.Manager}
		for _, a := range attrs {
			row = append(row, rec.Attrs[a])
		}
		row = append(row,
			rec.Performance,
			rec.Potential,
			strconv.Itoa(rec.Position),
			strconv.FormatBool(rec.Modified),
			rec.ChangeNotes,
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: %v", ErrExport, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	return nil
}

// attrColumns collects the union of attribute keys across records, sorted
// for a stable column layout.
func attrColumns(records []types.ExportRecord) []string {
	set := map[string]struct{}{}
	for _, rec := range records {
		for k := range rec.Attrs {
			set[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalize(h string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
