package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/ninebox/internal/adapters/repository"
	"github.com/okian/ninebox/internal/domain/model"
	"github.com/okian/ninebox/internal/domain/tracking"
	"github.com/okian/ninebox/internal/domain/types"
)

// Session is one active calibration session: the canonical roster, the
// net-change ledger, and the lock that serializes every mutation against
// both. All reads copy a snapshot under the read lock so no caller ever
// observes a half-applied move.
type Session struct {
	ID        string
	CreatedAt time.Time
	Source    string

	mu      sync.RWMutex
	roster  *repository.RosterStore
	changes tracking.Tracker
}

// snapshot is a consistent read copy of the session taken under the lock.
type snapshot struct {
	people   []*model.Person
	modified map[string]bool
	records  []*model.ChangeRecord
}

// snapshot copies the roster and ledger state under the read lock. The copy
// is deep enough that statistics and analysis can run without holding the
// lock.
func (s *Session) snapshot(ctx context.Context) snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	people := s.roster.List(ctx)
	snap := snapshot{
		people:   make([]*model.Person, len(people)),
		modified: make(map[string]bool, s.changes.Len(ctx)),
	}
	for i, p := range people {
		snap.people[i] = p.Clone()
	}
	for _, rec := range s.changes.List(ctx) {
		cp := *rec
		snap.records = append(snap.records, &cp)
		snap.modified[rec.PersonID] = true
	}
	return snap
}

// personView assembles the read shape for one person. The modified flag is
// derived from ledger membership here and nowhere else.
func personView(p *model.Person, modified bool) types.PersonView {
	return types.PersonView{
		ID:               p.ID,
		Name:             p.Name,
		Department:       p.Department,
		Location:         p.Location,
		JobLevel:         p.JobLevel,
		Manager:          p.Manager,
		Attrs:            p.Attrs,
		Performance:      string(p.Performance),
		Potential:        string(p.Potential),
		Position:         p.Position,
		OriginalPosition: p.OriginalPosition,
		Notes:            p.Notes,
		Modified:         modified,
	}
}

// changeView assembles one change-list entry, joining the ledger record with
// the person's notes and name.
func changeView(rec *model.ChangeRecord, p *model.Person) types.ChangeView {
	v := types.ChangeView{
		PersonID:   rec.PersonID,
		From:       rec.From,
		To:         rec.To,
		FromLabel:  model.PositionLabel(rec.From),
		ToLabel:    model.PositionLabel(rec.To),
		ModifiedAt: rec.ModifiedAt,
	}
	if p != nil {
		v.Name = p.Name
		v.Notes = p.Notes
	}
	return v
}
