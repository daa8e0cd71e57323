// Package tracking maintains the net-change ledger for a session.
package tracking

import (
	"context"
	"time"

	"github.com/okian/ninebox/internal/domain/model"
)

// Tracker records at most one net-change entry per person.
type Tracker interface {
	// RecordMove reconciles the ledger after a person lands on newPos.
	// A move back to originalPos deletes the entry; a first divergence
	// inserts one; a further move overwrites To only. Returns the entry
	// now held for the person, or nil when none exists.
	RecordMove(ctx context.Context, id string, originalPos, newPos int) *model.ChangeRecord

	// Get returns the entry for id, or nil.
	Get(ctx context.Context, id string) *model.ChangeRecord

	// Has reports whether id currently carries an entry.
	Has(ctx context.Context, id string) bool

	// List returns entries in first-became-modified order. The order is
	// insertion order of the ledger, so unrelated edits never reshuffle
	// a change list a facilitator is looking at.
	List(ctx context.Context) []*model.ChangeRecord

	// Len returns the number of entries.
	Len(ctx context.Context) int
}

// ledger implements Tracker with a map plus an insertion-order slice. Not
// internally synchronized; the owning session serializes access.
type ledger struct {
	entries map[string]*model.ChangeRecord
	order   []string // person ids, first-became-modified order

	now func() time.Time
}

// NewLedger creates an empty tracker with configuration options.
func NewLedger(opts ...Option) Tracker {
	l := &ledger{
		entries: make(map[string]*model.ChangeRecord),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *ledger) RecordMove(ctx context.Context, id string, originalPos, newPos int) *model.ChangeRecord {
	rec, exists := l.entries[id]

	if newPos == originalPos {
		// Back to the session-start cell: net change is zero, drop the
		// entry no matter how many moves led here.
		if exists {
			delete(l.entries, id)
			l.dropFromOrder(id)
		}
		return nil
	}

	if exists {
		// From stays pinned to the original position for the lifetime
		// of the entry; only the destination moves.
		rec.To = newPos
		rec.ModifiedAt = l.now()
		return rec
	}

	rec = &model.ChangeRecord{
		PersonID:   id,
		From:       originalPos,
		To:         newPos,
		ModifiedAt: l.now(),
	}
	l.entries[id] = rec
	l.order = append(l.order, id)
	return rec
}

func (l *ledger) Get(ctx context.Context, id string) *model.ChangeRecord {
	return l.entries[id]
}

func (l *ledger) Has(ctx context.Context, id string) bool {
	_, ok := l.entries[id]
	return ok
}

func (l *ledger) List(ctx context.Context) []*model.ChangeRecord {
	out := make([]*model.ChangeRecord, 0, len(l.order))
	for _, id := range l.order {
		if rec, ok := l.entries[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

func (l *ledger) Len(ctx context.Context) int {
	return len(l.entries)
}

func (l *ledger) dropFromOrder(id string) {
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			return
		}
	}
}
