package repository

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/okian/ninebox/internal/domain/model"
)

const defaultMaxNoteLength = 4096

// RosterStore is the canonical in-memory roster for one session. It is not
// internally synchronized; the owning session serializes access under its
// own lock.
type RosterStore struct {
	byID  map[string]*model.Person
	order []*model.Person // import order, never re-sorted

	maxNoteLen int
}

// NewRosterStore creates an empty store with configuration options.
func NewRosterStore(opts ...Option) *RosterStore {
	s := &RosterStore{
		byID:       make(map[string]*model.Person),
		maxNoteLen: defaultMaxNoteLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load implements Store.
func (s *RosterStore) Load(ctx context.Context, people []*model.Person) error {
	byID := make(map[string]*model.Person, len(people))
	order := make([]*model.Person, 0, len(people))

	for _, p := range people {
		if p.ID == "" {
			return fmt.Errorf("%w: empty person id", ErrValidation)
		}
		if _, dup := byID[p.ID]; dup {
			return fmt.Errorf("%w: duplicate person id %q", ErrValidation, p.ID)
		}
		if !p.Performance.Valid() {
			return fmt.Errorf("%w: person %q has unrecognized performance rating %q", ErrValidation, p.ID, p.Performance)
		}
		if !p.Potential.Valid() {
			return fmt.Errorf("%w: person %q has unrecognized potential rating %q", ErrValidation, p.ID, p.Potential)
		}

		cp := p.Clone()
		cp.Position = model.Position(cp.Performance, cp.Potential)
		cp.OriginalPosition = cp.Position
		byID[cp.ID] = cp
		order = append(order, cp)
	}

	s.byID = byID
	s.order = order
	return nil
}

// Get implements Store.
func (s *RosterStore) Get(ctx context.Context, id string) (*model.Person, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return p, nil
}

// SetPosition implements Store.
func (s *RosterStore) SetPosition(ctx context.Context, id string, pos int) (*model.Person, error) {
	if !model.ValidPosition(pos) {
		return nil, fmt.Errorf("%w: grid position %d out of range %d..%d", ErrValidation, pos, model.MinPosition, model.MaxPosition)
	}
	p, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	p.Position = pos
	p.Performance, p.Potential = model.RatingsForPosition(pos)
	return p, nil
}

// SetNotes implements Store.
func (s *RosterStore) SetNotes(ctx context.Context, id string, text string) error {
	if s.maxNoteLen > 0 && utf8.RuneCountInString(text) > s.maxNoteLen {
		return fmt.Errorf("%w: notes exceed %d characters", ErrValidation, s.maxNoteLen)
	}
	p, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	p.Notes = text
	return nil
}

// List implements Store.
func (s *RosterStore) List(ctx context.Context) []*model.Person {
	out := make([]*model.Person, len(s.order))
	copy(out, s.order)
	return out
}

// Count implements Store.
func (s *RosterStore) Count(ctx context.Context) int {
	return len(s.order)
}
