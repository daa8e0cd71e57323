// Package repository defines the roster store interface and errors.
package repository

import (
	"context"

	"github.com/okian/ninebox/internal/domain/model"
)

// Store provides read/write access to one session's roster.
type Store interface {
	// Load initializes the store from imported people. It stamps every
	// person's OriginalPosition and rejects duplicate ids or unknown
	// ratings with ErrValidation. Load replaces any previous content.
	Load(ctx context.Context, people []*model.Person) error

	// Get returns the person with the given id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (*model.Person, error)

	// SetPosition moves a person to a grid cell in 1..9 and re-derives
	// the rating pair from the cell. Returns ErrValidation for an
	// out-of-range cell, ErrNotFound for an unknown id.
	SetPosition(ctx context.Context, id string, pos int) (*model.Person, error)

	// SetNotes stores free text on the person record. Notes are
	// independent of change-record state.
	SetNotes(ctx context.Context, id string, text string) error

	// List returns all people in import order. The store never re-sorts,
	// so downstream consumers control ordering.
	List(ctx context.Context) []*model.Person

	// Count returns the roster size.
	Count(ctx context.Context) int
}
