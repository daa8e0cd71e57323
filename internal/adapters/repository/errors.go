package repository

import "github.com/okian/ninebox/internal/domain/model"

// Sentinel kinds for roster store errors, shared with the domain engines.
var (
	ErrNotFound   = model.ErrNotFound
	ErrValidation = model.ErrValidation
)
