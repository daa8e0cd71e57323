package model

import "errors"

// Core error kinds shared across the engines. Adapters re-export these so
// callers can errors.Is against either package.
var (
	ErrNotFound   = errors.New("person not found")
	ErrValidation = errors.New("invalid roster input")
)
