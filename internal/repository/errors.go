package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist, or when
	// a transition targets a trip that is no longer in a mutable state.
	ErrNotFound = errors.New("entity not found")
)
