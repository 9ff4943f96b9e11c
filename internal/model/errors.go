package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned by stores when an insert violates the
	// unique-email constraint.
	ErrEmailTaken = errors.New("email already taken")
)
