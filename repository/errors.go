package repository

import "errors"

var (
	// ErrNotFound is returned when a record or user does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUser is returned when a username is already taken.
	ErrDuplicateUser = errors.New("username already exists")

	// ErrInvalidID is returned when an id is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("invalid record id")
)
