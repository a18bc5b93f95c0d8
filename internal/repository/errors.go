package repository

import "errors"

// ErrNotFound is returned when a looked-up record does not exist. Handlers
// surface it to users as the same generic failure as any other store error.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when an insert collides with an existing
// account's email.
var ErrDuplicateEmail = errors.New("email already registered")
