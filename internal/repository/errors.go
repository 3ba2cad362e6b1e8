package repository

import "errors"

// ErrNotFound indicates an entity was not located.
var ErrNotFound = errors.New("repository: not found")

// ErrEmailTaken indicates the unique email index rejected an insert. The
// application-level pre-check and the storage constraint both surface this
// single error kind.
var ErrEmailTaken = errors.New("repository: email already registered")
