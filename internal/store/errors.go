package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrCorrupt is returned when the users file exists but does not hold
// well-formed JSON. Distinct from a missing file, which loads as empty.
var ErrCorrupt = errors.New("users file is corrupt")
