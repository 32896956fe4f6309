package store

import "errors"

// ErrNotFound is returned by all stores when a record does not exist.
var ErrNotFound = errors.New("record not found")
