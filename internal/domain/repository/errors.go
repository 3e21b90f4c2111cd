package repository

import "errors"

// ErrNotFound is returned when a lookup matches no stored record,
// regardless of the backing store
var ErrNotFound = errors.New("record not found")
