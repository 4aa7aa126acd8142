package repositories

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrKeyNotFound is returned by key-value repositories for a missing key.
var ErrKeyNotFound = errors.New("key not found")
