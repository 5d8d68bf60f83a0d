package storage

import "errors"

// ErrNotFound is returned by read operations that found no matching row
// (e.g. GetTraceByID on an unknown trace id). Callers should use errors.Is.
var ErrNotFound = errors.New("storage: not found")
