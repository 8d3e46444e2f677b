package repositories

import "errors"

// ErrNotFound is returned when a requested master or plan record does not
// exist. Aggregators use it to tell "deleted reference data" (degrade the
// row) apart from infrastructure failures (flag the row as unavailable).
var ErrNotFound = errors.New("record not found")
