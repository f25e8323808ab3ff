package repository

import "github.com/cockroachdb/errors"

// Sentinel kinds for repository errors.
var (
	ErrNotLoaded = errors.New("dataset not loaded")
	ErrMalformed = errors.New("malformed dataset file")
	ErrSource    = errors.New("dataset source failed")
)
