package service

import (
	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/adapters/repository"
)

// Sentinel kinds for service errors.
var (
	// ErrNotLoaded is returned until a dataset has been published.
	ErrNotLoaded = repository.ErrNotLoaded
	// ErrInvalidQuery is returned for empty lookup queries.
	ErrInvalidQuery = errors.New("invalid lookup query")
)
