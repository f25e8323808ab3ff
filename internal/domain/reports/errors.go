package reports

import "github.com/cockroachdb/errors"

// Sentinel kinds for report errors.
var (
	ErrUnknownReport = errors.New("unknown report")
	ErrInvalidParams = errors.New("invalid report parameters")
)
