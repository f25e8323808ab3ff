package model

import "github.com/cockroachdb/errors"

// Sentinel kinds for dataset errors. Use errors.Is to test for them.
var (
	ErrInvalidReference = errors.New("invalid reference")
	ErrInvalidRecord    = errors.New("invalid record")
)

// InvalidReference reports a row pointing at an entity that does not exist.
func InvalidReference(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidReference, format, args...)
}

func invalidRecord(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidRecord, format, args...)
}
