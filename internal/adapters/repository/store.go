// Package repository loads the cricket dataset from its sources and holds
// the currently published copy.
package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/types"
)

// Source reads the four tables.
type Source interface {
	// Name identifies the source in logs and stats, e.g. "csv:/data".
	Name() string
	// Load reads and validates a complete dataset.
	Load(ctx context.Context) (*model.Dataset, error)
}

// Snapshot is an immutable published dataset.
type Snapshot struct {
	Dataset  *model.Dataset
	Version  uint64
	Source   string
	LoadedAt time.Time
}

// Store publishes datasets atomically. Readers holding a Snapshot keep
// using it after a newer one is published.
type Store struct {
	current atomic.Pointer[Snapshot]
	version atomic.Uint64
	now     func() time.Time
}

// NewStore returns an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish makes ds the current dataset and returns its snapshot.
func (s *Store) Publish(ds *model.Dataset, source string) *Snapshot {
	snap := &Snapshot{
		Dataset:  ds,
		Version:  s.version.Add(1),
		Source:   source,
		LoadedAt: s.now(),
	}
	s.current.Store(snap)
	return snap
}

// Current returns the latest snapshot or ErrNotLoaded.
func (s *Store) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Refresh loads src and publishes the result. The current snapshot is kept
// when loading fails.
func (s *Store) Refresh(ctx context.Context, src Source) (*Snapshot, error) {
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", src.Name())
	}
	return s.Publish(ds, src.Name()), nil
}

// validated returns ds after checking its references.
func validated(ds *model.Dataset) (*model.Dataset, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Info summarises the snapshot.
func (s *Snapshot) Info() types.DatasetInfo {
	return types.DatasetInfo{
		Version:  s.Version,
		Source:   s.Source,
		LoadedAt: s.LoadedAt,
		Counts:   s.Dataset.Counts(),
	}
}
