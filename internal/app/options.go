package service

import (
	"github.com/okian/crease/internal/adapters/repository"
	"github.com/okian/crease/internal/domain/reports"
	"github.com/okian/crease/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets where Start and Reload read the dataset from.
func WithSource(src repository.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithStore sets the snapshot store. Useful when the caller publishes
// datasets itself.
func WithStore(store *repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngine sets the in-memory report engine.
func WithEngine(e *reports.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithPushdown runs reports through b instead of the in-memory engine.
// name labels the backend in metrics and results.
func WithPushdown(name string, b Backend) Option {
	return func(s *Service) {
		if b != nil {
			s.backend = b
			s.backendName = name
		}
	}
}

// WithDefaultSeason sets the season used when Params.Season is zero.
func WithDefaultSeason(season int) Option {
	return func(s *Service) {
		if season > 0 {
			s.defaultSeason = season
		}
	}
}
