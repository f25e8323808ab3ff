// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the report CLI.
package service

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/okian/crease/internal/adapters/repository"
	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/reports"
	"github.com/okian/crease/internal/domain/types"
	"github.com/okian/crease/pkg/logger"
	"github.com/okian/crease/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Backend names reported in results and metrics.
const (
	BackendMemory = "memory"
	BackendSQL    = "sql"
)

// Backend executes a report by name.
type Backend interface {
	Run(ctx context.Context, name reports.Name, p reports.Params) (any, error)
}

// engineBackend binds the in-memory engine to one dataset.
type engineBackend struct {
	engine *reports.Engine
	ds     *model.Dataset
}

func (b engineBackend) Run(ctx context.Context, name reports.Name, p reports.Params) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.engine.Run(b.ds, name, p)
}

// Service owns the published dataset and runs reports against it.
type Service struct {
	mu sync.RWMutex
	// reloadMu serialises source reads.
	reloadMu sync.Mutex

	// Core components
	store       *repository.Store
	source      repository.Source
	engine      *reports.Engine
	backend     Backend
	backendName string

	// Configuration
	defaultSeason int

	// State
	started bool

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:         repository.NewStore(),
		engine:        reports.New(),
		backendName:   BackendMemory,
		defaultSeason: 2021,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Start loads the dataset from the configured source. A service without a
// source starts empty and waits for Publish.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting analytics service...",
		logger.String("backend", s.backendName),
		logger.Int("defaultSeason", s.defaultSeason),
	)
	if s.source != nil {
		s.reloadMu.Lock()
		_, err := s.load(ctx)
		s.reloadMu.Unlock()
		if err != nil {
			return err
		}
	}
	s.started = true
	return nil
}

// Stop marks the service stopped. The published dataset stays readable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

// Reload reads the source again and publishes the result. On failure the
// previous dataset stays current.
func (s *Service) Reload(ctx context.Context) (types.DatasetInfo, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if s.source == nil {
		return types.DatasetInfo{}, errors.New("reload: no dataset source configured")
	}
	snap, err := s.load(ctx)
	if err != nil {
		return types.DatasetInfo{}, err
	}
	return snap.Info(), nil
}

// Publish makes ds the current dataset without reading a source.
func (s *Service) Publish(ctx context.Context, ds *model.Dataset, source string) (types.DatasetInfo, error) {
	if err := ds.Validate(); err != nil {
		return types.DatasetInfo{}, err
	}
	snap := s.store.Publish(ds, source)
	metrics.RecordDatasetLoad(0, float64(snap.LoadedAt.Unix()), ds.Counts())
	s.logger.Info(ctx, "dataset published",
		logger.String("source", source),
		logger.Int64("version", int64(snap.Version)),
	)
	return snap.Info(), nil
}

// load must be called with reloadMu held.
func (s *Service) load(ctx context.Context) (*repository.Snapshot, error) {
	start := time.Now()
	snap, err := s.store.Refresh(ctx, s.source)
	if err != nil {
		metrics.RecordDatasetLoadFailure()
		metrics.RecordError("service", "dataset_load")
		s.logger.Error(ctx, "dataset load failed",
			logger.String("source", s.source.Name()),
			logger.Error(err),
		)
		return nil, err
	}

	counts := snap.Dataset.Counts()
	elapsed := time.Since(start)
	metrics.RecordDatasetLoad(float64(elapsed.Milliseconds()), float64(snap.LoadedAt.Unix()), counts)
	s.logger.Info(ctx, "dataset loaded",
		logger.String("source", snap.Source),
		logger.Int64("version", int64(snap.Version)),
		logger.Int("matches", counts["matches"]),
		logger.Int("deliveries", counts["deliveries"]),
		logger.Duration("took", elapsed),
	)
	return snap, nil
}

// Run executes one report. A zero season is replaced by the default season.
func (s *Service) Run(ctx context.Context, name string, p reports.Params) (types.ReportResult, error) {
	n, err := reports.Lookup(name)
	if err != nil {
		return types.ReportResult{}, err
	}
	snap, err := s.store.Current()
	if err != nil {
		return types.ReportResult{}, err
	}
	return s.run(ctx, snap, n, s.withDefaults(p))
}

// RunAll executes every report in parallel against one snapshot. The first
// failure cancels reports that have not started yet.
func (s *Service) RunAll(ctx context.Context, p reports.Params) (types.ReportBatch, error) {
	snap, err := s.store.Current()
	if err != nil {
		return types.ReportBatch{}, err
	}
	p = s.withDefaults(p)
	batch := types.ReportBatch{RunID: uuid.NewString(), Results: make([]types.ReportResult, len(reports.Names))}
	log := s.logger.With(logger.String("runID", batch.RunID))

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range reports.Names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.run(gctx, snap, name, p)
			if err != nil {
				return err
			}
			batch.Results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error(ctx, "run all reports failed", logger.Error(err))
		return types.ReportBatch{}, err
	}

	log.Info(ctx, "ran all reports",
		logger.Int("season", p.Season),
		logger.Int("minBalls", p.MinBalls),
		logger.Int64("datasetVersion", int64(snap.Version)),
		logger.Duration("took", time.Since(start)),
	)
	return batch, nil
}

func (s *Service) run(ctx context.Context, snap *repository.Snapshot, name reports.Name, p reports.Params) (types.ReportResult, error) {
	backend := s.backend
	if backend == nil {
		backend = engineBackend{engine: s.engine, ds: snap.Dataset}
	}

	start := time.Now()
	rows, err := backend.Run(ctx, name, p)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordReportError(string(name))
		s.logger.Warn(ctx, "report failed",
			logger.String("report", string(name)),
			logger.Error(err),
		)
		return types.ReportResult{}, errors.Wrapf(err, "report %s", name)
	}

	count := rowCount(rows)
	metrics.RecordReportRun(string(name), s.backendName, float64(elapsed.Microseconds())/1000, count)
	s.logger.Debug(ctx, "report ran",
		logger.String("report", string(name)),
		logger.Int("season", p.Season),
		logger.Int("rows", count),
		logger.Duration("took", elapsed),
	)
	res := types.ReportResult{
		Report:         string(name),
		Backend:        s.backendName,
		DatasetVersion: snap.Version,
		Rows:           rows,
	}
	if name.UsesSeason() {
		res.Season = p.Season
	}
	if name == reports.TopStrikeRatesReport {
		res.MinBalls = p.MinBalls
	}
	return res, nil
}

func (s *Service) withDefaults(p reports.Params) reports.Params {
	if p.Season == 0 {
		p.Season = s.defaultSeason
	}
	if p.MinBalls == 0 {
		p.MinBalls = s.engine.DefaultMinBalls()
	}
	return p
}

// rowCount returns the length of a report's row slice.
func rowCount(rows any) int {
	v := reflect.ValueOf(rows)
	if v.Kind() != reflect.Slice {
		return 0
	}
	return v.Len()
}

// Dataset describes the current dataset.
func (s *Service) Dataset() (types.DatasetInfo, error) {
	snap, err := s.store.Current()
	if err != nil {
		return types.DatasetInfo{}, err
	}
	return snap.Info(), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"backend":       s.backendName,
		"defaultSeason": s.defaultSeason,
		"minBalls":      s.engine.DefaultMinBalls(),
		"loaded":        false,
	}
	if s.source != nil {
		stats["source"] = s.source.Name()
	}

	if snap, err := s.store.Current(); err == nil {
		stats["loaded"] = true
		stats["datasetVersion"] = snap.Version
		stats["datasetSource"] = snap.Source
		stats["loadedAt"] = snap.LoadedAt.UTC().Format(time.RFC3339)
		stats["counts"] = snap.Dataset.Counts()
	}
	return stats
}
