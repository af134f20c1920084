// Package refresh drives the full refresh cycle: fetch both upstream
// datasets, derive enriched records, bulk-upsert the snapshot, advance the
// refresh marker and trigger best-effort summary regeneration.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/izuchukwuMcGibson/HNG-Task-2/internal/metrics"
	apperrors "github.com/izuchukwuMcGibson/HNG-Task-2/pkg/app/errors"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/country"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/countrystore"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/gdp"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/upstream"
)

// Store is the narrow write-side interface the orchestrator needs.
type Store interface {
	BulkUpsert(ctx context.Context, countries []*country.Country) (*countrystore.UpsertReport, error)
}

// MarkerWriter advances the refresh-marker singleton.
type MarkerWriter interface {
	SetLastRefreshed(ctx context.Context, ts time.Time) error
}

// SummaryGenerator regenerates the summary image. Its failure never fails
// the cycle.
type SummaryGenerator interface {
	Generate(ctx context.Context) error
}

// Result is the terminal success report of one refresh cycle.
type Result struct {
	Total           int
	LastRefreshedAt time.Time
}

// Service defines the refresh orchestration business logic
type Service interface {
	Refresh(ctx context.Context) (*Result, error)
}

type refreshService struct {
	gateway    upstream.Gateway
	store      Store
	markers    MarkerWriter
	summary    SummaryGenerator
	multiplier gdp.MultiplierFunc
	now        func() time.Time
	logger     *zap.Logger
}

// NewService creates a new refresh orchestrator
func NewService(
	gateway upstream.Gateway,
	store Store,
	markers MarkerWriter,
	summary SummaryGenerator,
	logger *zap.Logger,
) Service {
	return &refreshService{
		gateway:    gateway,
		store:      store,
		markers:    markers,
		summary:    summary,
		multiplier: gdp.RandomMultiplier,
		now:        time.Now,
		logger:     logger,
	}
}

// Refresh runs one full cycle. Any upstream failure aborts before the store
// is touched; the store write strictly precedes the marker update, which
// strictly precedes summary generation.
func (s *refreshService) Refresh(ctx context.Context) (*Result, error) {
	start := time.Now()
	logger := s.logger.With(zap.String("cycle_id", uuid.NewString()))
	logger.Info("Refresh cycle started")

	raw, err := s.gateway.FetchCountries(ctx)
	if err != nil {
		return nil, s.failCycle(logger, err)
	}

	rates, err := s.gateway.FetchExchangeRates(ctx)
	if err != nil {
		return nil, s.failCycle(logger, err)
	}

	derived := gdp.DeriveAll(raw, rates, s.multiplier)
	if len(derived) == 0 {
		// An empty country listing is unusual enough to flag rather than
		// silently upsert nothing.
		return nil, s.failCycle(logger, fmt.Errorf("refresh produced an empty upsert batch"))
	}

	cycleTime := s.now().UTC().Truncate(time.Second)
	for _, c := range derived {
		ts := cycleTime
		c.LastRefreshedAt = &ts
	}

	report, err := s.store.BulkUpsert(ctx, derived)
	if err != nil {
		return nil, s.failCycle(logger, fmt.Errorf("bulk upsert failed: %w", err))
	}

	metrics.RecordsUpserted.WithLabelValues(metrics.OpInserted).Add(float64(report.Inserted))
	metrics.RecordsUpserted.WithLabelValues(metrics.OpModified).Add(float64(report.Modified))
	metrics.RecordsUpserted.WithLabelValues(metrics.OpFailed).Add(float64(len(report.FailedKeys)))
	if len(report.FailedKeys) > 0 {
		logger.Warn("Some records failed to apply and were skipped",
			zap.Strings("name_keys", report.FailedKeys),
		)
	}

	if err := s.markers.SetLastRefreshed(ctx, cycleTime); err != nil {
		return nil, s.failCycle(logger, fmt.Errorf("marker update failed: %w", err))
	}

	// Best-effort: a broken image never turns a successful refresh into a
	// failure response.
	if err := s.summary.Generate(ctx); err != nil {
		logger.Warn("Summary generation failed after refresh", zap.Error(err))
	}

	metrics.RefreshCycles.WithLabelValues(metrics.StatusSuccess).Inc()
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	logger.Info("Refresh cycle completed",
		zap.Int("inserted", report.Inserted),
		zap.Int("modified", report.Modified),
		zap.Int("failed", len(report.FailedKeys)),
		zap.Time("last_refreshed_at", cycleTime),
	)

	return &Result{
		Total:           report.Total(),
		LastRefreshedAt: cycleTime,
	}, nil
}

// failCycle classifies the error, records metrics and returns the
// caller-facing ServiceError.
func (s *refreshService) failCycle(logger *zap.Logger, err error) error {
	metrics.RefreshCycles.WithLabelValues(metrics.StatusFailure).Inc()

	var upstreamErr *upstream.UpstreamError
	if errors.As(err, &upstreamErr) {
		metrics.UpstreamFailures.WithLabelValues(upstreamErr.Upstream).Inc()
		logger.Error("Refresh aborted by upstream failure",
			zap.String("upstream", upstreamErr.Upstream),
			zap.Error(err),
		)
		return apperrors.UpstreamUnavailableError(err, upstreamErr.Upstream)
	}

	logger.Error("Refresh cycle failed", zap.Error(err))
	return apperrors.GeneralError(err)
}
