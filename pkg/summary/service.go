// Package summary computes the top-N-by-GDP snapshot and renders it into
// the cached summary image. The refresh pipeline consumes it best-effort;
// the explicit regeneration endpoint surfaces render failures instead.
package summary

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/izuchukwuMcGibson/HNG-Task-2/internal/metrics"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/country"
)

// TopN is how many countries the summary ranks by estimated GDP.
const TopN = 5

// Projection is the snapshot rendered into the summary image.
type Projection struct {
	Total           int
	Top             []*country.Country
	LastRefreshedAt *time.Time
}

// CountryReader is the read-side store access the projection needs.
type CountryReader interface {
	Count(ctx context.Context) (int, error)
	TopByGDP(ctx context.Context, limit int) ([]*country.Country, error)
}

// MarkerReader reads the refresh-marker singleton.
type MarkerReader interface {
	GetLastRefreshed(ctx context.Context) (*time.Time, error)
}

// Renderer renders a projection into a binary image at the given path.
type Renderer interface {
	Render(p *Projection, path string) error
}

// Service defines the summary projection business logic
type Service interface {
	Project(ctx context.Context) (*Projection, error)
	Generate(ctx context.Context) error
	Regenerate(ctx context.Context) (string, error)
	ImagePath() string
}

type summaryService struct {
	store     CountryReader
	markers   MarkerReader
	renderer  Renderer
	cachePath string
	logger    *zap.Logger
}

// NewService creates a new summary projection service
func NewService(
	store CountryReader,
	markers MarkerReader,
	renderer Renderer,
	cachePath string,
	logger *zap.Logger,
) Service {
	return &summaryService{
		store:     store,
		markers:   markers,
		renderer:  renderer,
		cachePath: cachePath,
		logger:    logger,
	}
}

// Project reads only from the persisted stores: total record count, the top
// five countries with a known positive GDP, and the refresh marker.
func (s *summaryService) Project(ctx context.Context) (*Projection, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count countries: %w", err)
	}

	top, err := s.store.TopByGDP(ctx, TopN)
	if err != nil {
		return nil, fmt.Errorf("failed to project top countries: %w", err)
	}

	lastRefreshed, err := s.markers.GetLastRefreshed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh marker: %w", err)
	}

	return &Projection{
		Total:           total,
		Top:             top,
		LastRefreshedAt: lastRefreshed,
	}, nil
}

// Generate projects and renders the summary image. Used inline after a
// refresh cycle, where the caller swallows any error.
func (s *summaryService) Generate(ctx context.Context) error {
	projection, err := s.Project(ctx)
	if err != nil {
		metrics.SummaryRenders.WithLabelValues(metrics.StatusFailure).Inc()
		return err
	}

	if err := s.renderer.Render(projection, s.cachePath); err != nil {
		metrics.SummaryRenders.WithLabelValues(metrics.StatusFailure).Inc()
		return fmt.Errorf("failed to render summary image: %w", err)
	}

	metrics.SummaryRenders.WithLabelValues(metrics.StatusSuccess).Inc()
	s.logger.Info("Summary image generated",
		zap.String("path", s.cachePath),
		zap.Int("total_countries", projection.Total),
		zap.Int("top_ranked", len(projection.Top)),
	)
	return nil
}

// Regenerate recomputes the projection from the store only and rerenders the
// image unconditionally. Unlike the inline path, failure here is returned to
// the caller.
func (s *summaryService) Regenerate(ctx context.Context) (string, error) {
	if err := s.Generate(ctx); err != nil {
		return "", err
	}
	return s.cachePath, nil
}

// ImagePath returns the fixed cache location of the rendered image.
func (s *summaryService) ImagePath() string {
	return s.cachePath
}
