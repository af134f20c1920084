// Package query implements the read side: filtered listings, single lookup,
// delete and the status snapshot. It never touches the upstreams.
package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/izuchukwuMcGibson/HNG-Task-2/pkg/app/errors"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/country"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/countrystore"
)

// Store is the narrow data-access interface for the query service.
type Store interface {
	List(ctx context.Context, opts ...countrystore.QueryOption) ([]*country.Country, error)
	GetByName(ctx context.Context, name string) (*country.Country, error)
	DeleteByName(ctx context.Context, name string) error
	Count(ctx context.Context) (int, error)
}

// MarkerReader reads the refresh-marker singleton.
type MarkerReader interface {
	GetLastRefreshed(ctx context.Context) (*time.Time, error)
}

// Filter narrows a listing. Empty fields are ignored.
type Filter struct {
	Region       string
	CurrencyCode string
	Sort         countrystore.Sort
}

// Status is the cheap "when did data last change" snapshot.
type Status struct {
	TotalCountries  int
	LastRefreshedAt *time.Time
}

// Service defines the read-side business logic
type Service interface {
	List(ctx context.Context, filter Filter) ([]*country.Country, error)
	GetByName(ctx context.Context, name string) (*country.Country, error)
	DeleteByName(ctx context.Context, name string) error
	Status(ctx context.Context) (*Status, error)
}

type queryService struct {
	store   Store
	markers MarkerReader
	logger  *zap.Logger
}

// NewService creates a new query service
func NewService(store Store, markers MarkerReader, logger *zap.Logger) Service {
	return &queryService{
		store:   store,
		markers: markers,
		logger:  logger,
	}
}

func (s *queryService) List(ctx context.Context, filter Filter) ([]*country.Country, error) {
	var opts []countrystore.QueryOption
	if filter.Region != "" {
		opts = append(opts, countrystore.WithRegion(filter.Region))
	}
	if filter.CurrencyCode != "" {
		opts = append(opts, countrystore.WithCurrencyCode(filter.CurrencyCode))
	}
	if filter.Sort != countrystore.SortNone {
		opts = append(opts, countrystore.WithSort(filter.Sort))
	}

	countries, err := s.store.List(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

// GetByName looks up a single record by its case-insensitive name key.
func (s *queryService) GetByName(ctx context.Context, name string) (*country.Country, error) {
	if name == "" {
		return nil, apperrors.BadRequestError(nil, "Country name is required")
	}

	c, err := s.store.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, countrystore.ErrCountryNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "Country not found")
		}
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return c, nil
}

// DeleteByName removes the single record matching the case-insensitive name
// key; the key's uniqueness guarantees at most one match.
func (s *queryService) DeleteByName(ctx context.Context, name string) error {
	if name == "" {
		return apperrors.BadRequestError(nil, "Country name is required")
	}

	if err := s.store.DeleteByName(ctx, name); err != nil {
		if errors.Is(err, countrystore.ErrCountryNotFound) {
			return apperrors.ResourceNotFoundError(err, "Country not found")
		}
		return fmt.Errorf("failed to delete country: %w", err)
	}

	s.logger.Info("Country deleted", zap.String("name_key", country.Key(name)))
	return nil
}

func (s *queryService) Status(ctx context.Context) (*Status, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count countries: %w", err)
	}

	lastRefreshed, err := s.markers.GetLastRefreshed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh marker: %w", err)
	}

	return &Status{
		TotalCountries:  total,
		LastRefreshedAt: lastRefreshed,
	}, nil
}
