package countrystore

import (
	"context"
	"errors"

	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/country"
)

// ErrCountryNotFound is returned when a lookup or delete matches no record.
var ErrCountryNotFound = errors.New("country not found")

// Sort is the GDP ordering applied to List results.
type Sort string

const (
	// SortNone preserves store-native order.
	SortNone Sort = ""
	// SortGDPDesc orders by estimated GDP descending, nulls last.
	SortGDPDesc Sort = "gdp_desc"
	// SortGDPAsc orders by estimated GDP ascending, nulls last.
	SortGDPAsc Sort = "gdp_asc"
)

// ParseSort maps a query-string sort value to a Sort. Unknown values fall
// back to store-native order.
func ParseSort(value string) Sort {
	switch value {
	case string(SortGDPDesc):
		return SortGDPDesc
	case string(SortGDPAsc):
		return SortGDPAsc
	default:
		return SortNone
	}
}

// UpsertReport aggregates the outcome of one unordered upsert batch.
// FailedKeys carries the name keys of records that could not be applied;
// their failure never blocks the rest of the batch.
type UpsertReport struct {
	Inserted   int
	Modified   int
	FailedKeys []string
}

// Total returns inserted + modified.
func (r *UpsertReport) Total() int {
	return r.Inserted + r.Modified
}

// Store defines the interface for country snapshot persistence.
type Store interface {
	BulkUpsert(ctx context.Context, countries []*country.Country) (*UpsertReport, error)
	List(ctx context.Context, opts ...QueryOption) ([]*country.Country, error)
	GetByName(ctx context.Context, name string) (*country.Country, error)
	DeleteByName(ctx context.Context, name string) error
	Count(ctx context.Context) (int, error)
	TopByGDP(ctx context.Context, limit int) ([]*country.Country, error)
}

// QueryOptions defines options for listing countries
type QueryOptions struct {
	Region       *string
	CurrencyCode *string
	Sort         Sort
}

// QueryOption is a functional option for listing countries
type QueryOption func(*QueryOptions)

// WithRegion sets the exact-match region filter
func WithRegion(region string) QueryOption {
	return func(opts *QueryOptions) {
		opts.Region = &region
	}
}

// WithCurrencyCode sets the exact-match currency code filter
func WithCurrencyCode(code string) QueryOption {
	return func(opts *QueryOptions) {
		opts.CurrencyCode = &code
	}
}

// WithSort sets the GDP ordering
func WithSort(sort Sort) QueryOption {
	return func(opts *QueryOptions) {
		opts.Sort = sort
	}
}
