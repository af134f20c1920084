package countrystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/country"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the country store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

// BulkUpsert writes every record as an independent upsert keyed by name_key.
// The batch is unordered: a record that fails to apply is recorded in the
// report and the remaining records still go through. The returned report
// splits applied records into inserted and modified.
func (s *pgStore) BulkUpsert(ctx context.Context, countries []*country.Country) (*UpsertReport, error) {
	report := &UpsertReport{}

	for _, c := range countries {
		dao := toCountryDao(c)

		var inserted bool
		_, err := s.db.NewInsert().
			Model(dao).
			On("CONFLICT (name_key) DO UPDATE").
			Set("name = EXCLUDED.name").
			Set("capital = EXCLUDED.capital").
			Set("region = EXCLUDED.region").
			Set("population = EXCLUDED.population").
			Set("currency_code = EXCLUDED.currency_code").
			Set("exchange_rate = EXCLUDED.exchange_rate").
			Set("estimated_gdp = EXCLUDED.estimated_gdp").
			Set("flag_url = EXCLUDED.flag_url").
			Set("last_refreshed_at = EXCLUDED.last_refreshed_at").
			Returning("(xmax = 0)").
			Exec(ctx, &inserted)
		if err != nil {
			report.FailedKeys = append(report.FailedKeys, dao.NameKey)
			continue
		}

		if inserted {
			report.Inserted++
		} else {
			report.Modified++
		}
	}

	return report, nil
}

func (s *pgStore) List(ctx context.Context, opts ...QueryOption) ([]*country.Country, error) {
	options := &QueryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var daos []CountryDao
	query := s.db.NewSelect().Model(&daos)

	if options.Region != nil {
		query = query.Where("region = ?", *options.Region)
	}
	if options.CurrencyCode != nil {
		query = query.Where("currency_code = ?", *options.CurrencyCode)
	}

	// Nulls sort last under both directions so unknown GDPs never shadow
	// quoted ones.
	switch options.Sort {
	case SortGDPDesc:
		query = query.OrderExpr("estimated_gdp DESC NULLS LAST")
	case SortGDPAsc:
		query = query.OrderExpr("estimated_gdp ASC NULLS LAST")
	}

	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return toCountries(daos), nil
}

func (s *pgStore) GetByName(ctx context.Context, name string) (*country.Country, error) {
	dao := new(CountryDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("name_key = ?", country.Key(name)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCountryNotFound
		}
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return toCountry(dao), nil
}

func (s *pgStore) DeleteByName(ctx context.Context, name string) error {
	res, err := s.db.NewDelete().
		Model((*CountryDao)(nil)).
		Where("name_key = ?", country.Key(name)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete country: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrCountryNotFound
	}
	return nil
}

func (s *pgStore) Count(ctx context.Context) (int, error) {
	count, err := s.db.NewSelect().
		Model((*CountryDao)(nil)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count countries: %w", err)
	}
	return count, nil
}

// TopByGDP returns up to limit countries ordered by estimated GDP descending.
// Records with null or zero GDP are excluded: unknown and no-currency
// countries never appear in the ranking.
func (s *pgStore) TopByGDP(ctx context.Context, limit int) ([]*country.Country, error) {
	var daos []CountryDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("estimated_gdp IS NOT NULL").
		Where("estimated_gdp > 0").
		OrderExpr("estimated_gdp DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to rank countries by gdp: %w", err)
	}
	return toCountries(daos), nil
}
