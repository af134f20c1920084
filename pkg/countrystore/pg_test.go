package countrystore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/country"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/countrystore"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/migrations/countrydb"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/pgutil"
)

func setupStore(t *testing.T) (countrystore.Store, *bun.DB) {
	t.Helper()
	pgutil.RequireDockerAccess(t)

	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	migrator := migrate.NewMigrator(db, countrydb.Migrations)
	require.NoError(t, migrator.Init(ctx))
	_, err := migrator.Migrate(ctx)
	require.NoError(t, err)

	return countrystore.NewStore(db), db
}

func truncate(t *testing.T, db *bun.DB) {
	t.Helper()
	_, err := db.NewTruncateTable().Model((*countrystore.CountryDao)(nil)).Exec(context.Background())
	require.NoError(t, err)
}

func testCountry(name string, estimatedGDP *float64) *country.Country {
	c := country.New(name)
	c.Population = 1000000
	c.EstimatedGDP = estimatedGDP
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.LastRefreshedAt = &ts
	return c
}

func ptr[T any](v T) *T { return &v }

func keys(countries []*country.Country) []string {
	out := make([]string, len(countries))
	for i, c := range countries {
		out[i] = c.NameKey
	}
	return out
}

func TestPGStore(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	t.Run("bulk upsert splits inserted and modified", func(t *testing.T) {
		truncate(t, db)

		batch := []*country.Country{
			testCountry("Testland", ptr(150000000.0)),
			testCountry("Erewhon", nil),
			testCountry("Atlantis", ptr(0.0)),
		}

		report, err := store.BulkUpsert(ctx, batch)
		require.NoError(t, err)
		require.Equal(t, 3, report.Inserted)
		require.Equal(t, 0, report.Modified)
		require.Empty(t, report.FailedKeys)

		// Second pass over the same keys modifies instead of inserting.
		batch[0].EstimatedGDP = ptr(180000000.0)
		report, err = store.BulkUpsert(ctx, batch)
		require.NoError(t, err)
		require.Equal(t, 0, report.Inserted)
		require.Equal(t, 3, report.Modified)

		count, err := store.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, count)

		got, err := store.GetByName(ctx, "Testland")
		require.NoError(t, err)
		require.NotNil(t, got.EstimatedGDP)
		require.Equal(t, 180000000.0, *got.EstimatedGDP)
	})

	t.Run("upsert matches on case-insensitive key", func(t *testing.T) {
		truncate(t, db)

		_, err := store.BulkUpsert(ctx, []*country.Country{testCountry("Testland", nil)})
		require.NoError(t, err)

		report, err := store.BulkUpsert(ctx, []*country.Country{testCountry("TESTLAND", nil)})
		require.NoError(t, err)
		require.Equal(t, 0, report.Inserted)
		require.Equal(t, 1, report.Modified)

		got, err := store.GetByName(ctx, "testland")
		require.NoError(t, err)
		// Display name tracks the latest upsert.
		require.Equal(t, "TESTLAND", got.Name)
	})

	t.Run("get by name is case-insensitive", func(t *testing.T) {
		truncate(t, db)

		_, err := store.BulkUpsert(ctx, []*country.Country{testCountry("Testland", nil)})
		require.NoError(t, err)

		for _, name := range []string{"Testland", "testland", "TESTLAND"} {
			got, err := store.GetByName(ctx, name)
			require.NoError(t, err, "lookup %q", name)
			require.Equal(t, "testland", got.NameKey)
		}
	})

	t.Run("get by name not found", func(t *testing.T) {
		truncate(t, db)

		_, err := store.GetByName(ctx, "atlantis")
		require.ErrorIs(t, err, countrystore.ErrCountryNotFound)
	})

	t.Run("delete by name", func(t *testing.T) {
		truncate(t, db)

		_, err := store.BulkUpsert(ctx, []*country.Country{testCountry("Testland", nil)})
		require.NoError(t, err)

		require.NoError(t, store.DeleteByName(ctx, "TESTLAND"))
		require.ErrorIs(t, store.DeleteByName(ctx, "Testland"), countrystore.ErrCountryNotFound)
	})

	t.Run("list filters by region and currency", func(t *testing.T) {
		truncate(t, db)

		a := testCountry("Testland", nil)
		a.Region = ptr("Test Region")
		a.CurrencyCode = ptr("TST")
		b := testCountry("Erewhon", nil)
		b.Region = ptr("Other Region")
		b.CurrencyCode = ptr("XYZ")

		_, err := store.BulkUpsert(ctx, []*country.Country{a, b})
		require.NoError(t, err)

		got, err := store.List(ctx, countrystore.WithRegion("Test Region"))
		require.NoError(t, err)
		require.Equal(t, []string{"testland"}, keys(got))

		got, err = store.List(ctx, countrystore.WithCurrencyCode("XYZ"))
		require.NoError(t, err)
		require.Equal(t, []string{"erewhon"}, keys(got))

		got, err = store.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("gdp sort puts nulls last in both directions", func(t *testing.T) {
		truncate(t, db)

		batch := []*country.Country{
			testCountry("Midland", ptr(3e9)),
			testCountry("Erewhon", nil),
			testCountry("Bigland", ptr(5e12)),
		}
		_, err := store.BulkUpsert(ctx, batch)
		require.NoError(t, err)

		got, err := store.List(ctx, countrystore.WithSort(countrystore.SortGDPDesc))
		require.NoError(t, err)
		require.Equal(t, []string{"bigland", "midland", "erewhon"}, keys(got))

		got, err = store.List(ctx, countrystore.WithSort(countrystore.SortGDPAsc))
		require.NoError(t, err)
		require.Equal(t, []string{"midland", "bigland", "erewhon"}, keys(got))
	})

	t.Run("top by gdp excludes null and zero", func(t *testing.T) {
		truncate(t, db)

		batch := []*country.Country{
			testCountry("Bigland", ptr(5e12)),
			testCountry("Midland", ptr(3e9)),
			testCountry("Smallland", ptr(8e6)),
			testCountry("Atlantis", ptr(0.0)),
			testCountry("Erewhon", nil),
		}
		_, err := store.BulkUpsert(ctx, batch)
		require.NoError(t, err)

		got, err := store.TopByGDP(ctx, 5)
		require.NoError(t, err)
		require.Equal(t, []string{"bigland", "midland", "smallland"}, keys(got))

		got, err = store.TopByGDP(ctx, 2)
		require.NoError(t, err)
		require.Equal(t, []string{"bigland", "midland"}, keys(got))
	})
}
