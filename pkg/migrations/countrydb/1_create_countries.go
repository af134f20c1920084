package countrydb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/countrystore"
	mghelper "github.com/izuchukwuMcGibson/HNG-Task-2/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating countries table...")
		if err := mghelper.CreateSchema(ctx, db, &countrystore.CountryDao{}); err != nil {
			return err
		}
		// Filter indexes for the list endpoint
		if err := mghelper.CreateModelIndexes(ctx, db, &countrystore.CountryDao{}, "region", "currency_code"); err != nil {
			return err
		}
		// Ranking index for the summary projection
		return mghelper.CreateModelDescIndex(ctx, db, &countrystore.CountryDao{}, "estimated_gdp")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping countries table...")
		return mghelper.DropTables(ctx, db, &countrystore.CountryDao{})
	})
}
