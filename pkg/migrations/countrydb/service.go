// Package countrydb holds all the migrations for the country database
package countrydb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the country database
var Migrations = migrate.NewMigrations()
