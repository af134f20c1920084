package main

import (
	"flag"
	"log"

	"github.com/uptrace/bun/migrate"

	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/config"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/migrations/countrydb"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/pgutil"
	mghelper "github.com/izuchukwuMcGibson/HNG-Task-2/pkg/pgutil/migrations"
)

func main() {
	cfgPath := flag.String("config", "config.example.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}

	// Connect to database
	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		log.Fatalf("error connecting to database: %s", err.Error())
	}
	defer db.Close()

	log.Printf("Running migrations for country database (%s)...\n", cfg.Database.Database)

	// Create migrator
	migrator := migrate.NewMigrator(db, countrydb.Migrations)

	// Run migrations with args
	err = mghelper.RunMigrations(migrator, flag.Args()...)
	if err != nil {
		mghelper.Exitf(err.Error())
	}
}
