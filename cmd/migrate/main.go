package main

import (
	"errors"
	"flag"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"gameclub/config"
	"gameclub/utils"
)

func main() {
	steps := flag.Int("down", 0, "roll back this many migrations instead of applying them")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		utils.Log.Warnf("failed to load .env: %v", err)
	}
	utils.InitLogger()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		utils.Log.Fatal("DATABASE_URL is not set")
	}

	m, err := migrate.New("file://db/migrations", cfg.DatabaseURL)
	if err != nil {
		utils.Log.Fatalf("migration setup failed: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	if *steps > 0 {
		err = m.Steps(-*steps)
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		utils.Log.Fatalf("database migration failed: %v", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		utils.Log.Fatalf("could not read migration version: %v", err)
	}
	utils.LogInfo("database migrations applied", map[string]interface{}{"version": version, "dirty": dirty})
}
