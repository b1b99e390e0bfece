package database

import (
	"fmt"

	"github.com/segyhp/reminder-engine/internal/config"
	"github.com/segyhp/reminder-engine/migrations"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// Connect opens the Postgres pool and applies pending migrations when DATABASE_AUTO_MIGRATE is set.
func Connect(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.GetConnMaxLifetime())

	if cfg.Database.AutoMigrate {
		if err := RunMigrations(db); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(db *sqlx.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db.DB, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
