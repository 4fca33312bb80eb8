package postgres

import (
	"time"

	"github.com/freshcrate/freshcrate/internal/config"
	"github.com/freshcrate/freshcrate/internal/logger"
	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

// NewClient opens a Postgres connection pool from the application
// configuration.
func NewClient(cfg *config.Configuration, logger *logger.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	logger.Infow("connected to postgres",
		"host", cfg.Postgres.Host,
		"database", cfg.Postgres.DBName)
	return db, nil
}
