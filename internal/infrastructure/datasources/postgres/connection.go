package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"mercato.backend/internal/config"
)

var (
	sqlOpen = sql.Open
	dbPing  = func(db *sql.DB) error { return db.Ping() }
)

// NewAdminConnection connects to the maintenance database, used before the application database exists.
func NewAdminConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	return connect(cfg.AdminURL())
}

func connect(dsn string) (*sql.DB, error) {
	db, err := sqlOpen("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := dbPing(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
