package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/noah-isme/booking-api/pkg/config"
)

// DSN renders the lib/pq connection string for cfg.
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
}

// NewPostgres returns a PostgreSQL client holding provider calendars.
func NewPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Schema creates the calendar tables when they are missing.
const Schema = `
CREATE TABLE IF NOT EXISTS calendar_configs (
    user_id          TEXT PRIMARY KEY,
    show_weekend     BOOLEAN NOT NULL DEFAULT FALSE,
    start_time       CHAR(5) NOT NULL,
    end_time         CHAR(5) NOT NULL,
    max_appointments INTEGER NOT NULL DEFAULT 0,
    business_days    BIGINT[] NOT NULL DEFAULT '{}',
    slot_min_time    TEXT NOT NULL DEFAULT '',
    slot_max_time    TEXT NOT NULL DEFAULT '',
    slot_duration    INTEGER NOT NULL DEFAULT 30,
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS special_dates (
    id           UUID PRIMARY KEY,
    user_id      TEXT NOT NULL,
    date         TEXT NOT NULL,
    title        TEXT NOT NULL,
    description  TEXT,
    color        TEXT,
    is_available BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS special_dates_user_idx ON special_dates (user_id, created_at);
`

// Migrate applies Schema.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply calendar schema: %w", err)
	}
	return nil
}
