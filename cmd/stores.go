package cmd

import (
	"errors"
	"fmt"

	"github.com/rollmark/rollmark/internal/config"
	"github.com/rollmark/rollmark/internal/storage/postgres"
)

// openStores connects to PostgreSQL and builds the repositories the CLI
// commands share. The caller must Close the returned pool.
func openStores(cfg *config.Config) (*postgres.Pool, *postgres.StudentRepository, *postgres.AttendanceRepository, error) {
	if cfg.Database.URL == "" {
		return nil, nil, nil, errors.New("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.Initialize(&cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	return pool, postgres.NewStudentRepository(pool), postgres.NewAttendanceRepository(pool), nil
}
