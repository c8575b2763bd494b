// Package pgtest starts a throwaway PostgreSQL container with the service
// schema for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"paperround/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every table of the schema in truncation order.
var Tables = []string{"run_outcomes", "run_summaries", "holidays", "stops", "routes"}

// Database is a migrated database inside a running container.
type Database struct {
	DB        *gorm.DB
	container *tcpostgres.PostgresContainer
}

// Start runs postgres:15-alpine and migrates the schema.
func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}

	d := &Database{container: container}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = d.Terminate(ctx)
		return nil, fmt.Errorf("connection string: %w", err)
	}

	d.DB, err = gorm.Open(gorm_postgres.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = d.Terminate(ctx)
		return nil, fmt.Errorf("open: %w", err)
	}

	if err = postgres.Migrate(d.DB); err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}

	return d, nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE " + strings.Join(Tables, ", ") + " CASCADE").Error
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d.container == nil {
		return nil
	}
	return d.container.Terminate(ctx)
}
