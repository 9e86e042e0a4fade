package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"dds/internal/adapters/out/postgres/customerrepo"
	"dds/internal/adapters/out/postgres/productrepo"

	"github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// EnsureDatabase creates the database name unless it exists. dsn must point
// to a database the user can connect to, usually "postgres".
func EnsureDatabase(ctx context.Context, dsn string, name string) error {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return fmt.Errorf("parse maintenance dsn: %w", err)
	}
	db := sql.OpenDB(connector)
	defer db.Close()

	var exists bool
	if err = db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", name,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check database %q: %w", name, err)
	}
	if exists {
		return nil
	}

	if _, err = db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("create database %q: %w", name, err)
	}
	slog.InfoContext(ctx, "database created", "component", "postgres", "database", name)
	return nil
}

// Open connects to dsn. SQL statements are logged only at warn level and
// above.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the tables of every repository.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&customerrepo.CustomerDTO{}, &productrepo.ProductDTO{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
