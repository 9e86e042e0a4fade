package ports

import (
	"context"
	"time"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories obtained before Begin read outside any transaction; those
// obtained after Begin are bound to it.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// CustomerRepository returns a CustomerRepository bound to the current transaction, if any.
	CustomerRepository() CustomerRepository

	// ProductRepository returns a ProductRepository bound to the current transaction, if any.
	ProductRepository() ProductRepository
}

// DeletedPurger permanently removes records that were soft deleted before a cutoff.
type DeletedPurger interface {
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
}
