package ports

import (
	"context"

	"dds/internal/core/domain/model/customer"
	"dds/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customers.
type CustomerRepository interface {
	Repository[*customer.Customer]

	// FindByEmail returns the customer owning email, or
	// *errs.ObjectNotFoundError when the address is free.
	FindByEmail(ctx context.Context, email kernel.Email) (*customer.Customer, error)
}
