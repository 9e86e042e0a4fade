// Package ports defines the persistence contracts the domain depends on.
// Adapters in internal/adapters/out implement them; the domain never imports
// an adapter.
package ports

import (
	"context"

	"dds/internal/core/domain/model/kernel"
)

// Repository is the persistence contract shared by every CRUD entity.
// E is the entity pointer type, e.g. *customer.Customer.
type Repository[E any] interface {
	// GetAll returns every stored entity. An empty store yields an empty slice.
	GetAll(ctx context.Context) ([]E, error)

	// Search returns the entities whose text fields contain filter,
	// case-insensitively. A blank filter behaves like GetAll. Wildcard
	// characters in filter are matched literally.
	Search(ctx context.Context, filter string) ([]E, error)

	// Get retrieves an entity by id. Returns *errs.ObjectNotFoundError when
	// no entity has that id.
	Get(ctx context.Context, id kernel.UUID) (E, error)

	// Add persists a new entity.
	Add(ctx context.Context, entity E) error

	// Update persists changes to an existing entity. Returns
	// *errs.ObjectNotFoundError when the entity no longer exists.
	Update(ctx context.Context, entity E) error

	// Delete removes the entity with the given id. Returns
	// *errs.ObjectNotFoundError when nothing was removed.
	Delete(ctx context.Context, id kernel.UUID) error
}
