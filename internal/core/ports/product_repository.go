package ports

import (
	"context"

	"dds/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for products.
type ProductRepository interface {
	Repository[*product.Product]

	// FindBySKU returns the product registered under sku, or
	// *errs.ObjectNotFoundError when the SKU is free.
	FindBySKU(ctx context.Context, sku string) (*product.Product, error)
}
