package services

import (
	"context"
	"errors"

	"dds/internal/core/domain/model/kernel"
	"dds/internal/core/domain/model/product"
	"dds/internal/core/ports"
	"dds/internal/pkg/errs"
)

// ProductRules enforces SKU uniqueness and forbids deleting products that
// still have stock.
type ProductRules struct{}

// NewProductRules creates the product rule set.
func NewProductRules() ProductRules {
	return ProductRules{}
}

// SelectProducts is the RepositorySelector for products.
func SelectProducts(uow ports.UnitOfWork) ports.Repository[*product.Product] {
	return uow.ProductRepository()
}

// ValidateAdd rejects a product whose SKU is already taken.
func (r ProductRules) ValidateAdd(
	ctx context.Context,
	uow ports.UnitOfWork,
	p *product.Product,
) ([]kernel.Notification, error) {
	return r.skuIsFree(ctx, uow, p)
}

// ValidateUpdate rejects a SKU taken by another product.
func (r ProductRules) ValidateUpdate(
	ctx context.Context,
	uow ports.UnitOfWork,
	p *product.Product,
) ([]kernel.Notification, error) {
	return r.skuIsFree(ctx, uow, p)
}

// ValidateDelete rejects deleting a product that still has stock.
func (r ProductRules) ValidateDelete(
	_ context.Context,
	_ ports.UnitOfWork,
	existing *product.Product,
) ([]kernel.Notification, error) {
	if !existing.CanBeDeleted() {
		return []kernel.Notification{
			kernel.NewNotification("stock", "product with stock cannot be deleted"),
		}, nil
	}
	return nil, nil
}

func (r ProductRules) skuIsFree(
	ctx context.Context,
	uow ports.UnitOfWork,
	p *product.Product,
) ([]kernel.Notification, error) {
	owner, err := uow.ProductRepository().FindBySKU(ctx, p.SKU())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if owner.ID().IsEqual(p.ID()) {
		return nil, nil
	}

	return []kernel.Notification{kernel.NewNotification("sku", "sku already in use")}, nil
}
