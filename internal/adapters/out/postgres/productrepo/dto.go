// Package productrepo persists products with GORM. Deletes are soft.
package productrepo

import (
	"time"

	"dds/internal/core/domain/model/kernel"
	"dds/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductDTO is the row of the products table. SKU is unique among rows that
// are not deleted.
type ProductDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(100);not null"`
	SKU       string          `gorm:"column:sku;type:varchar(32);not null;uniqueIndex:idx_products_sku,where:deleted_at IS NULL"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Stock     int             `gorm:"type:int;not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
	DeletedAt gorm.DeletedAt  `gorm:"index"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:    p.ID().Bytes(),
		Name:  p.Name(),
		SKU:   p.SKU(),
		Price: p.Price(),
		Stock: p.Stock(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, dto.Name, dto.SKU, dto.Price, dto.Stock)
}
