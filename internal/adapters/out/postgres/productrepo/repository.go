package productrepo

import (
	"context"
	"errors"
	"strings"

	"dds/internal/adapters/out/postgres/pattern"
	"dds/internal/core/domain/model/kernel"
	"dds/internal/core/domain/model/product"
	"dds/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a repository running its queries on db.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetAll returns every product in insertion order.
func (r *GormProductRepository) GetAll(ctx context.Context) ([]*product.Product, error) {
	return r.find(r.db.WithContext(ctx))
}

// Search matches filter against name and SKU, ignoring case.
func (r *GormProductRepository) Search(ctx context.Context, filter string) ([]*product.Product, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return r.GetAll(ctx)
	}

	like := pattern.Contains(filter)
	return r.find(r.db.WithContext(ctx).Where("name ILIKE ? OR sku ILIKE ?", like, like))
}

// Get retrieves a product by id.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("id", id.String(), err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindBySKU retrieves the product registered under sku. The comparison is
// exact: SKUs are stored upper-cased.
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("sku", sku, err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Add inserts a new product, replacing a soft-deleted row with the same id.
func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Unscoped().
		Where("id = ? AND deleted_at IS NOT NULL", p.ID().Bytes()).
		Delete(&ProductDTO{}).Error; err != nil {
		return err
	}

	dto := fromDomain(p)
	return db.Create(&dto).Error
}

// Update overwrites the stored fields of an existing product.
func (r *GormProductRepository) Update(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":  dto.Name,
			"sku":   dto.SKU,
			"price": dto.Price,
			"stock": dto.Stock,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("id", p.ID().String())
	}
	return nil
}

// Delete marks the product as deleted.
func (r *GormProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&ProductDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("id", id.String())
	}
	return nil
}

func (r *GormProductRepository) find(query *gorm.DB) ([]*product.Product, error) {
	var dtos []ProductDTO
	if err := query.Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}
