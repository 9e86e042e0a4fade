package postgres

import (
	"context"
	"time"

	"dds/internal/adapters/out/postgres/customerrepo"
	"dds/internal/adapters/out/postgres/productrepo"

	"gorm.io/gorm"
)

// GormDeletedPurger removes soft-deleted customers and products for good.
type GormDeletedPurger struct {
	db *gorm.DB
}

// NewGormDeletedPurger creates a purger over db.
func NewGormDeletedPurger(db *gorm.DB) *GormDeletedPurger {
	return &GormDeletedPurger{db: db}
}

// PurgeDeleted hard-deletes, in one transaction, every row soft-deleted
// before the given instant and returns how many rows were removed.
func (p *GormDeletedPurger) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	var purged int64
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&customerrepo.CustomerDTO{}, &productrepo.ProductDTO{}} {
			result := tx.Unscoped().Where("deleted_at IS NOT NULL AND deleted_at < ?", before).Delete(model)
			if result.Error != nil {
				return result.Error
			}
			purged += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return purged, nil
}
