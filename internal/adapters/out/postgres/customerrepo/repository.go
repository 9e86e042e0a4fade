package customerrepo

import (
	"context"
	"errors"
	"strings"

	"dds/internal/adapters/out/postgres/pattern"
	"dds/internal/core/domain/model/customer"
	"dds/internal/core/domain/model/kernel"
	"dds/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a repository running its queries on db,
// which may be a transaction.
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// GetAll returns every customer in insertion order.
func (r *GormCustomerRepository) GetAll(ctx context.Context) ([]*customer.Customer, error) {
	return r.find(r.db.WithContext(ctx))
}

// Search matches filter against name and email, ignoring case.
func (r *GormCustomerRepository) Search(ctx context.Context, filter string) ([]*customer.Customer, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return r.GetAll(ctx)
	}

	like := pattern.Contains(filter)
	return r.find(r.db.WithContext(ctx).Where("name ILIKE ? OR email ILIKE ?", like, like))
}

// Get retrieves a customer by id.
func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("id", id.String(), err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByEmail retrieves the customer owning email.
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email kernel.Email) (*customer.Customer, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email.Address()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("email", email.Address(), err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Add inserts a new customer. The id of a soft-deleted customer may be
// reused: the deleted row is removed first.
func (r *GormCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Unscoped().
		Where("id = ? AND deleted_at IS NOT NULL", c.ID().Bytes()).
		Delete(&CustomerDTO{}).Error; err != nil {
		return err
	}

	dto := fromDomain(c)
	return db.Create(&dto).Error
}

// Update overwrites the stored fields of an existing customer.
func (r *GormCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&CustomerDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":  dto.Name,
			"email": dto.Email,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("id", c.ID().String())
	}
	return nil
}

// Delete marks the customer as deleted.
func (r *GormCustomerRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&CustomerDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("id", id.String())
	}
	return nil
}

func (r *GormCustomerRepository) find(query *gorm.DB) ([]*customer.Customer, error) {
	var dtos []CustomerDTO
	if err := query.Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	customers := make([]*customer.Customer, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}
