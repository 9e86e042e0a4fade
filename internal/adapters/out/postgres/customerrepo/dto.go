// Package customerrepo persists customers with GORM. Deletes are soft: rows
// keep a deletion timestamp until the purge job removes them.
package customerrepo

import (
	"time"

	"dds/internal/core/domain/model/customer"
	"dds/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerDTO is the row of the customers table. Email is unique among rows
// that are not deleted.
type CustomerDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"type:varchar(100);not null"`
	Email     string         `gorm:"type:varchar(254);not null;uniqueIndex:idx_customers_email,where:deleted_at IS NULL"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:    c.ID().Bytes(),
		Name:  c.Name(),
		Email: c.Email().Address(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return customer.RestoreCustomer(id, dto.Name, dto.Email)
}
