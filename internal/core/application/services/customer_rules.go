package services

import (
	"context"
	"errors"

	"dds/internal/core/domain/model/customer"
	"dds/internal/core/domain/model/kernel"
	"dds/internal/core/ports"
	"dds/internal/pkg/errs"
)

// CustomerRules enforces that no two customers share an e-mail address.
type CustomerRules struct{}

// NewCustomerRules creates the customer rule set.
func NewCustomerRules() CustomerRules {
	return CustomerRules{}
}

// SelectCustomers is the RepositorySelector for customers.
func SelectCustomers(uow ports.UnitOfWork) ports.Repository[*customer.Customer] {
	return uow.CustomerRepository()
}

// ValidateAdd rejects a customer whose e-mail is already taken.
func (r CustomerRules) ValidateAdd(
	ctx context.Context,
	uow ports.UnitOfWork,
	c *customer.Customer,
) ([]kernel.Notification, error) {
	return r.emailIsFree(ctx, uow, c)
}

// ValidateUpdate rejects an e-mail taken by another customer.
func (r CustomerRules) ValidateUpdate(
	ctx context.Context,
	uow ports.UnitOfWork,
	c *customer.Customer,
) ([]kernel.Notification, error) {
	return r.emailIsFree(ctx, uow, c)
}

// ValidateDelete accepts every deletion.
func (r CustomerRules) ValidateDelete(
	context.Context,
	ports.UnitOfWork,
	*customer.Customer,
) ([]kernel.Notification, error) {
	return nil, nil
}

// emailIsFree passes when the address is unused or used by c itself.
func (r CustomerRules) emailIsFree(
	ctx context.Context,
	uow ports.UnitOfWork,
	c *customer.Customer,
) ([]kernel.Notification, error) {
	owner, err := uow.CustomerRepository().FindByEmail(ctx, c.Email())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if owner.ID().IsEqual(c.ID()) {
		return nil, nil
	}

	return []kernel.Notification{kernel.NewNotification("email", "email already in use")}, nil
}
