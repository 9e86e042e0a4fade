package customer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"dds/internal/core/domain/model/kernel"
	"dds/internal/pkg/errs"
	"dds/internal/pkg/guard"
)

// MaxNameLength is the longest customer name accepted.
const MaxNameLength = 100

var (
	// ErrCustomerIsNotConstructed is returned when a Customer instance was not created
	// through NewCustomer or RestoreCustomer.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
)

// Customer is a person or company the system does business with.
//
// Customer follows these invariants:
//   - Must have a valid unique identifier
//   - Name is required and at most MaxNameLength characters
//   - Email is required and must be a valid address
//
// Rule violations do not make the constructor fail: they are recorded as
// notifications on the customer, which the CRUD layer reports back to the
// client as a whole.
type Customer struct {
	kernel.Notifiable

	id    kernel.UUID
	name  string
	email kernel.Email

	guard guard.ConstructorGuard
}

// NewCustomer builds a customer from raw input. The returned customer is never
// nil; check Invalid and Notifications before using it.
//
//	c := customer.NewCustomer(kernel.NewUUID(), "Ana Souza", "ana@example.com")
//	if c.Invalid() {
//	    return c.Notifications()
//	}
func NewCustomer(id kernel.UUID, name string, email string) *Customer {
	c := &Customer{
		guard: guard.NewConstructorGuard(),
	}

	c.AddError(errors.Join(
		c.setID(id),
		c.setName(name),
		c.setEmail(email),
	))

	return c
}

// RestoreCustomer rehydrates a customer loaded from storage. Stored data that
// breaks an invariant is an infrastructure fault and is returned as an error.
func RestoreCustomer(id kernel.UUID, name string, email string) (*Customer, error) {
	c := NewCustomer(id, name, email)
	if c.Invalid() {
		return nil, fmt.Errorf("restore customer %s: %v", id, c.Notifications())
	}
	return c, nil
}

// Validate ensures the Customer instance was properly constructed.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// Email returns the customer's contact address.
func (c *Customer) Email() kernel.Email {
	return c.email
}

// ChangeName renames the customer. An invalid name is recorded as a
// notification and the previous name is kept.
func (c *Customer) ChangeName(name string) {
	c.AddError(c.setName(name))
}

// ChangeEmail replaces the contact address. An invalid address is recorded as
// a notification and the previous address is kept.
func (c *Customer) ChangeEmail(email string) {
	c.AddError(c.setEmail(email))
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errs.NewValueIsInvalidErrorWithCause("name",
			fmt.Errorf("name must have at most %d characters", MaxNameLength))
	}
	c.name = name
	return nil
}

func (c *Customer) setEmail(address string) error {
	email, err := kernel.NewEmail(address)
	if err != nil {
		return err
	}
	c.email = email
	return nil
}
