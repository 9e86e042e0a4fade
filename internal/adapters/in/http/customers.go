package http

import (
	"cmp"
	"slices"
	"strings"

	"dds/internal/adapters/in/http/crud"
	"dds/internal/core/domain/model/customer"
	"dds/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerInput is the body of POST and PUT /api/v1/customers. ID may be
// omitted or blank on POST, a new one is generated.
type CustomerInput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CustomerView is the customer returned by reads.
type CustomerView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// CustomerController serves /api/v1/customers.
type CustomerController = crud.Controller[CustomerInput, CustomerView, *customer.Customer]

// CustomerMapper converts customer view models to entities and back.
type CustomerMapper struct{}

// ToEntity builds a customer from the request body. A malformed id is
// recorded on the customer under "id".
func (CustomerMapper) ToEntity(vm CustomerInput) (*customer.Customer, error) {
	id, ok := inputID(vm.ID)
	c := customer.NewCustomer(id, vm.Name, vm.Email)
	if !ok {
		c.AddNotification("id", MessageInvalidID)
	}
	return c, nil
}

// ToView converts a customer to its read model.
func (CustomerMapper) ToView(c *customer.Customer) CustomerView {
	return CustomerView{
		ID:    c.ID().Bytes(),
		Name:  c.Name(),
		Email: c.Email().Address(),
	}
}

// OrderCustomers sorts by name ignoring case, then by email and id.
func OrderCustomers(views []CustomerView) []CustomerView {
	ordered := slices.Clone(views)
	slices.SortFunc(ordered, func(a, b CustomerView) int {
		return cmp.Or(
			strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			strings.Compare(a.Email, b.Email),
			strings.Compare(a.ID.String(), b.ID.String()),
		)
	})
	return ordered
}

// NewCustomerController wires the customer resource.
func NewCustomerController(services crud.ServiceFactory[*customer.Customer]) *CustomerController {
	return crud.NewController[CustomerInput, CustomerView, *customer.Customer](
		services, CustomerMapper{}, OrderCustomers,
	)
}

// MessageInvalidID is reported under "id" when a request body carries an id
// that is not a UUID.
const MessageInvalidID = "value is invalid"

// inputID returns the id carried by a request body, generating one when the
// client sent none. ok is false when raw is set but cannot be parsed; a
// generated id is returned so the entity can still carry the notification.
func inputID(raw string) (id kernel.UUID, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return kernel.NewUUID(), true
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.NewUUID(), false
	}
	return id, true
}
