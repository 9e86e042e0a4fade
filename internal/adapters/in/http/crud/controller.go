// Package crud provides the generic CRUD controller shared by every resource
// of the API and its echo binding.
//
// A resource is described by three types: C, the create view model received
// on POST and PUT; Q, the query view model returned by reads; and E, the
// domain entity. Concrete resources supply a Mapper between them, an ordering
// function for lists and a factory of CRUD services.
//
// Expected outcomes (record absent, request rejected) come back as a Result;
// anything else is returned as an error and never converted into
// notifications.
package crud

import (
	"context"

	"dds/internal/core/domain/model/kernel"
)

const (
	// MessageRecordNotFound is reported under "id" when the addressed record is absent.
	MessageRecordNotFound = "record not found"

	// MessageIDsDoNotMatch is reported under "id" when the body and path ids differ.
	MessageIDsDoNotMatch = "ids do not match"
)

// Entity is an identifiable domain object carrying its own validity state.
type Entity interface {
	ID() kernel.UUID
	Invalid() bool
	Notifications() []kernel.Notification
}

// Service is the domain service consumed by the controller. Mutating methods
// record rejections in Notifications and return an error only on
// infrastructure failures.
type Service[E Entity] interface {
	QueryAll(ctx context.Context) ([]E, error)
	Search(ctx context.Context, filter string) ([]E, error)
	GetByID(ctx context.Context, id kernel.UUID) (E, bool, error)
	Add(ctx context.Context, entity E) error
	Update(ctx context.Context, entity E) error
	Delete(ctx context.Context, id kernel.UUID) error
	Commit(ctx context.Context) error
	Invalid() bool
	Notifications() []kernel.Notification
}

// ServiceFactory creates one Service per request, so that notifications and
// staged mutations never outlive it.
type ServiceFactory[E Entity] interface {
	Create() Service[E]
}

// Mapper converts between the view models of a resource and its entity.
// ToEntity may record validation failures on the returned entity; an error
// means the conversion itself failed.
type Mapper[C, Q any, E Entity] interface {
	ToEntity(vm C) (E, error)
	ToView(entity E) Q
}

// OrderFunc sorts the query view models of a resource. It must be pure and
// define a deterministic total order.
type OrderFunc[Q any] func(views []Q) []Q

// Controller implements list, search, get, create, update and delete for one
// resource. It holds no per-request state and is safe for concurrent use as
// long as its mapper and ordering function are.
type Controller[C, Q any, E Entity] struct {
	services ServiceFactory[E]
	mapper   Mapper[C, Q, E]
	order    OrderFunc[Q]
}

// NewController creates a controller. A nil order keeps the service order.
func NewController[C, Q any, E Entity](
	services ServiceFactory[E],
	mapper Mapper[C, Q, E],
	order OrderFunc[Q],
) *Controller[C, Q, E] {
	if order == nil {
		order = func(views []Q) []Q { return views }
	}
	return &Controller[C, Q, E]{
		services: services,
		mapper:   mapper,
		order:    order,
	}
}

// List returns every record, mapped and ordered.
func (c *Controller[C, Q, E]) List(ctx context.Context) (Result[[]Q], error) {
	entities, err := c.services.Create().QueryAll(ctx)
	if err != nil {
		return Result[[]Q]{}, err
	}
	return OK(c.toViews(entities)), nil
}

// Search returns the records matching filter, mapped and ordered. A blank
// filter returns every record.
func (c *Controller[C, Q, E]) Search(ctx context.Context, filter string) (Result[[]Q], error) {
	entities, err := c.services.Create().Search(ctx, filter)
	if err != nil {
		return Result[[]Q]{}, err
	}
	return OK(c.toViews(entities)), nil
}

// Get returns the record with the given id.
func (c *Controller[C, Q, E]) Get(ctx context.Context, id kernel.UUID) (Result[Q], error) {
	entity, found, err := c.services.Create().GetByID(ctx, id)
	if err != nil {
		return Result[Q]{}, err
	}
	if !found {
		return NotFound[Q](recordNotFound()), nil
	}
	return OK(c.mapper.ToView(entity)), nil
}

// Create maps vm to a new entity and stores it. The entity's own
// notifications are reported without consulting the service.
func (c *Controller[C, Q, E]) Create(ctx context.Context, vm C) (Result[Created], error) {
	entity, err := c.mapper.ToEntity(vm)
	if err != nil {
		return Result[Created]{}, err
	}
	if entity.Invalid() {
		return BadRequest[Created](entity.Notifications()...), nil
	}

	svc := c.services.Create()
	if err = svc.Add(ctx, entity); err != nil {
		return Result[Created]{}, err
	}
	if svc.Invalid() {
		return BadRequest[Created](svc.Notifications()...), nil
	}

	if err = svc.Commit(ctx); err != nil {
		return Result[Created]{}, err
	}

	return OK(Created{ID: entity.ID().Bytes()}), nil
}

// Update replaces the record addressed by id with the content of vm. The id
// carried by vm must equal id; this is checked before the service is used.
func (c *Controller[C, Q, E]) Update(ctx context.Context, id kernel.UUID, vm C) (Result[Empty], error) {
	entity, err := c.mapper.ToEntity(vm)
	if err != nil {
		return Result[Empty]{}, err
	}
	if !entity.ID().IsEqual(id) {
		return BadRequest[Empty](kernel.NewNotification("id", MessageIDsDoNotMatch)), nil
	}

	svc := c.services.Create()
	_, found, err := svc.GetByID(ctx, id)
	if err != nil {
		return Result[Empty]{}, err
	}
	if !found {
		return NotFound[Empty](recordNotFound()), nil
	}

	if err = svc.Update(ctx, entity); err != nil {
		return Result[Empty]{}, err
	}
	if svc.Invalid() {
		return BadRequest[Empty](svc.Notifications()...), nil
	}

	if err = svc.Commit(ctx); err != nil {
		return Result[Empty]{}, err
	}

	return OK(Empty{}), nil
}

// Delete removes the record addressed by id.
func (c *Controller[C, Q, E]) Delete(ctx context.Context, id kernel.UUID) (Result[Empty], error) {
	svc := c.services.Create()
	_, found, err := svc.GetByID(ctx, id)
	if err != nil {
		return Result[Empty]{}, err
	}
	if !found {
		return NotFound[Empty](recordNotFound()), nil
	}

	if err = svc.Delete(ctx, id); err != nil {
		return Result[Empty]{}, err
	}
	if svc.Invalid() {
		return BadRequest[Empty](svc.Notifications()...), nil
	}

	if err = svc.Commit(ctx); err != nil {
		return Result[Empty]{}, err
	}

	return OK(Empty{}), nil
}

func (c *Controller[C, Q, E]) toViews(entities []E) []Q {
	views := make([]Q, 0, len(entities))
	for _, entity := range entities {
		views = append(views, c.mapper.ToView(entity))
	}
	return c.order(views)
}

func recordNotFound() kernel.Notification {
	return kernel.NewNotification("id", MessageRecordNotFound)
}
