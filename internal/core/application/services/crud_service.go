// Package services contains the application services that orchestrate
// validation and persistence of domain entities.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dds/internal/core/domain/model/kernel"
	"dds/internal/core/ports"
	"dds/internal/pkg/errs"
)

// ErrServiceIsInvalid is returned by Commit when the last mutation was rejected.
var ErrServiceIsInvalid = errors.New("cannot commit: service has notifications")

// Entity is what CrudService needs from a domain entity: an identifier and
// its own validity state.
type Entity interface {
	ID() kernel.UUID
	Invalid() bool
	Notifications() []kernel.Notification
}

// RepositorySelector picks the repository of E out of a unit of work.
//
//	func(uow ports.UnitOfWork) ports.Repository[*customer.Customer] {
//	    return uow.CustomerRepository()
//	}
type RepositorySelector[E Entity] func(uow ports.UnitOfWork) ports.Repository[E]

// Rules holds the entity specific business rules checked before a mutation is
// staged. Returned notifications reject the mutation; a returned error is an
// infrastructure failure.
type Rules[E Entity] interface {
	ValidateAdd(ctx context.Context, uow ports.UnitOfWork, entity E) ([]kernel.Notification, error)
	ValidateUpdate(ctx context.Context, uow ports.UnitOfWork, entity E) ([]kernel.Notification, error)
	ValidateDelete(ctx context.Context, uow ports.UnitOfWork, existing E) ([]kernel.Notification, error)
}

type mutation[E Entity] func(ctx context.Context, repository ports.Repository[E]) error

// CrudService validates and stages mutations of one entity type and writes
// them in a single transaction on Commit.
//
// Expected domain problems never surface as errors: mutating methods record
// them as notifications on the service (see Invalid and Notifications) and
// return nil. Errors are reserved for infrastructure failures.
//
// A CrudService keeps per-request state and must not be shared between
// requests; create one per request.
//
//	svc := services.NewCrudService(uowFactory, selectCustomers, services.NewCustomerRules())
//	if err := svc.Add(ctx, c); err != nil {
//	    return err
//	}
//	if svc.Invalid() {
//	    return svc.Notifications()
//	}
//	return svc.Commit(ctx)
type CrudService[E Entity] struct {
	kernel.Notifiable

	uowFactory ports.UnitOfWorkFactory
	repository RepositorySelector[E]
	rules      Rules[E]

	reader  ports.UnitOfWork
	pending []mutation[E]
}

// NewCrudService creates a service for entity type E. A nil rules means the
// entity has no rules beyond its own validity and identity checks.
func NewCrudService[E Entity](
	uowFactory ports.UnitOfWorkFactory,
	repository RepositorySelector[E],
	rules Rules[E],
) *CrudService[E] {
	if rules == nil {
		rules = NoRules[E]{}
	}
	return &CrudService[E]{
		uowFactory: uowFactory,
		repository: repository,
		rules:      rules,
	}
}

// QueryAll returns every entity. An empty store is not an error.
func (s *CrudService[E]) QueryAll(ctx context.Context) ([]E, error) {
	return s.repository(s.readUoW()).GetAll(ctx)
}

// Search returns the entities matching filter. A blank filter returns
// everything, exactly like QueryAll.
func (s *CrudService[E]) Search(ctx context.Context, filter string) ([]E, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return s.QueryAll(ctx)
	}
	return s.repository(s.readUoW()).Search(ctx, filter)
}

// GetByID returns the entity with the given id. found is false, with a nil
// error, when no such entity exists.
func (s *CrudService[E]) GetByID(ctx context.Context, id kernel.UUID) (E, bool, error) {
	var zero E

	entity, err := s.repository(s.readUoW()).Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return zero, false, nil
		}
		return zero, false, err
	}

	return entity, true, nil
}

// Add stages entity for insertion. It is rejected when the entity is itself
// invalid, when its id is already taken or when a rule fails.
func (s *CrudService[E]) Add(ctx context.Context, entity E) error {
	s.Clear()

	if entity.Invalid() {
		s.AddNotifications(entity.Notifications()...)
		return nil
	}

	_, found, err := s.GetByID(ctx, entity.ID())
	if err != nil {
		return err
	}
	if found {
		s.AddNotification("id", "record already exists")
		return nil
	}

	if err = s.check(s.rules.ValidateAdd(ctx, s.readUoW(), entity)); err != nil {
		return err
	}
	if s.Invalid() {
		return nil
	}

	s.pending = append(s.pending, func(ctx context.Context, repository ports.Repository[E]) error {
		return repository.Add(ctx, entity)
	})
	return nil
}

// Update stages entity for replacement of the stored record with the same id.
// It is rejected when the entity is invalid, when no record has its id or
// when a rule fails.
func (s *CrudService[E]) Update(ctx context.Context, entity E) error {
	s.Clear()

	if entity.Invalid() {
		s.AddNotifications(entity.Notifications()...)
		return nil
	}

	_, found, err := s.GetByID(ctx, entity.ID())
	if err != nil {
		return err
	}
	if !found {
		s.AddNotification("id", "record not found")
		return nil
	}

	if err = s.check(s.rules.ValidateUpdate(ctx, s.readUoW(), entity)); err != nil {
		return err
	}
	if s.Invalid() {
		return nil
	}

	s.pending = append(s.pending, func(ctx context.Context, repository ports.Repository[E]) error {
		return repository.Update(ctx, entity)
	})
	return nil
}

// Delete stages removal of the entity with the given id.
func (s *CrudService[E]) Delete(ctx context.Context, id kernel.UUID) error {
	s.Clear()

	existing, found, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		s.AddNotification("id", "record not found")
		return nil
	}

	if err = s.check(s.rules.ValidateDelete(ctx, s.readUoW(), existing)); err != nil {
		return err
	}
	if s.Invalid() {
		return nil
	}

	s.pending = append(s.pending, func(ctx context.Context, repository ports.Repository[E]) error {
		return repository.Delete(ctx, id)
	})
	return nil
}

// Commit writes every staged mutation in one transaction. Nothing is written
// when any of them fails. Committing with nothing staged is a no-op.
func (s *CrudService[E]) Commit(ctx context.Context) error {
	if s.Invalid() {
		return ErrServiceIsInvalid
	}
	if len(s.pending) == 0 {
		return nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repository := s.repository(uow)
	for _, apply := range s.pending {
		if err := apply(ctx, repository); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.pending = nil
	return nil
}

func (s *CrudService[E]) check(notifications []kernel.Notification, err error) error {
	if err != nil {
		return err
	}
	s.AddNotifications(notifications...)
	return nil
}

func (s *CrudService[E]) readUoW() ports.UnitOfWork {
	if s.reader == nil {
		s.reader = s.uowFactory.Create()
	}
	return s.reader
}

// NoRules accepts every mutation.
type NoRules[E Entity] struct{}

// ValidateAdd returns no notifications.
func (NoRules[E]) ValidateAdd(context.Context, ports.UnitOfWork, E) ([]kernel.Notification, error) {
	return nil, nil
}

// ValidateUpdate returns no notifications.
func (NoRules[E]) ValidateUpdate(context.Context, ports.UnitOfWork, E) ([]kernel.Notification, error) {
	return nil, nil
}

// ValidateDelete returns no notifications.
func (NoRules[E]) ValidateDelete(context.Context, ports.UnitOfWork, E) ([]kernel.Notification, error) {
	return nil, nil
}
