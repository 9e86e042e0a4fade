package services_test

import (
	"context"

	"dds/internal/core/domain/model/customer"
	"dds/internal/core/domain/model/kernel"
	"dds/internal/core/domain/model/product"
	"dds/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) GetAll(ctx context.Context) ([]*customer.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Search(ctx context.Context, filter string) ([]*customer.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email kernel.Email) (*customer.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) GetAll(ctx context.Context) ([]*product.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, filter string) ([]*product.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	args := m.Called(ctx, sku)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

// MockUoW hands out the same repositories whether or not a transaction is open.
type MockUoW struct {
	mock.Mock
	customers *MockCustomerRepository
	products  *MockProductRepository
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	return m.customers
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	return m.products
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() ports.UnitOfWork {
	return m.Called().Get(0).(ports.UnitOfWork)
}

type fixture struct {
	customers *MockCustomerRepository
	products  *MockProductRepository
	uow       *MockUoW
	factory   *MockUoWFactory
}

func newFixture() fixture {
	customers := new(MockCustomerRepository)
	products := new(MockProductRepository)
	uow := &MockUoW{customers: customers, products: products}
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	return fixture{
		customers: customers,
		products:  products,
		uow:       uow,
		factory:   factory,
	}
}
