package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "dds/internal/adapters/out/postgres"
	"dds/internal/adapters/out/postgres/customerrepo"
	"dds/internal/core/application/services"
	"dds/internal/core/domain/model/customer"
	"dds/internal/core/domain/model/kernel"
	"dds/internal/core/domain/model/product"
	"dds/internal/core/ports"
	"dds/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work, the purger and the
// CRUD service against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	dsn       string
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)
	suite.dsn = dsn

	db, err := postgres_adapter.Open(dsn)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE customers, products").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMultiRepositoryCommit() {
	ctx := context.Background()
	c := testCustomer("ana@example.com")
	p := testProduct("KB-01", 0)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, c))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	_, err := fresh.CustomerRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)
	_, err = fresh.ProductRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsEveryRepository() {
	ctx := context.Background()
	c := testCustomer("ana@example.com")
	p := testProduct("KB-01", 0)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, c))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, p))

	_, err := uow.CustomerRepository().Get(ctx, c.ID())
	suite.Require().NoError(err, "Customer should be visible inside the transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.CustomerRepository().Get(ctx, c.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = fresh.ProductRepository().Get(ctx, p.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoryIsolation() {
	ctx := context.Background()
	first := testCustomer("first@example.com")
	second := testCustomer("second@example.com")

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.CustomerRepository().Add(ctx, first))
	suite.Require().NoError(uow2.CustomerRepository().Add(ctx, second))

	_, err := uow1.CustomerRepository().Get(ctx, second.ID())
	suite.Require().Error(err, "UOW1 should not see the customer of UOW2")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	all, err := suite.factory.Create().CustomerRepository().GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(all, 1)
	suite.Equal(first.ID(), all[0].ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCrudServiceCommitIsAtomic() {
	ctx := context.Background()
	existing := testCustomer("taken@example.com")
	suite.Require().NoError(suite.factory.Create().CustomerRepository().Add(ctx, existing))

	svc := services.NewCrudService[*customer.Customer](suite.factory, services.SelectCustomers, services.NewCustomerRules())
	duplicate := customer.NewCustomer(kernel.NewUUID(), "Other", "taken@example.com")

	suite.Require().NoError(svc.Add(ctx, duplicate))
	suite.Require().True(svc.Invalid())
	suite.Equal([]kernel.Notification{kernel.NewNotification("email", "email already in use")}, svc.Notifications())
	suite.Require().ErrorIs(svc.Commit(ctx), services.ErrServiceIsInvalid)

	svc = services.NewCrudService[*customer.Customer](suite.factory, services.SelectCustomers, services.NewCustomerRules())
	fresh := customer.NewCustomer(kernel.NewUUID(), "Carla", "carla@example.com")
	suite.Require().NoError(svc.Add(ctx, fresh))
	suite.Require().False(svc.Invalid())
	suite.Require().NoError(svc.Commit(ctx))

	all, err := svc.QueryAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPurgeDeleted() {
	ctx := context.Background()
	old := testCustomer("old@example.com")
	recent := testProduct("KB-01", 0)
	alive := testProduct("KB-02", 1)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, old))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, recent))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, alive))
	suite.Require().NoError(uow.CustomerRepository().Delete(ctx, old.ID()))
	suite.Require().NoError(uow.ProductRepository().Delete(ctx, recent.ID()))

	suite.Require().NoError(suite.db.Model(&customerrepo.CustomerDTO{}).Unscoped().
		Where("id = ?", old.ID().Bytes()).
		Update("deleted_at", time.Now().Add(-48*time.Hour)).Error)

	purged, err := postgres_adapter.NewGormDeletedPurger(suite.db).PurgeDeleted(ctx, time.Now().Add(-24*time.Hour))
	suite.Require().NoError(err)
	suite.Equal(int64(1), purged)

	var remaining int64
	suite.Require().NoError(suite.db.Unscoped().Table("customers").Count(&remaining).Error)
	suite.Zero(remaining)
	suite.Require().NoError(suite.db.Unscoped().Table("products").Count(&remaining).Error)
	suite.Equal(int64(2), remaining, "recently deleted and live products stay")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestEnsureDatabase() {
	ctx := context.Background()

	suite.Require().NoError(postgres_adapter.EnsureDatabase(ctx, suite.dsn, "catalog-test"))
	suite.Require().NoError(postgres_adapter.EnsureDatabase(ctx, suite.dsn, "catalog-test"), "Existing database is kept")

	var count int64
	suite.Require().NoError(suite.db.Raw("SELECT count(*) FROM pg_database WHERE datname = ?", "catalog-test").
		Scan(&count).Error)
	suite.Equal(int64(1), count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func testCustomer(email string) *customer.Customer {
	return customer.NewCustomer(kernel.NewUUID(), "Test Customer", email)
}

func testProduct(sku string, stock int) *product.Product {
	return product.NewProduct(kernel.NewUUID(), "Test Product", sku, decimal.RequireFromString("9.99"), stock)
}
