package cmd

import (
	"log/slog"

	httpapi "dds/internal/adapters/in/http"
	"dds/internal/adapters/in/http/crud"
	"dds/internal/adapters/out/postgres"
	"dds/internal/core/application/services"
	"dds/internal/core/domain/model/customer"
	"dds/internal/core/domain/model/product"
	"dds/internal/core/ports"
	"dds/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	registry   *prometheus.Registry
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCustomerServiceFactory() crud.ServiceFactory[*customer.Customer] {
	return FuncServiceFactory[*customer.Customer](func() crud.Service[*customer.Customer] {
		return services.NewCrudService[*customer.Customer](c.uowFactory, services.SelectCustomers, services.NewCustomerRules())
	})
}

func (c *CompositionRoot) CreateProductServiceFactory() crud.ServiceFactory[*product.Product] {
	return FuncServiceFactory[*product.Product](func() crud.Service[*product.Product] {
		return services.NewCrudService[*product.Product](c.uowFactory, services.SelectProducts, services.NewProductRules())
	})
}

func (c *CompositionRoot) CreateServer() (*httpapi.Server, error) {
	return httpapi.NewServer(
		c.logger,
		c.registry,
		httpapi.NewCustomerController(c.CreateCustomerServiceFactory()),
		httpapi.NewProductController(c.CreateProductServiceFactory()),
	)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	purge, err := jobs.NewPurgeDeletedJob(
		postgres.NewGormDeletedPurger(c.gormDB),
		c.config.PurgeSchedule,
		c.config.PurgeRetention,
		c.registry,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(purge), nil
}

// FuncServiceFactory adapts a function to crud.ServiceFactory.
type FuncServiceFactory[E crud.Entity] func() crud.Service[E]

func (f FuncServiceFactory[E]) Create() crud.Service[E] {
	return f()
}
