package cmd

import (
	"log/slog"
	"time"

	httpin "wms/internal/adapters/in/http"
	"wms/internal/adapters/out/postgres"
	"wms/internal/core/application/engine"
	"wms/internal/core/application/usecases/commands"
	"wms/internal/core/application/usecases/queries"
	"wms/internal/jobs"
	"wms/internal/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    metrics.New(),
		logger:     logger,
	}
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) engineOptions() engine.Options {
	return engine.Options{
		Now:             time.Now,
		CodeRetryBudget: c.config.CodeRetryBudget,
		Recorder:        c.metrics,
		Logger:          c.logger,
	}
}

func (c *CompositionRoot) engineUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateProductCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCartonFormatCommandHandler() commands.CreateCartonFormatCommandHandler {
	var f commands.CartonFormatUoWFactory = FuncCartonFormatUoWFactory(func() commands.CartonFormatUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCartonFormatCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateExpireLotsCommandHandler() commands.ExpireLotsCommandHandler {
	return commands.NewExpireLotsCommandHandler(c.engineUoWFactory(), c.engineOptions())
}

func (c *CompositionRoot) CreateCommandHandlers() httpin.CommandHandlers {
	f, options := c.engineUoWFactory(), c.engineOptions()
	return httpin.CommandHandlers{
		CreateProduct:       c.CreateCreateProductCommandHandler(),
		CreateCartonFormat:  c.CreateCreateCartonFormatCommandHandler(),
		ReceiveStock:        commands.NewReceiveStockCommandHandler(f, options),
		AdjustLot:           commands.NewAdjustLotCommandHandler(f, options),
		TransferLot:         commands.NewTransferLotCommandHandler(f, options),
		ExpireLots:          c.CreateExpireLotsCommandHandler(),
		PackCarton:          commands.NewPackCartonCommandHandler(f, options),
		UnpackCarton:        commands.NewUnpackCartonCommandHandler(f, options),
		SetCartonStatus:     commands.NewSetCartonStatusCommandHandler(f, options),
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		ReserveOrder:        commands.NewReserveOrderCommandHandler(f, options),
		ReleaseReservation:  commands.NewReleaseReservationCommandHandler(f, options),
		ConsumeReservation:  commands.NewConsumeReservationCommandHandler(f, options),
		PackFromReservation: commands.NewPackFromReservationCommandHandler(f, options),
		AssignReadyCartons:  commands.NewAssignReadyCartonsCommandHandler(f, options),
		PrepareOrder:        commands.NewPrepareOrderCommandHandler(f, options, c.logger),
		CancelOrder:         commands.NewCancelOrderCommandHandler(f, options),
		UpdateShipment:      commands.NewUpdateShipmentCommandHandler(f),
	}
}

func (c *CompositionRoot) CreateQueryHandlers() httpin.QueryHandlers {
	return httpin.QueryHandlers{
		StockLevels:  queries.NewGetStockLevelsQueryHandler(c.gormDB),
		ProductLots:  queries.NewGetProductLotsQueryHandler(c.gormDB),
		LotMovements: queries.NewGetLotMovementsQueryHandler(c.gormDB),
		Order:        queries.NewGetOrderQueryHandler(c.gormDB),
		Carton:       queries.NewGetCartonQueryHandler(c.gormDB),
		Shipment:     queries.NewGetShipmentQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(c.CreateCommandHandlers(), c.CreateQueryHandlers(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreateExpireLotsCommandHandler()
	return jobs.NewJobManager(&handler, c.metrics, c.config.LotExpirySchedule, c.logger)
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncCartonFormatUoWFactory func() commands.CartonFormatUoW

func (f FuncCartonFormatUoWFactory) Create() commands.CartonFormatUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
