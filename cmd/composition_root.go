package cmd

import (
	"context"
	"log/slog"

	httpadapter "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/memory"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type statusCounter = func(ctx context.Context) (map[order.Status]int64, error)

type uncompletedLister = func(ctx context.Context) ([]queries.GetUncompletedOrdersQueryResponse, error)

type CompositionRoot struct {
	config     Config
	uowFactory ports.UnitOfWorkFactory
	repository ports.OrderRepository
	publisher  ports.EventPublisher
	countFunc  statusCounter
	listFunc   uncompletedLister
	registry   prometheus.Registerer
	logger     *slog.Logger
}

// NewCompositionRoot wires the PostgreSQL adapters when gormDB is set and the
// in-memory ones otherwise.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	registry prometheus.Registerer,
	logger *slog.Logger,
) CompositionRoot {
	root := CompositionRoot{
		config:    config,
		publisher: publisher,
		registry:  registry,
		logger:    logger,
	}

	if gormDB != nil {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
		root.repository = orderrepo.NewGormOrderRepository(gormDB)
		countHandler := queries.NewCountOrdersByStatusQueryHandler(gormDB)
		root.countFunc = func(ctx context.Context) (map[order.Status]int64, error) {
			return countHandler.Handle(ctx, queries.NewCountOrdersByStatusQuery())
		}
		uncompletedHandler := queries.NewGetUncompletedOrdersQueryHandler(gormDB)
		root.listFunc = func(ctx context.Context) ([]queries.GetUncompletedOrdersQueryResponse, error) {
			return uncompletedHandler.Handle(ctx, queries.NewGetUncompletedOrdersQuery())
		}
		return root
	}

	store := memory.NewStore()
	root.uowFactory = memory.NewUnitOfWorkFactory(store)
	root.repository = memory.NewOrderRepository(store)
	root.countFunc = func(context.Context) (map[order.Status]int64, error) {
		return store.CountByStatus(), nil
	}
	root.listFunc = func(ctx context.Context) ([]queries.GetUncompletedOrdersQueryResponse, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		orders, err := store.Uncompleted()
		if err != nil {
			return nil, err
		}
		summaries := make([]queries.GetUncompletedOrdersQueryResponse, 0, len(orders))
		for _, o := range orders {
			summaries = append(summaries, queries.NewUncompletedOrderSummary(o))
		}
		return summaries, nil
	}
	return root
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	return commands.NewAddOrderItemCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateRemoveOrderItemCommandHandler() commands.RemoveOrderItemCommandHandler {
	return commands.NewRemoveOrderItemCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.repository)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.repository)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		ConfirmOrder:      c.CreateConfirmOrderCommandHandler(),
		PayOrder:          c.CreatePayOrderCommandHandler(),
		ShipOrder:         c.CreateShipOrderCommandHandler(),
		DeliverOrder:      c.CreateDeliverOrderCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		AddOrderItem:      c.CreateAddOrderItemCommandHandler(),
		RemoveOrderItem:   c.CreateRemoveOrderItemCommandHandler(),
		DeleteOrder:       c.CreateDeleteOrderCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetCustomerOrders: c.CreateGetCustomerOrdersQueryHandler(),
		CountByStatus:     c.countFunc,
		ListUncompleted:   c.listFunc,
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	manager := jobs.NewJobManager()
	manager.Add("order stats", jobs.NewOrderStatsJob(c.countFunc, c.config.StatsSchedule, c.registry, c.logger))
	return manager
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
