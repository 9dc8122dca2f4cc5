package cmd

import (
	"log/slog"

	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/notifications"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers.
// Handlers are cheap value types; each accessor builds a fresh one over the
// shared unit-of-work factory and dispatcher.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	dispatcher *notifications.Dispatcher
	logger     *slog.Logger
}

// NewCompositionRoot creates the application wiring over the given database
// connection and notification dispatcher.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	dispatcher *notifications.Dispatcher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderStatusCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateRecordPaymentResultCommandHandler() commands.RecordPaymentResultCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordPaymentResultCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateCreateReturnRequestCommandHandler() commands.CreateReturnRequestCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateReturnRequestCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionReturnStatusCommandHandler() commands.TransitionReturnStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	policy := commands.CascadePolicy{MirrorResolutions: c.config.MirrorReturnResolutions}
	return commands.NewTransitionReturnStatusCommandHandler(f, policy, c.logger)
}

func (c *CompositionRoot) CreateExpirePendingOrdersCommandHandler() commands.ExpirePendingOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpirePendingOrdersCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateSendReturnRemindersCommandHandler() commands.SendReturnRemindersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSendReturnRemindersCommandHandler(f, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReturnsForOrderQueryHandler() queries.GetReturnsForOrderQueryHandler {
	return queries.NewGetReturnsForOrderQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
