package cmd

import (
	"pharmacy/internal/adapters/out/postgres"
	"pharmacy/internal/core/application/usecases/commands"
	"pharmacy/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlaceOrderUoWFactory = FuncPlaceOrderUoWFactory(func() commands.PlaceOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	return commands.NewCancelStaleOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUploadPrescriptionCommandHandler() commands.UploadPrescriptionCommandHandler {
	return commands.NewUploadPrescriptionCommandHandler(c.prescriptionUoWFactory())
}

func (c *CompositionRoot) CreateVerifyPrescriptionCommandHandler() commands.VerifyPrescriptionCommandHandler {
	return commands.NewVerifyPrescriptionCommandHandler(c.prescriptionUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPatientOrdersQueryHandler() queries.GetPatientOrdersQueryHandler {
	return queries.NewGetPatientOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) prescriptionUoWFactory() commands.PrescriptionUoWFactory {
	return FuncPrescriptionUoWFactory(func() commands.PrescriptionUoW {
		return c.uowFactory.Create()
	})
}

type FuncPlaceOrderUoWFactory func() commands.PlaceOrderUoW

func (f FuncPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPrescriptionUoWFactory func() commands.PrescriptionUoW

func (f FuncPrescriptionUoWFactory) Create() commands.PrescriptionUoW {
	return f()
}
