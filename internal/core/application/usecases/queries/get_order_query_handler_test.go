package queries_test

import (
	"context"
	"testing"
	"time"

	"pharmacy/internal/adapters/out/postgres/orderrepo"
	"pharmacy/internal/core/application/usecases/queries"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for wiring repositories in read-side tests.
type mockAggregateTracker struct{}

func (t *mockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {}

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_OrderWithItems_ReturnsFullReadModel() {
	med1 := kernel.NewUUID()
	med2 := kernel.NewUUID()
	testOrder := suite.createOrder(kernel.NewUUID(), nil,
		suite.newItem(med1, 2, "12.50"),
		suite.newItem(med2, 1, "99.99"),
	)

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.True(resp.ID.IsEqual(testOrder.ID()))
	suite.True(resp.PatientID.IsEqual(testOrder.PatientID()))
	suite.True(resp.PharmacyID.IsEqual(testOrder.PharmacyID()))
	suite.Nil(resp.PrescriptionID)
	suite.Equal("placed", resp.Status)
	suite.Empty(resp.TrackingNumber)
	suite.Require().Len(resp.Items, 2)

	expectedTotal, err := kernel.MoneyFromString("124.99")
	suite.Require().NoError(err)
	suite.True(expectedTotal.IsEqual(resp.TotalPrice),
		"total should be 2*12.50 + 99.99, got %s", resp.TotalPrice)

	itemsByMedicine := make(map[kernel.UUID]queries.OrderItemResponse)
	for _, item := range resp.Items {
		itemsByMedicine[item.MedicineID] = item
	}
	suite.Equal(2, itemsByMedicine[med1].Quantity)
	suite.Equal(1, itemsByMedicine[med2].Quantity)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_WithPrescription_ReturnsPrescriptionID() {
	prescriptionID := kernel.NewUUID()
	testOrder := suite.createOrder(kernel.NewUUID(), &prescriptionID,
		suite.newItem(kernel.NewUUID(), 1, "45.00"),
	)

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().NotNil(resp.PrescriptionID)
	suite.True(resp.PrescriptionID.IsEqual(prescriptionID))
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_TrackingNumberAfterShipping() {
	testOrder := suite.createOrder(kernel.NewUUID(), nil,
		suite.newItem(kernel.NewUUID(), 1, "10.00"),
	)

	loaded, err := suite.orderRepo.Get(context.Background(), testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.TransitionTo(order.Confirmed))
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), loaded))

	loaded, err = suite.orderRepo.Get(context.Background(), testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.SetTrackingNumber("TRK-2024-001"))
	suite.Require().NoError(loaded.TransitionTo(order.Shipped))
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), loaded))

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal("shipped", resp.Status)
	suite.Equal("TRK-2024-001", resp.TrackingNumber)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderQuery constructor")
}

func (suite *GetOrderQueryHandlerTestSuite) newItem(
	medicineID kernel.UUID,
	quantity int,
	unitPrice string,
) order.Item {
	price, err := kernel.MoneyFromString(unitPrice)
	suite.Require().NoError(err)

	item, err := order.NewItem(medicineID, quantity, price)
	suite.Require().NoError(err)
	return item
}

func (suite *GetOrderQueryHandlerTestSuite) createOrder(
	patientID kernel.UUID,
	prescriptionID *kernel.UUID,
	items ...order.Item,
) *order.Order {
	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		patientID,
		kernel.NewUUID(),
		prescriptionID,
		items,
	)
	suite.Require().NoError(err)

	err = suite.orderRepo.Add(context.Background(), testOrder)
	suite.Require().NoError(err)
	return testOrder
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
