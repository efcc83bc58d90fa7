package medicinerepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"pharmacy/internal/adapters/out/postgres/medicinerepo"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/medicine"
	"pharmacy/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// MedicineRepositoryIntegrationTestSuite provides integration tests for MedicineRepository
// using PostgreSQL containers to verify stock ledger behavior under real concurrency.
type MedicineRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *medicinerepo.GormMedicineRepository
	tracker    *MockAggregateTracker
}

func (suite *MedicineRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&medicinerepo.MedicineDTO{}))
}

func (suite *MedicineRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE medicines").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = medicinerepo.NewGormMedicineRepository(suite.db, suite.tracker)
}

func (suite *MedicineRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *MedicineRepositoryIntegrationTestSuite) TestAdd_ValidMedicine_Success() {
	ctx := context.Background()
	testMedicine := suite.createTestMedicine(20)

	suite.tracker.On("TrackAggregate", testMedicine.ID(), testMedicine).Once()

	err := suite.repository.Add(ctx, testMedicine)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testMedicine.ID())
	suite.Require().NoError(err)
	suite.Equal(testMedicine.ID(), retrieved.ID())
	suite.Equal(testMedicine.CommercialName(), retrieved.CommercialName())
	suite.True(testMedicine.Price().IsEqual(retrieved.Price()))
	suite.Equal(20, retrieved.StockQuantity())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *MedicineRepositoryIntegrationTestSuite) TestAdd_DuplicateCommercialName_Conflict() {
	ctx := context.Background()
	first := suite.createTestMedicine(10)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()

	suite.Require().NoError(suite.repository.Add(ctx, first))

	duplicate, err := medicine.NewMedicine(
		kernel.NewUUID(), first.PharmacyID(),
		first.CommercialName(), first.GenericName(), first.Manufacturer(),
		first.Price(), 5, false,
	)
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, duplicate)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict, "Duplicate listing should surface as a conflict")
}

func (suite *MedicineRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *MedicineRepositoryIntegrationTestSuite) TestGetAllByIDs_SkipsMissing() {
	ctx := context.Background()
	first := suite.createTestMedicine(10)
	second := suite.createTestMedicine(5)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	medicines, err := suite.repository.GetAllByIDs(ctx, []kernel.UUID{first.ID(), second.ID(), kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.Len(medicines, 2, "Unknown IDs should simply be absent")
}

func (suite *MedicineRepositoryIntegrationTestSuite) TestReserve_DecrementsStock() {
	ctx := context.Background()
	testMedicine := suite.createTestMedicine(10)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testMedicine))

	suite.Require().NoError(suite.repository.Reserve(ctx, testMedicine.ID(), 4))
	suite.Require().NoError(suite.repository.Reserve(ctx, testMedicine.ID(), 6))

	retrieved, err := suite.repository.Get(ctx, testMedicine.ID())
	suite.Require().NoError(err)
	suite.Equal(0, retrieved.StockQuantity())
}

func (suite *MedicineRepositoryIntegrationTestSuite) TestReserve_InsufficientStock() {
	ctx := context.Background()
	testMedicine := suite.createTestMedicine(3)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testMedicine))

	err := suite.repository.Reserve(ctx, testMedicine.ID(), 4)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, medicine.ErrInsufficientStock)

	var stockErr *medicine.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal(4, stockErr.Requested)
	suite.Equal(3, stockErr.Available)

	// The failed reservation must not have written anything.
	retrieved, err := suite.repository.Get(ctx, testMedicine.ID())
	suite.Require().NoError(err)
	suite.Equal(3, retrieved.StockQuantity())
}

func (suite *MedicineRepositoryIntegrationTestSuite) TestReserve_UnknownMedicine() {
	ctx := context.Background()

	err := suite.repository.Reserve(ctx, kernel.NewUUID(), 1)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestReserve_ConcurrentCallers drives many goroutines at the same medicine
// and verifies the conditional update never oversells: the number of winners
// equals the stock, everyone else gets an insufficient stock error, and the
// final count is exactly zero.
func (suite *MedicineRepositoryIntegrationTestSuite) TestReserve_ConcurrentCallers() {
	ctx := context.Background()
	const stock = 10
	const callers = 25

	testMedicine := suite.createTestMedicine(stock)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testMedicine))

	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo := medicinerepo.NewGormMedicineRepository(suite.db, noopTracker{})
			results <- repo.Reserve(ctx, testMedicine.ID(), 1)
		}()
	}
	wg.Wait()
	close(results)

	won, lost := 0, 0
	for err := range results {
		switch {
		case err == nil:
			won++
		default:
			suite.Require().ErrorIs(err, medicine.ErrInsufficientStock)
			lost++
		}
	}

	suite.Equal(stock, won, "Exactly the available units should be reserved")
	suite.Equal(callers-stock, lost)

	retrieved, err := suite.repository.Get(ctx, testMedicine.ID())
	suite.Require().NoError(err)
	suite.Equal(0, retrieved.StockQuantity(), "Stock must never go negative")
}

func (suite *MedicineRepositoryIntegrationTestSuite) TestRelease_RestoresStock() {
	ctx := context.Background()
	testMedicine := suite.createTestMedicine(10)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testMedicine))

	suite.Require().NoError(suite.repository.Reserve(ctx, testMedicine.ID(), 6))
	suite.Require().NoError(suite.repository.Release(ctx, testMedicine.ID(), 6))

	retrieved, err := suite.repository.Get(ctx, testMedicine.ID())
	suite.Require().NoError(err)
	suite.Equal(10, retrieved.StockQuantity())
}

func (suite *MedicineRepositoryIntegrationTestSuite) createTestMedicine(stock int) *medicine.Medicine {
	price, err := kernel.NewMoney(decimal.RequireFromString("19.99"))
	suite.Require().NoError(err)

	m, err := medicine.NewMedicine(
		kernel.NewUUID(), kernel.NewUUID(),
		"Amoxicillin 500 "+kernel.NewUUID().String(), "amoxicillin", "Test Labs",
		price, stock, false,
	)
	suite.Require().NoError(err)
	return m
}

// noopTracker satisfies the tracker contract for concurrent goroutines where
// mock call counting would race.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, interface{}) {}

func TestMedicineRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MedicineRepositoryIntegrationTestSuite))
}
