package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence behavior
// against a real PostgreSQL container, including the conditional-write
// discipline that serializes concurrent transitions.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(number string) *order.Order {
	address, err := order.NewAddress("Asha Rao", "12 MG Road", "", "Bengaluru", "KA", "560001", "IN", "")
	suite.Require().NoError(err)
	item, err := order.NewLineItem("prod-1", "Canvas Tote", "natural", 2, 2050)
	suite.Require().NoError(err)
	payment, err := order.NewPayment("razorpay", 4100, "INR")
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), number, nil, "asha@example.com",
		address, []order.LineItem{item}, 0, 0, nil, payment,
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-2026-00001")

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(testOrder))
	suite.Equal("ORD-2026-00001", loaded.Number())
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(order.Pending, loaded.LoadedStatus())
	suite.Equal(int64(4100), loaded.Total())
	suite.Len(loaded.Items(), 1)
	suite.Equal("Canvas Tote", loaded.Items()[0].Title())

	history := loaded.History()
	suite.Require().Len(history, 1)
	suite.Nil(history[0].From)
	suite.Equal("pending", history[0].To)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateNumber_ReturnsConflict() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("ORD-2026-00002")))

	err := suite.repository.Add(ctx, suite.createTestOrder("ORD-2026-00002"))
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-2026-00003")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.GetByNumber(ctx, "ORD-2026-00003")
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testOrder))

	_, err = suite.repository.GetByNumber(ctx, "ORD-2026-99999")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndLedger() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-2026-00004")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	actor := "admin-1"
	_, err = loaded.Transition(order.Confirmed, &actor, nil, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, reloaded.Status())

	history := reloaded.History()
	suite.Require().Len(history, 2)
	suite.Equal("pending", *history[1].From)
	suite.Equal("confirmed", history[1].To)
	suite.Equal("admin-1", *history[1].Actor)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ConcurrentTransition_LoserGetsConflict() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-2026-00005")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two actors load the same pending order.
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	// The first confirms it.
	_, err = first.Transition(order.Confirmed, nil, nil, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// The second tries to cancel the stale copy and must lose.
	_, err = second.Transition(order.Cancelled, nil, nil, time.Now().UTC())
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	// The winner's transition is the only one recorded.
	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, reloaded.Status())
	suite.Len(reloaded.History(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_DeletedOrder_ReturnsNotFound() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-2026-00006")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Exec("DELETE FROM orders").Error)

	_, err = loaded.Transition(order.Confirmed, nil, nil, time.Now().UTC())
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, loaded)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllPendingCreatedBefore() {
	ctx := context.Background()

	stale := suite.createTestOrder("ORD-2026-00007")
	suite.Require().NoError(suite.repository.Add(ctx, stale))

	confirmed := suite.createTestOrder("ORD-2026-00008")
	_, err := confirmed.Transition(order.Confirmed, nil, nil, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, confirmed))

	cutoff := time.Now().UTC().Add(time.Hour)
	pending, err := suite.repository.GetAllPendingCreatedBefore(ctx, cutoff)
	suite.Require().NoError(err)

	suite.Require().Len(pending, 1)
	suite.True(pending[0].IsEqual(stale))

	// Nothing is old enough for a cutoff in the past.
	pending, err = suite.repository.GetAllPendingCreatedBefore(ctx, time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
