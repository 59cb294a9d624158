package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

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
// against a real PostgreSQL instance.
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
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsAllFields() {
	ctx := context.Background()

	original := suite.placedOrder()
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()

	err := suite.repository.Add(ctx, original)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(original.ID().IsEqual(retrieved.ID()))
	suite.Equal(order.TypeRegular, retrieved.OrderType())
	suite.Equal(order.DeliveryTypePlatform, retrieved.DeliveryType())
	suite.Equal(order.Placed, retrieved.Status())
	suite.Equal(order.PaymentUnpaid, retrieved.PaymentStatus())
	suite.Nil(retrieved.Courier())
	suite.True(original.SellerID().IsEqual(retrieved.SellerID()))
	suite.True(original.BuyerID().IsEqual(retrieved.BuyerID()))
	suite.InDelta(original.SellerLocation().Latitude(), retrieved.SellerLocation().Latitude(), 1e-9)
	suite.InDelta(original.BuyerLocation().Longitude(), retrieved.BuyerLocation().Longitude(), 1e-9)
	suite.True(original.TotalAmount().IsEqual(retrieved.TotalAmount()))
	suite.Nil(retrieved.ApprovedAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_CancellationClearsCourierColumn() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	courierID := kernel.NewUUID()
	aggregate := suite.approvedOrder(time.Now().UTC())
	suite.Require().NoError(aggregate.Assign(courierID))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.Cancel())
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, retrieved.Status())
	suite.Nil(retrieved.Courier())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.placedOrder())

	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllAwaitingDispatch_FiltersAndOrdersByApproval() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	now := time.Now().UTC()

	second := suite.approvedOrder(now)
	first := suite.approvedOrder(now.Add(-time.Hour))
	placed := suite.placedOrder()

	assigned := suite.approvedOrder(now.Add(-2 * time.Hour))
	suite.Require().NoError(assigned.Assign(kernel.NewUUID()))

	for _, o := range []*order.Order{second, first, placed, assigned} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	backlog, err := suite.repository.GetAllAwaitingDispatch(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(backlog, 2)
	suite.True(first.ID().IsEqual(backlog[0].ID()), "oldest approval should come first")
	suite.True(second.ID().IsEqual(backlog[1].ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestTryAssign_UnassignedOrder_PersistsAssignment() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	aggregate := suite.approvedOrder(time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	courierID := kernel.NewUUID()
	suite.Require().NoError(aggregate.Assign(courierID))

	err := suite.repository.TryAssign(ctx, aggregate)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, retrieved.Status())
	suite.Require().NotNil(retrieved.Courier())
	suite.True(courierID.IsEqual(*retrieved.Courier()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestTryAssign_ConcurrentClaim_SecondDispatcherLoses() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	stored := suite.approvedOrder(time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, stored))

	// Two dispatchers load the same unassigned row.
	firstCopy, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	secondCopy, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)

	winner := kernel.NewUUID()
	loser := kernel.NewUUID()
	suite.Require().NoError(firstCopy.Assign(winner))
	suite.Require().NoError(secondCopy.Assign(loser))

	suite.Require().NoError(suite.repository.TryAssign(ctx, firstCopy))

	err = suite.repository.TryAssign(ctx, secondCopy)
	suite.Require().ErrorIs(err, order.ErrAlreadyAssigned)

	retrieved, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.Courier())
	suite.True(winner.IsEqual(*retrieved.Courier()), "first claim must stand")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestTryTransition_MatchingStatus_PersistsCancellation() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	aggregate := suite.approvedOrder(time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.Cancel())

	err := suite.repository.TryTransition(ctx, aggregate, order.Approved)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestTryTransition_StaleCancel_CommittedDeliveryStands() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	now := time.Now().UTC()
	courierID := kernel.NewUUID()
	aggregate := suite.approvedOrder(now)
	suite.Require().NoError(aggregate.Assign(courierID))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// The cancel loads its copy while the order is still assigned.
	staleCopy, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	// Meanwhile the delivery completes and commits.
	suite.Require().NoError(aggregate.StartTransit(now))
	suite.Require().NoError(aggregate.CompleteDelivery(now))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	suite.Require().NoError(staleCopy.Cancel())

	err = suite.repository.TryTransition(ctx, staleCopy, order.Assigned)
	suite.Require().ErrorIs(err, order.ErrInvalidTransition)

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, retrieved.Status(), "committed delivery must stand")
	suite.Require().NotNil(retrieved.Courier())
	suite.True(courierID.IsEqual(*retrieved.Courier()))
}

// placedOrder creates a fresh platform-delivery order in Placed status.
func (suite *OrderRepositoryIntegrationTestSuite) placedOrder() *order.Order {
	sellerLocation, err := kernel.NewGeoPoint(9.0307, 38.7612)
	suite.Require().NoError(err)
	buyerLocation, err := kernel.NewGeoPoint(9.0108, 38.7613)
	suite.Require().NoError(err)

	amount, err := kernel.NewMoneyFromString("1000.00")
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		order.TypeRegular,
		order.DeliveryTypePlatform,
		kernel.NewUUID(),
		kernel.NewUUID(),
		sellerLocation,
		buyerLocation,
		amount,
	)
	suite.Require().NoError(err)

	return aggregate
}

// approvedOrder creates an order that is paid and approved at the given time.
func (suite *OrderRepositoryIntegrationTestSuite) approvedOrder(approvedAt time.Time) *order.Order {
	aggregate := suite.placedOrder()
	suite.Require().NoError(aggregate.ConfirmPayment())
	suite.Require().NoError(aggregate.Approve(approvedAt))
	return aggregate
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
