package queries_test

import (
	"context"
	"testing"
	"time"

	"mealdash/internal/core/application/usecases/queries"
	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// MockCourierLocationStore is a testify mock for ports.CourierLocationStore.
type MockCourierLocationStore struct {
	mock.Mock
}

func (m *MockCourierLocationStore) SetLocation(ctx context.Context, courierID kernel.UUID, location kernel.GeoPoint) error {
	args := m.Called(ctx, courierID, location)
	return args.Error(0)
}

func (m *MockCourierLocationStore) GetLocation(ctx context.Context, courierID kernel.UUID) (kernel.GeoPoint, error) {
	args := m.Called(ctx, courierID)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

type GetDeliveryQueryHandlerTestSuite struct {
	suite.Suite
	container     *postgres.PostgresContainer
	db            *gorm.DB
	locationStore *MockCourierLocationStore
	handler       queries.GetDeliveryQueryHandler
}

func (suite *GetDeliveryQueryHandlerTestSuite) SetupSuite() {
	suite.container, suite.db = startQueryTestDatabase(&suite.Suite)
}

func (suite *GetDeliveryQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetDeliveryQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, deliveries").Error
	suite.Require().NoError(err)

	suite.locationStore = new(MockCourierLocationStore)
	suite.handler = queries.NewGetDeliveryQueryHandler(suite.db, suite.locationStore)
}

func (suite *GetDeliveryQueryHandlerTestSuite) TestHandle_PendingDelivery_CourierFieldsEmpty() {
	now := time.Now().Truncate(time.Microsecond)
	row := newDeliveryRow(uuid.New(), delivery.Pending.String(), now)
	suite.Require().NoError(suite.db.Create(&row).Error)

	query, err := queries.NewGetDeliveryQuery(suite.uuidOf(row.ID))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(row.ID, result.ID.Bytes())
	suite.Equal(row.OrderID, result.OrderID.Bytes())
	suite.Equal("PENDING", result.Status)
	suite.Nil(result.CourierID)
	suite.Empty(result.CourierName)
	suite.Empty(result.CourierPhone)
	suite.Nil(result.CurrentLat)
	suite.Nil(result.CurrentLng)
	suite.Nil(result.AssignedAt)
	suite.Nil(result.PickedUpAt)
	suite.Nil(result.DeliveredAt)

	suite.locationStore.AssertNotCalled(suite.T(), "GetLocation")
}

func (suite *GetDeliveryQueryHandlerTestSuite) TestHandle_AssignedDelivery_CourierFieldsPopulated() {
	now := time.Now().Truncate(time.Microsecond)
	row := withCourier(
		newDeliveryRow(uuid.New(), delivery.Assigned.String(), now),
		"Sam Porter", "+1-555-0101", now)
	lat, lng := 40.7128, -74.0060
	row.CurrentLat = &lat
	row.CurrentLng = &lng
	suite.Require().NoError(suite.db.Create(&row).Error)

	// A live store miss keeps the persisted position.
	suite.locationStore.On("GetLocation", mock.Anything, suite.uuidOf(*row.CourierID)).
		Return(kernel.GeoPoint{}, errs.NewObjectNotFoundError("courier location", row.CourierID))

	query, err := queries.NewGetDeliveryQuery(suite.uuidOf(row.ID))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("ASSIGNED", result.Status)
	suite.Require().NotNil(result.CourierID)
	suite.Equal(*row.CourierID, result.CourierID.Bytes())
	suite.Equal("Sam Porter", result.CourierName)
	suite.Equal("+1-555-0101", result.CourierPhone)
	suite.Require().NotNil(result.CurrentLat)
	suite.InDelta(lat, *result.CurrentLat, 1e-9)
	suite.Require().NotNil(result.CurrentLng)
	suite.InDelta(lng, *result.CurrentLng, 1e-9)
	suite.Require().NotNil(result.AssignedAt)
	suite.WithinDuration(now, *result.AssignedAt, time.Second)
}

func (suite *GetDeliveryQueryHandlerTestSuite) TestHandle_LiveLocationOverlaysPersistedPosition() {
	now := time.Now().Truncate(time.Microsecond)
	row := withCourier(
		newDeliveryRow(uuid.New(), delivery.InTransit.String(), now),
		"Sam Porter", "+1-555-0101", now)
	staleLat, staleLng := 40.7128, -74.0060
	row.CurrentLat = &staleLat
	row.CurrentLng = &staleLng
	suite.Require().NoError(suite.db.Create(&row).Error)

	live, err := kernel.NewGeoPoint(40.7620, -73.9740)
	suite.Require().NoError(err)
	suite.locationStore.On("GetLocation", mock.Anything, suite.uuidOf(*row.CourierID)).
		Return(live, nil).Once()

	query, err := queries.NewGetDeliveryQuery(suite.uuidOf(row.ID))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().NotNil(result.CurrentLat)
	suite.InDelta(40.7620, *result.CurrentLat, 1e-9)
	suite.Require().NotNil(result.CurrentLng)
	suite.InDelta(-73.9740, *result.CurrentLng, 1e-9)

	suite.locationStore.AssertExpectations(suite.T())
}

func (suite *GetDeliveryQueryHandlerTestSuite) TestHandle_TerminalDelivery_SkipsLiveStore() {
	now := time.Now().Truncate(time.Microsecond)
	row := withCourier(
		newDeliveryRow(uuid.New(), delivery.Delivered.String(), now),
		"Sam Porter", "+1-555-0101", now)
	lat, lng := 40.7128, -74.0060
	row.CurrentLat = &lat
	row.CurrentLng = &lng
	suite.Require().NoError(suite.db.Create(&row).Error)

	query, err := queries.NewGetDeliveryQuery(suite.uuidOf(row.ID))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().NotNil(result.CurrentLat)
	suite.InDelta(lat, *result.CurrentLat, 1e-9)

	suite.locationStore.AssertNotCalled(suite.T(), "GetLocation")
}

func (suite *GetDeliveryQueryHandlerTestSuite) TestHandle_ByOrderID_FindsDelivery() {
	now := time.Now().Truncate(time.Microsecond)
	orderID := uuid.New()
	row := newDeliveryRow(orderID, delivery.Pending.String(), now)
	suite.Require().NoError(suite.db.Create(&row).Error)

	query, err := queries.NewGetDeliveryByOrderIDQuery(suite.uuidOf(orderID))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(row.ID, result.ID.Bytes())
	suite.Equal(orderID, result.OrderID.Bytes())
}

func (suite *GetDeliveryQueryHandlerTestSuite) TestHandle_NonExistentDelivery_ReturnsNotFoundError() {
	query, err := queries.NewGetDeliveryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetDeliveryQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetDeliveryQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetDeliveryQuery constructor")
}

func (suite *GetDeliveryQueryHandlerTestSuite) uuidOf(id uuid.UUID) kernel.UUID {
	converted, err := kernel.UUIDFromBytes(id[:])
	suite.Require().NoError(err)
	return converted
}

func TestGetDeliveryQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDeliveryQueryHandlerTestSuite))
}
