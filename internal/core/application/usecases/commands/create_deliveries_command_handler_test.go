package commands_test

import (
	"testing"

	"mealdash/internal/core/application/usecases/commands"
	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDeliveriesCommandHandler_Handle_CreatesOnlyMissing(t *testing.T) {
	ctx := t.Context()
	coveredID := kernel.NewUUID()
	uncoveredID := kernel.NewUUID()
	readyOrders := []*order.Order{
		testOrderInStatus(t, coveredID, order.ReadyForPickup),
		testOrderInStatus(t, uncoveredID, order.ReadyForPickup),
	}

	var created []*delivery.Delivery
	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("GetAllInStatus", mock.Anything, order.ReadyForPickup).Return(readyOrders, nil).Once()
	deliveryRepo.On("GetOrderIDsWithDeliveries", mock.Anything, mock.Anything).
		Return(map[kernel.UUID]bool{coveredID: true}, nil).Once()
	deliveryRepo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*delivery.Delivery))
		}).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveriesCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, commands.NewCreateDeliveriesCommand()))

	require.Len(t, created, 1)
	assert.True(t, uncoveredID.IsEqual(created[0].OrderID()))
	assert.Equal(t, delivery.Pending, created[0].Status())
	deliveryRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateDeliveriesCommandHandler_Handle_NoReadyOrders(t *testing.T) {
	ctx := t.Context()
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("GetAllInStatus", mock.Anything, order.ReadyForPickup).
		Return([]*order.Order{}, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveriesCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, commands.NewCreateDeliveriesCommand()))

	uow.AssertNotCalled(t, "DeliveryRepository")
}

func TestCreateDeliveriesCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockUoWFactory)

	h := commands.NewCreateDeliveriesCommandHandler(factory)
	err := h.Handle(ctx, commands.CreateDeliveriesCommand{})

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
