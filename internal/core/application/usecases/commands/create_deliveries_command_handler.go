package commands

import (
	"context"

	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"
)

// CreateDeliveriesCommandHandler sweeps orders in ReadyForPickup status and
// creates a Pending delivery for each one that lacks a delivery record. The
// existence check and the inserts run in one transaction, and the sweep is
// idempotent: a second run over the same orders creates nothing.
type CreateDeliveriesCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateDeliveriesCommandHandler creates a handler for the delivery
// creation sweep.
func NewCreateDeliveriesCommandHandler(uowFactory UoWFactory) CreateDeliveriesCommandHandler {
	return CreateDeliveriesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle finds ready orders without deliveries and creates Pending
// deliveries for them, copying the orders' pickup and destination addresses.
func (h *CreateDeliveriesCommandHandler) Handle(ctx context.Context, cmd CreateDeliveriesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	readyOrders, err := uow.OrderRepository().GetAllInStatus(ctx, order.ReadyForPickup)
	if err != nil {
		return err
	}
	if len(readyOrders) == 0 {
		return uow.Commit(ctx)
	}

	orderIDs := make([]kernel.UUID, 0, len(readyOrders))
	for _, readyOrder := range readyOrders {
		orderIDs = append(orderIDs, readyOrder.ID())
	}

	deliveryRepo := uow.DeliveryRepository()
	covered, err := deliveryRepo.GetOrderIDsWithDeliveries(ctx, orderIDs)
	if err != nil {
		return err
	}

	for _, readyOrder := range readyOrders {
		if covered[readyOrder.ID()] {
			continue
		}

		newDelivery, err := delivery.NewDelivery(
			kernel.NewUUID(),
			readyOrder.ID(),
			readyOrder.PickupAddress(),
			readyOrder.DeliveryAddress(),
		)
		if err != nil {
			return err
		}

		if err = deliveryRepo.Add(ctx, newDelivery); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
