package commands

import (
	"context"
	"time"

	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/order"
)

// UpdateDeliveryStatusCommandHandler applies courier progress reports to a
// delivery and keeps its order in step, all in one transaction:
//
//   - PickedUp moves the order to OutForDelivery
//   - Delivered moves the order to Delivered
//   - Failed moves the order to Failed
//
// If either side rejects its transition the transaction rolls back, so the
// two aggregates never drift apart.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery
// progress reports. Requires a cross-aggregate UoWFactory because completing
// a delivery also closes its order.
func NewUpdateDeliveryStatusCommandHandler(uowFactory UoWFactory) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the delivery, applies the transition with its timestamp, and
// advances the linked order where the milestone calls for it.
func (h *UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	now := time.Now()
	var orderTarget order.Status

	switch cmd.Target() {
	case delivery.PickedUp:
		err = aggregate.MarkPickedUp(now)
		orderTarget = order.OutForDelivery
	case delivery.InTransit:
		err = aggregate.MarkInTransit()
	case delivery.Delivered:
		err = aggregate.MarkDelivered(now)
		orderTarget = order.Delivered
	case delivery.Failed:
		err = aggregate.MarkFailed()
		orderTarget = order.Failed
	case delivery.Cancelled:
		err = aggregate.Cancel()
	}
	if err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if orderTarget != order.Unknown {
		if err = h.advanceOrder(ctx, uow, aggregate, orderTarget); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h *UpdateDeliveryStatusCommandHandler) advanceOrder(
	ctx context.Context,
	uow UoW,
	aggregate *delivery.Delivery,
	target order.Status,
) error {
	orderRepo := uow.OrderRepository()
	linkedOrder, err := orderRepo.Get(ctx, aggregate.OrderID())
	if err != nil {
		return err
	}

	if err = linkedOrder.ChangeStatus(target); err != nil {
		return err
	}

	return orderRepo.Update(ctx, linkedOrder)
}
