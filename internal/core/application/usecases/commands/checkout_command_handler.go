package commands

import (
	"context"
	"time"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"
)

// Checkout pricing applied on top of the cart subtotal. The fee is flat, the
// tax is a percentage of the subtotal, and the estimate is a fixed lead time
// from order placement.
const (
	deliveryFeeCents          = 399
	taxRatePercent            = 8
	estimatedDeliveryLeadTime = 45 * time.Minute
)

// CheckoutCommandHandler turns a cart snapshot into a placed order. It is the
// only place where charges are computed: subtotal comes from the snapshot,
// the delivery fee and tax are added here, and the total is derived by the
// order aggregate itself.
type CheckoutCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCheckoutCommandHandler(uowFactory OrderUoWFactory) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the checkout command: builds order lines from the
// snapshot, computes charges, and persists the new order in Placed status.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	snapshot := cmd.Snapshot()

	lines := make([]order.Line, 0, len(snapshot.Lines))
	for _, cartLine := range snapshot.Lines {
		line, err := order.NewLine(
			cartLine.Item().ID(),
			cartLine.Item().Name(),
			cartLine.Item().UnitPrice(),
			cartLine.Quantity(),
		)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	subtotal := snapshot.Total
	deliveryFee := kernel.MustMoneyFromCents(deliveryFeeCents)
	tax := subtotal.Percent(taxRatePercent)

	now := time.Now()
	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		snapshot.RestaurantID,
		snapshot.RestaurantName,
		lines,
		subtotal,
		deliveryFee,
		tax,
		cmd.PickupAddress(),
		cmd.DeliveryAddress(),
		now,
		now.Add(estimatedDeliveryLeadTime),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
