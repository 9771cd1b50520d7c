package commands

import (
	"context"
	"time"

	"mealdash/internal/core/domain/model/delivery"
)

// AcceptDeliveryCommandHandler assigns a courier to a pending delivery with
// at-most-one-winner semantics. The in-memory transition via Assign only
// checks the loaded state; the real exclusivity comes from the repository's
// conditional update, which writes the assignment only if the stored row is
// still Pending. A lost race surfaces as a ConflictError and the loser's
// write changes nothing.
type AcceptDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewAcceptDeliveryCommandHandler creates a handler for courier acceptance.
func NewAcceptDeliveryCommandHandler(uowFactory DeliveryUoWFactory) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the delivery, assigns the courier, and persists via the
// compare-and-set update keyed on the Pending status.
func (h *AcceptDeliveryCommandHandler) Handle(ctx context.Context, cmd AcceptDeliveryCommand) error {
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

	if err = aggregate.Assign(cmd.Courier(), time.Now()); err != nil {
		return err
	}

	if err = deliveryRepo.UpdateIfStatus(ctx, aggregate, delivery.Pending); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
