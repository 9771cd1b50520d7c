package commands

import (
	"context"

	"mealdash/internal/core/ports"
)

// ReportCourierLocationCommandHandler records a courier position on the
// delivery record and mirrors it into the live location store. The store
// write happens after the transaction commits; a failed mirror is not worth
// rolling back a successfully recorded position, so it is returned to the
// caller as-is for logging.
type ReportCourierLocationCommandHandler struct {
	uowFactory    DeliveryUoWFactory
	locationStore ports.CourierLocationStore
}

// NewReportCourierLocationCommandHandler creates a handler for courier
// position reports.
func NewReportCourierLocationCommandHandler(
	uowFactory DeliveryUoWFactory,
	locationStore ports.CourierLocationStore,
) ReportCourierLocationCommandHandler {
	return ReportCourierLocationCommandHandler{
		uowFactory:    uowFactory,
		locationStore: locationStore,
	}
}

// Handle records the position on the delivery aggregate and, once persisted,
// pushes it to the live store keyed by the courier. Reports against
// deliveries without an active courier are rejected with a ConflictError.
func (h *ReportCourierLocationCommandHandler) Handle(ctx context.Context, cmd ReportCourierLocationCommand) error {
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

	if err = aggregate.ReportLocation(cmd.Location()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.locationStore.SetLocation(ctx, aggregate.Courier().ID(), cmd.Location())
}
