package commands

import (
	"errors"
	"fmt"

	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/pkg/errs"
	"mealdash/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents a courier's progress report on an
// assigned delivery: picked up, in transit, delivered, failed, or cancelled.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	target     delivery.Status

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to move a delivery to the
// target status. Assigned is not a valid target here; acceptance goes through
// AcceptDeliveryCommand so it gets the compare-and-set treatment.
func NewUpdateDeliveryStatusCommand(deliveryID kernel.UUID, target delivery.Status) (UpdateDeliveryStatusCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	if err := target.Validate(); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	if target == delivery.Assigned || target == delivery.Pending {
		return UpdateDeliveryStatusCommand{}, errs.NewValueIsInvalidErrorWithCause("target status",
			fmt.Errorf("%s is not reachable through a status update", target))
	}

	return UpdateDeliveryStatusCommand{
		deliveryID: deliveryID,
		target:     target,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to transition.
func (c UpdateDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Target returns the requested status.
func (c UpdateDeliveryStatusCommand) Target() delivery.Status {
	return c.target
}
