package commands

import (
	"errors"

	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/pkg/guard"
)

var ErrAcceptDeliveryCommandIsNotConstructed = errors.New(
	"AcceptDeliveryCommand must be created via NewAcceptDeliveryCommand constructor",
)

// AcceptDeliveryCommand represents a courier's attempt to claim a pending
// delivery. Many couriers may race for the same delivery; at most one wins.
//
// Example:
//
//	cmd, err := NewAcceptDeliveryCommand(deliveryID, courierID, "Sam Porter", "+1-555-0101")
//	if err != nil {
//	    return err
//	}
//
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // another courier got there first
//	}
type AcceptDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	courier    delivery.Courier

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryCommand creates a command for the given courier to accept
// the delivery. The contact card is validated up front.
func NewAcceptDeliveryCommand(
	deliveryID kernel.UUID,
	courierID kernel.UUID,
	courierName string,
	courierPhone string,
) (AcceptDeliveryCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return AcceptDeliveryCommand{}, err
	}

	courier, err := delivery.NewCourier(courierID, courierName, courierPhone)
	if err != nil {
		return AcceptDeliveryCommand{}, err
	}

	return AcceptDeliveryCommand{
		deliveryID: deliveryID,
		courier:    courier,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery being claimed.
func (c AcceptDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Courier returns the claiming courier's contact card.
func (c AcceptDeliveryCommand) Courier() delivery.Courier {
	return c.courier
}
