package commands

import (
	"errors"

	"mealdash/internal/core/domain/model/cart"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/pkg/errs"
	"mealdash/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand represents a request to turn a cart snapshot into a placed
// order. The snapshot freezes the cart contents; the handler computes the
// delivery fee, tax, and total on top of it.
//
// Example:
//
//	snapshot, _ := sessionCart.Snapshot()
//	cmd, err := NewCheckoutCommand(kernel.NewUUID(), customerID, snapshot, pickup, destination)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//
//	handler := NewCheckoutCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("checkout failed: %w", err)
//	}
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	snapshot        cart.Snapshot
	pickupAddress   kernel.Address
	deliveryAddress kernel.Address

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a checkout command from a cart snapshot.
// The snapshot must contain at least one line; the addresses must be
// constructed values.
func NewCheckoutCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	snapshot cart.Snapshot,
	pickupAddress kernel.Address,
	deliveryAddress kernel.Address,
) (CheckoutCommand, error) {
	command := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setIDs(orderID, customerID),
		command.setSnapshot(snapshot),
		command.setAddresses(pickupAddress, deliveryAddress),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the ordering customer.
func (c CheckoutCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Snapshot returns the frozen cart contents.
func (c CheckoutCommand) Snapshot() cart.Snapshot {
	return c.snapshot
}

// PickupAddress returns the restaurant address.
func (c CheckoutCommand) PickupAddress() kernel.Address {
	return c.pickupAddress
}

// DeliveryAddress returns the destination address.
func (c CheckoutCommand) DeliveryAddress() kernel.Address {
	return c.deliveryAddress
}

func (c *CheckoutCommand) setIDs(orderID, customerID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	c.customerID = customerID
	return nil
}

func (c *CheckoutCommand) setSnapshot(snapshot cart.Snapshot) error {
	if err := snapshot.RestaurantID.Validate(); err != nil {
		return err
	}
	if len(snapshot.Lines) == 0 {
		return errs.NewValueIsRequiredError("snapshot lines")
	}

	c.snapshot = snapshot
	return nil
}

func (c *CheckoutCommand) setAddresses(pickup, delivery kernel.Address) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	if err := delivery.Validate(); err != nil {
		return err
	}

	c.pickupAddress = pickup
	c.deliveryAddress = delivery
	return nil
}
