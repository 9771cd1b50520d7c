package commands

import (
	"errors"

	"mealdash/internal/pkg/guard"
)

var ErrCreateDeliveriesCommandIsNotConstructed = errors.New(
	"CreateDeliveriesCommand must be created via NewCreateDeliveriesCommand constructor",
)

// CreateDeliveriesCommand triggers delivery creation for every order that is
// ready for pickup and has no delivery yet. This batch operation is what
// makes ready orders visible to couriers.
//
// Example:
//
//	cmd := NewCreateDeliveriesCommand()
//	handler := NewCreateDeliveriesCommandHandler(uowFactory)
//
//	// Run periodically from the job scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Delivery creation failed: %v", err)
//	}
type CreateDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

// NewCreateDeliveriesCommand creates a command to sweep ready orders into
// pending deliveries. This is a parameterless batch command.
func NewCreateDeliveriesCommand() CreateDeliveriesCommand {
	return CreateDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveriesCommandIsNotConstructed)
}
