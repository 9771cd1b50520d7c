// Package queries contains read-side operations in the CQRS architecture.
// Query handlers read through gorm with raw SQL and return lightweight
// response structs; they never load full aggregates or modify state.
package queries

import (
	"errors"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/pkg/guard"
)

var ErrGetAvailableDeliveriesQueryIsNotConstructed = errors.New(
	"GetAvailableDeliveriesQuery must be created via NewGetAvailableDeliveriesQuery constructor",
)

// GetAvailableDeliveriesQuery retrieves the deliveries couriers can accept:
// pending deliveries whose order is ready for pickup.
//
// Example:
//
//	query := NewGetAvailableDeliveriesQuery()
//	handler := NewGetAvailableDeliveriesQueryHandler(db)
//
//	available, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list available deliveries: %w", err)
//	}
type GetAvailableDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableDeliveriesQuery creates a query for the courier-facing
// delivery feed. This is a parameterless query.
func NewGetAvailableDeliveriesQuery() GetAvailableDeliveriesQuery {
	return GetAvailableDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDeliveriesQueryIsNotConstructed)
}

// GetAvailableDeliveriesQueryResponse is one acceptable delivery offer:
// enough for a courier to decide whether to take the job.
type GetAvailableDeliveriesQueryResponse struct {
	DeliveryID      kernel.UUID
	OrderID         kernel.UUID
	RestaurantName  string
	PickupAddress   string
	DeliveryAddress string
	OrderTotalCents int64
}
