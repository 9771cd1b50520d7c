package queries

import (
	"errors"
	"time"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves the full state of one delivery, looked up by
// delivery ID or, with ByOrderID, by its order. The tracking read path uses
// the order-keyed form because the customer only knows their order.
type GetDeliveryQuery struct { //nolint:recvcheck //using for validation
	id        kernel.UUID
	byOrderID bool

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a query keyed by delivery ID.
func NewGetDeliveryQuery(deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}

	return GetDeliveryQuery{
		id:    deliveryID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewGetDeliveryByOrderIDQuery creates a query keyed by the delivery's order.
func NewGetDeliveryByOrderIDQuery(orderID kernel.UUID) (GetDeliveryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}

	return GetDeliveryQuery{
		id:        orderID,
		byOrderID: true,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// ID returns the lookup key.
func (q GetDeliveryQuery) ID() kernel.UUID {
	return q.id
}

// ByOrderID reports whether the key is an order ID rather than a delivery ID.
func (q GetDeliveryQuery) ByOrderID() bool {
	return q.byOrderID
}

// GetDeliveryQueryResponse is the full delivery view returned to clients.
// Courier fields are empty and location/timestamps nil while nothing has
// happened yet.
type GetDeliveryQueryResponse struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	Status          string
	CourierID       *kernel.UUID
	CourierName     string
	CourierPhone    string
	CurrentLat      *float64
	CurrentLng      *float64
	PickupAddress   string
	DeliveryAddress string
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
}
