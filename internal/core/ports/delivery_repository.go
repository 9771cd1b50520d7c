package ports

import (
	"context"

	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery
// aggregates, including the conditional update that makes courier acceptance
// exclusive across processes.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate
	// unconditionally. The delivery must exist and be valid.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// UpdateIfStatus persists the aggregate only if the stored row is still
	// in expectedStatus. The check and the write are one atomic statement
	// (UPDATE ... WHERE status = ?), so two concurrent writers cannot both
	// succeed. A lost race surfaces as a ConflictError and the stored row is
	// left untouched.
	UpdateIfStatus(ctx context.Context, aggregate *delivery.Delivery, expectedStatus delivery.Status) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrderID retrieves the delivery created for the given order.
	// Returns an ObjectNotFoundError when the order has no delivery yet.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// GetAll retrieves every delivery, newest first.
	GetAll(ctx context.Context) ([]*delivery.Delivery, error)

	// GetAllInStatus retrieves all deliveries currently in the given status.
	GetAllInStatus(ctx context.Context, status delivery.Status) ([]*delivery.Delivery, error)

	// GetOrderIDsWithDeliveries reports which of the given orders already
	// have a delivery record. The delivery creation job uses it to create
	// deliveries exactly once per ready order.
	GetOrderIDsWithDeliveries(ctx context.Context, orderIDs []kernel.UUID) (map[kernel.UUID]bool, error)
}
