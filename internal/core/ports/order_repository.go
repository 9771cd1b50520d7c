// Package ports defines the contracts between the application core and
// infrastructure: repositories over the system of record, the geo provider,
// and the live courier location store. These interfaces enable dependency
// inversion and testability.
package ports

import (
	"context"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status,
	// newest first. Backs the status listing endpoint and the delivery
	// creation job's ready-for-pickup scan.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
