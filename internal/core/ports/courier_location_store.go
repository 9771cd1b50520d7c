package ports

import (
	"context"

	"mealdash/internal/core/domain/model/kernel"
)

// CourierLocationStore defines the contract for the live courier position
// store. Positions are ephemeral operational data kept outside the system of
// record; the Redis adapter backs it with GEO commands.
type CourierLocationStore interface {
	// SetLocation records the courier's current position, replacing any
	// previous one.
	SetLocation(ctx context.Context, courierID kernel.UUID, location kernel.GeoPoint) error

	// GetLocation returns the courier's last reported position. Returns an
	// ObjectNotFoundError when the courier never reported one.
	GetLocation(ctx context.Context, courierID kernel.UUID) (kernel.GeoPoint, error)
}
