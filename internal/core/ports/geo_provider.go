package ports

import (
	"context"
	"errors"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/services"
)

var (
	// ErrGeocodeNotFound is returned when the geo provider cannot resolve an
	// address to coordinates. It is terminal for the address: retrying with
	// the same input yields the same answer.
	ErrGeocodeNotFound = errors.New("geocode not found")

	// ErrRouteUnavailable is returned when no route exists between two
	// points or the routing backend cannot produce one.
	ErrRouteUnavailable = errors.New("route unavailable")
)

// GeoProvider defines the contract for external geocoding and routing.
// Implementations call a maps backend; callers treat ErrGeocodeNotFound and
// ErrRouteUnavailable as domain answers, not transport failures.
type GeoProvider interface {
	// Geocode resolves a street address to coordinates. When the backend
	// returns multiple candidates the first one wins. Returns
	// ErrGeocodeNotFound when the address resolves to nothing.
	Geocode(ctx context.Context, address kernel.Address) (kernel.GeoPoint, error)

	// Route computes the driving route between two points. Returns
	// ErrRouteUnavailable when the backend has no route.
	Route(ctx context.Context, origin kernel.GeoPoint, destination kernel.GeoPoint) (services.RouteSummary, error)
}
