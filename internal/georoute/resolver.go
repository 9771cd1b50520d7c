// Package georoute wraps the geo provider with session-lifetime caches so
// repeated tracking lookups do not hit the external API again.
package georoute

import (
	"context"
	"sync"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/services"
	"mealdash/internal/core/ports"
)

// Sentinels re-exported for callers that treat the resolver as the geo
// boundary. A failed geocode or route is a normal answer, not a fault.
var (
	ErrGeocodeNotFound  = ports.ErrGeocodeNotFound
	ErrRouteUnavailable = ports.ErrRouteUnavailable
)

var _ ports.GeoProvider = &Resolver{}

// Resolver caches successful geocode and route lookups for the lifetime of
// the process. Both caches are append-only: entries are never evicted or
// replaced, and failures are not cached, so a transient provider error does
// not poison later lookups. Concurrent identical lookups may both reach the
// provider and converge on the same entry.
type Resolver struct {
	provider ports.GeoProvider

	mu           sync.RWMutex
	geocodeCache map[string]kernel.GeoPoint
	routeCache   map[string]services.RouteSummary
}

// NewResolver creates a caching resolver over the given provider.
func NewResolver(provider ports.GeoProvider) *Resolver {
	return &Resolver{
		provider:     provider,
		geocodeCache: make(map[string]kernel.GeoPoint),
		routeCache:   make(map[string]services.RouteSummary),
	}
}

// Geocode resolves an address to coordinates, keyed in the cache by the
// normalized address line. Returns ErrGeocodeNotFound when the provider has
// no match; the miss is not cached.
func (r *Resolver) Geocode(ctx context.Context, address kernel.Address) (kernel.GeoPoint, error) {
	if err := address.Validate(); err != nil {
		return kernel.GeoPoint{}, err
	}

	key := address.Normalized()

	r.mu.RLock()
	point, ok := r.geocodeCache[key]
	r.mu.RUnlock()
	if ok {
		return point, nil
	}

	point, err := r.provider.Geocode(ctx, address)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	r.mu.Lock()
	r.geocodeCache[key] = point
	r.mu.Unlock()

	return point, nil
}

// Route computes the route between two points, keyed in the cache by the
// coordinate pair. Returns ErrRouteUnavailable when the provider cannot
// produce a route; the miss is not cached.
func (r *Resolver) Route(
	ctx context.Context,
	origin kernel.GeoPoint,
	destination kernel.GeoPoint,
) (services.RouteSummary, error) {
	if err := origin.Validate(); err != nil {
		return services.RouteSummary{}, err
	}
	if err := destination.Validate(); err != nil {
		return services.RouteSummary{}, err
	}

	key := origin.String() + "->" + destination.String()

	r.mu.RLock()
	route, ok := r.routeCache[key]
	r.mu.RUnlock()
	if ok {
		return route, nil
	}

	route, err := r.provider.Route(ctx, origin, destination)
	if err != nil {
		return services.RouteSummary{}, err
	}

	r.mu.Lock()
	r.routeCache[key] = route
	r.mu.Unlock()

	return route, nil
}
