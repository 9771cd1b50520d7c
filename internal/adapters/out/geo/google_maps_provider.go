// Package geo implements the geocoding and routing port on top of the
// Google Maps API.
package geo

import (
	"context"
	"fmt"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/services"
	"mealdash/internal/core/ports"

	"googlemaps.github.io/maps"
)

var _ ports.GeoProvider = &GoogleMapsProvider{}

// GoogleMapsProvider handles interactions with the Google Maps API.
type GoogleMapsProvider struct {
	client *maps.Client
}

// NewGoogleMapsProvider creates a provider with the given API key.
func NewGoogleMapsProvider(apiKey string) (*GoogleMapsProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleMapsProvider{client: client}, nil
}

// Geocode resolves a street address to coordinates. The first candidate the
// API returns wins.
func (p *GoogleMapsProvider) Geocode(ctx context.Context, address kernel.Address) (kernel.GeoPoint, error) {
	if err := address.Validate(); err != nil {
		return kernel.GeoPoint{}, err
	}

	results, err := p.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address.String(),
	})
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("maps api error: %w", err)
	}

	if len(results) == 0 {
		return kernel.GeoPoint{}, fmt.Errorf("%w: %s", ports.ErrGeocodeNotFound, address)
	}

	location := results[0].Geometry.Location
	return kernel.NewGeoPoint(location.Lat, location.Lng)
}

// Route computes the driving route between two points.
func (p *GoogleMapsProvider) Route(
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

	routes, _, err := p.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Lat(), origin.Lng()),
		Destination: fmt.Sprintf("%f,%f", destination.Lat(), destination.Lng()),
		Mode:        maps.TravelModeDriving,
	})
	if err != nil {
		return services.RouteSummary{}, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return services.RouteSummary{}, fmt.Errorf("%w: %s to %s", ports.ErrRouteUnavailable, origin, destination)
	}

	route := routes[0]
	leg := route.Legs[0]

	return services.RouteSummary{
		DistanceMeters: leg.Distance.Meters,
		Duration:       leg.Duration,
		Polyline:       route.OverviewPolyline.Points,
	}, nil
}
