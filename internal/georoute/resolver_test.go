package georoute_test

import (
	"context"
	"testing"
	"time"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/services"
	"mealdash/internal/georoute"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGeoProvider struct {
	mock.Mock
}

func (m *MockGeoProvider) Geocode(ctx context.Context, address kernel.Address) (kernel.GeoPoint, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

func (m *MockGeoProvider) Route(
	ctx context.Context,
	origin kernel.GeoPoint,
	destination kernel.GeoPoint,
) (services.RouteSummary, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(services.RouteSummary), args.Error(1)
}

func mustAddress(t *testing.T, line string) kernel.Address {
	t.Helper()
	address, err := kernel.NewAddress(line)
	require.NoError(t, err)
	return address
}

func mustPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}

func TestResolverGeocode(t *testing.T) {
	t.Run("second lookup for the same address is served from cache", func(t *testing.T) {
		provider := new(MockGeoProvider)
		resolver := georoute.NewResolver(provider)
		address := mustAddress(t, "12 Main St")
		point := mustPoint(t, 40.7128, -74.0060)

		provider.On("Geocode", mock.Anything, address).Return(point, nil).Once()

		first, err := resolver.Geocode(t.Context(), address)
		require.NoError(t, err)
		second, err := resolver.Geocode(t.Context(), address)
		require.NoError(t, err)

		assert.True(t, first.IsEqual(second))
		provider.AssertExpectations(t)
	})

	t.Run("addresses that normalize identically share a cache entry", func(t *testing.T) {
		provider := new(MockGeoProvider)
		resolver := georoute.NewResolver(provider)
		address := mustAddress(t, "12 Main St")
		shouted := mustAddress(t, "12  MAIN   ST")
		point := mustPoint(t, 40.7128, -74.0060)

		provider.On("Geocode", mock.Anything, address).Return(point, nil).Once()

		_, err := resolver.Geocode(t.Context(), address)
		require.NoError(t, err)

		cached, err := resolver.Geocode(t.Context(), shouted)
		require.NoError(t, err)
		assert.True(t, point.IsEqual(cached))
		provider.AssertExpectations(t)
	})

	t.Run("unresolvable address returns GeocodeNotFound and is not cached", func(t *testing.T) {
		provider := new(MockGeoProvider)
		resolver := georoute.NewResolver(provider)
		garbage := mustAddress(t, "###not-an-address###")

		provider.On("Geocode", mock.Anything, garbage).
			Return(kernel.GeoPoint{}, georoute.ErrGeocodeNotFound).Twice()

		_, err := resolver.Geocode(t.Context(), garbage)
		require.ErrorIs(t, err, georoute.ErrGeocodeNotFound)

		// The miss must reach the provider again, not a cached failure.
		_, err = resolver.Geocode(t.Context(), garbage)
		require.ErrorIs(t, err, georoute.ErrGeocodeNotFound)
		provider.AssertExpectations(t)
	})

	t.Run("unconstructed address never reaches the provider", func(t *testing.T) {
		provider := new(MockGeoProvider)
		resolver := georoute.NewResolver(provider)

		_, err := resolver.Geocode(t.Context(), kernel.Address{})

		require.Error(t, err)
		provider.AssertNotCalled(t, "Geocode")
	})
}

func TestResolverRoute(t *testing.T) {
	summary := services.RouteSummary{
		DistanceMeters: 4200,
		Duration:       13 * time.Minute,
		Polyline:       "abc123",
	}

	t.Run("second lookup for the same pair is served from cache", func(t *testing.T) {
		provider := new(MockGeoProvider)
		resolver := georoute.NewResolver(provider)
		origin := mustPoint(t, 40.7128, -74.0060)
		destination := mustPoint(t, 40.7306, -73.9866)

		provider.On("Route", mock.Anything, origin, destination).Return(summary, nil).Once()

		first, err := resolver.Route(t.Context(), origin, destination)
		require.NoError(t, err)
		second, err := resolver.Route(t.Context(), origin, destination)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		provider.AssertExpectations(t)
	})

	t.Run("reversed pair is a distinct cache entry", func(t *testing.T) {
		provider := new(MockGeoProvider)
		resolver := georoute.NewResolver(provider)
		origin := mustPoint(t, 40.7128, -74.0060)
		destination := mustPoint(t, 40.7306, -73.9866)

		provider.On("Route", mock.Anything, origin, destination).Return(summary, nil).Once()
		provider.On("Route", mock.Anything, destination, origin).Return(summary, nil).Once()

		_, err := resolver.Route(t.Context(), origin, destination)
		require.NoError(t, err)
		_, err = resolver.Route(t.Context(), destination, origin)
		require.NoError(t, err)

		provider.AssertExpectations(t)
	})

	t.Run("unavailable route is returned and not cached", func(t *testing.T) {
		provider := new(MockGeoProvider)
		resolver := georoute.NewResolver(provider)
		origin := mustPoint(t, 40.7128, -74.0060)
		destination := mustPoint(t, 40.7306, -73.9866)

		provider.On("Route", mock.Anything, origin, destination).
			Return(services.RouteSummary{}, georoute.ErrRouteUnavailable).Twice()

		_, err := resolver.Route(t.Context(), origin, destination)
		require.ErrorIs(t, err, georoute.ErrRouteUnavailable)
		_, err = resolver.Route(t.Context(), origin, destination)
		require.ErrorIs(t, err, georoute.ErrRouteUnavailable)

		provider.AssertExpectations(t)
	})
}
