package services_test

import (
	"testing"
	"time"

	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"
	"mealdash/internal/core/domain/services"
	"mealdash/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()

	pickup, err := kernel.NewAddress("1 Restaurant Row")
	require.NoError(t, err)
	dest, err := kernel.NewAddress("12 Main St")
	require.NoError(t, err)

	line, err := order.NewLine(kernel.NewUUID(), "Margherita", kernel.MustMoneyFromCents(899), 1)
	require.NoError(t, err)

	now := time.Now()
	o, err := order.NewOrder(
		id, kernel.NewUUID(), kernel.NewUUID(), "Luigi's",
		[]order.Line{line},
		kernel.MustMoneyFromCents(899),
		kernel.MustMoneyFromCents(399),
		kernel.MustMoneyFromCents(72),
		pickup, dest, now, now.Add(45*time.Minute),
	)
	require.NoError(t, err)
	return o
}

func buildDelivery(t *testing.T, orderID kernel.UUID) *delivery.Delivery {
	t.Helper()

	pickup, _ := kernel.NewAddress("1 Restaurant Row")
	dest, _ := kernel.NewAddress("12 Main St")
	d, err := delivery.NewDelivery(kernel.NewUUID(), orderID, pickup, dest)
	require.NoError(t, err)

	courier, err := delivery.NewCourier(kernel.NewUUID(), "Sam Porter", "+1-555-0101")
	require.NoError(t, err)
	require.NoError(t, d.Assign(courier, time.Now()))
	return d
}

func TestTrackingViewAssembler_Assemble(t *testing.T) {
	assembler := services.NewTrackingViewAssembler()
	now := time.Now()

	t.Run("order alone yields a view without delivery or route", func(t *testing.T) {
		orderID := kernel.NewUUID()
		o := buildOrder(t, orderID)

		view, err := assembler.Assemble(o, nil, nil, now)

		require.NoError(t, err)
		assert.True(t, orderID.IsEqual(view.OrderID))
		assert.Equal(t, order.Placed, view.OrderStatus)
		assert.Equal(t, "Luigi's", view.RestaurantName)
		assert.Equal(t, now, view.UpdatedAt)
		assert.Nil(t, view.Delivery)
		assert.Nil(t, view.Route)
		assert.False(t, view.Degraded)
	})

	t.Run("delivery and route sections merge in", func(t *testing.T) {
		orderID := kernel.NewUUID()
		o := buildOrder(t, orderID)
		d := buildDelivery(t, orderID)
		location, _ := kernel.NewGeoPoint(40.5, -74.25)
		require.NoError(t, d.ReportLocation(location))
		route := &services.RouteSummary{
			DistanceMeters: 3200,
			Duration:       12 * time.Minute,
			Polyline:       "a~l~Fjk~uOwHJy@P",
		}

		view, err := assembler.Assemble(o, d, route, now)

		require.NoError(t, err)
		require.NotNil(t, view.Delivery)
		assert.Equal(t, delivery.Assigned, view.Delivery.Status)
		assert.Equal(t, "Sam Porter", view.Delivery.CourierName)
		assert.Equal(t, "+1-555-0101", view.Delivery.CourierPhone)
		require.NotNil(t, view.Delivery.CurrentLocation)
		assert.True(t, location.IsEqual(*view.Delivery.CurrentLocation))
		require.NotNil(t, view.Route)
		assert.Equal(t, 3200, view.Route.DistanceMeters)
	})

	t.Run("route is copied, not aliased", func(t *testing.T) {
		orderID := kernel.NewUUID()
		o := buildOrder(t, orderID)
		route := &services.RouteSummary{DistanceMeters: 100}

		view, err := assembler.Assemble(o, nil, route, now)

		require.NoError(t, err)
		route.DistanceMeters = 999
		assert.Equal(t, 100, view.Route.DistanceMeters)
	})

	t.Run("rejects a delivery for another order", func(t *testing.T) {
		o := buildOrder(t, kernel.NewUUID())
		d := buildDelivery(t, kernel.NewUUID())

		_, err := assembler.Assemble(o, d, nil, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects an unconstructed order", func(t *testing.T) {
		_, err := assembler.Assemble(&order.Order{}, nil, nil, now)
		require.Error(t, err)
	})
}

func TestViewWithDegraded(t *testing.T) {
	view := services.View{Degraded: false}

	stale := view.WithDegraded()

	assert.True(t, stale.Degraded)
	assert.False(t, view.Degraded)
}
