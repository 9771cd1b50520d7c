package commands_test

import (
	"testing"
	"time"

	"mealdash/internal/core/domain/model/cart"
	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T, line string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(line)
	require.NoError(t, err)
	return a
}

func testSnapshot(t *testing.T) cart.Snapshot {
	t.Helper()

	c := cart.NewCart()
	restaurantID := kernel.NewUUID()
	pizza, err := cart.NewItem(kernel.NewUUID(), "Margherita", kernel.MustMoneyFromCents(899))
	require.NoError(t, err)
	require.NoError(t, c.AddLine(restaurantID, "Luigi's", pizza))
	require.NoError(t, c.AddLine(restaurantID, "Luigi's", pizza))
	bread, err := cart.NewItem(kernel.NewUUID(), "Garlic Bread", kernel.MustMoneyFromCents(399))
	require.NoError(t, err)
	require.NoError(t, c.AddLine(restaurantID, "Luigi's", bread))

	snapshot, err := c.Snapshot()
	require.NoError(t, err)
	return snapshot
}

func testOrderInStatus(t *testing.T, id kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	line, err := order.NewLine(kernel.NewUUID(), "Margherita", kernel.MustMoneyFromCents(899), 1)
	require.NoError(t, err)

	now := time.Now()
	o, err := order.RestoreOrder(
		id, kernel.NewUUID(), kernel.NewUUID(), "Luigi's",
		[]order.Line{line},
		status,
		kernel.MustMoneyFromCents(899),
		kernel.MustMoneyFromCents(399),
		kernel.MustMoneyFromCents(72),
		kernel.MustMoneyFromCents(1370),
		testAddress(t, "1 Restaurant Row"),
		testAddress(t, "12 Main St"),
		now, now.Add(45*time.Minute),
	)
	require.NoError(t, err)
	return o
}

func testPendingDelivery(t *testing.T, id kernel.UUID) *delivery.Delivery {
	t.Helper()

	d, err := delivery.NewDelivery(id, kernel.NewUUID(),
		testAddress(t, "1 Restaurant Row"), testAddress(t, "12 Main St"))
	require.NoError(t, err)
	return d
}

func testAssignedDelivery(t *testing.T, id kernel.UUID, orderID kernel.UUID) *delivery.Delivery {
	t.Helper()

	d, err := delivery.NewDelivery(id, orderID,
		testAddress(t, "1 Restaurant Row"), testAddress(t, "12 Main St"))
	require.NoError(t, err)

	courier, err := delivery.NewCourier(kernel.NewUUID(), "Sam Porter", "+1-555-0101")
	require.NoError(t, err)
	require.NoError(t, d.Assign(courier, time.Now()))
	return d
}
