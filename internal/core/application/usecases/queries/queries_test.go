package queries_test

import (
	"testing"

	"mealdash/internal/core/application/usecases/queries"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryConstructorGuards(t *testing.T) {
	t.Run("constructed queries validate", func(t *testing.T) {
		require.NoError(t, queries.NewGetAvailableDeliveriesQuery().Validate())
		require.NoError(t, queries.NewGetAllDeliveriesQuery().Validate())

		byStatus, err := queries.NewGetOrdersByStatusQuery(order.Preparing)
		require.NoError(t, err)
		require.NoError(t, byStatus.Validate())
		assert.Equal(t, order.Preparing, byStatus.Status())

		orderByID, err := queries.NewGetOrderQuery(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, orderByID.Validate())

		byID, err := queries.NewGetDeliveryQuery(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, byID.Validate())
		assert.False(t, byID.ByOrderID())

		byOrder, err := queries.NewGetDeliveryByOrderIDQuery(kernel.NewUUID())
		require.NoError(t, err)
		assert.True(t, byOrder.ByOrderID())
	})

	t.Run("zero values fail validation", func(t *testing.T) {
		require.Error(t, queries.GetAvailableDeliveriesQuery{}.Validate())
		require.Error(t, queries.GetAllDeliveriesQuery{}.Validate())
		require.Error(t, queries.GetOrdersByStatusQuery{}.Validate())
		require.Error(t, queries.GetDeliveryQuery{}.Validate())
		require.Error(t, queries.GetOrderQuery{}.Validate())
	})

	t.Run("invalid parameters are rejected", func(t *testing.T) {
		_, err := queries.NewGetOrdersByStatusQuery(order.Unknown)
		require.Error(t, err)

		_, err = queries.NewGetDeliveryQuery(kernel.UUID{})
		require.Error(t, err)
	})
}
