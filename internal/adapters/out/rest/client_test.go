package rest_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"mealdash/internal/adapters/out/rest"
	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"
	"mealdash/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveJSON(t *testing.T, path string, body string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func orderBody(orderID kernel.UUID, restaurantJSON string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"customerId": %q,
		"restaurantId": %q,
		%s
		"lines": [
			{"menuItemId": %q, "name": "Margherita", "unitPriceCents": 899, "quantity": 2},
			{"menuItemId": %q, "name": "Garlic Bread", "unitPriceCents": 399, "quantity": 1}
		],
		"status": "PREPARING",
		"subtotalCents": 2197,
		"deliveryFeeCents": 399,
		"taxCents": 176,
		"totalCents": 2772,
		"pickupAddress": "1 Restaurant Row",
		"deliveryAddress": "12 Main St",
		"createdAt": "2026-08-30T12:00:00Z",
		"estimatedDeliveryTime": "2026-08-30T12:45:00Z"
	}`, orderID, kernel.NewUUID(), kernel.NewUUID(), restaurantJSON, kernel.NewUUID(), kernel.NewUUID())
}

func TestClientGetOrder(t *testing.T) {
	t.Run("maps a full payload to the aggregate", func(t *testing.T) {
		orderID := kernel.NewUUID()
		server := serveJSON(t, "/orders/"+orderID.String(),
			orderBody(orderID, `"restaurantName": "Luigi's",`))
		client := rest.NewClient(server.URL)

		fetched, info, err := client.GetOrder(t.Context(), orderID)

		require.NoError(t, err)
		assert.True(t, orderID.IsEqual(fetched.ID()))
		assert.Equal(t, order.Preparing, fetched.Status())
		assert.Equal(t, "Luigi's", fetched.RestaurantName())
		assert.Equal(t, int64(2772), fetched.Total().Cents())
		assert.Len(t, fetched.Lines(), 2)
		assert.Equal(t, "Luigi's", info.Name)
	})

	t.Run("canonicalizes restaurant field aliases", func(t *testing.T) {
		tests := []struct {
			name           string
			restaurantJSON string
		}{
			{
				name:           "cuisine and rating",
				restaurantJSON: `"restaurant": {"name": "Luigi's", "cuisine": "Italian", "rating": 4.6},`,
			},
			{
				name:           "cuisineType and averageRating",
				restaurantJSON: `"restaurant": {"name": "Luigi's", "cuisineType": "Italian", "averageRating": 4.6},`,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				orderID := kernel.NewUUID()
				server := serveJSON(t, "/orders/"+orderID.String(), orderBody(orderID, tt.restaurantJSON))
				client := rest.NewClient(server.URL)

				fetched, info, err := client.GetOrder(t.Context(), orderID)

				require.NoError(t, err)
				assert.Equal(t, "Luigi's", fetched.RestaurantName())
				assert.Equal(t, rest.RestaurantInfo{
					Name:    "Luigi's",
					Cuisine: "Italian",
					Rating:  4.6,
				}, info)
			})
		}
	})

	t.Run("unknown order returns a not found error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(server.Close)
		client := rest.NewClient(server.URL)

		_, _, err := client.GetOrder(t.Context(), kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("server error is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(server.Close)
		client := rest.NewClient(server.URL)

		_, _, err := client.GetOrder(t.Context(), kernel.NewUUID())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 500")
	})
}

func TestClientFetchDeliveryByOrder(t *testing.T) {
	deliveryBody := func(deliveryID, orderID kernel.UUID, courierField, locationFields string) string {
		return fmt.Sprintf(`{
			"id": %q,
			"orderId": %q,
			"status": "IN_TRANSIT",
			%s
			"courierName": "Sam Porter",
			"courierPhone": "+1-555-0101",
			%s
			"pickupAddress": "1 Restaurant Row",
			"deliveryAddress": "12 Main St",
			"assignedAt": "2026-08-30T12:10:00Z",
			"pickedUpAt": "2026-08-30T12:25:00Z"
		}`, deliveryID, orderID, courierField, locationFields)
	}

	t.Run("courierId and driverId aliases both bind the courier", func(t *testing.T) {
		courierID := kernel.NewUUID()
		tests := []struct {
			name         string
			courierField string
		}{
			{"courierId", fmt.Sprintf(`"courierId": %q,`, courierID)},
			{"driverId", fmt.Sprintf(`"driverId": %q,`, courierID)},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				deliveryID := kernel.NewUUID()
				orderID := kernel.NewUUID()
				server := serveJSON(t, "/orders/"+orderID.String()+"/delivery",
					deliveryBody(deliveryID, orderID, tt.courierField, `"currentLat": 40.7128, "currentLng": -74.0060,`))
				client := rest.NewClient(server.URL)

				fetched, err := client.FetchDeliveryByOrder(t.Context(), orderID)

				require.NoError(t, err)
				assert.Equal(t, delivery.InTransit, fetched.Status())
				require.NotNil(t, fetched.Courier())
				assert.True(t, courierID.IsEqual(fetched.Courier().ID()))
				assert.Equal(t, "Sam Porter", fetched.Courier().Name())
			})
		}
	})

	t.Run("nested and flat location fields both map", func(t *testing.T) {
		courierID := kernel.NewUUID()
		tests := []struct {
			name           string
			locationFields string
		}{
			{"nested object", `"currentLocation": {"lat": 40.7128, "lng": -74.0060},`},
			{"flat fields", `"currentLat": 40.7128, "currentLng": -74.0060,`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				deliveryID := kernel.NewUUID()
				orderID := kernel.NewUUID()
				server := serveJSON(t, "/orders/"+orderID.String()+"/delivery",
					deliveryBody(deliveryID, orderID,
						fmt.Sprintf(`"courierId": %q,`, courierID), tt.locationFields))
				client := rest.NewClient(server.URL)

				fetched, err := client.FetchDeliveryByOrder(t.Context(), orderID)

				require.NoError(t, err)
				require.NotNil(t, fetched.CurrentLocation())
				assert.InDelta(t, 40.7128, fetched.CurrentLocation().Lat(), 1e-9)
				assert.InDelta(t, -74.0060, fetched.CurrentLocation().Lng(), 1e-9)
			})
		}
	})

	t.Run("missing delivery returns a not found error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(server.Close)
		client := rest.NewClient(server.URL)

		_, err := client.FetchDeliveryByOrder(t.Context(), kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
