package http

import (
	"time"

	"mealdash/internal/core/application/usecases/queries"
)

// ErrorPayload is the uniform error body returned by every handler.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CheckoutItemPayload is one menu item in a checkout request.
type CheckoutItemPayload struct {
	MenuItemID     string `json:"menuItemId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

// CheckoutPayload is the POST /orders request body: the customer's cart plus
// the two addresses. Charges are computed server-side.
type CheckoutPayload struct {
	CustomerID      string                `json:"customerId"`
	RestaurantID    string                `json:"restaurantId"`
	RestaurantName  string                `json:"restaurantName"`
	Items           []CheckoutItemPayload `json:"items"`
	PickupAddress   string                `json:"pickupAddress"`
	DeliveryAddress string                `json:"deliveryAddress"`
}

// OrderCreatedPayload acknowledges a checkout with the new order's identity.
type OrderCreatedPayload struct {
	OrderID string `json:"orderId"`
}

// ChangeStatusPayload carries the target status for order and delivery
// status transitions.
type ChangeStatusPayload struct {
	Status string `json:"status"`
}

// AssignDeliveryPayload is a courier's claim on a pending delivery.
type AssignDeliveryPayload struct {
	CourierID    string `json:"courierId"`
	CourierName  string `json:"courierName"`
	CourierPhone string `json:"courierPhone"`
}

// LocationPayload is a courier position report.
type LocationPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OrderLinePayload is one priced line of an order response.
type OrderLinePayload struct {
	MenuItemID     string `json:"menuItemId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

// OrderPayload is the full order response body.
type OrderPayload struct {
	ID                    string             `json:"id"`
	CustomerID            string             `json:"customerId"`
	RestaurantID          string             `json:"restaurantId"`
	RestaurantName        string             `json:"restaurantName"`
	Lines                 []OrderLinePayload `json:"lines"`
	Status                string             `json:"status"`
	SubtotalCents         int64              `json:"subtotalCents"`
	DeliveryFeeCents      int64              `json:"deliveryFeeCents"`
	TaxCents              int64              `json:"taxCents"`
	TotalCents            int64              `json:"totalCents"`
	PickupAddress         string             `json:"pickupAddress"`
	DeliveryAddress       string             `json:"deliveryAddress"`
	CreatedAt             time.Time          `json:"createdAt"`
	EstimatedDeliveryTime time.Time          `json:"estimatedDeliveryTime"`
}

// OrderSummaryPayload is one row of a status-filtered order listing.
type OrderSummaryPayload struct {
	ID                    string    `json:"id"`
	CustomerID            string    `json:"customerId"`
	RestaurantName        string    `json:"restaurantName"`
	Status                string    `json:"status"`
	TotalCents            int64     `json:"totalCents"`
	CreatedAt             time.Time `json:"createdAt"`
	EstimatedDeliveryTime time.Time `json:"estimatedDeliveryTime"`
}

// DeliveryPayload is the full delivery response body. Courier fields are
// empty and the nullable fields null while the delivery is unclaimed.
type DeliveryPayload struct {
	ID              string     `json:"id"`
	OrderID         string     `json:"orderId"`
	Status          string     `json:"status"`
	CourierID       string     `json:"courierId,omitempty"`
	CourierName     string     `json:"courierName,omitempty"`
	CourierPhone    string     `json:"courierPhone,omitempty"`
	CurrentLat      *float64   `json:"currentLat"`
	CurrentLng      *float64   `json:"currentLng"`
	PickupAddress   string     `json:"pickupAddress"`
	DeliveryAddress string     `json:"deliveryAddress"`
	AssignedAt      *time.Time `json:"assignedAt"`
	PickedUpAt      *time.Time `json:"pickedUpAt"`
	DeliveredAt     *time.Time `json:"deliveredAt"`
}

// AvailableDeliveryPayload is one open offer in the courier feed.
type AvailableDeliveryPayload struct {
	DeliveryID      string `json:"deliveryId"`
	OrderID         string `json:"orderId"`
	RestaurantName  string `json:"restaurantName"`
	PickupAddress   string `json:"pickupAddress"`
	DeliveryAddress string `json:"deliveryAddress"`
	OrderTotalCents int64  `json:"orderTotalCents"`
}

func orderPayloadFromResponse(resp queries.GetOrderQueryResponse) OrderPayload {
	lines := make([]OrderLinePayload, 0, len(resp.Lines))
	for _, line := range resp.Lines {
		lines = append(lines, OrderLinePayload{
			MenuItemID:     line.MenuItemID,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
		})
	}

	return OrderPayload{
		ID:                    resp.ID.String(),
		CustomerID:            resp.CustomerID.String(),
		RestaurantID:          resp.RestaurantID.String(),
		RestaurantName:        resp.RestaurantName,
		Lines:                 lines,
		Status:                resp.Status,
		SubtotalCents:         resp.SubtotalCents,
		DeliveryFeeCents:      resp.DeliveryFeeCents,
		TaxCents:              resp.TaxCents,
		TotalCents:            resp.TotalCents,
		PickupAddress:         resp.PickupAddress,
		DeliveryAddress:       resp.DeliveryAddress,
		CreatedAt:             resp.CreatedAt,
		EstimatedDeliveryTime: resp.EstimatedDeliveryTime,
	}
}

func deliveryPayloadFromResponse(resp queries.GetDeliveryQueryResponse) DeliveryPayload {
	payload := DeliveryPayload{
		ID:              resp.ID.String(),
		OrderID:         resp.OrderID.String(),
		Status:          resp.Status,
		CourierName:     resp.CourierName,
		CourierPhone:    resp.CourierPhone,
		CurrentLat:      resp.CurrentLat,
		CurrentLng:      resp.CurrentLng,
		PickupAddress:   resp.PickupAddress,
		DeliveryAddress: resp.DeliveryAddress,
		AssignedAt:      resp.AssignedAt,
		PickedUpAt:      resp.PickedUpAt,
		DeliveredAt:     resp.DeliveredAt,
	}
	if resp.CourierID != nil {
		payload.CourierID = resp.CourierID.String()
	}

	return payload
}
