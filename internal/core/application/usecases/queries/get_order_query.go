package queries

import (
	"errors"
	"time"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order in full, lines included. Backs the
// customer's order page and the tracking fetchers.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the lookup key.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full order view returned to clients,
// charges itemized and lines expanded from their stored document.
type GetOrderQueryResponse struct {
	ID                    kernel.UUID
	CustomerID            kernel.UUID
	RestaurantID          kernel.UUID
	RestaurantName        string
	Lines                 []GetOrderQueryResponseLine
	Status                string
	SubtotalCents         int64
	DeliveryFeeCents      int64
	TaxCents              int64
	TotalCents            int64
	PickupAddress         string
	DeliveryAddress       string
	CreatedAt             time.Time
	EstimatedDeliveryTime time.Time
}

// GetOrderQueryResponseLine is one priced line of the order view.
type GetOrderQueryResponseLine struct {
	MenuItemID     string
	Name           string
	UnitPriceCents int64
	Quantity       int
}
