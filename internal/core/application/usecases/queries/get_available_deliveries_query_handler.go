package queries

import (
	"context"

	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableDeliveriesQueryHandler serves the courier-facing feed of
// deliveries waiting for acceptance. The pending-delivery and
// ready-for-pickup conditions are both checked in SQL, so a delivery whose
// order moved on never shows up.
type GetAvailableDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableDeliveriesQueryHandler creates a handler for the available
// deliveries feed. Requires a GORM database connection.
func NewGetAvailableDeliveriesQueryHandler(db *gorm.DB) GetAvailableDeliveriesQueryHandler {
	return GetAvailableDeliveriesQueryHandler{db: db}
}

// Handle joins pending deliveries with their ready-for-pickup orders,
// oldest first so the longest-waiting orders are offered first.
func (h GetAvailableDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDeliveriesQuery,
) ([]GetAvailableDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	offers := make([]GetAvailableDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.order_id,
			o.restaurant_name,
			d.pickup_address,
			d.delivery_address,
			o.total_cents
		FROM deliveries d
		JOIN orders o ON o.id = d.order_id
		WHERE d.status = ? AND o.status = ?
		ORDER BY o.created_at
	`, delivery.Pending.String(), order.ReadyForPickup.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var offer GetAvailableDeliveriesQueryResponse
		var deliveryID, orderID uuid.UUID

		err = rows.Scan(
			&deliveryID,
			&orderID,
			&offer.RestaurantName,
			&offer.PickupAddress,
			&offer.DeliveryAddress,
			&offer.OrderTotalCents,
		)
		if err != nil {
			return nil, err
		}

		if offer.DeliveryID, err = kernel.UUIDFromBytes(deliveryID[:]); err != nil {
			return nil, err
		}
		if offer.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}

		offers = append(offers, offer)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}
