package queries

import (
	"context"
	"database/sql"

	"mealdash/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllDeliveriesQueryHandler lists every delivery with its full state.
type GetAllDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAllDeliveriesQueryHandler creates a handler for the delivery
// listing. Requires a GORM database connection.
func NewGetAllDeliveriesQueryHandler(db *gorm.DB) GetAllDeliveriesQueryHandler {
	return GetAllDeliveriesQueryHandler{db: db}
}

// Handle returns all deliveries ordered by creation, newest first.
func (h GetAllDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAllDeliveriesQuery,
) ([]GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetDeliveryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			status,
			courier_id,
			courier_name,
			courier_phone,
			current_lat,
			current_lng,
			pickup_address,
			delivery_address,
			assigned_at,
			picked_up_at,
			delivered_at
		FROM deliveries
		ORDER BY created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetDeliveryQueryResponse
		var id, orderID uuid.UUID
		var courierID uuid.NullUUID
		var courierName, courierPhone sql.NullString

		err = rows.Scan(
			&id,
			&orderID,
			&resp.Status,
			&courierID,
			&courierName,
			&courierPhone,
			&resp.CurrentLat,
			&resp.CurrentLng,
			&resp.PickupAddress,
			&resp.DeliveryAddress,
			&resp.AssignedAt,
			&resp.PickedUpAt,
			&resp.DeliveredAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if courierID.Valid {
			cid, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.CourierID = &cid
		}
		resp.CourierName = courierName.String
		resp.CourierPhone = courierPhone.String

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
