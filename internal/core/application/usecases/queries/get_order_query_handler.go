package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler serves single-order reads.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order lookups.
// Requires a GORM database connection.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// lineDocument mirrors the JSONB lines column written by the order
// repository.
type lineDocument struct {
	MenuItemID     string `json:"menu_item_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// Handle fetches the order row and expands its lines document. Returns an
// ObjectNotFoundError when nothing matches.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			restaurant_id,
			restaurant_name,
			lines,
			status,
			subtotal_cents,
			delivery_fee_cents,
			tax_cents,
			total_cents,
			pickup_address,
			delivery_address,
			created_at,
			estimated_delivery_time
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var resp GetOrderQueryResponse
	var id, customerID, restaurantID uuid.UUID
	var linesJSON []byte

	err := row.Scan(
		&id,
		&customerID,
		&restaurantID,
		&resp.RestaurantName,
		&linesJSON,
		&resp.Status,
		&resp.SubtotalCents,
		&resp.DeliveryFeeCents,
		&resp.TaxCents,
		&resp.TotalCents,
		&resp.PickupAddress,
		&resp.DeliveryAddress,
		&resp.CreatedAt,
		&resp.EstimatedDeliveryTime,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var lines []lineDocument
	if err = json.Unmarshal(linesJSON, &lines); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Lines = make([]GetOrderQueryResponseLine, 0, len(lines))
	for _, line := range lines {
		resp.Lines = append(resp.Lines, GetOrderQueryResponseLine{
			MenuItemID:     line.MenuItemID,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
		})
	}

	return resp, nil
}
