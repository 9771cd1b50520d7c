package queries

import (
	"context"
	"database/sql"
	"errors"

	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/ports"
	"mealdash/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryQueryHandler serves single-delivery reads for tracking and for
// the courier's own job view. The live courier position from the location
// store overlays the persisted snapshot, which only advances on explicit
// location reports.
type GetDeliveryQueryHandler struct {
	db            *gorm.DB
	locationStore ports.CourierLocationStore
}

// NewGetDeliveryQueryHandler creates a handler for delivery lookups.
// Requires a GORM database connection and the live courier location store.
func NewGetDeliveryQueryHandler(db *gorm.DB, locationStore ports.CourierLocationStore) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db, locationStore: locationStore}
}

// Handle fetches the delivery row by the query's key. Returns an
// ObjectNotFoundError when nothing matches.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	keyColumn := "id"
	if query.ByOrderID() {
		keyColumn = "order_id"
	}

	row := h.db.WithContext(ctx).Raw(`
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
		WHERE `+keyColumn+` = ?
	`, query.ID().Bytes()).Row()

	var resp GetDeliveryQueryResponse
	var id, orderID uuid.UUID
	var courierID uuid.NullUUID
	var courierName, courierPhone sql.NullString

	err := row.Scan(
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
	if errors.Is(err, sql.ErrNoRows) {
		return GetDeliveryQueryResponse{}, errs.NewObjectNotFoundError("delivery", query.ID())
	}
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if courierID.Valid {
		cid, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if idErr != nil {
			return GetDeliveryQueryResponse{}, idErr
		}
		resp.CourierID = &cid
	}
	resp.CourierName = courierName.String
	resp.CourierPhone = courierPhone.String

	h.overlayLiveLocation(ctx, &resp)

	return resp, nil
}

// overlayLiveLocation replaces the persisted courier position with the one
// from the live store when the courier is still working the delivery. A
// store miss or error keeps the persisted snapshot; live data is an
// enrichment, never a requirement.
func (h GetDeliveryQueryHandler) overlayLiveLocation(ctx context.Context, resp *GetDeliveryQueryResponse) {
	if resp.CourierID == nil {
		return
	}

	status, err := delivery.StatusFromString(resp.Status)
	if err != nil || status.IsTerminal() {
		return
	}

	live, err := h.locationStore.GetLocation(ctx, *resp.CourierID)
	if err != nil {
		return
	}

	lat, lng := live.Lat(), live.Lng()
	resp.CurrentLat = &lat
	resp.CurrentLng = &lng
}
