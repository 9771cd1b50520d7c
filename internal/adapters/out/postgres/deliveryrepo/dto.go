// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence, including the conditional update that backs
// courier acceptance exclusivity.
package deliveryrepo

import (
	"time"

	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Courier columns and milestone timestamps are nullable; they
// fill in as the delivery walks its lifecycle. The unique index on OrderID
// backs the one-delivery-per-order rule.
type DeliveryDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	Status          string     `gorm:"index"`
	CourierID       *uuid.UUID `gorm:"type:uuid;index"`
	CourierName     *string
	CourierPhone    *string
	CurrentLat      *float64
	CurrentLng      *float64
	PickupAddress   string
	DeliveryAddress string
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	CreatedAt       time.Time `gorm:"index"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:              aggregate.ID().Bytes(),
		OrderID:         aggregate.OrderID().Bytes(),
		Status:          aggregate.Status().String(),
		PickupAddress:   aggregate.PickupAddress().String(),
		DeliveryAddress: aggregate.DeliveryAddress().String(),
		AssignedAt:      aggregate.AssignedAt(),
		PickedUpAt:      aggregate.PickedUpAt(),
		DeliveredAt:     aggregate.DeliveredAt(),
	}

	if courier := aggregate.Courier(); courier != nil {
		courierID := courier.ID().Bytes()
		courierName := courier.Name()
		courierPhone := courier.Phone()
		dto.CourierID = &courierID
		dto.CourierName = &courierName
		dto.CourierPhone = &courierPhone
	}

	if location := aggregate.CurrentLocation(); location != nil {
		lat := location.Lat()
		lng := location.Lng()
		dto.CurrentLat = &lat
		dto.CurrentLng = &lng
	}

	return dto
}

// toDomain converts a database DTO back to a delivery aggregate via
// RestoreDelivery, which re-checks the courier presence invariant.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var courier *delivery.Courier
	if dto.CourierID != nil {
		courierID, idErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if idErr != nil {
			return nil, idErr
		}

		var name, phone string
		if dto.CourierName != nil {
			name = *dto.CourierName
		}
		if dto.CourierPhone != nil {
			phone = *dto.CourierPhone
		}

		c, courierErr := delivery.NewCourier(courierID, name, phone)
		if courierErr != nil {
			return nil, courierErr
		}
		courier = &c
	}

	var currentLocation *kernel.GeoPoint
	if dto.CurrentLat != nil && dto.CurrentLng != nil {
		p, locErr := kernel.NewGeoPoint(*dto.CurrentLat, *dto.CurrentLng)
		if locErr != nil {
			return nil, locErr
		}
		currentLocation = &p
	}

	pickupAddress, err := kernel.NewAddress(dto.PickupAddress)
	if err != nil {
		return nil, err
	}
	deliveryAddress, err := kernel.NewAddress(dto.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id, orderID, courier, status, currentLocation,
		pickupAddress, deliveryAddress,
		dto.AssignedAt, dto.PickedUpAt, dto.DeliveredAt,
	)
}
