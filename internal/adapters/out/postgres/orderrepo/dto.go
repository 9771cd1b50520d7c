// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It handles the conversion between the order aggregate
// and its relational representation, with lines stored as a JSONB document.
package orderrepo

import (
	"time"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Statuses are stored in their wire form so raw SQL reads stay
// legible; monetary amounts are stored in integer cents.
type OrderDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID            uuid.UUID `gorm:"type:uuid;index"`
	RestaurantID          uuid.UUID `gorm:"type:uuid;index"`
	RestaurantName        string
	Lines                 []LineDTO `gorm:"type:jsonb;serializer:json"`
	Status                string    `gorm:"index"`
	SubtotalCents         int64
	DeliveryFeeCents      int64
	TaxCents              int64
	TotalCents            int64
	PickupAddress         string
	DeliveryAddress       string
	CreatedAt             time.Time `gorm:"index"`
	EstimatedDeliveryTime time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO is one order line inside the JSONB lines document.
type LineDTO struct {
	MenuItemID     string `json:"menu_item_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	domainLines := aggregate.Lines()
	lines := make([]LineDTO, 0, len(domainLines))
	for _, line := range domainLines {
		lines = append(lines, LineDTO{
			MenuItemID:     line.MenuItemID().String(),
			Name:           line.Name(),
			UnitPriceCents: line.UnitPrice().Cents(),
			Quantity:       line.Quantity(),
		})
	}

	return OrderDTO{
		ID:                    aggregate.ID().Bytes(),
		CustomerID:            aggregate.CustomerID().Bytes(),
		RestaurantID:          aggregate.RestaurantID().Bytes(),
		RestaurantName:        aggregate.RestaurantName(),
		Lines:                 lines,
		Status:                aggregate.Status().String(),
		SubtotalCents:         aggregate.Subtotal().Cents(),
		DeliveryFeeCents:      aggregate.DeliveryFee().Cents(),
		TaxCents:              aggregate.Tax().Cents(),
		TotalCents:            aggregate.Total().Cents(),
		PickupAddress:         aggregate.PickupAddress().String(),
		DeliveryAddress:       aggregate.DeliveryAddress().String(),
		CreatedAt:             aggregate.CreatedAt(),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
	}
}

// toDomain converts a database DTO back to an order aggregate via
// RestoreOrder, which re-checks the total invariant on the way in.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		menuItemID, idErr := kernel.UUIDFromString(lineDTO.MenuItemID)
		if idErr != nil {
			return nil, idErr
		}
		unitPrice, priceErr := kernel.NewMoneyFromCents(lineDTO.UnitPriceCents)
		if priceErr != nil {
			return nil, priceErr
		}
		line, lineErr := order.NewLine(menuItemID, lineDTO.Name, unitPrice, lineDTO.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	subtotal, err := kernel.NewMoneyFromCents(dto.SubtotalCents)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := kernel.NewMoneyFromCents(dto.DeliveryFeeCents)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.NewMoneyFromCents(dto.TaxCents)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoneyFromCents(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	pickupAddress, err := kernel.NewAddress(dto.PickupAddress)
	if err != nil {
		return nil, err
	}
	deliveryAddress, err := kernel.NewAddress(dto.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, restaurantID, dto.RestaurantName,
		lines, status,
		subtotal, deliveryFee, tax, total,
		pickupAddress, deliveryAddress,
		dto.CreatedAt, dto.EstimatedDeliveryTime,
	)
}
