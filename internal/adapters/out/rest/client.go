// Package rest implements a client for the order and delivery REST
// endpoints of a remote deployment. Payloads are treated as untrusted:
// every field is normalized at this boundary, including source-dependent
// field names, before anything reaches core logic.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"
	"mealdash/internal/pkg/errs"
	"mealdash/internal/tracking"
)

var (
	_ tracking.OrderFetcher    = &Client{}
	_ tracking.DeliveryFetcher = &Client{}
)

// RestaurantInfo is remote restaurant metadata in canonical form. Sources
// disagree on field names (cuisine vs cuisineType, rating vs averageRating);
// this struct is the single schema the rest of the system sees.
type RestaurantInfo struct {
	Name    string
	Cuisine string
	Rating  float64
}

// Client fetches orders and deliveries from a remote deployment of the
// engine's own REST surface.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL. The 10s timeout guards
// against stalled connections while context cancellation is still honoured
// via NewRequestWithContext.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchOrder loads one order. Satisfies the tracking poller's order source.
func (c *Client) FetchOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	fetched, _, err := c.GetOrder(ctx, orderID)
	return fetched, err
}

// GetOrder loads one order together with the normalized restaurant metadata
// the payload carried.
func (c *Client) GetOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, RestaurantInfo, error) {
	if err := orderID.Validate(); err != nil {
		return nil, RestaurantInfo{}, err
	}

	var payload orderPayload
	if err := c.getJSON(ctx, "/orders/"+orderID.String(), "order", orderID, &payload); err != nil {
		return nil, RestaurantInfo{}, err
	}

	fetched, err := payload.toDomain()
	if err != nil {
		return nil, RestaurantInfo{}, fmt.Errorf("normalize order payload: %w", err)
	}
	return fetched, payload.restaurantInfo(), nil
}

// FetchDeliveryByOrder loads the delivery belonging to an order. Satisfies
// the tracking poller's delivery source.
func (c *Client) FetchDeliveryByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var payload deliveryPayload
	if err := c.getJSON(ctx, "/orders/"+orderID.String()+"/delivery", "delivery", orderID, &payload); err != nil {
		return nil, err
	}

	fetched, err := payload.toDomain()
	if err != nil {
		return nil, fmt.Errorf("normalize delivery payload: %w", err)
	}
	return fetched, nil
}

func (c *Client) getJSON(ctx context.Context, path string, objectName string, id kernel.UUID, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errs.NewObjectNotFoundError(objectName, id)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// firstNonEmpty returns the first string with content. Used to collapse
// field-name aliases.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type restaurantPayload struct {
	Name          string   `json:"name"`
	Cuisine       string   `json:"cuisine"`
	CuisineType   string   `json:"cuisineType"`
	Rating        *float64 `json:"rating"`
	AverageRating *float64 `json:"averageRating"`
}

func (p *restaurantPayload) canonical() RestaurantInfo {
	if p == nil {
		return RestaurantInfo{}
	}

	info := RestaurantInfo{
		Name:    p.Name,
		Cuisine: firstNonEmpty(p.Cuisine, p.CuisineType),
	}
	switch {
	case p.Rating != nil:
		info.Rating = *p.Rating
	case p.AverageRating != nil:
		info.Rating = *p.AverageRating
	}
	return info
}

type linePayload struct {
	MenuItemID     string `json:"menuItemId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

type orderPayload struct {
	ID                    string             `json:"id"`
	CustomerID            string             `json:"customerId"`
	RestaurantID          string             `json:"restaurantId"`
	RestaurantName        string             `json:"restaurantName"`
	Restaurant            *restaurantPayload `json:"restaurant"`
	Lines                 []linePayload      `json:"lines"`
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

func (p orderPayload) restaurantInfo() RestaurantInfo {
	info := p.Restaurant.canonical()
	info.Name = firstNonEmpty(info.Name, p.RestaurantName)
	return info
}

func (p orderPayload) toDomain() (*order.Order, error) {
	id, err := kernel.UUIDFromString(p.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromString(p.CustomerID)
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromString(p.RestaurantID)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(p.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(p.Lines))
	for _, lp := range p.Lines {
		menuItemID, idErr := kernel.UUIDFromString(lp.MenuItemID)
		if idErr != nil {
			return nil, idErr
		}
		unitPrice, priceErr := kernel.NewMoneyFromCents(lp.UnitPriceCents)
		if priceErr != nil {
			return nil, priceErr
		}
		line, lineErr := order.NewLine(menuItemID, lp.Name, unitPrice, lp.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	subtotal, err := kernel.NewMoneyFromCents(p.SubtotalCents)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := kernel.NewMoneyFromCents(p.DeliveryFeeCents)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.NewMoneyFromCents(p.TaxCents)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoneyFromCents(p.TotalCents)
	if err != nil {
		return nil, err
	}

	pickupAddress, err := kernel.NewAddress(p.PickupAddress)
	if err != nil {
		return nil, err
	}
	deliveryAddress, err := kernel.NewAddress(p.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, restaurantID, p.restaurantInfo().Name,
		lines, status,
		subtotal, deliveryFee, tax, total,
		pickupAddress, deliveryAddress,
		p.CreatedAt, p.EstimatedDeliveryTime,
	)
}

type locationPayload struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type deliveryPayload struct {
	ID      string `json:"id"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`

	// courierId and driverId are the same field across sources.
	CourierID    string `json:"courierId"`
	DriverID     string `json:"driverId"`
	CourierName  string `json:"courierName"`
	CourierPhone string `json:"courierPhone"`

	CurrentLocation *locationPayload `json:"currentLocation"`
	CurrentLat      *float64         `json:"currentLat"`
	CurrentLng      *float64         `json:"currentLng"`

	PickupAddress   string `json:"pickupAddress"`
	DeliveryAddress string `json:"deliveryAddress"`

	AssignedAt  *time.Time `json:"assignedAt"`
	PickedUpAt  *time.Time `json:"pickedUpAt"`
	DeliveredAt *time.Time `json:"deliveredAt"`
}

func (p deliveryPayload) courierID() string {
	return firstNonEmpty(p.CourierID, p.DriverID)
}

func (p deliveryPayload) location() (*float64, *float64) {
	if p.CurrentLocation != nil && p.CurrentLocation.Lat != nil && p.CurrentLocation.Lng != nil {
		return p.CurrentLocation.Lat, p.CurrentLocation.Lng
	}
	return p.CurrentLat, p.CurrentLng
}

func (p deliveryPayload) toDomain() (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromString(p.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromString(p.OrderID)
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(p.Status)
	if err != nil {
		return nil, err
	}

	var courier *delivery.Courier
	if rawID := p.courierID(); rawID != "" {
		courierID, idErr := kernel.UUIDFromString(rawID)
		if idErr != nil {
			return nil, idErr
		}
		c, courierErr := delivery.NewCourier(courierID, p.CourierName, p.CourierPhone)
		if courierErr != nil {
			return nil, courierErr
		}
		courier = &c
	}

	var currentLocation *kernel.GeoPoint
	if lat, lng := p.location(); lat != nil && lng != nil {
		point, locErr := kernel.NewGeoPoint(*lat, *lng)
		if locErr != nil {
			return nil, locErr
		}
		currentLocation = &point
	}

	pickupAddress, err := kernel.NewAddress(p.PickupAddress)
	if err != nil {
		return nil, err
	}
	deliveryAddress, err := kernel.NewAddress(p.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id, orderID, courier, status, currentLocation,
		pickupAddress, deliveryAddress,
		p.AssignedAt, p.PickedUpAt, p.DeliveredAt,
	)
}
