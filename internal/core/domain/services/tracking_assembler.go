package services

import (
	"fmt"
	"time"

	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"
	"mealdash/internal/pkg/errs"
)

// RouteSummary carries the resolved route from the courier's current position
// to the delivery address. It is a plain value: distance in meters, expected
// travel time, and an encoded polyline for map rendering.
type RouteSummary struct {
	DistanceMeters int
	Duration       time.Duration
	Polyline       string
}

// DeliveryView is the delivery slice of a tracking snapshot. It is present
// only while the order's status implies an active courier.
type DeliveryView struct {
	DeliveryID      kernel.UUID
	Status          delivery.Status
	CourierName     string
	CourierPhone    string
	CurrentLocation *kernel.GeoPoint
}

// View is one tracking snapshot: the order's current state merged with its
// delivery and route when available. UpdatedAt is the assembly time; Degraded
// is raised by the poller when consecutive refreshes fail and the snapshot is
// known to be stale.
type View struct {
	OrderID               kernel.UUID
	OrderStatus           order.Status
	RestaurantName        string
	Total                 kernel.Money
	EstimatedDeliveryTime time.Time

	Delivery *DeliveryView
	Route    *RouteSummary

	UpdatedAt time.Time
	Degraded  bool
}

// WithDegraded returns a copy of the view flagged as stale. The poller uses
// it to republish the last good snapshot when refreshes keep failing.
func (v View) WithDegraded() View {
	v.Degraded = true
	return v
}

// TrackingViewAssembler is a domain service that merges an order with its
// delivery and route into a single tracking snapshot.
//
// Business rules:
//   - The order is the anchor: a view always exists for a valid order.
//   - The delivery section appears only when a delivery is supplied, and it
//     must belong to the order being tracked.
//   - The route section appears only when a route was resolved; a missing
//     route never blocks assembly.
type TrackingViewAssembler struct{}

// NewTrackingViewAssembler creates a new TrackingViewAssembler instance.
func NewTrackingViewAssembler() TrackingViewAssembler {
	return TrackingViewAssembler{}
}

// Assemble merges the supplied pieces into a View. The order is mandatory;
// the delivery and route are optional. A delivery belonging to a different
// order is a programming error on the caller's side and is rejected.
func (a TrackingViewAssembler) Assemble(
	o *order.Order,
	d *delivery.Delivery,
	route *RouteSummary,
	now time.Time,
) (View, error) {
	if err := o.Validate(); err != nil {
		return View{}, err
	}

	view := View{
		OrderID:               o.ID(),
		OrderStatus:           o.Status(),
		RestaurantName:        o.RestaurantName(),
		Total:                 o.Total(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		UpdatedAt:             now,
	}

	if d != nil {
		if err := d.Validate(); err != nil {
			return View{}, err
		}
		if !d.OrderID().IsEqual(o.ID()) {
			return View{}, errs.NewValueIsInvalidErrorWithCause("delivery",
				fmt.Errorf("delivery %s belongs to order %s, not %s",
					d.ID(), d.OrderID(), o.ID()))
		}

		dv := &DeliveryView{
			DeliveryID:      d.ID(),
			Status:          d.Status(),
			CurrentLocation: d.CurrentLocation(),
		}
		if courier := d.Courier(); courier != nil {
			dv.CourierName = courier.Name()
			dv.CourierPhone = courier.Phone()
		}
		view.Delivery = dv
	}

	if route != nil {
		r := *route
		view.Route = &r
	}

	return view, nil
}
