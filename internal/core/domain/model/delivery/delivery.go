package delivery

import (
	"errors"
	"fmt"
	"time"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/pkg/errs"
	"mealdash/internal/pkg/guard"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through the proper constructors.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

// Delivery is the aggregate tracking a courier leg for one order. It is
// created Pending when the order becomes ready for pickup, accepted by
// exactly one courier, and walks the status machine stamping a timestamp at
// each milestone.
//
// Invariant: the courier is set if and only if the status says one is
// involved (see Status.HasCourier). Pending and Cancelled deliveries carry no
// courier; everything from Assigned onward does.
type Delivery struct {
	id      kernel.UUID
	orderID kernel.UUID

	courier *Courier
	status  Status

	currentLocation *kernel.GeoPoint

	pickupAddress   kernel.Address
	deliveryAddress kernel.Address

	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	guard guard.ConstructorGuard
}

// NewDelivery creates a Pending delivery for an order, copying the order's
// pickup and destination addresses.
func NewDelivery(id kernel.UUID, orderID kernel.UUID, pickupAddress kernel.Address, deliveryAddress kernel.Address) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		pickupAddress.Validate(),
		deliveryAddress.Validate(),
	); err != nil {
		return nil, err
	}

	return &Delivery{
		id:              id,
		orderID:         orderID,
		status:          Pending,
		pickupAddress:   pickupAddress,
		deliveryAddress: deliveryAddress,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RestoreDelivery reconstructs a delivery from persistence. It enforces the
// courier invariant: a courier must be present exactly when the stored status
// implies one, so rows that drifted out of shape never reach core logic.
func RestoreDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	courier *Courier,
	status Status,
	currentLocation *kernel.GeoPoint,
	pickupAddress kernel.Address,
	deliveryAddress kernel.Address,
	assignedAt *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
) (*Delivery, error) {
	d, err := NewDelivery(id, orderID, pickupAddress, deliveryAddress)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if status.HasCourier() != (courier != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("delivery courier",
			fmt.Errorf("status %s does not match courier presence", status))
	}
	if courier != nil {
		if err := courier.Validate(); err != nil {
			return nil, err
		}
	}
	if currentLocation != nil {
		if err := currentLocation.Validate(); err != nil {
			return nil, err
		}
	}

	d.status = status
	d.courier = courier
	d.currentLocation = currentLocation
	d.assignedAt = assignedAt
	d.pickedUpAt = pickedUpAt
	d.deliveredAt = deliveredAt
	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares deliveries by identifier.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return d.id.IsEqual(other.id)
}

// ID returns the delivery's identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the identifier of the order being delivered.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// Courier returns the assigned courier, or nil while the delivery is Pending
// or Cancelled.
func (d *Delivery) Courier() *Courier {
	return d.courier
}

// Status returns the current delivery status.
func (d *Delivery) Status() Status {
	return d.status
}

// CurrentLocation returns the courier's last reported position, or nil if
// none was reported yet.
func (d *Delivery) CurrentLocation() *kernel.GeoPoint {
	return d.currentLocation
}

// PickupAddress returns the restaurant address.
func (d *Delivery) PickupAddress() kernel.Address {
	return d.pickupAddress
}

// DeliveryAddress returns the destination address.
func (d *Delivery) DeliveryAddress() kernel.Address {
	return d.deliveryAddress
}

// AssignedAt returns when a courier accepted the delivery, or nil.
func (d *Delivery) AssignedAt() *time.Time {
	return d.assignedAt
}

// PickedUpAt returns when the courier collected the order, or nil.
func (d *Delivery) PickedUpAt() *time.Time {
	return d.pickedUpAt
}

// DeliveredAt returns when the delivery completed, or nil.
func (d *Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// Assign records the courier who accepted the delivery. Only a Pending
// delivery can be assigned; persistence must additionally guard the write
// with a compare-and-set so concurrent acceptances keep at most one winner.
func (d *Delivery) Assign(courier Courier, now time.Time) error {
	if err := courier.Validate(); err != nil {
		return err
	}

	next, err := d.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	d.status = next
	d.courier = &courier
	d.assignedAt = &now
	return nil
}

// MarkPickedUp records that the courier collected the order.
func (d *Delivery) MarkPickedUp(now time.Time) error {
	next, err := d.status.TransitionTo(PickedUp)
	if err != nil {
		return err
	}

	d.status = next
	d.pickedUpAt = &now
	return nil
}

// MarkInTransit records that the courier left for the destination.
func (d *Delivery) MarkInTransit() error {
	next, err := d.status.TransitionTo(InTransit)
	if err != nil {
		return err
	}

	d.status = next
	return nil
}

// MarkDelivered completes the delivery.
func (d *Delivery) MarkDelivered(now time.Time) error {
	next, err := d.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	d.status = next
	d.deliveredAt = &now
	return nil
}

// MarkFailed abandons a delivery that already has a courier.
func (d *Delivery) MarkFailed() error {
	next, err := d.status.TransitionTo(Failed)
	if err != nil {
		return err
	}

	d.status = next
	return nil
}

// Cancel withdraws a delivery nobody accepted yet.
func (d *Delivery) Cancel() error {
	next, err := d.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	d.status = next
	return nil
}

// ReportLocation stores the courier's current position. Positions are
// accepted only while a courier is actively moving the order.
func (d *Delivery) ReportLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if !d.status.HasCourier() || d.status.IsTerminal() {
		return errs.NewConflictErrorWithCause("delivery location",
			fmt.Errorf("no active courier in status %s", d.status))
	}

	d.currentLocation = &location
	return nil
}
