package order

import (
	"errors"
	"fmt"
	"time"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/pkg/errs"
	"mealdash/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrLineIsNotConstructed is returned when a Line was not created through NewLine.
	ErrLineIsNotConstructed = errors.New("order Line must be created via NewLine constructor")
)

// Line is a priced order position, frozen at checkout time from the cart.
type Line struct { //nolint:recvcheck //using for validation
	menuItemID kernel.UUID
	name       string
	unitPrice  kernel.Money
	quantity   int

	guard guard.ConstructorGuard
}

// NewLine creates an order line. Quantity must be at least 1.
func NewLine(menuItemID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (Line, error) {
	line := Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setMenuItemID(menuItemID),
		line.setName(name),
		line.setUnitPrice(unitPrice),
		line.setQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	return line, nil
}

// Validate ensures the line was created through NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// MenuItemID returns the menu item the line refers to.
func (l Line) MenuItemID() kernel.UUID {
	return l.menuItemID
}

// Name returns the item's display name as shown at checkout.
func (l Line) Name() string {
	return l.name
}

// UnitPrice returns the price per unit at checkout time.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Quantity returns the ordered unit count.
func (l Line) Quantity() int {
	return l.quantity
}

// Subtotal returns unit price times quantity.
func (l Line) Subtotal() kernel.Money {
	return l.unitPrice.MulQty(l.quantity)
}

func (l *Line) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.menuItemID = id
	return nil
}

func (l *Line) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("line name")
	}
	l.name = name
	return nil
}

func (l *Line) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	l.unitPrice = price
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, int(^uint(0)>>1))
	}
	l.quantity = quantity
	return nil
}

// Order is the aggregate root for a customer order. It is created once at
// checkout from a cart snapshot and thereafter changes only through status
// transitions reported by the backend actors (restaurant, courier).
//
// Order invariants:
//   - Lines are never empty
//   - Total always equals subtotal + delivery fee + tax
//   - Status only advances per the transition table in Status
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id             kernel.UUID
	customerID     kernel.UUID
	restaurantID   kernel.UUID
	restaurantName string

	lines []Line

	status Status

	subtotal    kernel.Money
	deliveryFee kernel.Money
	tax         kernel.Money
	total       kernel.Money

	pickupAddress   kernel.Address
	deliveryAddress kernel.Address

	createdAt             time.Time
	estimatedDeliveryTime time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a freshly placed order. Total is derived as
// subtotal + deliveryFee + tax, so the invariant holds by construction.
// Returns a validation error for empty lines or invalid components.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	restaurantName string,
	lines []Line,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	tax kernel.Money,
	pickupAddress kernel.Address,
	deliveryAddress kernel.Address,
	createdAt time.Time,
	estimatedDeliveryTime time.Time,
) (*Order, error) {
	o := &Order{
		status: Placed,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setIDs(id, customerID, restaurantID),
		o.setRestaurantName(restaurantName),
		o.setLines(lines),
		o.setCharges(subtotal, deliveryFee, tax),
		o.setAddresses(pickupAddress, deliveryAddress),
		o.setTimes(createdAt, estimatedDeliveryTime),
	); err != nil {
		return nil, err
	}

	o.total = subtotal.Add(deliveryFee).Add(tax)
	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its current
// status. Unlike NewOrder it receives the stored total and verifies it
// against subtotal + deliveryFee + tax, so corrupted rows are rejected at the
// boundary instead of entering core logic.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	restaurantName string,
	lines []Line,
	status Status,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	tax kernel.Money,
	total kernel.Money,
	pickupAddress kernel.Address,
	deliveryAddress kernel.Address,
	createdAt time.Time,
	estimatedDeliveryTime time.Time,
) (*Order, error) {
	o, err := NewOrder(id, customerID, restaurantID, restaurantName, lines,
		subtotal, deliveryFee, tax, pickupAddress, deliveryAddress, createdAt, estimatedDeliveryTime)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if !o.total.IsEqual(total) {
		return nil, errs.NewValueIsInvalidErrorWithCause("order total",
			fmt.Errorf("stored total %s does not equal subtotal+fee+tax %s", total, o.total))
	}

	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the restaurant preparing the order.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// RestaurantName returns the restaurant's display name.
func (o *Order) RestaurantName() string {
	return o.restaurantName
}

// Lines returns a defensive copy of the order lines.
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Subtotal returns the sum of line subtotals.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// DeliveryFee returns the flat delivery fee charged at checkout.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// Tax returns the tax charged at checkout.
func (o *Order) Tax() kernel.Money {
	return o.tax
}

// Total returns subtotal + delivery fee + tax.
func (o *Order) Total() kernel.Money {
	return o.total
}

// PickupAddress returns the restaurant address couriers collect from.
func (o *Order) PickupAddress() kernel.Address {
	return o.pickupAddress
}

// DeliveryAddress returns the customer's destination address.
func (o *Order) DeliveryAddress() kernel.Address {
	return o.deliveryAddress
}

// CreatedAt returns the checkout timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// EstimatedDeliveryTime returns the delivery estimate made at checkout.
func (o *Order) EstimatedDeliveryTime() time.Time {
	return o.estimatedDeliveryTime
}

// ChangeStatus advances the order to target, enforcing the transition table.
// On an illegal move it returns an InvalidTransitionError and the order keeps
// its current status; there is no partial mutation.
func (o *Order) ChangeStatus(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel moves the order to Cancelled. Fails once the order is terminal.
func (o *Order) Cancel() error {
	return o.ChangeStatus(Cancelled)
}

func (o *Order) setIDs(id, customerID, restaurantID kernel.UUID) error {
	if err := errors.Join(id.Validate(), customerID.Validate(), restaurantID.Validate()); err != nil {
		return err
	}
	o.id = id
	o.customerID = customerID
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setRestaurantName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("restaurant name")
	}
	o.restaurantName = name
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setCharges(subtotal, deliveryFee, tax kernel.Money) error {
	if err := errors.Join(subtotal.Validate(), deliveryFee.Validate(), tax.Validate()); err != nil {
		return err
	}
	o.subtotal = subtotal
	o.deliveryFee = deliveryFee
	o.tax = tax
	return nil
}

func (o *Order) setAddresses(pickup, delivery kernel.Address) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}
	o.pickupAddress = pickup
	o.deliveryAddress = delivery
	return nil
}

func (o *Order) setTimes(createdAt, estimated time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	o.estimatedDeliveryTime = estimated
	return nil
}
