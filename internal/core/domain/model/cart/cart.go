package cart

import (
	"errors"
	"fmt"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/pkg/errs"
	"mealdash/internal/pkg/guard"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart was not created through NewCart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

	// ErrItemIsNotConstructed is returned when an Item was not created through NewItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

	// ErrCartBoundToOtherRestaurant is returned by AddLine when the cart already
	// holds lines from a different restaurant. The cart is left unchanged; the
	// caller must Clear() explicitly before switching restaurants.
	ErrCartBoundToOtherRestaurant = errs.NewConflictError("cart is bound to another restaurant")
)

// Item describes a menu item being added to a cart: its identity, display
// name, and unit price. Items are immutable value objects.
type Item struct { //nolint:recvcheck //using for validation
	id        kernel.UUID
	name      string
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates a menu item reference with validation.
func NewItem(id kernel.UUID, name string, unitPrice kernel.Money) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the menu item identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// Name returns the display name.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the price per unit.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.unitPrice = price
	return nil
}

// Line is a cart position: an item and how many units of it are wanted.
// Quantity is always at least 1; dropping to zero removes the line.
type Line struct {
	item     Item
	quantity int
}

// Item returns the menu item for the line.
func (l Line) Item() Item {
	return l.item
}

// Quantity returns the number of units.
func (l Line) Quantity() int {
	return l.quantity
}

// Subtotal returns unit price times quantity.
func (l Line) Subtotal() kernel.Money {
	return l.item.UnitPrice().MulQty(l.quantity)
}

// Snapshot is an immutable copy of cart contents taken at checkout time.
// Orders are created from snapshots, never from the live cart.
type Snapshot struct {
	RestaurantID   kernel.UUID
	RestaurantName string
	Lines          []Line
	Total          kernel.Money
}

// Cart accumulates menu items from a single restaurant for one client
// session. It binds to the restaurant on the first AddLine and refuses lines
// from any other restaurant until cleared.
//
// Cart invariants:
//   - All lines reference the bound restaurant
//   - Every line quantity is >= 1
//   - Total() always equals the sum of line subtotals
//
// All mutations are all-or-nothing: a failed operation leaves contents,
// binding, and total untouched. The cart performs no I/O; it is a pure state
// holder owned by the current session.
type Cart struct {
	restaurantID   *kernel.UUID
	restaurantName string
	lines          []Line

	guard guard.ConstructorGuard
}

// NewCart creates an empty, unbound cart.
func NewCart() *Cart {
	return &Cart{
		lines: make([]Line, 0),
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the cart was created through NewCart.
func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

// RestaurantID returns the bound restaurant, or nil for an empty cart.
func (c *Cart) RestaurantID() *kernel.UUID {
	return c.restaurantID
}

// RestaurantName returns the bound restaurant's name, or "" when unbound.
func (c *Cart) RestaurantName() string {
	return c.restaurantName
}

// Lines returns a defensive copy of the cart contents.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Total returns the sum of all line subtotals.
func (c *Cart) Total() kernel.Money {
	total := kernel.MustMoneyFromCents(0)
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// AddLine puts one unit of item into the cart for the given restaurant.
//
// An unbound cart binds to restaurantID. A cart bound to a different
// restaurant fails with ErrCartBoundToOtherRestaurant and keeps its state.
// Adding an item already present increments its quantity.
func (c *Cart) AddLine(restaurantID kernel.UUID, restaurantName string, item Item) error {
	if err := errors.Join(restaurantID.Validate(), item.Validate()); err != nil {
		return err
	}

	if c.restaurantID != nil && !c.restaurantID.IsEqual(restaurantID) {
		return ErrCartBoundToOtherRestaurant
	}

	if c.restaurantID == nil {
		c.restaurantID = &restaurantID
		c.restaurantName = restaurantName
	}

	for i := range c.lines {
		if c.lines[i].item.ID().IsEqual(item.ID()) {
			c.lines[i].quantity++
			return nil
		}
	}

	c.lines = append(c.lines, Line{item: item, quantity: 1})
	return nil
}

// UpdateQuantity sets the quantity for an existing line. A quantity of zero
// or less removes the line; when the last line goes, the cart unbinds from
// its restaurant. Fails with an ObjectNotFoundError for an unknown item.
func (c *Cart) UpdateQuantity(itemID kernel.UUID, quantity int) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	for i := range c.lines {
		if !c.lines[i].item.ID().IsEqual(itemID) {
			continue
		}

		if quantity <= 0 {
			c.removeAt(i)
		} else {
			c.lines[i].quantity = quantity
		}
		return nil
	}

	return errs.NewObjectNotFoundErrorWithCause("cartLine", itemID.String(),
		fmt.Errorf("item is not in the cart"))
}

// RemoveLine deletes the line for itemID. Removing an absent item is a no-op.
func (c *Cart) RemoveLine(itemID kernel.UUID) {
	for i := range c.lines {
		if c.lines[i].item.ID().IsEqual(itemID) {
			c.removeAt(i)
			return
		}
	}
}

// Clear unconditionally resets the cart to the empty, unbound state.
func (c *Cart) Clear() {
	c.restaurantID = nil
	c.restaurantName = ""
	c.lines = c.lines[:0]
}

// Snapshot captures the current contents for checkout. Fails with a
// ValueIsRequiredError when the cart is empty: orders need at least one line.
func (c *Cart) Snapshot() (Snapshot, error) {
	if c.IsEmpty() || c.restaurantID == nil {
		return Snapshot{}, errs.NewValueIsRequiredError("cart lines")
	}

	return Snapshot{
		RestaurantID:   *c.restaurantID,
		RestaurantName: c.restaurantName,
		Lines:          c.Lines(),
		Total:          c.Total(),
	}, nil
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	if len(c.lines) == 0 {
		c.restaurantID = nil
		c.restaurantName = ""
	}
}
