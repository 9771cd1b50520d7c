package delivery

import (
	"errors"
	"strings"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/pkg/errs"
	"mealdash/internal/pkg/guard"
)

// ErrCourierIsNotConstructed is returned when a Courier instance was not
// created through the proper constructor.
var ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier")

// Courier is the contact card of the person who accepted a delivery. It is a
// value object: the delivery aggregate stores it whole and never mutates it.
type Courier struct {
	id    kernel.UUID
	name  string
	phone string

	guard guard.ConstructorGuard
}

// NewCourier creates a courier contact. Name and phone must be non-blank.
func NewCourier(id kernel.UUID, name string, phone string) (Courier, error) {
	if err := id.Validate(); err != nil {
		return Courier{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Courier{}, errs.NewValueIsRequiredError("name")
	}
	if strings.TrimSpace(phone) == "" {
		return Courier{}, errs.NewValueIsRequiredError("phone")
	}

	return Courier{
		id:    id,
		name:  strings.TrimSpace(name),
		phone: strings.TrimSpace(phone),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Courier instance was properly constructed.
func (c Courier) Validate() error {
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier's identifier.
func (c Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c Courier) Name() string {
	return c.name
}

// Phone returns the courier's contact phone.
func (c Courier) Phone() string {
	return c.phone
}

// IsEqual compares couriers by identifier.
func (c Courier) IsEqual(other Courier) bool {
	return c.id.IsEqual(other.id)
}
