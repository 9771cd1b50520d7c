package kernel

import (
	"strings"

	"mealdash/internal/pkg/errs"
	"mealdash/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when validating an Address that was
// not created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is a free-text postal address line as entered by a customer or
// restaurant. The engine treats it as opaque text; geocoding gives it
// coordinates when a map view is needed.
//
// Normalized() produces the canonical form used as a geocoding cache key, so
// "12 Main St" and " 12  main st " resolve to one cache entry.
type Address struct { //nolint:recvcheck //using for validation
	line  string
	guard guard.ConstructorGuard
}

// NewAddress creates an Address from a non-blank line of text.
func NewAddress(line string) (Address, error) {
	if strings.TrimSpace(line) == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}

	return Address{
		line:  line,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// String returns the address exactly as entered.
func (a Address) String() string {
	return a.line
}

// Normalized returns the lowercase, whitespace-collapsed form of the address.
func (a Address) Normalized() string {
	return strings.Join(strings.Fields(strings.ToLower(a.line)), " ")
}

// IsEqual reports whether two addresses normalize to the same form.
func (a Address) IsEqual(other Address) bool {
	return a.Normalized() == other.Normalized()
}
