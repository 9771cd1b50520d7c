// Package guard implements the constructor-guard pattern used by domain
// value objects and commands. Embedding a ConstructorGuard lets a type
// detect whether it was built through its designated constructor or left
// as a zero value, so invariants established at construction time cannot
// be bypassed by direct struct initialization.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller did not
// supply a more specific error for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether the embedding object went through its
// constructor. The zero value is "not constructed" and fails validation.
//
// Example:
//
//	type Courier struct {
//	    name  string
//	    phone string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewCourier(name, phone string) (Courier, error) {
//	    if name == "" {
//	        return Courier{}, errors.New("name is required")
//	    }
//	    return Courier{name: name, phone: phone, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c Courier) Validate() error {
//	    return c.guard.Validate(ErrCourierIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the embedding object as
// properly constructed. Call it only from constructors.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// For a zero-value guard it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
