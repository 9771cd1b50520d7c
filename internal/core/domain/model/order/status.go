package order

import (
	"fmt"

	"mealdash/internal/pkg/errs"
)

// Status represents the lifecycle state of a customer order. It implements a
// state machine whose only legal moves are single forward steps plus
// cancellation from any non-terminal state.
//
// State transitions:
//
//	Placed -> Confirmed -> Preparing -> ReadyForPickup -> OutForDelivery -> Delivered
//	                                                            │
//	                                                            └-> Failed
//	(Cancelled is reachable from every non-terminal state)
//
// Delivered, Cancelled, and Failed are terminal. Skipped or out-of-order
// moves are rejected with an InvalidTransitionError, never silently coerced.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status: checkout has created the order and the
	// restaurant has not reacted yet.
	Placed

	// Confirmed means the restaurant accepted the order.
	Confirmed

	// Preparing means the kitchen is working on the order.
	Preparing

	// ReadyForPickup means the food is packed and waiting for a courier.
	// Reaching this status makes the order visible to couriers.
	ReadyForPickup

	// OutForDelivery means an assigned courier has the order in hand.
	OutForDelivery

	// Delivered is the successful terminal status.
	Delivered

	// Cancelled is the terminal status for orders abandoned before delivery.
	Cancelled

	// Failed is the terminal status for orders whose delivery failed en route.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Placed:         "PLACED",
		Confirmed:      "CONFIRMED",
		Preparing:      "PREPARING",
		ReadyForPickup: "READY_FOR_PICKUP",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
		Failed:         "FAILED",
	}
}

// getSuccessor returns the single legal forward step for each status.
// Terminal statuses have no successor.
func getSuccessor() map[Status]Status {
	return map[Status]Status{
		Placed:         Confirmed,
		Confirmed:      Preparing,
		Preparing:      ReadyForPickup,
		ReadyForPickup: OutForDelivery,
		OutForDelivery: Delivered,
	}
}

// StatusFromString parses the wire form of a status (e.g. "READY_FOR_PICKUP").
// Used at the HTTP boundary and when restoring orders from storage.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("order status",
		fmt.Errorf("%q is not a known status", s))
}

// Validate checks that the Status is one of the defined values.
// Unknown (0) and anything outside the table are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "OUT_FOR_DELIVERY".
// Safe to call on any value; invalid values print as "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Failed
}

// ImpliesActiveDelivery reports whether an order in this status has a courier
// actively moving it, meaning trackers should fetch the delivery record.
func (s Status) ImpliesActiveDelivery() bool {
	return s == OutForDelivery
}

// TransitionTo validates the move from s to target and returns the new
// status. Legal moves are the immediate successor in the lifecycle table,
// Cancelled from any non-terminal status, and Failed from OutForDelivery.
// Anything else returns an InvalidTransitionError; the receiver is a value,
// so the caller's status stays untouched.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	switch target {
	case Cancelled:
		if s.IsTerminal() {
			return Unknown, errs.NewInvalidTransitionErrorWithCause(s.String(), target.String(),
				fmt.Errorf("%s is terminal", s.String()))
		}
		return Cancelled, nil

	case Failed:
		if s != OutForDelivery {
			return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
		}
		return Failed, nil

	default:
		if getSuccessor()[s] != target {
			return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
		}
		return target, nil
	}
}
