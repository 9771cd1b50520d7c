package delivery

import (
	"fmt"

	"mealdash/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery. Like the order status
// it is a strict state machine: single forward steps, plus Failed once a
// courier is involved and Cancelled while nobody is.
//
// State transitions:
//
//	Pending -> Assigned -> PickedUp -> InTransit -> Delivered
//	   │           └──────────┴───────────┴-> Failed
//	   └-> Cancelled
//
// Delivered, Failed, and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the delivery exists but no courier has
	// accepted it yet. Pending deliveries are offered to couriers.
	Pending

	// Assigned means exactly one courier won the acceptance race.
	Assigned

	// PickedUp means the courier has collected the order at the restaurant.
	PickedUp

	// InTransit means the courier is en route to the delivery address.
	InTransit

	// Delivered is the successful terminal status.
	Delivered

	// Failed is the terminal status for deliveries abandoned after a courier
	// was already involved.
	Failed

	// Cancelled is the terminal status for deliveries withdrawn before any
	// courier accepted them.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Failed:    "FAILED",
		Cancelled: "CANCELLED",
	}
}

// getSuccessor returns the single legal forward step for each status.
// Terminal statuses have no successor.
func getSuccessor() map[Status]Status {
	return map[Status]Status{
		Pending:   Assigned,
		Assigned:  PickedUp,
		PickedUp:  InTransit,
		InTransit: Delivered,
	}
}

// StatusFromString parses the wire form of a status (e.g. "PICKED_UP").
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("delivery status",
		fmt.Errorf("%q is not a known status", s))
}

// Validate checks that the Status is one of the defined values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("delivery status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "IN_TRANSIT".
// Safe to call on any value; invalid values print as "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed || s == Cancelled
}

// HasCourier reports whether a delivery in this status carries a courier.
// Couriers appear at Assigned and stay on the record through the terminal
// Delivered and Failed statuses.
func (s Status) HasCourier() bool {
	return s != Pending && s != Cancelled && s != Unknown
}

// TransitionTo validates the move from s to target and returns the new
// status. Legal moves are the immediate successor in the lifecycle table,
// Failed from any status with a courier, and Cancelled from Pending.
// Anything else returns an InvalidTransitionError.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	switch target {
	case Failed:
		if s.IsTerminal() || !s.HasCourier() {
			return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
		}
		return Failed, nil

	case Cancelled:
		if s != Pending {
			return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
		}
		return Cancelled, nil

	default:
		if getSuccessor()[s] != target {
			return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
		}
		return target, nil
	}
}
