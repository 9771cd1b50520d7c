// Package order implements the customer order aggregate and its lifecycle
// state machine.
//
// An order is born at checkout from a cart snapshot with its charges frozen
// (subtotal, delivery fee, tax, total). From then on the only mutation the
// core allows is a status transition reported by one of the backend actors,
// validated against the table in Status. Everything else about a persisted
// order is read-only.
package order
