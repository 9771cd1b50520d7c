// Package delivery implements the courier delivery aggregate.
//
// A delivery is created Pending whenever an order reaches the ready-for-pickup
// status, and is then offered to couriers. Exactly one courier wins the
// acceptance race (the persistence layer guards the write with a conditional
// update); after that the aggregate walks Assigned, PickedUp, InTransit, and
// Delivered, stamping a timestamp at each milestone, and carries the courier's
// contact card and last reported position along.
package delivery
