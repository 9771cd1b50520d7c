// Package services provides domain services that operate across multiple
// aggregates in the ordering system.
//
// The package includes:
//   - TrackingViewAssembler: merges an order, its delivery, and a resolved
//     route into a single tracking snapshot for presentation.
//
// Domain services implement logic that spans aggregates and therefore does
// not naturally belong to any single aggregate root.
package services
