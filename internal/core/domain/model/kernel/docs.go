// Package kernel provides core domain primitives shared by the whole model.
// It implements the fundamental value objects used throughout the order and
// delivery aggregates:
//
//   - UUID: unique identifier with validation and comparison
//   - Money: currency amount kept as integer cents, safe for totals arithmetic
//   - GeoPoint: geographic coordinate with latitude/longitude range checks
//   - Address: free-text address line with the normalization used as a
//     geocoding cache key
//
// All value objects are immutable, enforce their invariants at construction
// via the constructor-guard pattern, and are safe for concurrent use.
package kernel
