// Package cart implements the session-scoped shopping cart aggregate.
//
// A cart accumulates line items for exactly one restaurant and derives its
// total from the lines. Binding happens implicitly on the first add; adding
// from a second restaurant is a conflict the caller must resolve with an
// explicit Clear. Carts never touch storage or the network; checkout takes
// an immutable Snapshot and hands it to the order side.
package cart
