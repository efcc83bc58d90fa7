// Package order provides domain entities and business logic for order
// management in the pharmacy platform. It implements the Order aggregate
// root with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, line items, and lifecycle
//   - Item: An immutable order line carrying the point-of-sale pricing snapshot
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid identifier, patient, pharmacy, and at least one line
//   - Line unit prices are frozen at admission and never recomputed
//   - Order status follows a defined workflow: Placed -> Confirmed -> Shipped -> Delivered,
//     with Cancelled reachable only from Placed or Confirmed
//   - A tracking number is mandatory before an order may move to Shipped
//   - Delivered and Cancelled are terminal; repeating a transition is an error
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
