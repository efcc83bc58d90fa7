// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the pharmacy platform. It
// implements business workflows that don't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - OrderAdmission: A domain service that validates an order request
//     against the catalog and the prescription gate and builds the Order
//     aggregate with its pricing snapshots
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
