// Package parcel provides domain entities and business logic for shipment
// management in the delivery system. It implements the Parcel aggregate root
// with lifecycle management, audit history, and state transitions.
//
// The package includes:
//   - Parcel: The aggregate root managing identity, pricing, payment, and lifecycle
//   - Status: A state machine enforcing the delivery workflow
//   - AllowedTransition: The table-driven policy of legal status moves
//   - Party, PackageInfo, Pricing, Payment, ProofOfDelivery, HistoryEntry: value objects
//   - Actor/Role: the identified principal attempting an operation
//
// Key business rules:
//   - Status follows the workflow pending -> picked-up -> in-transit -> delivered
//   - All forward transitions are driver-only; pickup requires completed payment
//   - Delivery requires a proof of delivery; proof is present exactly when delivered
//   - The status history is append-only and always matches the current status
//   - Pricing and the tracking number are frozen at creation
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package parcel
