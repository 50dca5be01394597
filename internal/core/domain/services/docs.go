// Package services provides domain services that implement business logic
// which doesn't naturally belong to a single aggregate root in the delivery
// system.
//
// The package includes:
//   - PricingCalculator: quotes shipment prices from the configured rate
//
// Domain services stay pure: they hold configuration, not connections, and
// produce domain values for the application layer to persist.
package services
