// Package order holds the Order aggregate of the order desk and everything needed to
// price, mutate and reconcile it.
//
// The package includes:
//   - Catalog: fixed unit prices and unit conversions, used to quote line items
//   - Draft: a validated submission that has not been stored yet
//   - Order: the aggregate root with its two mutable fields, delivery state and paid
//   - StatusChange: a single-field update, used both as a store write and as a pending
//     local change
//   - ReconcilePolicy: how a view merges a store snapshot with pending changes
//
// Key business rules:
//   - A customer name is required; a blank phone is stored as "not provided"
//   - At least one product is selected and every selected quantity is positive
//   - Line totals and derived units come from the catalog, never from the client
//   - The order total is the sum of line totals and is always recomputed
package order
