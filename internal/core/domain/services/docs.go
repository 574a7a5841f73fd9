// Package services holds domain logic that works on a whole set of orders rather than
// on a single aggregate.
//
// The package includes:
//   - StatisticsCalculator: derives the live staff counters from an order set
package services
