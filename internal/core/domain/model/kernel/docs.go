// Package kernel provides the shared value objects of the order desk domain:
//   - UUID: store-assigned order identifiers
//   - Money: exact, non-negative currency amounts for prices and totals
//
// Both are immutable and safe for concurrent use. Their zero values are invalid and
// are rejected by Validate.
package kernel
