package services

import (
	"orderdesk/internal/core/domain/model/order"
)

// Statistics are the live counters shown to staff. They are derived from an order set
// and never stored.
type Statistics struct {
	PendingCount    int
	DeliveredCount  int
	TotalCount      int
	PendingEggBoxes int
	PendingOilCans  int
}

// StatisticsCalculator derives Statistics from a set of orders.
//
// Business rules:
//   - pending and delivered counts always add up to the total count
//   - only pending orders contribute to the per-product quantities
//   - a product the customer did not order contributes 0
//
// Example usage:
//
//	stats := services.NewStatisticsCalculator().Compute(orders)
//	fmt.Printf("%d pending, %d boxes to prepare\n", stats.PendingCount, stats.PendingEggBoxes)
type StatisticsCalculator struct{}

func NewStatisticsCalculator() StatisticsCalculator {
	return StatisticsCalculator{}
}

// Compute walks orders once. It never fails: nil entries are skipped and an empty set
// yields all-zero statistics. The result does not depend on the order of the input.
func (StatisticsCalculator) Compute(orders []*order.Order) Statistics {
	var stats Statistics
	for _, o := range orders {
		if o == nil {
			continue
		}
		stats.TotalCount++
		if !o.IsPending() {
			continue
		}
		stats.PendingCount++
		if eggs, ok := o.Line(order.Eggs); ok {
			stats.PendingEggBoxes += eggs.Quantity()
		}
		if oil, ok := o.Line(order.Oil); ok {
			stats.PendingOilCans += oil.Quantity()
		}
	}
	stats.DeliveredCount = stats.TotalCount - stats.PendingCount
	return stats
}
