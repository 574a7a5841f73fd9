package http

import (
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/generated/servers"
)

func toOrders(orders []*order.Order) []servers.Order {
	response := make([]servers.Order, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrder(o))
	}
	return response
}

func toOrder(o *order.Order) servers.Order {
	dto := servers.Order{
		Id:            o.ID().Bytes(),
		CustomerName:  o.CustomerName(),
		Phone:         o.Phone(),
		Total:         o.Total().Decimal().InexactFloat64(),
		DeliveryState: servers.OrderDeliveryState(o.DeliveryState().String()),
		Paid:          o.IsPaid(),
		CreatedAt:     o.CreatedAt(),
	}
	if line, ok := o.Line(order.Eggs); ok {
		dto.Eggs = toLine(line)
	}
	if line, ok := o.Line(order.Oil); ok {
		dto.Oil = toLine(line)
	}
	return dto
}

func toLine(line order.LineItem) *servers.OrderLine {
	return &servers.OrderLine{
		Quantity:  line.Quantity(),
		LineTotal: line.LineTotal().Decimal().InexactFloat64(),
		Units:     line.DerivedUnits(),
	}
}

func toStatistics(stats services.Statistics) servers.Statistics {
	return servers.Statistics{
		PendingCount:    stats.PendingCount,
		DeliveredCount:  stats.DeliveredCount,
		TotalCount:      stats.TotalCount,
		PendingEggBoxes: stats.PendingEggBoxes,
		PendingOilCans:  stats.PendingOilCans,
	}
}
