// Package orderrepo stores orders in PostgreSQL through GORM and turns table changes
// into live snapshots with LISTEN/NOTIFY.
package orderrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table. The database assigns id and created_at.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerName  string    `gorm:"not null"`
	Phone         string    `gorm:"not null"`
	Eggs          LineDTO   `gorm:"embedded;embeddedPrefix:eggs_"`
	Oil           LineDTO   `gorm:"embedded;embeddedPrefix:oil_"`
	DeliveryState string    `gorm:"type:varchar(16);not null;index"`
	Paid          bool      `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null;default:clock_timestamp();autoCreateTime:false;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO is one optional line item. A NULL quantity means the product was not ordered.
type LineDTO struct {
	Quantity     *int
	LineTotal    decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	DerivedUnits *int
}

func fromDraft(draft *order.Draft) OrderDTO {
	return OrderDTO{
		CustomerName:  draft.CustomerName(),
		Phone:         draft.Phone(),
		Eggs:          lineFromDomain(draft.Line(order.Eggs)),
		Oil:           lineFromDomain(draft.Line(order.Oil)),
		DeliveryState: order.Pending.String(),
		Paid:          false,
	}
}

func lineFromDomain(line order.LineItem, ok bool) LineDTO {
	if !ok {
		return LineDTO{}
	}
	quantity := line.Quantity()
	units := line.DerivedUnits()
	return LineDTO{
		Quantity:     &quantity,
		LineTotal:    decimal.NewNullDecimal(line.LineTotal().Decimal()),
		DerivedUnits: &units,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	state, err := order.ParseDeliveryState(dto.DeliveryState)
	if err != nil {
		return nil, err
	}

	eggs, err := lineToDomain(order.Eggs, dto.Eggs)
	if err != nil {
		return nil, err
	}
	oil, err := lineToDomain(order.Oil, dto.Oil)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.CreatedAt.UTC(), dto.CustomerName, dto.Phone, eggs, oil, state, dto.Paid)
}

func lineToDomain(p order.Product, dto LineDTO) (*order.LineItem, error) {
	if dto.Quantity == nil {
		return nil, nil
	}

	total, err := kernel.NewMoney(dto.LineTotal.Decimal)
	if err != nil {
		return nil, err
	}
	units := 0
	if dto.DerivedUnits != nil {
		units = *dto.DerivedUnits
	}

	line, err := order.RestoreLineItem(p, *dto.Quantity, total, units)
	if err != nil {
		return nil, err
	}
	return &line, nil
}
