// Package orderstore keeps orders in a MongoDB collection and watches it with change
// streams. Transactions and change streams need a replica set.
package orderstore

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	fieldID            = "_id"
	fieldDeliveryState = "deliveryState"
	fieldPaid          = "paid"
	fieldCreatedAt     = "createdAt"
)

type orderDocument struct {
	ID            string               `bson:"_id"`
	CustomerName  string               `bson:"customerName"`
	Phone         string               `bson:"phone"`
	Eggs          *lineDocument        `bson:"eggs"`
	Oil           *lineDocument        `bson:"oil"`
	Total         primitive.Decimal128 `bson:"total"`
	DeliveryState string               `bson:"deliveryState"`
	Paid          bool                 `bson:"paid"`
	CreatedAt     time.Time            `bson:"createdAt"`
}

type lineDocument struct {
	Quantity     int                  `bson:"quantity"`
	LineTotal    primitive.Decimal128 `bson:"lineTotal"`
	DerivedUnits int                  `bson:"derivedUnits"`
}

func fromDraft(id kernel.UUID, createdAt time.Time, draft *order.Draft) (orderDocument, error) {
	total, err := toDecimal128(draft.Total())
	if err != nil {
		return orderDocument{}, err
	}
	eggs, err := lineFromDomain(draft.Line(order.Eggs))
	if err != nil {
		return orderDocument{}, err
	}
	oil, err := lineFromDomain(draft.Line(order.Oil))
	if err != nil {
		return orderDocument{}, err
	}

	return orderDocument{
		ID:            id.String(),
		CustomerName:  draft.CustomerName(),
		Phone:         draft.Phone(),
		Eggs:          eggs,
		Oil:           oil,
		Total:         total,
		DeliveryState: order.Pending.String(),
		Paid:          false,
		CreatedAt:     createdAt,
	}, nil
}

func lineFromDomain(line order.LineItem, ok bool) (*lineDocument, error) {
	if !ok {
		return nil, nil
	}
	total, err := toDecimal128(line.LineTotal())
	if err != nil {
		return nil, err
	}
	return &lineDocument{
		Quantity:     line.Quantity(),
		LineTotal:    total,
		DerivedUnits: line.DerivedUnits(),
	}, nil
}

// toDomain ignores the stored total: it is recomputed from the lines.
func toDomain(doc orderDocument) (*order.Order, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}
	state, err := order.ParseDeliveryState(doc.DeliveryState)
	if err != nil {
		return nil, err
	}
	eggs, err := lineToDomain(order.Eggs, doc.Eggs)
	if err != nil {
		return nil, err
	}
	oil, err := lineToDomain(order.Oil, doc.Oil)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, doc.CreatedAt.UTC(), doc.CustomerName, doc.Phone, eggs, oil, state, doc.Paid)
}

func lineToDomain(p order.Product, doc *lineDocument) (*order.LineItem, error) {
	if doc == nil {
		return nil, nil
	}
	amount, err := decimal.NewFromString(doc.LineTotal.String())
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(amount)
	if err != nil {
		return nil, err
	}
	line, err := order.RestoreLineItem(p, doc.Quantity, total, doc.DerivedUnits)
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func toDecimal128(m kernel.Money) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(m.String())
}
