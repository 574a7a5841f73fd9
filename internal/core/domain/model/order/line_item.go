package order

import (
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via Catalog.Quote or RestoreLineItem")

// LineItem is the priced quantity of one product inside an order. Its values are fixed
// at submission time; later catalog changes do not reprice existing orders.
type LineItem struct {
	product      Product
	quantity     int
	lineTotal    kernel.Money
	derivedUnits int

	isConstructed bool
}

// RestoreLineItem rebuilds a line item from persisted values.
func RestoreLineItem(p Product, quantity int, lineTotal kernel.Money, derivedUnits int) (LineItem, error) {
	var invalid []error
	if quantity <= 0 {
		invalid = append(invalid, errs.NewValueIsInvalidErrorWithCause(
			fmt.Sprintf("%s quantity is invalid", p), fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if derivedUnits < 0 {
		invalid = append(invalid, errs.NewValueIsInvalidErrorWithCause(
			fmt.Sprintf("%s units are invalid", p), fmt.Errorf("%d is negative", derivedUnits)))
	}
	if err := errors.Join(append(invalid, p.Validate(), lineTotal.Validate())...); err != nil {
		return LineItem{}, err
	}

	return LineItem{
		product:       p,
		quantity:      quantity,
		lineTotal:     lineTotal,
		derivedUnits:  derivedUnits,
		isConstructed: true,
	}, nil
}

func (l LineItem) Validate() error {
	if !l.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

func (l LineItem) Product() Product { return l.product }

// Quantity is the number of boxes (eggs) or cans (oil).
func (l LineItem) Quantity() int { return l.quantity }

func (l LineItem) LineTotal() kernel.Money { return l.lineTotal }

// DerivedUnits is the number of eggs or liters the quantity amounts to.
func (l LineItem) DerivedUnits() int { return l.derivedUnits }
