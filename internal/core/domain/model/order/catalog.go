package order

import (
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

const (
	DefaultEggBoxPrice  = 2
	DefaultOilCanPrice  = 4
	DefaultEggsPerBox   = 20
	DefaultLitersPerCan = 3
)

var ErrCatalogIsNotConstructed = errors.New("Catalog must be created via NewCatalog constructor")

// Catalog holds the fixed pricing and unit conversion constants. It is configured at
// startup and injected into the submission pipeline; clients never supply prices.
type Catalog struct {
	eggBoxPrice  kernel.Money
	oilCanPrice  kernel.Money
	eggsPerBox   int
	litersPerCan int

	guard guard.ConstructorGuard
}

// NewCatalog validates that prices are constructed and conversion factors are positive.
func NewCatalog(eggBoxPrice, oilCanPrice kernel.Money, eggsPerBox, litersPerCan int) (Catalog, error) {
	var factorErrs []error
	if eggsPerBox <= 0 {
		factorErrs = append(factorErrs, errs.NewValueIsInvalidErrorWithCause(
			"eggs per box is invalid", fmt.Errorf("%d is not greater than 0", eggsPerBox)))
	}
	if litersPerCan <= 0 {
		factorErrs = append(factorErrs, errs.NewValueIsInvalidErrorWithCause(
			"liters per can is invalid", fmt.Errorf("%d is not greater than 0", litersPerCan)))
	}

	if err := errors.Join(append(factorErrs, eggBoxPrice.Validate(), oilCanPrice.Validate())...); err != nil {
		return Catalog{}, err
	}

	return Catalog{
		eggBoxPrice:  eggBoxPrice,
		oilCanPrice:  oilCanPrice,
		eggsPerBox:   eggsPerBox,
		litersPerCan: litersPerCan,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// DefaultCatalog returns a box of eggs at 2 with 20 eggs, and a can of oil at 4 with 3 liters.
func DefaultCatalog() Catalog {
	eggBoxPrice, _ := kernel.MoneyFromInt(DefaultEggBoxPrice)
	oilCanPrice, _ := kernel.MoneyFromInt(DefaultOilCanPrice)
	c, _ := NewCatalog(eggBoxPrice, oilCanPrice, DefaultEggsPerBox, DefaultLitersPerCan)
	return c
}

func (c Catalog) Validate() error {
	return c.guard.Validate(ErrCatalogIsNotConstructed)
}

// UnitPrice returns the price of one box (eggs) or one can (oil).
func (c Catalog) UnitPrice(p Product) kernel.Money {
	if p == Oil {
		return c.oilCanPrice
	}
	return c.eggBoxPrice
}

// UnitsPer returns eggs per box or liters per can.
func (c Catalog) UnitsPer(p Product) int {
	if p == Oil {
		return c.litersPerCan
	}
	return c.eggsPerBox
}

// Quote prices quantity units of p: lineTotal = quantity × unit price and
// derivedUnits = quantity × units per box/can.
func (c Catalog) Quote(p Product, quantity int) (LineItem, error) {
	if err := errors.Join(c.Validate(), p.Validate()); err != nil {
		return LineItem{}, err
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			fmt.Sprintf("%s quantity is invalid", p),
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return LineItem{
		product:       p,
		quantity:      quantity,
		lineTotal:     c.UnitPrice(p).Times(quantity),
		derivedUnits:  c.UnitsPer(p) * quantity,
		isConstructed: true,
	}, nil
}
