package order

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// Product identifies one of the two product lines an order can contain.
type Product int

const (
	UnknownProduct Product = iota

	// Eggs are sold by the box; derived units are eggs.
	Eggs

	// Oil is sold by the can; derived units are liters.
	Oil
)

// Products lists every orderable product in display order.
func Products() []Product {
	return []Product{Eggs, Oil}
}

// String returns the product key used in payloads and persistence ("eggs", "oil").
func (p Product) String() string {
	switch p {
	case Eggs:
		return "eggs"
	case Oil:
		return "oil"
	default:
		return "unknown"
	}
}

// Validate accepts Eggs and Oil only.
func (p Product) Validate() error {
	if p != Eggs && p != Oil {
		return errs.NewValueIsInvalidErrorWithCause("product is invalid", fmt.Errorf("%d is not a valid product", p))
	}
	return nil
}

// ParseProduct converts a product key back to a Product.
func ParseProduct(s string) (Product, error) {
	for _, p := range Products() {
		if p.String() == s {
			return p, nil
		}
	}
	return UnknownProduct, errs.NewValueIsInvalidErrorWithCause("product is invalid", fmt.Errorf("%q is not a valid product", s))
}
