package order

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// DeliveryState is the delivery status of an order.
//
// State transitions:
//
//	Pending <──toggle──> Delivered
//
// There is no terminal state; staff can flip it back and forth any number of times.
type DeliveryState int

const (
	// UnknownDeliveryState represents an invalid or undefined state.
	// This value (0) helps catch uninitialized DeliveryState values.
	UnknownDeliveryState DeliveryState = iota

	// Pending is the state of every newly submitted order.
	Pending

	// Delivered marks an order handed over to the customer.
	Delivered
)

func getDeliveryStateStrings() map[DeliveryState]string {
	return map[DeliveryState]string{
		UnknownDeliveryState: "unknown",
		Pending:              "pending",
		Delivered:            "delivered",
	}
}

// ParseDeliveryState converts the persisted string form back to a DeliveryState.
func ParseDeliveryState(s string) (DeliveryState, error) {
	for state, str := range getDeliveryStateStrings() {
		if state != UnknownDeliveryState && str == s {
			return state, nil
		}
	}
	return UnknownDeliveryState, errs.NewValueIsInvalidErrorWithCause(
		"delivery state is invalid",
		fmt.Errorf("%q is not a valid delivery state", s),
	)
}

// Validate accepts Pending and Delivered only.
func (s DeliveryState) Validate() error {
	if s != Pending && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery state is invalid",
			fmt.Errorf("%d is not a valid delivery state", s),
		)
	}
	return nil
}

// String returns "pending", "delivered" or "unknown". It is also the persisted form.
func (s DeliveryState) String() string {
	if str, ok := getDeliveryStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Toggle returns the opposite state. Applying it twice yields the original state.
func (s DeliveryState) Toggle() (DeliveryState, error) {
	switch s {
	case Pending:
		return Delivered, nil
	case Delivered:
		return Pending, nil
	default:
		return UnknownDeliveryState, errs.NewValueIsInvalidErrorWithCause(
			"delivery state is invalid",
			fmt.Errorf("%s is not a valid state to toggle", s.String()),
		)
	}
}
