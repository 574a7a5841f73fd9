package order

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

var ErrStatusChangeIsNotConstructed = errors.New("StatusChange must be created via NewDeliveryStateChange or NewPaidChange")

// Field names the only two order fields that may change after creation.
type Field int

const (
	UnknownField Field = iota
	FieldDeliveryState
	FieldPaid
)

// String returns the persisted field name.
func (f Field) String() string {
	switch f {
	case FieldDeliveryState:
		return "deliveryState"
	case FieldPaid:
		return "paid"
	default:
		return "unknown"
	}
}

// StatusChange is a single-field update of one order: the new delivery state or the new
// paid flag. It is both the payload of the store's field update and the pending local
// change a view overlays until the store acknowledges it.
type StatusChange struct {
	orderID       kernel.UUID
	field         Field
	deliveryState DeliveryState
	paid          bool
	issuedAt      time.Time

	guard guard.ConstructorGuard
}

// NewDeliveryStateChange sets the delivery state of orderID to state.
func NewDeliveryStateChange(orderID kernel.UUID, state DeliveryState, issuedAt time.Time) (StatusChange, error) {
	if err := errors.Join(orderID.Validate(), state.Validate()); err != nil {
		return StatusChange{}, err
	}
	return StatusChange{
		orderID:       orderID,
		field:         FieldDeliveryState,
		deliveryState: state,
		issuedAt:      issuedAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// NewPaidChange sets the paid flag of orderID to paid.
func NewPaidChange(orderID kernel.UUID, paid bool, issuedAt time.Time) (StatusChange, error) {
	if err := orderID.Validate(); err != nil {
		return StatusChange{}, err
	}
	return StatusChange{
		orderID:  orderID,
		field:    FieldPaid,
		paid:     paid,
		issuedAt: issuedAt,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ToggleDeliveryOf computes the change that flips the current delivery state of o.
func ToggleDeliveryOf(o *Order, issuedAt time.Time) (StatusChange, error) {
	if err := o.Validate(); err != nil {
		return StatusChange{}, err
	}
	next, err := o.DeliveryState().Toggle()
	if err != nil {
		return StatusChange{}, err
	}
	return NewDeliveryStateChange(o.ID(), next, issuedAt)
}

// TogglePaidOf computes the change that flips the current paid flag of o.
func TogglePaidOf(o *Order, issuedAt time.Time) (StatusChange, error) {
	if err := o.Validate(); err != nil {
		return StatusChange{}, err
	}
	return NewPaidChange(o.ID(), !o.IsPaid(), issuedAt)
}

func (c StatusChange) Validate() error {
	return c.guard.Validate(ErrStatusChangeIsNotConstructed)
}

func (c StatusChange) OrderID() kernel.UUID { return c.orderID }

func (c StatusChange) Field() Field { return c.field }

// DeliveryState is the new state; meaningful only for FieldDeliveryState.
func (c StatusChange) DeliveryState() DeliveryState { return c.deliveryState }

// Paid is the new flag; meaningful only for FieldPaid.
func (c StatusChange) Paid() bool { return c.paid }

func (c StatusChange) IssuedAt() time.Time { return c.issuedAt }

// Value returns the new value in its persisted form: the state string or the bool.
func (c StatusChange) Value() any {
	if c.field == FieldDeliveryState {
		return c.deliveryState.String()
	}
	return c.paid
}

// IsEqual reports whether both changes carry the same order, field, value and issue time.
func (c StatusChange) IsEqual(other StatusChange) bool {
	return c.orderID.IsEqual(other.orderID) &&
		c.field == other.field &&
		c.deliveryState == other.deliveryState &&
		c.paid == other.paid &&
		c.issuedAt.Equal(other.issuedAt)
}

// IsReflectedIn reports whether o already holds the value this change sets.
func (c StatusChange) IsReflectedIn(o *Order) bool {
	switch c.field {
	case FieldDeliveryState:
		return o.DeliveryState() == c.deliveryState
	case FieldPaid:
		return o.IsPaid() == c.paid
	default:
		return false
	}
}

func (c StatusChange) String() string {
	return fmt.Sprintf("%s %s=%v", c.orderID, c.field, c.Value())
}
