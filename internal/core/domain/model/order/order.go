package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// PhoneNotProvided is stored when the customer leaves the phone blank.
const PhoneNotProvided = "not provided"

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrDraftIsNotConstructed is returned when a Draft was not produced by NewDraft.
	ErrDraftIsNotConstructed = errors.New("Draft must be created via NewDraft constructor")
)

// NewOrderInput is the raw submission as typed by the customer. A nil quantity means
// the product was not selected.
type NewOrderInput struct {
	CustomerName string
	Phone        string
	EggBoxes     *int
	OilCans      *int
}

// Draft is a validated, priced order that has not been stored yet. It has no identity
// and no creation time; the order store assigns both.
type Draft struct {
	customerName string
	phone        string
	eggs         *LineItem
	oil          *LineItem

	isConstructed bool
}

// NewDraft validates and normalizes a submission. It rejects a name that trims to
// empty, a submission with no product selected, and any selected quantity that is not
// a positive integer. All violations are reported together.
//
// Line totals and derived units come from catalog, never from the input:
//
//	eggs := 2
//	draft, err := order.NewDraft(order.NewOrderInput{CustomerName: "Ana", EggBoxes: &eggs}, order.DefaultCatalog())
//	// draft.Total() == 4, eggs line derived units == 40
func NewDraft(input NewOrderInput, catalog Catalog) (*Draft, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	d := &Draft{isConstructed: true}

	var invalid []error
	d.customerName = strings.TrimSpace(input.CustomerName)
	if d.customerName == "" {
		invalid = append(invalid, errs.NewValueIsRequiredError("customer name"))
	}

	d.phone = strings.TrimSpace(input.Phone)
	if d.phone == "" {
		d.phone = PhoneNotProvided
	}

	if input.EggBoxes == nil && input.OilCans == nil {
		invalid = append(invalid, errs.NewValueIsRequiredErrorWithCause(
			"product selection", errors.New("at least one of eggs or oil must be selected")))
	}

	if input.EggBoxes != nil {
		line, err := catalog.Quote(Eggs, *input.EggBoxes)
		if err != nil {
			invalid = append(invalid, err)
		} else {
			d.eggs = &line
		}
	}

	if input.OilCans != nil {
		line, err := catalog.Quote(Oil, *input.OilCans)
		if err != nil {
			invalid = append(invalid, err)
		} else {
			d.oil = &line
		}
	}

	if err := errors.Join(invalid...); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Draft) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDraftIsNotConstructed
	}
	return nil
}

func (d *Draft) CustomerName() string { return d.customerName }

func (d *Draft) Phone() string { return d.phone }

// Line returns the line item for p, if the customer ordered it.
func (d *Draft) Line(p Product) (LineItem, bool) {
	return pickLine(p, d.eggs, d.oil)
}

// Total is the sum of the present line totals.
func (d *Draft) Total() kernel.Money {
	return sumLines(d.eggs, d.oil)
}

// Order is a customer's request for egg boxes and/or oil cans. It is the aggregate root
// of the order desk.
//
// Order follows these invariants:
//   - id is assigned by the store on creation and never changes
//   - at least one line item is present
//   - Total() is always the sum of the present line totals; it is derived, never stored
//   - delivery state and paid flag are toggled independently; nothing else is mutated
//     after creation
type Order struct {
	id            kernel.UUID
	customerName  string
	phone         string
	eggs          *LineItem
	oil           *LineItem
	deliveryState DeliveryState
	paid          bool
	createdAt     time.Time

	isConstructed bool
}

// NewOrder turns a stored draft into an order with its store-assigned identity and
// creation time. New orders start Pending and unpaid.
func NewOrder(id kernel.UUID, createdAt time.Time, draft *Draft) (*Order, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	return RestoreOrder(id, createdAt, draft.customerName, draft.phone, draft.eggs, draft.oil, Pending, false)
}

// RestoreOrder rebuilds an order from persistence. Adapters use it when reading
// snapshots; it re-checks every invariant so corrupt documents are reported instead of
// shown.
func RestoreOrder(
	id kernel.UUID,
	createdAt time.Time,
	customerName, phone string,
	eggs, oil *LineItem,
	state DeliveryState,
	paid bool,
) (*Order, error) {
	o := &Order{
		id:            id,
		customerName:  customerName,
		phone:         phone,
		deliveryState: state,
		paid:          paid,
		createdAt:     createdAt,
		isConstructed: true,
	}

	var invalid []error
	if strings.TrimSpace(customerName) == "" {
		invalid = append(invalid, errs.NewValueIsRequiredError("customer name"))
	}
	if createdAt.IsZero() {
		invalid = append(invalid, errs.NewValueIsRequiredError("creation time"))
	}
	if eggs == nil && oil == nil {
		invalid = append(invalid, errs.NewValueIsRequiredErrorWithCause(
			"product selection", errors.New("at least one of eggs or oil must be present")))
	}
	invalid = append(invalid, id.Validate(), state.Validate())
	invalid = append(invalid, o.setLine(Eggs, eggs), o.setLine(Oil, oil))

	if err := errors.Join(invalid...); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }

func (o *Order) CustomerName() string { return o.customerName }

func (o *Order) Phone() string { return o.phone }

// Line returns the line item for p, if the customer ordered it.
func (o *Order) Line(p Product) (LineItem, bool) {
	return pickLine(p, o.eggs, o.oil)
}

// Total is recomputed from the line items on every call.
func (o *Order) Total() kernel.Money {
	return sumLines(o.eggs, o.oil)
}

func (o *Order) DeliveryState() DeliveryState { return o.deliveryState }

// IsPending reports whether the order still awaits delivery.
func (o *Order) IsPending() bool { return o.deliveryState == Pending }

func (o *Order) IsPaid() bool { return o.paid }

// CreatedAt is the store-assigned creation time; it is the sort key of every order set.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// ToggleDelivery flips Pending <-> Delivered.
func (o *Order) ToggleDelivery() error {
	next, err := o.deliveryState.Toggle()
	if err != nil {
		return err
	}
	o.deliveryState = next
	return nil
}

// TogglePaid flips the paid flag. Payment is a manual staff flag, not a transaction.
func (o *Order) TogglePaid() {
	o.paid = !o.paid
}

// Apply sets the field carried by change. The change must target this order.
func (o *Order) Apply(change StatusChange) error {
	if err := change.Validate(); err != nil {
		return err
	}
	if !change.OrderID().IsEqual(o.id) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status change is invalid",
			fmt.Errorf("change targets order %s, not %s", change.OrderID(), o.id),
		)
	}

	switch change.Field() {
	case FieldDeliveryState:
		o.deliveryState = change.DeliveryState()
	case FieldPaid:
		o.paid = change.Paid()
	}
	return nil
}

// Clone returns an independent copy. Line items are immutable values and are shared.
func (o *Order) Clone() *Order {
	c := *o
	return &c
}

func (o *Order) setLine(p Product, line *LineItem) error {
	if line == nil {
		return nil
	}
	if err := line.Validate(); err != nil {
		return err
	}
	if line.Product() != p {
		return errs.NewValueIsInvalidErrorWithCause(
			"line item is invalid",
			fmt.Errorf("%s line stored under %s", line.Product(), p),
		)
	}

	l := *line
	if p == Eggs {
		o.eggs = &l
	} else {
		o.oil = &l
	}
	return nil
}

func pickLine(p Product, eggs, oil *LineItem) (LineItem, bool) {
	var line *LineItem
	switch p {
	case Eggs:
		line = eggs
	case Oil:
		line = oil
	}
	if line == nil {
		return LineItem{}, false
	}
	return *line, true
}

func sumLines(lines ...*LineItem) kernel.Money {
	total := kernel.ZeroMoney()
	for _, line := range lines {
		if line != nil {
			total = total.Add(line.LineTotal())
		}
	}
	return total
}
