package order

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// entityName is used in state transition errors.
const entityName = "order"

// Order is the aggregate root of the fulfillment pipeline.
//
// Order follows these invariants:
//   - totalAmount equals the sum of item totals
//   - items change only while the status is DRAFT or PENDING
//   - status moves only along the edges declared in status.go
type Order struct {
	id          kernel.UUID
	number      string
	storeID     kernel.UUID
	orderType   Type
	status      Status
	totalAmount decimal.Decimal
	notes       string
	createdByID kernel.UUID

	approvedByID *kernel.UUID
	approvedAt   *time.Time

	items []*Item

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a DRAFT order. The caller provides the already priced
// items and the generated order number.
//
// Example:
//
//	item, _ := order.NewItem(kernel.NewUUID(), productID, 2, decimal.NewFromInt(5))
//	o, err := order.NewOrder(kernel.NewUUID(), "ORD-20260115-0001", storeID, userID,
//	    order.TypeManual, []*order.Item{item}, "", time.Now())
func NewOrder(
	id kernel.UUID,
	number string,
	storeID kernel.UUID,
	createdByID kernel.UUID,
	orderType Type,
	items []*Item,
	notes string,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		validateNumber(number),
		storeID.Validate(),
		createdByID.Validate(),
		orderType.Validate(),
		validateItems(items),
	); err != nil {
		return nil, err
	}

	o := &Order{
		id:            id,
		number:        number,
		storeID:       storeID,
		orderType:     orderType,
		status:        StatusDraft,
		notes:         notes,
		createdByID:   createdByID,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	o.setItems(items)

	return o, nil
}

// Snapshot is the flat persisted state of an order.
type Snapshot struct {
	ID           kernel.UUID
	Number       string
	StoreID      kernel.UUID
	OrderType    Type
	Status       Status
	TotalAmount  decimal.Decimal
	Notes        string
	CreatedByID  kernel.UUID
	ApprovedByID *kernel.UUID
	ApprovedAt   *time.Time
	Items        []*Item
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RestoreOrder rebuilds an order loaded from persistence. The stored total
// is kept as is.
func RestoreOrder(s Snapshot) *Order {
	return &Order{
		id:            s.ID,
		number:        s.Number,
		storeID:       s.StoreID,
		orderType:     s.OrderType,
		status:        s.Status,
		totalAmount:   s.TotalAmount,
		notes:         s.Notes,
		createdByID:   s.CreatedByID,
		approvedByID:  s.ApprovedByID,
		approvedAt:    s.ApprovedAt,
		items:         s.Items,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}
}

// Snapshot exports the current state for persistence.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:           o.id,
		Number:       o.number,
		StoreID:      o.storeID,
		OrderType:    o.orderType,
		Status:       o.status,
		TotalAmount:  o.totalAmount,
		Notes:        o.notes,
		CreatedByID:  o.createdByID,
		ApprovedByID: o.approvedByID,
		ApprovedAt:   o.approvedAt,
		Items:        o.Items(),
		CreatedAt:    o.createdAt,
		UpdatedAt:    o.updatedAt,
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human readable order number, e.g. ORD-20260115-0001.
func (o *Order) Number() string {
	return o.number
}

func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

func (o *Order) Type() Type {
	return o.orderType
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) CreatedByID() kernel.UUID {
	return o.createdByID
}

// ApprovedByID returns nil until the order is approved.
func (o *Order) ApprovedByID() *kernel.UUID {
	return o.approvedByID
}

func (o *Order) ApprovedAt() *time.Time {
	return o.approvedAt
}

// Items returns a copy of the item slice.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ReplaceItems swaps the whole item set and recomputes the total.
// Only DRAFT and PENDING orders are editable.
func (o *Order) ReplaceItems(items []*Item, now time.Time) error {
	if err := o.CheckEditable(); err != nil {
		return err
	}
	if err := validateItems(items); err != nil {
		return err
	}

	o.setItems(items)
	o.updatedAt = now
	return nil
}

// CheckEditable fails with an invalid state transition unless the items may
// still change.
func (o *Order) CheckEditable() error {
	if !o.status.IsEditable() {
		return errs.NewInvalidStateTransitionError(entityName, o.status.String(), "UPDATE_ITEMS")
	}
	return nil
}

// Submit moves a draft to PENDING for approval.
func (o *Order) Submit(now time.Time) error {
	return o.transition(StatusPending, now)
}

// Approve records the approver. An order without items may still be approved.
func (o *Order) Approve(approverID kernel.UUID, now time.Time) error {
	if err := approverID.Validate(); err != nil {
		return err
	}
	if err := o.transition(StatusApproved, now); err != nil {
		return err
	}

	approvedAt := now
	o.approvedByID = &approverID
	o.approvedAt = &approvedAt
	return nil
}

// Reject moves the order to REJECTED and appends the rejection notes.
func (o *Order) Reject(notes string, now time.Time) error {
	if err := o.transition(StatusRejected, now); err != nil {
		return err
	}

	if notes = strings.TrimSpace(notes); notes != "" {
		o.appendNote("Rejected: " + notes)
	}
	return nil
}

func (o *Order) Cancel(now time.Time) error {
	return o.transition(StatusCancelled, now)
}

// StartKitchenPrep is driven by kitchen sheet generation.
func (o *Order) StartKitchenPrep(now time.Time) error {
	return o.transition(StatusKitchenPrep, now)
}

// MarkReady is driven by kitchen sheet completion.
func (o *Order) MarkReady(now time.Time) error {
	return o.transition(StatusReady, now)
}

// StartDelivery is driven by delivery note generation.
func (o *Order) StartDelivery(now time.Time) error {
	return o.transition(StatusInDelivery, now)
}

// MarkDelivered is driven by delivery completion.
func (o *Order) MarkDelivered(now time.Time) error {
	return o.transition(StatusDelivered, now)
}

func (o *Order) transition(target Status, now time.Time) error {
	if !o.status.CanTransitionTo(target) {
		return errs.NewInvalidStateTransitionError(entityName, o.status.String(), target.String())
	}
	o.status = target
	o.updatedAt = now
	return nil
}

func (o *Order) setItems(items []*Item) {
	o.items = make([]*Item, len(items))
	copy(o.items, items)

	totals := make([]decimal.Decimal, 0, len(items))
	for _, item := range items {
		totals = append(totals, item.TotalPrice())
	}
	o.totalAmount = kernel.SumMoney(totals...)
}

func (o *Order) appendNote(note string) {
	if o.notes == "" {
		o.notes = note
		return
	}
	o.notes = o.notes + "\n" + note
}

func validateNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	return nil
}

func validateItems(items []*Item) error {
	for _, item := range items {
		if item == nil {
			return errs.NewValueIsRequiredError("item")
		}
	}
	return nil
}
