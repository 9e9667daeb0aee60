// Package returns models goods sent back by a store against a delivery.
//
// A return is created PENDING by the driver. Processing it is one-way: its
// value, priced at the current product price, is credited to the order
// invoice. A rejected return has no financial effect.
package returns

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrReturnIsNotConstructed is returned for a Return not built by NewReturn or RestoreReturn.
	ErrReturnIsNotConstructed = errors.New("Return must be created via NewReturn constructor")
)

const entityName = "return"

// Status is the processing state of a return.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusProcessed Status = "PROCESSED"
	StatusRejected  Status = "REJECTED"
)

func (s Status) String() string {
	return string(s)
}

// Item is a returned product line.
type Item struct {
	ID         kernel.UUID
	ProductID  kernel.UUID
	Quantity   int
	ExpiryDate *time.Time
	Reason     string
}

func NewItem(id, productID kernel.UUID, quantity int, expiryDate *time.Time, reason string) (*Item, error) {
	if err := errors.Join(id.Validate(), productID.Validate()); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return &Item{ID: id, ProductID: productID, Quantity: quantity, ExpiryDate: expiryDate, Reason: reason}, nil
}

// Return is a set of returned items recorded against a delivery.
type Return struct {
	id          kernel.UUID
	deliveryID  kernel.UUID
	returnedBy  kernel.UUID
	status      Status
	notes       string
	items       []*Item
	processedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

func NewReturn(id, deliveryID, returnedBy kernel.UUID, items []*Item, notes string, now time.Time) (*Return, error) {
	if err := errors.Join(id.Validate(), deliveryID.Validate(), returnedBy.Validate()); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	return &Return{
		id:            id,
		deliveryID:    deliveryID,
		returnedBy:    returnedBy,
		status:        StatusPending,
		notes:         strings.TrimSpace(notes),
		items:         items,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// Snapshot is the persisted state of a return.
type Snapshot struct {
	ID          kernel.UUID
	DeliveryID  kernel.UUID
	ReturnedBy  kernel.UUID
	Status      Status
	Notes       string
	Items       []*Item
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func RestoreReturn(s Snapshot) *Return {
	return &Return{
		id:            s.ID,
		deliveryID:    s.DeliveryID,
		returnedBy:    s.ReturnedBy,
		status:        s.Status,
		notes:         s.Notes,
		items:         s.Items,
		processedAt:   s.ProcessedAt,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}
}

func (r *Return) Snapshot() Snapshot {
	return Snapshot{
		ID:          r.id,
		DeliveryID:  r.deliveryID,
		ReturnedBy:  r.returnedBy,
		Status:      r.status,
		Notes:       r.notes,
		Items:       r.Items(),
		ProcessedAt: r.processedAt,
		CreatedAt:   r.createdAt,
		UpdatedAt:   r.updatedAt,
	}
}

func (r *Return) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReturnIsNotConstructed
	}
	return nil
}

func (r *Return) ID() kernel.UUID         { return r.id }
func (r *Return) DeliveryID() kernel.UUID { return r.deliveryID }
func (r *Return) ReturnedBy() kernel.UUID { return r.returnedBy }
func (r *Return) Status() Status          { return r.status }
func (r *Return) Notes() string           { return r.notes }
func (r *Return) ProcessedAt() *time.Time { return r.processedAt }
func (r *Return) CreatedAt() time.Time    { return r.createdAt }
func (r *Return) UpdatedAt() time.Time    { return r.updatedAt }

func (r *Return) Items() []*Item {
	items := make([]*Item, len(r.items))
	copy(items, r.items)
	return items
}

// Value prices the return with the given current product prices. A product
// missing from prices is reported as not found.
func (r *Return) Value(prices map[kernel.UUID]decimal.Decimal) (decimal.Decimal, error) {
	lines := make([]decimal.Decimal, 0, len(r.items))
	for _, item := range r.items {
		price, ok := prices[item.ProductID]
		if !ok {
			return decimal.Zero, errs.NewObjectNotFoundError("product", item.ProductID)
		}
		lines = append(lines, price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return kernel.RoundMoney(kernel.SumMoney(lines...)), nil
}

// Process marks the return PROCESSED. It succeeds at most once.
func (r *Return) Process(now time.Time) error {
	if r.status != StatusPending {
		return errs.NewInvalidStateTransitionError(entityName, r.status.String(), StatusProcessed.String())
	}
	processedAt := now
	r.status = StatusProcessed
	r.processedAt = &processedAt
	r.updatedAt = now
	return nil
}

// Reject marks the return REJECTED and appends notes.
func (r *Return) Reject(notes string, now time.Time) error {
	if r.status != StatusPending {
		return errs.NewInvalidStateTransitionError(entityName, r.status.String(), StatusRejected.String())
	}
	r.status = StatusRejected
	if notes = strings.TrimSpace(notes); notes != "" {
		if r.notes != "" {
			r.notes += "\n"
		}
		r.notes += notes
	}
	r.updatedAt = now
	return nil
}
