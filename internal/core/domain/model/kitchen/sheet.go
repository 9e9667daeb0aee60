package kitchen

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrSheetIsNotConstructed is returned for a Sheet not built by NewSheet or RestoreSheet.
	ErrSheetIsNotConstructed = errors.New("Sheet must be created via NewSheet constructor")
)

const entityName = "kitchen sheet"

// Sheet is the kitchen packing worksheet of one order.
type Sheet struct {
	id          kernel.UUID
	orderID     kernel.UUID
	status      Status
	completedAt *time.Time
	preparedBy  *kernel.UUID
	items       []*Item
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewSheet creates a PENDING sheet for orderID.
func NewSheet(id, orderID kernel.UUID, items []*Item, now time.Time) (*Sheet, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	for _, item := range items {
		if item == nil {
			return nil, errs.NewValueIsRequiredError("item")
		}
	}

	return &Sheet{
		id:            id,
		orderID:       orderID,
		status:        StatusPending,
		items:         items,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// Snapshot is the persisted state of a sheet.
type Snapshot struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	Status      Status
	CompletedAt *time.Time
	PreparedBy  *kernel.UUID
	Items       []*Item
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func RestoreSheet(s Snapshot) *Sheet {
	return &Sheet{
		id:            s.ID,
		orderID:       s.OrderID,
		status:        s.Status,
		completedAt:   s.CompletedAt,
		preparedBy:    s.PreparedBy,
		items:         s.Items,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}
}

func (s *Sheet) Snapshot() Snapshot {
	return Snapshot{
		ID:          s.id,
		OrderID:     s.orderID,
		Status:      s.status,
		CompletedAt: s.completedAt,
		PreparedBy:  s.preparedBy,
		Items:       s.Items(),
		CreatedAt:   s.createdAt,
		UpdatedAt:   s.updatedAt,
	}
}

func (s *Sheet) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSheetIsNotConstructed
	}
	return nil
}

func (s *Sheet) ID() kernel.UUID          { return s.id }
func (s *Sheet) OrderID() kernel.UUID     { return s.orderID }
func (s *Sheet) Status() Status           { return s.status }
func (s *Sheet) CompletedAt() *time.Time  { return s.completedAt }
func (s *Sheet) PreparedBy() *kernel.UUID { return s.preparedBy }
func (s *Sheet) CreatedAt() time.Time     { return s.createdAt }
func (s *Sheet) UpdatedAt() time.Time     { return s.updatedAt }

func (s *Sheet) Items() []*Item {
	items := make([]*Item, len(s.items))
	copy(items, s.items)
	return items
}

// Item returns the sheet item with itemID. An item of another sheet is a
// validation error, not a lookup miss.
func (s *Sheet) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range s.items {
		if item.id.IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewValueIsInvalidErrorWithCause("itemId",
		fmt.Errorf("item %s does not belong to kitchen sheet %s", itemID, s.id))
}

// UpdateItem sets batch number and/or expiry date without packing.
func (s *Sheet) UpdateItem(itemID kernel.UUID, batchNumber *string, expiryDate *time.Time, now time.Time) (*Item, error) {
	item, err := s.Item(itemID)
	if err != nil {
		return nil, err
	}
	item.update(batchNumber, expiryDate)
	s.updatedAt = now
	return item, nil
}

// PackResult describes the effect of MarkItemPacked.
type PackResult struct {
	Item *Item
	// Completed is true only for the call that packed the last item.
	Completed bool
}

// MarkItemPacked labels and packs an item, then completes the sheet when
// every item is packed.
func (s *Sheet) MarkItemPacked(
	itemID kernel.UUID,
	batchNumber string,
	expiryDate time.Time,
	lc LabelContext,
	preparedBy *kernel.UUID,
	now time.Time,
) (PackResult, error) {
	if s.status == StatusCompleted {
		return PackResult{}, errs.NewInvalidStateTransitionError(entityName, s.status.String(), "PACK_ITEM")
	}

	item, err := s.Item(itemID)
	if err != nil {
		return PackResult{}, err
	}
	if err := item.pack(batchNumber, expiryDate, lc); err != nil {
		return PackResult{}, err
	}

	if preparedBy != nil {
		prepared := *preparedBy
		s.preparedBy = &prepared
	}
	if s.status == StatusPending {
		s.status = StatusInProgress
	}
	s.updatedAt = now

	if !s.allPacked() {
		return PackResult{Item: item}, nil
	}

	completedAt := now
	s.status = StatusCompleted
	s.completedAt = &completedAt
	return PackResult{Item: item, Completed: true}, nil
}

// PackedCount returns the number of packed items.
func (s *Sheet) PackedCount() int {
	packed := 0
	for _, item := range s.items {
		if item.isPacked {
			packed++
		}
	}
	return packed
}

func (s *Sheet) allPacked() bool {
	return len(s.items) > 0 && s.PackedCount() == len(s.items)
}
