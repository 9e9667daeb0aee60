package kitchen

import (
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Item is a line of the sheet copied from an order item (product and
// quantity only).
type Item struct {
	id          kernel.UUID
	productID   kernel.UUID
	quantity    int
	batchNumber string
	expiryDate  *time.Time
	barcode     string
	qrCode      string
	isPacked    bool
}

func NewItem(id, productID kernel.UUID, quantity int) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return &Item{id: id, productID: productID, quantity: quantity}, nil
}

// ItemSnapshot is the persisted state of an item.
type ItemSnapshot struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	Quantity    int
	BatchNumber string
	ExpiryDate  *time.Time
	Barcode     string
	QRCode      string
	IsPacked    bool
}

func RestoreItem(s ItemSnapshot) *Item {
	return &Item{
		id:          s.ID,
		productID:   s.ProductID,
		quantity:    s.Quantity,
		batchNumber: s.BatchNumber,
		expiryDate:  s.ExpiryDate,
		barcode:     s.Barcode,
		qrCode:      s.QRCode,
		isPacked:    s.IsPacked,
	}
}

func (i *Item) Snapshot() ItemSnapshot {
	return ItemSnapshot{
		ID:          i.id,
		ProductID:   i.productID,
		Quantity:    i.quantity,
		BatchNumber: i.batchNumber,
		ExpiryDate:  i.expiryDate,
		Barcode:     i.barcode,
		QRCode:      i.qrCode,
		IsPacked:    i.isPacked,
	}
}

func (i *Item) ID() kernel.UUID        { return i.id }
func (i *Item) ProductID() kernel.UUID { return i.productID }
func (i *Item) Quantity() int          { return i.quantity }
func (i *Item) BatchNumber() string    { return i.batchNumber }
func (i *Item) ExpiryDate() *time.Time { return i.expiryDate }
func (i *Item) Barcode() string        { return i.barcode }
func (i *Item) QRCode() string         { return i.qrCode }
func (i *Item) IsPacked() bool         { return i.isPacked }

func (i *Item) update(batchNumber *string, expiryDate *time.Time) {
	if batchNumber != nil {
		i.batchNumber = strings.TrimSpace(*batchNumber)
	}
	if expiryDate != nil {
		expiry := *expiryDate
		i.expiryDate = &expiry
	}
}

func (i *Item) pack(batchNumber string, expiryDate time.Time, lc LabelContext) error {
	batchNumber = strings.TrimSpace(batchNumber)
	if batchNumber == "" {
		return errs.NewValueIsRequiredError("batchNumber")
	}
	if expiryDate.IsZero() {
		return errs.NewValueIsRequiredError("expiryDate")
	}

	label, err := NewLabel(i.id, batchNumber, expiryDate, lc)
	if err != nil {
		return err
	}

	i.batchNumber = batchNumber
	i.expiryDate = &expiryDate
	i.barcode = label.Barcode
	i.qrCode = label.QRCode
	i.isPacked = true
	return nil
}
