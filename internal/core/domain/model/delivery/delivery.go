package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned for a Delivery not built by NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
)

const entityName = "delivery"

// Delivery is the delivery note of one order.
type Delivery struct {
	id              kernel.UUID
	orderID         kernel.UUID
	status          Status
	driverID        *kernel.UUID
	scheduledDate   time.Time
	deliveryAddress string
	signature       string
	deliveryPhoto   string
	notes           string
	deliveredAt     *time.Time
	createdAt       time.Time
	updatedAt       time.Time

	isConstructed bool
}

// Proof is the optional evidence captured at hand-over.
type Proof struct {
	Signature string
	Photo     string
	Notes     string
}

// NewDelivery creates a PENDING delivery note.
func NewDelivery(id, orderID kernel.UUID, scheduledDate time.Time, address string, now time.Time) (*Delivery, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), validateAddress(address)); err != nil {
		return nil, err
	}

	return &Delivery{
		id:              id,
		orderID:         orderID,
		status:          StatusPending,
		scheduledDate:   scheduledDate,
		deliveryAddress: strings.TrimSpace(address),
		createdAt:       now,
		updatedAt:       now,
		isConstructed:   true,
	}, nil
}

// Snapshot is the persisted state of a delivery.
type Snapshot struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	Status          Status
	DriverID        *kernel.UUID
	ScheduledDate   time.Time
	DeliveryAddress string
	Signature       string
	DeliveryPhoto   string
	Notes           string
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func RestoreDelivery(s Snapshot) *Delivery {
	return &Delivery{
		id:              s.ID,
		orderID:         s.OrderID,
		status:          s.Status,
		driverID:        s.DriverID,
		scheduledDate:   s.ScheduledDate,
		deliveryAddress: s.DeliveryAddress,
		signature:       s.Signature,
		deliveryPhoto:   s.DeliveryPhoto,
		notes:           s.Notes,
		deliveredAt:     s.DeliveredAt,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		isConstructed:   true,
	}
}

func (d *Delivery) Snapshot() Snapshot {
	return Snapshot{
		ID:              d.id,
		OrderID:         d.orderID,
		Status:          d.status,
		DriverID:        d.driverID,
		ScheduledDate:   d.scheduledDate,
		DeliveryAddress: d.deliveryAddress,
		Signature:       d.signature,
		DeliveryPhoto:   d.deliveryPhoto,
		Notes:           d.notes,
		DeliveredAt:     d.deliveredAt,
		CreatedAt:       d.createdAt,
		UpdatedAt:       d.updatedAt,
	}
}

func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) ID() kernel.UUID          { return d.id }
func (d *Delivery) OrderID() kernel.UUID     { return d.orderID }
func (d *Delivery) Status() Status           { return d.status }
func (d *Delivery) DriverID() *kernel.UUID   { return d.driverID }
func (d *Delivery) ScheduledDate() time.Time { return d.scheduledDate }
func (d *Delivery) DeliveryAddress() string  { return d.deliveryAddress }
func (d *Delivery) Signature() string        { return d.signature }
func (d *Delivery) DeliveryPhoto() string    { return d.deliveryPhoto }
func (d *Delivery) Notes() string            { return d.notes }
func (d *Delivery) DeliveredAt() *time.Time  { return d.deliveredAt }
func (d *Delivery) CreatedAt() time.Time     { return d.createdAt }
func (d *Delivery) UpdatedAt() time.Time     { return d.updatedAt }

// AssignDriver sets or replaces the driver. Role checks belong to the caller.
func (d *Delivery) AssignDriver(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if d.status != StatusPending && d.status != StatusAssigned {
		return errs.NewInvalidStateTransitionError(entityName, d.status.String(), StatusAssigned.String())
	}

	d.driverID = &driverID
	d.status = StatusAssigned
	d.updatedAt = now
	return nil
}

// Start puts the delivery in transit.
func (d *Delivery) Start(driverID kernel.UUID, now time.Time) error {
	if err := d.requireStatus(StatusInTransit, StatusAssigned); err != nil {
		return err
	}
	if err := d.requireDriver(driverID); err != nil {
		return err
	}

	d.status = StatusInTransit
	d.updatedAt = now
	return nil
}

// Complete records the hand-over. The owning order must be marked
// DELIVERED in the same unit of work.
func (d *Delivery) Complete(driverID kernel.UUID, proof Proof, now time.Time) error {
	if err := d.requireStatus(StatusDelivered, StatusInTransit); err != nil {
		return err
	}
	if err := d.requireDriver(driverID); err != nil {
		return err
	}

	deliveredAt := now
	d.status = StatusDelivered
	d.deliveredAt = &deliveredAt
	d.signature = proof.Signature
	d.deliveryPhoto = proof.Photo
	if notes := strings.TrimSpace(proof.Notes); notes != "" {
		d.notes = notes
	}
	d.updatedAt = now
	return nil
}

// Fail ends an assigned or running delivery without hand-over.
func (d *Delivery) Fail(driverID kernel.UUID, notes string, now time.Time) error {
	if err := d.requireStatus(StatusFailed, StatusAssigned, StatusInTransit); err != nil {
		return err
	}
	if err := d.requireDriver(driverID); err != nil {
		return err
	}

	d.status = StatusFailed
	if notes = strings.TrimSpace(notes); notes != "" {
		d.notes = notes
	}
	d.updatedAt = now
	return nil
}

func (d *Delivery) requireStatus(target Status, allowed ...Status) error {
	for _, s := range allowed {
		if d.status == s {
			return nil
		}
	}
	return errs.NewInvalidStateTransitionError(entityName, d.status.String(), target.String())
}

func (d *Delivery) requireDriver(driverID kernel.UUID) error {
	if d.driverID == nil || !d.driverID.IsEqual(driverID) {
		return errs.NewValueIsInvalidErrorWithCause("driverId",
			fmt.Errorf("driver %s is not assigned to delivery %s", driverID, d.id))
	}
	return nil
}

func validateAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	return nil
}
