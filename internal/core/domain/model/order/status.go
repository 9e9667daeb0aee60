package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusPending     Status = "PENDING"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusCancelled   Status = "CANCELLED"
	StatusKitchenPrep Status = "KITCHEN_PREP"
	StatusReady       Status = "READY"
	StatusInDelivery  Status = "IN_DELIVERY"
	StatusDelivered   Status = "DELIVERED"
)

// transitions lists the legal targets of every non-terminal status.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		StatusDraft:       {StatusPending, StatusApproved, StatusRejected, StatusCancelled},
		StatusPending:     {StatusApproved, StatusRejected, StatusCancelled},
		StatusApproved:    {StatusKitchenPrep, StatusCancelled},
		StatusKitchenPrep: {StatusReady},
		StatusReady:       {StatusInDelivery},
		StatusInDelivery:  {StatusDelivered},
	}
}

func (s Status) String() string {
	return string(s)
}

// Validate rejects values that are not part of the state machine.
func (s Status) Validate() error {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusCancelled,
		StatusKitchenPrep, StatusReady, StatusInDelivery, StatusDelivered:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", string(s)))
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0
}

// CanTransitionTo reports whether target is a legal next status.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsEditable reports whether items may still be replaced.
func (s Status) IsEditable() bool {
	return s == StatusDraft || s == StatusPending
}
