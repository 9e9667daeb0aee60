// Package notification defines the trigger contract handed to the
// notification dispatcher. Delivery channels live outside the core.
package notification

import (
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
)

// Kind names a notification event.
type Kind string

const (
	KindOrderApproved    Kind = "OrderApproved"
	KindOrderRejected    Kind = "OrderRejected"
	KindDeliveryAssigned Kind = "DeliveryAssigned"
	KindPaymentReceived  Kind = "PaymentReceived"
	KindInvoiceGenerated Kind = "InvoiceGenerated"
	KindStockLow         Kind = "StockLow"
	KindTemperatureAlert Kind = "TemperatureAlert"
)

// RecipientSelector picks users either by ID or by role, optionally
// restricted to one store. A selector with a UserID ignores the rest.
// Users attached to no store (head office staff) are never excluded by
// StoreID.
type RecipientSelector struct {
	UserID  *kernel.UUID
	Roles   []account.Role
	StoreID *kernel.UUID
}

// ToUser selects a single user.
func ToUser(userID kernel.UUID) RecipientSelector {
	return RecipientSelector{UserID: &userID}
}

// ToRoles selects every user holding one of roles.
func ToRoles(roles ...account.Role) RecipientSelector {
	return RecipientSelector{Roles: roles}
}

// ToStoreRoles selects users of storeID and head office users holding one
// of roles.
func ToStoreRoles(storeID kernel.UUID, roles ...account.Role) RecipientSelector {
	return RecipientSelector{Roles: roles, StoreID: &storeID}
}

// Trigger is a single notification request.
type Trigger struct {
	Kind       Kind
	Recipients RecipientSelector
	Payload    map[string]any
}
