// Package account holds store and user reference data: who works where and
// in which role. Notification recipient selection and driver validation
// read from it.
package account

import (
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
)

// Role is a user's function within the distribution network.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleManager      Role = "MANAGER"
	RoleStoreOwner   Role = "STORE_OWNER"
	RoleKitchenStaff Role = "KITCHEN_STAFF"
	RoleDriver       Role = "DRIVER"
	RoleSystem       Role = "SYSTEM"
)

func (r Role) String() string {
	return string(r)
}

// Store is a delivery destination that places orders.
type Store struct {
	ID         kernel.UUID
	Name       string
	Address    string
	City       string
	PostalCode string
	IsActive   bool
}

// DeliveryAddress joins the non-empty address fields with ", ".
func (s *Store) DeliveryAddress() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Address, s.City, s.PostalCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// User is an actor of the system. StoreID is nil for network-wide roles.
type User struct {
	ID      kernel.UUID
	Name    string
	Email   string
	Role    Role
	StoreID *kernel.UUID
}

func (u *User) HasRole(role Role) bool {
	return u.Role == role
}
