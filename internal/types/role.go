package types

import (
	"fmt"

	"github.com/samber/lo"
)

// UserRole represents the role of an authenticated actor
type UserRole string

const (
	UserRoleOwner UserRole = "owner"
	UserRoleStaff UserRole = "staff"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) Validate() error {
	allowed := []UserRole{
		UserRoleOwner,
		UserRoleStaff,
	}
	if !lo.Contains(allowed, r) {
		return fmt.Errorf("invalid user role: %s", r)
	}
	return nil
}

// HasBillingAuthority reports whether the role may mutate payment state
// (mark paid/unpaid, delete payment records).
func (r UserRole) HasBillingAuthority() bool {
	return r == UserRoleOwner
}
