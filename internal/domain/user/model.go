package user

import (
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/types"
)

// User represents an agency team member able to act on billing state
type User struct {
	ID    string         `db:"id" json:"id"`
	Email string         `db:"email" json:"email"`
	Name  string         `db:"name" json:"name,omitempty"`
	Role  types.UserRole `db:"role" json:"role"`

	types.BaseModel
}

// Validate validates the user
func (u *User) Validate() error {
	if u.Email == "" {
		return ierr.NewError("invalid email").
			WithHint("Email is required").
			Mark(ierr.ErrValidation)
	}
	if err := u.Role.Validate(); err != nil {
		return ierr.NewError("invalid role").
			WithHint("Role must be owner or staff").
			Mark(ierr.ErrValidation)
	}
	return nil
}
