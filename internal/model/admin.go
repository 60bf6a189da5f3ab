// internal/model/admin.go
package model

import "time"

const (
	RoleSuperAdmin = "super_admin"
	RoleEditor     = "editor"
	RoleModerator  = "moderator"
	RoleSupport    = "support"
)

type Admin struct {
	ID           int        `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// ValidRole reports whether s is one of the known staff roles.
func ValidRole(s string) bool {
	switch s {
	case RoleSuperAdmin, RoleEditor, RoleModerator, RoleSupport:
		return true
	}
	return false
}
