package domain

import "time"

// Role is the access level carried by an account.
type Role string

const (
	// RoleAdmin is the privileged role. At least one admin must exist at all times.
	RoleAdmin Role = "admin"
	// RoleUser is the standard role.
	RoleUser Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Privileged reports whether r counts towards the admin invariant.
func (r Role) Privileged() bool {
	return r == RoleAdmin
}

// Account models a person who can sign in to the dashboard.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountPatch lists the fields an update may change. Nil means "leave as is".
type AccountPatch struct {
	Name         *string
	Email        *string
	Role         *Role
	PasswordHash *string
}

// Empty reports whether the patch changes nothing.
func (p AccountPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil && p.PasswordHash == nil
}

// Apply returns a copy of a with the patch applied.
func (p AccountPatch) Apply(a Account) Account {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.Role != nil {
		a.Role = *p.Role
	}
	if p.PasswordHash != nil {
		a.PasswordHash = *p.PasswordHash
	}
	return a
}
