// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
// A user holds exactly one role, fixed at registration or changed by an admin.
type Role string

const (
	// RoleCustomer indicates a buyer who can place orders.
	RoleCustomer Role = "customer"
	// RoleSeller indicates a user who lists and manages books.
	RoleSeller Role = "seller"
	// RoleAdmin indicates a platform administrator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsCustomer reports whether the role permits customer workflows.
func (r Role) IsCustomer() bool {
	return r == RoleCustomer
}

// IsSeller reports whether the role permits seller workflows.
func (r Role) IsSeller() bool {
	return r == RoleSeller
}

// IsAdmin reports whether the role permits administrative workflows.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
