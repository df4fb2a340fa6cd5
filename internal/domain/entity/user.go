// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core identity in the system. The Role field decides which
// workflows the account may invoke; PasswordHash is never serialized outward.
type User struct {
	ID           int64     // Unique identifier for the user.
	Email        string    // Primary contact email, used as the login identifier.
	Name         string    // Display name.
	PasswordHash string    // bcrypt hash of the login password.
	Role         Role      // Exactly one of customer, seller, admin.
	Phone        string    // Optional contact phone number.
	Address      string    // Optional default address.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
