// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core entity in the system, representing a registered account.
// Email and PasswordHash are empty for accounts created through push-token
// registration only.
type User struct {
	ID            int64     // Numeric primary key assigned by the store.
	Email         string    // Login identifier; unique when present.
	PasswordHash  string    // Salted one-way hash of the password.
	Name          string    // Display name.
	ExpoPushToken string    // Registered push-delivery token; empty when the device has none.
	CreatedAt     time.Time // Timestamp of when this account was created.
	UpdatedAt     time.Time // Timestamp of the last modification.
}
