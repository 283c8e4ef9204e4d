// Package entity contains the core business objects of the project.
package entity

import "time"

// Emergency is a single entry in the append-only emergency event log.
// Rows are never updated or deleted; CreatedAt doubles as the polling
// cursor, compared strictly (created_at > since).
type Emergency struct {
	ID        int64     `json:"id"`         // Numeric primary key assigned by the store.
	UserID    int64     `json:"user_id"`    // The user who raised the emergency.
	Latitude  float64   `json:"lat"`        // Geographic latitude at the time of the event.
	Longitude float64   `json:"lon"`        // Geographic longitude at the time of the event.
	CreatedAt time.Time `json:"created_at"` // Event creation instant.
}
