// Package entity contains the core business objects of the project.
package entity

import "time"

// Location is the last-known position of a user. Exactly one row exists per
// user; every update overwrites the previous value. No history is retained.
type Location struct {
	UserID      int64     `json:"user_id"`      // The ID of the user this position belongs to.
	Latitude    float64   `json:"lat"`          // Geographic latitude.
	Longitude   float64   `json:"lon"`          // Geographic longitude.
	LastUpdated time.Time `json:"last_updated"` // Timestamp of the most recent update.
}
