package model

import "time"

// LocationModel mirrors the 'locations' table. UserID is the primary key, so
// the table holds at most one row per user and updates overwrite in place.
type LocationModel struct {
	UserID      int64   `gorm:"primaryKey"`
	Latitude    float64 `gorm:"not null"`
	Longitude   float64 `gorm:"not null"`
	LastUpdated time.Time
}

// TableName explicitly sets the table name for GORM.
func (LocationModel) TableName() string {
	return "locations"
}
