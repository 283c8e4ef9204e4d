package model

import "time"

// EmergencyModel mirrors the 'emergencies' table. Rows are append-only;
// CreatedAt is indexed because it serves as the polling cursor.
type EmergencyModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"not null;index"`
	Latitude  float64   `gorm:"not null"`
	Longitude float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (EmergencyModel) TableName() string {
	return "emergencies"
}
