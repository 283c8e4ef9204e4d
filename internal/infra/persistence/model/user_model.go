// Package model contains the GORM persistence models mirroring the database
// tables. They are kept separate from the domain entities so schema concerns
// never leak into the domain layer.
package model

import "time"

// UserModel mirrors the 'users' table. Email is nullable because accounts can
// be created through push-token registration before any credentials exist;
// the unique index still rejects duplicate registered emails.
type UserModel struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	Email         *string `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash  string  `gorm:"type:varchar(255)"`
	Name          string  `gorm:"type:varchar(100)"`
	ExpoPushToken string  `gorm:"type:varchar(255)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
