// Package models contains data models for the stores service.
package models

// User represents a registered account.
type User struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"size:80;uniqueIndex;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password;not null"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}
