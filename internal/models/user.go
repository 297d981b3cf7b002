package models

import "time"

// User is the authentication principal for the public surface.
type User struct {
	ID                 uint       `gorm:"primarykey" json:"id"`
	Username           string     `gorm:"uniqueIndex;not null" json:"username"`
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	FirstName          string     `gorm:"default:''" json:"first_name"`
	LastName           string     `gorm:"default:''" json:"last_name"`
	PasswordHash       string     `gorm:"not null" json:"-"`
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time `gorm:"index" json:"-"` // tokens issued before this instant are revoked
	LastLoginAt        *time.Time `json:"last_login_at"`
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
