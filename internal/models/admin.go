package models

import "time"

// Admin is the authentication principal for the admin surface.
type Admin struct {
	ID                 uint       `gorm:"primarykey" json:"id"`
	Username           string     `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash       string     `gorm:"not null" json:"-"`
	IsSuper            bool       `gorm:"default:false" json:"is_super"` // bypasses RBAC checks
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time `gorm:"index" json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName sets the table name.
func (Admin) TableName() string {
	return "admins"
}
