package models

import "time"

// Location is a geographic tag a post may reference. Deleting a
// location nulls the reference on its posts.
type Location struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	IsPublished bool      `gorm:"default:true;index" json:"is_published"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (Location) TableName() string {
	return "locations"
}
