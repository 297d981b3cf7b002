package models

import "time"

// Category groups posts by topic. Deleting a category nulls the
// reference on its posts, it never cascades.
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	IsPublished bool      `gorm:"default:true;index" json:"is_published"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (Category) TableName() string {
	return "categories"
}
