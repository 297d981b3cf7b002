package models

import "time"

// Post is a blog publication. PubDate may lie in the future; such
// posts stay hidden from everyone but their author until the date
// passes.
type Post struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	PubDate     time.Time `gorm:"index;not null" json:"pub_date"`
	IsPublished bool      `gorm:"default:true;index" json:"is_published"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	AuthorID   uint      `gorm:"index;not null" json:"author_id"`
	Author     *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	LocationID *uint     `gorm:"index" json:"location_id"`
	Location   *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"location,omitempty"`

	// CommentCount is annotated by listing queries, never stored.
	CommentCount int64 `gorm:"->;-:migration" json:"comment_count"`
}

// TableName sets the table name.
func (Post) TableName() string {
	return "posts"
}
