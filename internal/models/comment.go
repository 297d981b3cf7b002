package models

import "time"

// Comment belongs to a post and is removed together with it.
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	AuthorID uint  `gorm:"index;not null" json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	PostID   uint  `gorm:"index;not null" json:"post_id"`
	Post     *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName sets the table name.
func (Comment) TableName() string {
	return "comments"
}
