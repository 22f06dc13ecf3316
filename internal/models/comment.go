package models

import "time"

// Comment is a reply on a post. Comments are immutable after creation.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text      string    `json:"text" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index;autoCreateTime"`
}

// Preview returns the first 15 characters of the comment text
func (c *Comment) Preview() string {
	return preview(c.Text)
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}
