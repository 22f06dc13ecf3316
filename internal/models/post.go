package models

import "time"

// PreviewLength is the number of characters shown for a post or comment preview
const PreviewLength = 15

// Post is a text entry authored by a user, optionally attached to a group
// and optionally carrying an image stored by the media collaborator.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index;autoCreateTime"` // set once, never updated
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID   *uint     `json:"group_id,omitempty" gorm:"index"`
	Group     *Group    `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	ImageID   string    `json:"image_id,omitempty"` // reference into the media store
}

// Preview returns the first 15 characters of the post text for display lists
func (p *Post) Preview() string {
	return preview(p.Text)
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLength {
		return text
	}
	return string(runes[:PreviewLength])
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Text      string `json:"text" validate:"required,min=1"`
	GroupSlug string `json:"group_slug,omitempty"`
	ImageID   string `json:"image_id,omitempty"`
}

// UpdatePostRequest defines the request body for editing an existing post
type UpdatePostRequest struct {
	Text      string `json:"text" validate:"required,min=1"`
	GroupSlug string `json:"group_slug,omitempty"`
	ImageID   string `json:"image_id,omitempty"`
}
