package models

// Group is a named topic that posts may optionally belong to
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:200"`
	Description string `json:"description"`
}

// CreateGroupRequest defines the request body for creating a new group
type CreateGroupRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Slug        string `json:"slug" validate:"required,min=1,max=200"`
	Description string `json:"description"`
}
