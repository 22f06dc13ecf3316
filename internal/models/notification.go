package models

import "time"

// Notification is a per-user event record (currently only "follow")
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
