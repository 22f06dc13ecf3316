package models

import "time"

// Media is an uploaded image document stored in MongoDB. Posts reference
// it by ID; the relational store never sees the bytes.
type Media struct {
	ID          string    `json:"id" bson:"_id"`
	Filename    string    `json:"filename" bson:"filename"`
	ContentType string    `json:"content_type" bson:"content_type"`
	Data        []byte    `json:"-" bson:"data"`
	UploaderID  uint      `json:"uploader_id" bson:"uploader_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
