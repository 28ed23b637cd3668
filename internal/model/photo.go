package model

import "time"

type Photo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Filename    string    `gorm:"size:255;not null" json:"filename"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	UploaderID  uint      `gorm:"not null;index" json:"uploader_id"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
