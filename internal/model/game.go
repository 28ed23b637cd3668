package model

import "time"

type Game struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	GameLink     string    `gorm:"size:512" json:"game_link"`
	ThumbnailURL string    `gorm:"size:512" json:"thumbnail_url"`
	CategoryID   *uint     `gorm:"index" json:"category_id,omitempty"`
	AuthorID     uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;not null" json:"name"`
	Slug string `gorm:"size:64;not null;uniqueIndex" json:"slug"`
}
