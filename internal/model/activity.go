package model

import "time"

// Activity is an audit record of a mutating action. Rows are written
// asynchronously by the activity worker, never on the request path.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Verb      string    `gorm:"size:32;not null" json:"verb"`
	Subject   string    `gorm:"size:32;not null" json:"subject"`
	SubjectID uint      `json:"subject_id"`
	CreatedAt time.Time `json:"created_at"`
}
