package model

import "time"

// Comment on a post. IsConfession marks the system comment inserted
// alongside a confession, which the client renders differently from free
// text.
type Comment struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	PostID       uint   `gorm:"not null;index" json:"post_id"`
	UserID       uint   `gorm:"not null" json:"user_id"`
	Content      string `gorm:"type:text;not null" json:"content"`
	IsConfession bool   `gorm:"default:false" json:"is_confession"`
	CreatedAt    time.Time `json:"created_at"`

	Post Post `gorm:"foreignKey:PostID" json:"-"`
}
