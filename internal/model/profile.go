package model

import "time"

// Profile holds the member-facing identity of a user. UpdatedAt doubles as
// the registration marker for the billing history walk, since the row is
// created together with the user and bumped on every profile edit.
type Profile struct {
	UserID     uint   `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
	AvatarPath string `gorm:"type:varchar(255)" json:"avatar_path"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
