package model

import "time"

// GroupInvitation is a time-limited join token. Expired rows are purged by
// the cron job; validity is still checked at acceptance time.
type GroupInvitation struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"type:varchar(64);not null;uniqueIndex"`
	GroupID   uint   `gorm:"not null;index"`
	CreatedBy uint   `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time

	Group Group `gorm:"foreignKey:GroupID"`
}
