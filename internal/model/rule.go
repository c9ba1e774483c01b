package model

import (
	"time"

	"gorm.io/gorm"
)

// Rule is a named violation type with its fine amount in yen.
type Rule struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	GroupID    uint   `gorm:"not null;index" json:"group_id"`
	Title      string `gorm:"type:varchar(200);not null" json:"title"`
	FineAmount uint   `gorm:"not null" json:"fine_amount"`
	CreatedBy  uint   `gorm:"not null" json:"created_by"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Group Group `gorm:"foreignKey:GroupID" json:"-"`
}
