package model

import (
	"time"

	"gorm.io/gorm"
)

// Post is a self-reported or alleged rule violation.
type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	GroupID   uint   `gorm:"not null;index" json:"group_id"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	RuleID    uint   `gorm:"not null" json:"rule_id"`
	Content   string `gorm:"type:text" json:"content"`
	ImagePath string `gorm:"type:varchar(255)" json:"image_path"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Group       Group        `gorm:"foreignKey:GroupID" json:"-"`
	Rule        Rule         `gorm:"foreignKey:RuleID" json:"-"`
	Confessions []Confession `gorm:"foreignKey:PostID" json:"-"`
}
