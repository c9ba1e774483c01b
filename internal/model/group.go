package model

import (
	"time"

	"gorm.io/gorm"
)

type Group struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);not null"`
	CreatedBy uint   `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Creator User          `gorm:"foreignKey:CreatedBy"`
	Members []GroupMember `gorm:"foreignKey:GroupID"`
	Rules   []Rule        `gorm:"foreignKey:GroupID"`
}
