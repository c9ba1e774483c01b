package model

import "time"

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// GroupMember links a user to a group. The composite primary key is what
// guarantees at most one membership row per (group, user).
type GroupMember struct {
	GroupID   uint   `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint   `gorm:"primaryKey;autoIncrement:false"`
	Role      string `gorm:"type:varchar(20);default:'member'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Group Group `gorm:"foreignKey:GroupID"`
	User  User  `gorm:"foreignKey:UserID"`
}
