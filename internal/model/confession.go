package model

import "time"

// Confession records a member claiming responsibility for a posted
// violation. The unique index makes duplicate confessions by the same user
// impossible at the storage level, so the service-layer pre-check is only a
// friendlier error path.
type Confession struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PostID    uint `gorm:"not null;index;uniqueIndex:idx_confession_post_user" json:"post_id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_confession_post_user" json:"user_id"`
	RuleID    uint `gorm:"not null" json:"rule_id"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `gorm:"foreignKey:PostID" json:"-"`
	Rule Rule `gorm:"foreignKey:RuleID" json:"-"`
}
