package model

import "time"

// Follow 关注关系：FollowerID 关注了 FollowedID
type Follow struct {
	FollowerID uint64    `gorm:"primaryKey;autoIncrement:false"`
	FollowedID uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_followed_id"`
	Timestamp  time.Time `gorm:"not null"`
}

// TableName sets table name for Follow
func (Follow) TableName() string {
	return "follows"
}
