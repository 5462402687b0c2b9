package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           uint64    `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:64;not null"`
	Username     string    `gorm:"uniqueIndex;size:64;not null"`
	RoleID       *uint64   `gorm:"index"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	Confirmed    bool      `gorm:"not null"`
	Name         string    `gorm:"size:64"`
	Location     string    `gorm:"size:64"`
	AboutMe      string    `gorm:"type:text"`
	MemberSince  time.Time `gorm:"not null"`
	LastSeen     time.Time `gorm:"not null"`
}

// TableName sets table name for User
func (User) TableName() string {
	return "users"
}

// SetPassword 只保存散列，明文不落库
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Ping 刷新最后访问时间
func (u *User) Ping(now time.Time) {
	u.LastSeen = now
}

// UserCounts 公开视图里展示的计数
type UserCounts struct {
	Posts     int64
	Followers int64
	Followed  int64
}

// UserView 用户的公开 JSON 视图
type UserView struct {
	URL           string    `json:"url"`
	Username      string    `json:"username"`
	MemberSince   time.Time `json:"member_since"`
	LastSeen      time.Time `json:"last_seen"`
	Posts         string    `json:"posts"`
	FollowedPosts string    `json:"followed_posts"`
	PostCount     int64     `json:"post_count"`
	FollowerCount int64     `json:"follower_count"`
	FollowedCount int64     `json:"followed_count"`
}

func (u *User) ToPublicView(l Links, c UserCounts) UserView {
	return UserView{
		URL:           l.User(u.ID),
		Username:      u.Username,
		MemberSince:   u.MemberSince,
		LastSeen:      u.LastSeen,
		Posts:         l.UserPosts(u.ID),
		FollowedPosts: l.UserTimeline(u.ID),
		PostCount:     c.Posts,
		FollowerCount: c.Followers,
		FollowedCount: c.Followed,
	}
}
