package model

import (
	"strings"
	"time"

	"Lee_Blog/internal/pkg"
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey"`
	Body      string    `gorm:"type:text;not null"`
	BodyHTML  string    `gorm:"column:body_html;type:text"`
	Timestamp time.Time `gorm:"index;not null"`
	Disabled  bool      `gorm:"not null"`
	AuthorID  uint64    `gorm:"not null;index"`
	PostID    uint64    `gorm:"not null;index"`
}

// TableName sets table name for Comment
func (Comment) TableName() string {
	return "comments"
}

func NewComment(authorID, postID uint64, body string, now time.Time) (*Comment, error) {
	c := &Comment{AuthorID: authorID, PostID: postID, Timestamp: now}
	if err := c.SetBody(body); err != nil {
		return nil, err
	}
	return c, nil
}

// SetBody 评论使用更窄的标签白名单
func (c *Comment) SetBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return ErrEmptyBody
	}
	c.Body = body
	c.BodyHTML = pkg.RenderComment(body)
	return nil
}

// CommentView 被屏蔽的评论不输出正文
type CommentView struct {
	Body      string    `json:"body,omitempty"`
	BodyHTML  string    `json:"body_html,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Disabled  bool      `json:"disabled"`
	Author    string    `json:"author"`
	Post      string    `json:"post"`
}

func (c *Comment) ToPublicView(l Links) CommentView {
	v := CommentView{
		Timestamp: c.Timestamp,
		Disabled:  c.Disabled,
		Author:    l.User(c.AuthorID),
		Post:      l.Post(c.PostID),
	}
	if !c.Disabled {
		v.Body = c.Body
		v.BodyHTML = c.BodyHTML
	}
	return v
}
