package model

import (
	"strings"
	"time"

	"Lee_Blog/internal/pkg"
)

type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	Body      string    `gorm:"type:text;not null"`
	BodyHTML  string    `gorm:"column:body_html;type:text"`
	Timestamp time.Time `gorm:"index;not null"`
	AuthorID  uint64    `gorm:"not null;index"`
}

// TableName sets table name for Post
func (Post) TableName() string {
	return "posts"
}

func NewPost(authorID uint64, body string, now time.Time) (*Post, error) {
	p := &Post{AuthorID: authorID, Timestamp: now}
	if err := p.SetBody(body); err != nil {
		return nil, err
	}
	return p, nil
}

// SetBody 写正文的唯一入口，同步重新渲染 BodyHTML
func (p *Post) SetBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return ErrEmptyBody
	}
	p.Body = body
	p.BodyHTML = pkg.RenderPost(body)
	return nil
}

// PostView 文章的公开 JSON 视图
type PostView struct {
	URL          string    `json:"url"`
	Body         string    `json:"body"`
	BodyHTML     string    `json:"body_html"`
	Timestamp    time.Time `json:"timestamp"`
	Author       string    `json:"author"`
	Comments     string    `json:"comments"`
	CommentCount int64     `json:"comment_count"`
}

func (p *Post) ToPublicView(l Links, commentCount int64) PostView {
	return PostView{
		URL:          l.Post(p.ID),
		Body:         p.Body,
		BodyHTML:     p.BodyHTML,
		Timestamp:    p.Timestamp,
		Author:       l.User(p.AuthorID),
		Comments:     l.PostComments(p.ID),
		CommentCount: commentCount,
	}
}
