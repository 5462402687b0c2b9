package model

import (
	"fmt"
	"strings"
)

// Links 生成公开视图中的资源地址
type Links struct {
	BaseURL string
}

func (l Links) join(format string, args ...any) string {
	return strings.TrimRight(l.BaseURL, "/") + fmt.Sprintf(format, args...)
}

func (l Links) User(id uint64) string { return l.join("/api/v1/users/%d", id) }

func (l Links) UserPosts(id uint64) string { return l.join("/api/v1/users/%d/posts", id) }

func (l Links) UserTimeline(id uint64) string { return l.join("/api/v1/users/%d/timeline", id) }

func (l Links) Post(id uint64) string { return l.join("/api/v1/posts/%d", id) }

func (l Links) PostComments(id uint64) string { return l.join("/api/v1/posts/%d/comments", id) }
