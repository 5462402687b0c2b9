package service

import (
	"context"
	"iter"
	"time"

	"Lee_Blog/internal/model"
)

// 以下接口由 repository/mysql 实现

type RoleStore interface {
	Upsert(ctx context.Context, specs []model.RoleSpec) ([]model.Role, error)
	FindByID(ctx context.Context, id uint64) (*model.Role, error)
	FindDefault(ctx context.Context) (*model.Role, error)
	FindByPermissions(ctx context.Context, perms model.Permission) (*model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
}

// RoleCache 可选的角色缓存
type RoleCache interface {
	Get(ctx context.Context, id uint64) (*model.Role, bool)
	Set(ctx context.Context, role *model.Role)
	Flush(ctx context.Context) error
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	TouchLastSeen(ctx context.Context, id uint64, at time.Time) error
	ListIDs(ctx context.Context) ([]uint64, error)
	Delete(ctx context.Context, id uint64) error
}

type FollowStore interface {
	Follow(ctx context.Context, followerID, followedID uint64, at time.Time) (bool, error)
	Unfollow(ctx context.Context, followerID, followedID uint64) (bool, error)
	IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error)
	CountFollowers(ctx context.Context, userID uint64) (int64, error)
	CountFollowed(ctx context.Context, userID uint64) (int64, error)
}

type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	ListByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error)
	CountByAuthor(ctx context.Context, authorID uint64) (int64, error)
	FollowedPosts(ctx context.Context, userID uint64) iter.Seq2[model.Post, error]
}

type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	FindByID(ctx context.Context, id uint64) (*model.Comment, error)
	Update(ctx context.Context, c *model.Comment) error
	ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error)
	CountByPost(ctx context.Context, postID uint64) (int64, error)
}
