package service

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"Lee_Blog/internal/model"
)

type FollowService struct {
	repo  FollowStore
	users UserStore
	posts PostStore
	log   *slog.Logger
	now   func() time.Time
}

func NewFollowService(repo FollowStore, users UserStore, posts PostStore, log *slog.Logger) *FollowService {
	if log == nil {
		log = slog.Default()
	}
	return &FollowService{repo: repo, users: users, posts: posts, log: log, now: time.Now}
}

// Follow 关注（幂等），允许关注自己
func (s *FollowService) Follow(ctx context.Context, follower, followed *model.User) (bool, error) {
	if follower == nil || followed == nil || follower.ID == 0 || followed.ID == 0 {
		return false, ErrInvalidInput
	}
	return s.repo.Follow(ctx, follower.ID, followed.ID, s.now().UTC())
}

// Unfollow 取消关注，没有关注关系时不报错
func (s *FollowService) Unfollow(ctx context.Context, follower, followed *model.User) (bool, error) {
	if follower == nil || followed == nil || follower.ID == 0 || followed.ID == 0 {
		return false, ErrInvalidInput
	}
	return s.repo.Unfollow(ctx, follower.ID, followed.ID)
}

// IsFollowing u 是否关注了 target
func (s *FollowService) IsFollowing(ctx context.Context, u, target *model.User) (bool, error) {
	return s.repo.IsFollowing(ctx, u.ID, target.ID)
}

// IsFollowedBy u 是否被 target 关注
func (s *FollowService) IsFollowedBy(ctx context.Context, u, target *model.User) (bool, error) {
	return s.repo.IsFollowing(ctx, target.ID, u.ID)
}

// FollowedPosts 惰性序列，每次遍历重新查询
func (s *FollowService) FollowedPosts(ctx context.Context, u *model.User) iter.Seq2[model.Post, error] {
	return s.posts.FollowedPosts(ctx, u.ID)
}

// SelfFollowAllUsers 部署任务：让每个用户关注自己，使自己的文章出现在时间线里
func (s *FollowService) SelfFollowAllUsers(ctx context.Context) (int, error) {
	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	var created int
	for _, id := range ids {
		changed, err := s.repo.Follow(ctx, id, id, s.now().UTC())
		if err != nil {
			return created, err
		}
		if changed {
			created++
		}
	}
	s.log.Info("self follows added", "users", len(ids), "created", created)
	return created, nil
}
