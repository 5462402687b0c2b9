package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"Lee_Blog/internal/model"
)

type CommentService struct {
	repo  CommentStore
	posts PostStore
	log   *slog.Logger
	now   func() time.Time
}

func NewCommentService(repo CommentStore, posts PostStore, log *slog.Logger) *CommentService {
	if log == nil {
		log = slog.Default()
	}
	return &CommentService{repo: repo, posts: posts, log: log, now: time.Now}
}

// AddComment 需要 COMMENT 权限
func (s *CommentService) AddComment(ctx context.Context, p model.Principal, postID uint64, body string) (*model.Comment, error) {
	author, ok := p.Authenticated()
	if !ok || !p.Can(model.PermissionComment) {
		return nil, ErrForbidden
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	c, err := model.NewComment(author.ID, postID, body, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err = s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetDisabled 屏蔽或恢复评论，需要 MODERATE_COMMENTS 权限
func (s *CommentService) SetDisabled(ctx context.Context, p model.Principal, commentID uint64, disabled bool) (*model.Comment, error) {
	if !p.Can(model.PermissionModerateComments) {
		return nil, ErrForbidden
	}
	c, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if c.Disabled == disabled {
		return c, nil
	}
	c.Disabled = disabled
	if err = s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	if user, ok := p.Authenticated(); ok {
		s.log.Info("comment moderated", "comment_id", c.ID, "disabled", disabled, "moderator_id", user.ID)
	}
	return c, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error) {
	return s.repo.ListByPost(ctx, postID)
}
