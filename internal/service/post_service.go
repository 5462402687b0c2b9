package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"Lee_Blog/internal/model"
)

type PostService struct {
	repo     PostStore
	comments CommentStore
	links    model.Links
	log      *slog.Logger
	now      func() time.Time
}

func NewPostService(repo PostStore, comments CommentStore, links model.Links, log *slog.Logger) *PostService {
	if log == nil {
		log = slog.Default()
	}
	return &PostService{repo: repo, comments: comments, links: links, log: log, now: time.Now}
}

// CreatePost 需要 WRITE_ARTICLES 权限
func (s *PostService) CreatePost(ctx context.Context, p model.Principal, body string) (*model.Post, error) {
	author, ok := p.Authenticated()
	if !ok || !p.Can(model.PermissionWriteArticles) {
		return nil, ErrForbidden
	}
	post, err := model.NewPost(author.ID, body, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err = s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// EditPost 作者本人或管理员可编辑
func (s *PostService) EditPost(ctx context.Context, p model.Principal, postID uint64, body string) (*model.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	user, ok := p.Authenticated()
	if !ok || (user.ID != post.AuthorID && !p.IsAdministrator()) {
		return nil, ErrForbidden
	}
	if err = post.SetBody(body); err != nil {
		return nil, err
	}
	if err = s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return post, err
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// PublicView 文章公开视图
func (s *PostService) PublicView(ctx context.Context, post *model.Post) (model.PostView, error) {
	n, err := s.comments.CountByPost(ctx, post.ID)
	if err != nil {
		return model.PostView{}, err
	}
	return post.ToPublicView(s.links, n), nil
}
