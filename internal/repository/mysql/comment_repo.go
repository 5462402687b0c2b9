package mysql

import (
	"context"

	"gorm.io/gorm"

	"Lee_Blog/internal/model"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	return translate(r.DB.WithContext(ctx).Create(c).Error)
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var c model.Comment
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CommentRepository) Update(ctx context.Context, c *model.Comment) error {
	return translate(r.DB.WithContext(ctx).Save(c).Error)
}

// ListByPost 按时间正序，包含被屏蔽的评论
func (r *CommentRepository) ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("timestamp ASC, id ASC").
		Find(&list).Error
	return list, translate(err)
}

func (r *CommentRepository) CountByPost(ctx context.Context, postID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Comment{}).Where("post_id = ?", postID).Count(&n).Error
	return n, translate(err)
}
