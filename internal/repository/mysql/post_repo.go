package mysql

import (
	"context"
	"iter"

	"gorm.io/gorm"

	"Lee_Blog/internal/model"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return translate(r.DB.WithContext(ctx).Create(post).Error)
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	if err := r.DB.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	return translate(r.DB.WithContext(ctx).Save(post).Error)
}

// ListByAuthor 按时间倒序
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("timestamp DESC, id DESC").
		Find(&list).Error
	return list, translate(err)
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", authorID).Count(&n).Error
	return n, translate(err)
}

// FollowedPosts 关注的人发布的文章。每次 range 都重新查询，逐行读取不一次性加载；
// 顺序为存储默认顺序，需要排序的调用方自行排序。遍历期间不要在同一连接上再发查询
func (r *PostRepository) FollowedPosts(ctx context.Context, userID uint64) iter.Seq2[model.Post, error] {
	return func(yield func(model.Post, error) bool) {
		rows, err := r.DB.WithContext(ctx).
			Model(&model.Post{}).
			Select("posts.*").
			Joins("JOIN follows ON follows.followed_id = posts.author_id").
			Where("follows.follower_id = ?", userID).
			Rows()
		if err != nil {
			yield(model.Post{}, translate(err))
			return
		}
		defer rows.Close()
		for rows.Next() {
			var p model.Post
			if err = r.DB.ScanRows(rows, &p); err != nil {
				yield(model.Post{}, err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}
		if err = rows.Err(); err != nil {
			yield(model.Post{}, err)
		}
	}
}
