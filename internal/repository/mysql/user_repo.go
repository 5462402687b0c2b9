package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"Lee_Blog/internal/model"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.DB.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Update 全字段保存，唯一键冲突返回 ErrConflict
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	return translate(r.DB.WithContext(ctx).Save(user).Error)
}

// TouchLastSeen 只更新最后访问时间
func (r *UserRepository) TouchLastSeen(ctx context.Context, id uint64, at time.Time) error {
	return translate(r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("last_seen", at).Error)
}

// ListIDs 全量用户 id，维护任务使用
func (r *UserRepository) ListIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	if err := r.DB.WithContext(ctx).Model(&model.User{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, translate(err)
	}
	return ids, nil
}

// Delete 删除用户并级联删除其文章、评论和双向关注关系
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postIDs := tx.Model(&model.Post{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("author_id = ? OR post_id IN (?)", id, postIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", id, id).Delete(&model.Follow{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err)
}
