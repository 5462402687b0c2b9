package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"Lee_Blog/internal/model"
)

type FollowRepository struct {
	DB *gorm.DB
}

// Follow 建立关注关系（幂等）。新建返回 changed=true，已存在或并发重复插入返回 false
func (r *FollowRepository) Follow(ctx context.Context, followerID, followedID uint64, at time.Time) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rel model.Follow
		err := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			First(&rel).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		rel = model.Follow{FollowerID: followerID, FollowedID: followedID, Timestamp: at}
		if err = tx.Create(&rel).Error; err != nil {
			return err
		}
		changed = true
		return nil
	})
	// 并发下另一请求已插入同一条边，按幂等处理
	if isDuplicateKey(err) {
		return false, nil
	}
	return changed, translate(err)
}

// Unfollow 删除关注关系，不存在时不报错
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followedID uint64) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// IsFollowing 判断 followerID 是否关注了 followedID
func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&n).Error; err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

// CountFollowers 粉丝数
func (r *FollowRepository) CountFollowers(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).Where("followed_id = ?", userID).Count(&n).Error
	return n, translate(err)
}

// CountFollowed 关注的人数
func (r *FollowRepository) CountFollowed(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).Where("follower_id = ?", userID).Count(&n).Error
	return n, translate(err)
}
