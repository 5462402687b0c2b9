package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"Lee_Blog/internal/model"
)

const (
	RoleKeyPrefix  = "blog:role:id"
	DefaultRoleTTL = 10 * time.Minute
)

// RoleCacheRepository 角色按 id 缓存，Redis 不可用时退化为直接查库
type RoleCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewRoleCacheRepository(client *redis.Client, ttl time.Duration, log *slog.Logger) *RoleCacheRepository {
	if ttl <= 0 {
		ttl = DefaultRoleTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &RoleCacheRepository{client: client, ttl: ttl, log: log}
}

func roleKey(id uint64) string {
	return fmt.Sprintf("%s:%d", RoleKeyPrefix, id)
}

// Get 未命中或 Redis 出错都返回 false
func (r *RoleCacheRepository) Get(ctx context.Context, id uint64) (*model.Role, bool) {
	raw, err := r.client.Get(ctx, roleKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("role cache get failed", "role_id", id, "error", err)
		}
		return nil, false
	}
	var role model.Role
	if err = json.Unmarshal(raw, &role); err != nil {
		r.log.Warn("role cache decode failed", "role_id", id, "error", err)
		return nil, false
	}
	return &role, true
}

func (r *RoleCacheRepository) Set(ctx context.Context, role *model.Role) {
	raw, err := json.Marshal(role)
	if err != nil {
		return
	}
	if err = r.client.Set(ctx, roleKey(role.ID), raw, r.ttl).Err(); err != nil {
		r.log.Warn("role cache set failed", "role_id", role.ID, "error", err)
	}
}

// Flush 清掉全部角色缓存，重新初始化角色后调用
func (r *RoleCacheRepository) Flush(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, RoleKeyPrefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
