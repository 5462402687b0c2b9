package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lee_Blog/internal/model"
)

func newTestCache(t *testing.T) (*RoleCacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRoleCacheRepository(client, 0, nil), mr
}

func TestRoleCache_SetGet(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx, 1)
	assert.False(t, ok)

	role := &model.Role{ID: 1, Name: model.RoleUser, IsDefault: true, Permissions: model.PermissionFollow}
	cache.Set(ctx, role)

	got, ok := cache.Get(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, role, got)
	assert.Equal(t, DefaultRoleTTL, mr.TTL(roleKey(1)))
}

func TestRoleCache_Flush(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, &model.Role{ID: 1, Name: "a"})
	cache.Set(ctx, &model.Role{ID: 2, Name: "b"})
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, cache.Flush(ctx))

	_, ok := cache.Get(ctx, 1)
	assert.False(t, ok)
	_, ok = cache.Get(ctx, 2)
	assert.False(t, ok)
	assert.True(t, mr.Exists("unrelated"))
}

func TestRoleCache_RedisDown(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	_, ok := cache.Get(context.Background(), 1)
	assert.False(t, ok)
}
