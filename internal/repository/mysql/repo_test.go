package mysql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/repository/mysql"
	"Lee_Blog/internal/testutil"
)

func newUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	now := time.Now().UTC()
	u := &model.User{
		Email:        name + "@example.com",
		Username:     name,
		PasswordHash: "x",
		MemberSince:  now,
		LastSeen:     now,
	}
	require.NoError(t, (&mysql.UserRepository{DB: db}).Create(context.Background(), u))
	return u
}

func TestRoleRepository_UpsertIdempotent(t *testing.T) {
	db := testutil.TestDB(t)
	repo := &mysql.RoleRepository{DB: db}
	ctx := context.Background()

	_, err := repo.Upsert(ctx, model.SeedRoles)
	require.NoError(t, err)
	first, err := repo.List(ctx)
	require.NoError(t, err)

	_, err = repo.Upsert(ctx, model.SeedRoles)
	require.NoError(t, err)
	second, err := repo.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, second, 3)

	def, err := repo.FindDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, def.Name)

	admin, err := repo.FindByPermissions(ctx, model.PermissionAll)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdministrator, admin.Name)
}

func TestRoleRepository_UpsertOverwritesAndKeepsSingleDefault(t *testing.T) {
	db := testutil.TestDB(t)
	repo := &mysql.RoleRepository{DB: db}
	ctx := context.Background()

	_, err := repo.Upsert(ctx, model.SeedRoles)
	require.NoError(t, err)

	_, err = repo.Upsert(ctx, []model.RoleSpec{
		{Name: model.RoleModerator, Permissions: model.PermissionModerateComments, Default: true},
	})
	require.NoError(t, err)

	roles, err := repo.List(ctx)
	require.NoError(t, err)
	byName := map[string]model.Role{}
	for _, r := range roles {
		byName[r.Name] = r
	}
	mod := byName[model.RoleModerator]
	assert.Equal(t, model.PermissionModerateComments, mod.Permissions)
	assert.True(t, mod.IsDefault)
	assert.False(t, byName[model.RoleUser].IsDefault)
}

func TestRoleRepository_FindMissing(t *testing.T) {
	repo := &mysql.RoleRepository{DB: testutil.TestDB(t)}
	_, err := repo.FindDefault(context.Background())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := testutil.TestDB(t)
	newUser(t, db, "alice")

	now := time.Now().UTC()
	dup := &model.User{Email: "alice@example.com", Username: "other", PasswordHash: "x", MemberSince: now, LastSeen: now}
	err := (&mysql.UserRepository{DB: db}).Create(context.Background(), dup)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestFollowRepository_Idempotent(t *testing.T) {
	db := testutil.TestDB(t)
	repo := &mysql.FollowRepository{DB: db}
	ctx := context.Background()
	a, b := newUser(t, db, "a"), newUser(t, db, "b")

	changed, err := repo.Follow(ctx, a.ID, b.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.Follow(ctx, a.ID, b.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, changed)

	var n int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	ok, err := repo.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.IsFollowing(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	followers, err := repo.CountFollowers(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followers)
	followed, err := repo.CountFollowed(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followed)
}

func TestFollowRepository_UnfollowWithoutEdge(t *testing.T) {
	db := testutil.TestDB(t)
	repo := &mysql.FollowRepository{DB: db}
	a, b := newUser(t, db, "a"), newUser(t, db, "b")

	changed, err := repo.Unfollow(context.Background(), a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestFollowRepository_DuplicateInsertIsNoop(t *testing.T) {
	db := testutil.TestDB(t)
	a, b := newUser(t, db, "a"), newUser(t, db, "b")
	// 模拟并发：边已被另一请求直接写入
	require.NoError(t, db.Create(&model.Follow{FollowerID: a.ID, FollowedID: b.ID, Timestamp: time.Now()}).Error)

	changed, err := (&mysql.FollowRepository{DB: db}).Follow(context.Background(), a.ID, b.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestPostRepository_FollowedPosts(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	follows := &mysql.FollowRepository{DB: db}
	posts := &mysql.PostRepository{DB: db}
	a, b, c := newUser(t, db, "a"), newUser(t, db, "b"), newUser(t, db, "c")

	for _, author := range []*model.User{a, b, c} {
		p, err := model.NewPost(author.ID, "post by "+author.Username, time.Now())
		require.NoError(t, err)
		require.NoError(t, posts.Create(ctx, p))
	}
	_, err := follows.Follow(ctx, a.ID, b.ID, time.Now())
	require.NoError(t, err)
	_, err = follows.Follow(ctx, a.ID, a.ID, time.Now())
	require.NoError(t, err)

	seq := posts.FollowedPosts(ctx, a.ID)
	collect := func() []uint64 {
		var authors []uint64
		for p, err := range seq {
			require.NoError(t, err)
			authors = append(authors, p.AuthorID)
		}
		return authors
	}

	assert.ElementsMatch(t, []uint64{a.ID, b.ID}, collect())
	// 可重复遍历
	assert.ElementsMatch(t, []uint64{a.ID, b.ID}, collect())
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	users := &mysql.UserRepository{DB: db}
	a, b := newUser(t, db, "a"), newUser(t, db, "b")

	p, err := model.NewPost(a.ID, "hello", time.Now())
	require.NoError(t, err)
	require.NoError(t, (&mysql.PostRepository{DB: db}).Create(ctx, p))
	cm, err := model.NewComment(b.ID, p.ID, "nice", time.Now())
	require.NoError(t, err)
	require.NoError(t, (&mysql.CommentRepository{DB: db}).Create(ctx, cm))
	_, err = (&mysql.FollowRepository{DB: db}).Follow(ctx, b.ID, a.ID, time.Now())
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, a.ID))

	for _, m := range []any{&model.Post{}, &model.Comment{}, &model.Follow{}} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Zero(t, n)
	}
	_, err = users.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.ErrorIs(t, users.Delete(ctx, a.ID), model.ErrNotFound)
}
