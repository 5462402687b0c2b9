package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/pkg"
	"Lee_Blog/internal/repository/mysql"
	"Lee_Blog/internal/testutil"
)

const adminEmail = "admin@example.com"

type testEnv struct {
	ctx      context.Context
	clock    time.Time
	roles    *RoleService
	users    *UserService
	follows  *FollowService
	posts    *PostService
	comments *CommentService
	tokens   *pkg.TokenService
	userRepo *mysql.UserRepository
}

// newTestEnv 基于临时 sqlite 组装全部服务；seed 为 true 时写入内置角色
func newTestEnv(t *testing.T, seed bool) *testEnv {
	t.Helper()
	db := testutil.TestDB(t)
	log := testutil.TestLogger()
	env := &testEnv{ctx: context.Background(), clock: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	now := func() time.Time { return env.clock }

	tokens, err := pkg.NewTokenService(testutil.TestSecret)
	require.NoError(t, err)
	env.tokens = tokens.WithClock(now)

	roleRepo := &mysql.RoleRepository{DB: db}
	env.userRepo = &mysql.UserRepository{DB: db}
	followRepo := &mysql.FollowRepository{DB: db}
	postRepo := &mysql.PostRepository{DB: db}
	commentRepo := &mysql.CommentRepository{DB: db}
	links := model.Links{BaseURL: "http://blog.test"}

	env.roles = NewRoleService(roleRepo, nil, log)
	env.users = NewUserService(env.userRepo, postRepo, followRepo, env.roles, env.tokens, UserServiceConfig{
		AdminEmail: adminEmail,
		Links:      links,
		Log:        log,
		Now:        now,
	})
	env.follows = NewFollowService(followRepo, env.userRepo, postRepo, log)
	env.follows.now = now
	env.posts = NewPostService(postRepo, commentRepo, links, log)
	env.posts.now = now
	env.comments = NewCommentService(commentRepo, postRepo, log)
	env.comments.now = now

	if seed {
		_, err = env.roles.SeedRoles(env.ctx)
		require.NoError(t, err)
	}
	return env
}

func (e *testEnv) register(t *testing.T, name string) *model.User {
	t.Helper()
	return e.registerEmail(t, name, name+"@example.com")
}

func (e *testEnv) registerEmail(t *testing.T, name, email string) *model.User {
	t.Helper()
	u, err := e.users.Register(e.ctx, RegisterInput{Email: email, Username: name, Password: "cat"})
	require.NoError(t, err)
	return u
}

func (e *testEnv) principal(t *testing.T, u *model.User) model.Principal {
	t.Helper()
	p, err := e.users.Principal(e.ctx, u)
	require.NoError(t, err)
	return p
}
