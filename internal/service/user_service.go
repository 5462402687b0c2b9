package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/pkg"
)

type UserService struct {
	repo       UserStore
	posts      PostStore
	follows    FollowStore
	roles      *RoleService
	tokens     *pkg.TokenService
	adminEmail string
	links      model.Links
	log        *slog.Logger
	now        func() time.Time
}

// UserServiceConfig 可选项，零值可用
type UserServiceConfig struct {
	AdminEmail string
	Links      model.Links
	Log        *slog.Logger
	Now        func() time.Time
}

func NewUserService(repo UserStore, posts PostStore, follows FollowStore, roles *RoleService, tokens *pkg.TokenService, cfg UserServiceConfig) *UserService {
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &UserService{
		repo:       repo,
		posts:      posts,
		follows:    follows,
		roles:      roles,
		tokens:     tokens,
		adminEmail: cfg.AdminEmail,
		links:      cfg.Links,
		log:        cfg.Log,
		now:        cfg.Now,
	}
}

// RegisterInput 注册参数，RoleID 为空时自动分配角色
type RegisterInput struct {
	Email    string
	Username string
	Password string
	RoleID   *uint64
	Name     string
	Location string
	AboutMe  string
}

// Register 创建用户。邮箱或用户名重复返回校验错误，并发冲突返回 ErrUserExists
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(in.Email)
	username := strings.TrimSpace(in.Username)
	if email == "" || !strings.Contains(email, "@") || username == "" || in.Password == "" {
		return nil, ErrInvalidInput
	}
	if taken, err := s.emailTaken(ctx, email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	user := &model.User{
		Email:       email,
		Username:    username,
		RoleID:      in.RoleID,
		Name:        in.Name,
		Location:    in.Location,
		AboutMe:     in.AboutMe,
		MemberSince: now,
		LastSeen:    now,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}
	if user.RoleID == nil {
		role, err := s.roles.RoleForNewUser(ctx, email, s.adminEmail)
		if err != nil {
			return nil, err
		}
		if role != nil {
			user.RoleID = &role.ID
		}
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	s.log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login 邮箱 + 密码登录
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// Principal 当前用户的权限主体，user 为 nil 时为游客
func (s *UserService) Principal(ctx context.Context, user *model.User) (model.Principal, error) {
	return s.roles.Principal(ctx, user)
}

func (s *UserService) GenerateConfirmationToken(user *model.User) (string, error) {
	return s.tokens.IssueConfirmation(user.ID, pkg.DefaultTokenTTL)
}

func (s *UserService) GenerateResetToken(user *model.User) (string, error) {
	return s.tokens.IssueReset(user.ID, pkg.DefaultTokenTTL)
}

func (s *UserService) GenerateEmailChangeToken(user *model.User, newEmail string) (string, error) {
	return s.tokens.IssueEmailChange(user.ID, strings.TrimSpace(newEmail), pkg.DefaultTokenTTL)
}

// GenerateAuthToken API 令牌，有效期由调用方指定
func (s *UserService) GenerateAuthToken(user *model.User, ttl time.Duration) (string, error) {
	return s.tokens.IssueAuth(user.ID, ttl)
}

// verifySubject 校验令牌并确认令牌主体就是 user
func (s *UserService) verifySubject(token string, p pkg.Purpose, user *model.User) (*pkg.Claims, error) {
	claims, err := s.tokens.Verify(token, p)
	if err != nil {
		s.log.Debug("token rejected", "purpose", string(p), "user_id", user.ID)
		return nil, err
	}
	id, _ := claims.SubjectFor(p)
	if id != user.ID {
		return nil, ErrSubjectMismatch
	}
	return claims, nil
}

// Confirm 确认邮箱。令牌无状态，未过期前重复确认同样成功
func (s *UserService) Confirm(ctx context.Context, user *model.User, token string) error {
	if _, err := s.verifySubject(token, pkg.PurposeConfirm, user); err != nil {
		return err
	}
	if user.Confirmed {
		return nil
	}
	user.Confirmed = true
	if err := s.repo.Update(ctx, user); err != nil {
		user.Confirmed = false
		return err
	}
	return nil
}

// ResetPassword 凭重置令牌设置新密码
func (s *UserService) ResetPassword(ctx context.Context, user *model.User, token, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}
	if _, err := s.verifySubject(token, pkg.PurposeReset, user); err != nil {
		return err
	}
	old := user.PasswordHash
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, user); err != nil {
		user.PasswordHash = old
		return err
	}
	return nil
}

// ChangeEmail 凭令牌把邮箱改为令牌中的新邮箱，新邮箱被其他用户占用时拒绝
func (s *UserService) ChangeEmail(ctx context.Context, user *model.User, token string) error {
	claims, err := s.verifySubject(token, pkg.PurposeChangeEmail, user)
	if err != nil {
		return err
	}
	taken, err := s.emailTaken(ctx, claims.NewEmail, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	old := user.Email
	user.Email = claims.NewEmail
	if err = s.repo.Update(ctx, user); err != nil {
		user.Email = old
		if errors.Is(err, model.ErrConflict) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// ChangePassword 登录态修改密码
func (s *UserService) ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}
	if !user.VerifyPassword(oldPassword) {
		return ErrInvalidCredentials
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	return s.repo.Update(ctx, user)
}

// AuthenticateToken API 令牌换用户，用户不存在同样视为令牌无效
func (s *UserService) AuthenticateToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.Verify(token, pkg.PurposeAuth)
	if err != nil {
		return nil, err
	}
	id, _ := claims.SubjectFor(pkg.PurposeAuth)
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, pkg.ErrTokenInvalid
	}
	return user, err
}

// Ping 刷新最后访问时间
func (s *UserService) Ping(ctx context.Context, user *model.User) error {
	user.Ping(s.now().UTC())
	return s.repo.TouchLastSeen(ctx, user.ID, user.LastSeen)
}

// Delete 级联删除用户的文章、评论和关注关系
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// PublicView 用户公开视图
func (s *UserService) PublicView(ctx context.Context, user *model.User) (model.UserView, error) {
	var (
		c   model.UserCounts
		err error
	)
	if c.Posts, err = s.posts.CountByAuthor(ctx, user.ID); err != nil {
		return model.UserView{}, err
	}
	if c.Followers, err = s.follows.CountFollowers(ctx, user.ID); err != nil {
		return model.UserView{}, err
	}
	if c.Followed, err = s.follows.CountFollowed(ctx, user.ID); err != nil {
		return model.UserView{}, err
	}
	return user.ToPublicView(s.links, c), nil
}

func (s *UserService) emailTaken(ctx context.Context, email string, exceptID uint64) (bool, error) {
	other, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return other.ID != exceptID, nil
}
