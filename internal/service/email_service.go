package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/pkg"
)

// EmailService 发送携带令牌链接的确认、重置密码、修改邮箱邮件
type EmailService struct {
	mailer  pkg.Mailer
	users   *UserService
	baseURL string
}

func NewEmailService(mailer pkg.Mailer, users *UserService, baseURL string) *EmailService {
	return &EmailService{mailer: mailer, users: users, baseURL: strings.TrimRight(baseURL, "/")}
}

// AuthPathPrefix 账号相关接口的路由前缀，邮件链接直接指向这些接口
const AuthPathPrefix = "/api/v1/auth"

func (s *EmailService) link(action, token string) string {
	return s.baseURL + AuthPathPrefix + "/" + action + "/" + url.PathEscape(token)
}

// SendConfirmation 注册后发送确认邮件
func (s *EmailService) SendConfirmation(ctx context.Context, user *model.User) error {
	token, err := s.users.GenerateConfirmationToken(user)
	if err != nil {
		return err
	}
	html := pkg.TokenLinkHTML(user.Username, "confirm your account", s.link("confirm", token), pkg.DefaultTokenTTL)
	return s.mailer.Send(ctx, user.Email, "Confirm Your Account", html)
}

// SendPasswordReset 邮箱未注册时静默返回，避免暴露账号是否存在
func (s *EmailService) SendPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, model.ErrNotFound) {
		s.users.log.Debug("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}
	token, err := s.users.GenerateResetToken(user)
	if err != nil {
		return err
	}
	html := pkg.TokenLinkHTML(user.Username, "reset your password", s.link("reset", token), pkg.DefaultTokenTTL)
	return s.mailer.Send(ctx, user.Email, "Reset Your Password", html)
}

// SendEmailChange 发往新邮箱，新邮箱已被占用时直接拒绝
func (s *EmailService) SendEmailChange(ctx context.Context, user *model.User, newEmail string) error {
	newEmail = strings.TrimSpace(newEmail)
	if newEmail == "" || !strings.Contains(newEmail, "@") {
		return ErrInvalidInput
	}
	taken, err := s.users.emailTaken(ctx, newEmail, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	token, err := s.users.GenerateEmailChangeToken(user, newEmail)
	if err != nil {
		return err
	}
	html := pkg.TokenLinkHTML(user.Username, "confirm your new email address", s.link("change-email", token), pkg.DefaultTokenTTL)
	return s.mailer.Send(ctx, newEmail, "Confirm Your Email Address", html)
}
