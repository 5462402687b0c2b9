package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"Lee_Blog/internal/model"
)

type RoleService struct {
	repo  RoleStore
	cache RoleCache
	log   *slog.Logger
}

// NewRoleService cache 可以为 nil
func NewRoleService(repo RoleStore, cache RoleCache, log *slog.Logger) *RoleService {
	if log == nil {
		log = slog.Default()
	}
	return &RoleService{repo: repo, cache: cache, log: log}
}

// SeedRoles 部署任务：写入三个内置角色，重复执行结果一致
func (s *RoleService) SeedRoles(ctx context.Context) ([]model.Role, error) {
	roles, err := s.repo.Upsert(ctx, model.SeedRoles)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err = s.cache.Flush(ctx); err != nil {
			s.log.Warn("flush role cache failed", "error", err)
		}
	}
	s.log.Info("roles seeded", "count", len(roles))
	return roles, nil
}

// Roles 当前角色表
func (s *RoleService) Roles(ctx context.Context) ([]model.Role, error) {
	return s.repo.List(ctx)
}

// Role 先查缓存再查库
func (s *RoleService) Role(ctx context.Context, id uint64) (*model.Role, error) {
	if s.cache != nil {
		if role, ok := s.cache.Get(ctx, id); ok {
			return role, nil
		}
	}
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, role)
	}
	return role, nil
}

// RoleForNewUser 管理员邮箱取全权限角色，否则取默认角色；都不存在时返回 nil
func (s *RoleService) RoleForNewUser(ctx context.Context, email, adminEmail string) (*model.Role, error) {
	if adminEmail != "" && strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(adminEmail)) {
		role, err := s.repo.FindByPermissions(ctx, model.PermissionAll)
		if err == nil {
			return role, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
	}
	role, err := s.repo.FindDefault(ctx)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	return role, err
}

// Principal 组装用户和角色；user 为 nil 时是游客
func (s *RoleService) Principal(ctx context.Context, user *model.User) (model.Principal, error) {
	if user == nil {
		return model.Guest{}, nil
	}
	if user.RoleID == nil {
		return model.Member{User: user}, nil
	}
	role, err := s.Role(ctx, *user.RoleID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Member{User: user}, nil
	}
	if err != nil {
		return nil, err
	}
	return model.Member{User: user, Role: role}, nil
}
