package main

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"Lee_Blog/internal/repository/mysql"
	"Lee_Blog/internal/service"
)

// deploy 建表、写入内置角色、补齐用户自关注
func deploy(ctx context.Context, log *slog.Logger, db *gorm.DB, roles *service.RoleService, follows *service.FollowService) error {
	if err := mysql.AutoMigrate(db); err != nil {
		return err
	}
	if _, err := roles.SeedRoles(ctx); err != nil {
		return err
	}
	registry, err := roles.Roles(ctx)
	if err != nil {
		return err
	}
	for _, r := range registry {
		log.Info("role", "name", r.Name, "permissions", uint8(r.Permissions), "default", r.IsDefault)
	}
	created, err := follows.SelfFollowAllUsers(ctx)
	if err != nil {
		return err
	}
	log.Info("deploy finished", "roles", len(registry), "self_follows", created)
	return nil
}
