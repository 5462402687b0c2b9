package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Lee_Blog/internal/model"
)

type RoleRepository struct {
	DB *gorm.DB
}

// Upsert 按名称查找或创建角色并覆盖权限和默认标记（幂等）
func (r *RoleRepository) Upsert(ctx context.Context, specs []model.RoleSpec) ([]model.Role, error) {
	out := make([]model.Role, 0, len(specs))
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var defaultName string
		for _, spec := range specs {
			var role model.Role
			err := tx.Where("name = ?", spec.Name).First(&role).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			role.Name = spec.Name
			role.Permissions = spec.Permissions
			role.IsDefault = spec.Default
			if err = tx.Save(&role).Error; err != nil {
				return err
			}
			if spec.Default {
				defaultName = spec.Name
			}
			out = append(out, role)
		}
		// 保证最多一个默认角色
		if defaultName != "" {
			return tx.Model(&model.Role{}).
				Where("name <> ? AND is_default = ?", defaultName, true).
				Update("is_default", false).Error
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id uint64) (*model.Role, error) {
	var role model.Role
	if err := r.DB.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

// FindDefault 新用户未指定角色时使用
func (r *RoleRepository) FindDefault(ctx context.Context) (*model.Role, error) {
	var role model.Role
	if err := r.DB.WithContext(ctx).Where("is_default = ?", true).First(&role).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *RoleRepository) FindByPermissions(ctx context.Context, perms model.Permission) (*model.Role, error) {
	var role model.Role
	if err := r.DB.WithContext(ctx).Where("permissions = ?", perms).First(&role).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

// List 全部角色，按 id 升序
func (r *RoleRepository) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, translate(err)
	}
	return roles, nil
}
