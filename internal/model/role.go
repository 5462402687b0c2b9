package model

const (
	RoleUser          = "User"
	RoleModerator     = "Moderator"
	RoleAdministrator = "Administrator"
)

type Role struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"uniqueIndex;size:64;not null" json:"name"`
	IsDefault   bool       `gorm:"column:is_default;index;not null" json:"default"`
	Permissions Permission `gorm:"not null" json:"permissions"`
}

// TableName sets table name for Role
func (Role) TableName() string {
	return "roles"
}

// Can 角色为空时一律没有权限
func (r *Role) Can(mask Permission) bool {
	return r != nil && r.Permissions.Has(mask)
}

// RoleSpec 初始化角色时使用的定义
type RoleSpec struct {
	Name        string
	Permissions Permission
	Default     bool
}

// SeedRoles 部署时写入的三个角色，只有 User 是默认角色
var SeedRoles = []RoleSpec{
	{
		Name:        RoleUser,
		Permissions: PermissionFollow | PermissionComment | PermissionWriteArticles,
		Default:     true,
	},
	{
		Name:        RoleModerator,
		Permissions: PermissionFollow | PermissionComment | PermissionWriteArticles | PermissionModerateComments,
	},
	{
		Name:        RoleAdministrator,
		Permissions: PermissionAll,
	},
}
