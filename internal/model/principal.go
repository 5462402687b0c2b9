package model

// Principal 一次请求的调用方身份，要么是登录用户要么是游客
type Principal interface {
	Can(mask Permission) bool
	IsAdministrator() bool
	// Authenticated 返回登录用户；游客返回 nil, false
	Authenticated() (*User, bool)
}

// Guest 未登录访客，没有任何权限
type Guest struct{}

func (Guest) Can(Permission) bool { return false }

func (Guest) IsAdministrator() bool { return false }

func (Guest) Authenticated() (*User, bool) { return nil, false }

// Member 登录用户及其角色，Role 可能为空
type Member struct {
	User *User
	Role *Role
}

func (m Member) Can(mask Permission) bool {
	return m.Role.Can(mask)
}

func (m Member) IsAdministrator() bool {
	return m.Can(PermissionAdminister)
}

func (m Member) Authenticated() (*User, bool) {
	return m.User, m.User != nil
}
