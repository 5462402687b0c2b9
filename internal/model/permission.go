package model

// Permission 权限位，可按位或组合
type Permission uint8

const (
	PermissionFollow           Permission = 0x01
	PermissionComment          Permission = 0x02
	PermissionWriteArticles    Permission = 0x04
	PermissionModerateComments Permission = 0x08
	PermissionAdminister       Permission = 0x80

	PermissionAll Permission = 0xff
)

// Has 判断是否包含 mask 中的全部权限位
func (p Permission) Has(mask Permission) bool {
	return p&mask == mask
}
