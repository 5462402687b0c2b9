package mysql

import (
	"errors"
	"fmt"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Lee_Blog/internal/model"
)

// mysqlDuplicateEntry ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

// Open 连接 MySQL，开启错误翻译以便识别唯一键冲突
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return db, nil
}

// AutoMigrate 自动建表（部署阶段调用）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Follow{},
		&model.Post{},
		&model.Comment{},
	)
}

// isDuplicateKey 兼容 gorm 翻译后的错误、MySQL 原始错误和 sqlite 错误文本
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translate 把存储层错误映射为领域错误
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.ErrNotFound
	case isDuplicateKey(err):
		return fmt.Errorf("%w: %v", model.ErrConflict, err)
	default:
		return err
	}
}
