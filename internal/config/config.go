package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"Lee_Blog/internal/pkg"
)

// Config 从环境变量读取的运行配置
type Config struct {
	SecretKey  string `env:"SECRET_KEY,required"`
	AdminEmail string `env:"ADMIN_EMAIL"`

	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"root:password@tcp(127.0.0.1:3306)/blog?charset=utf8mb4&parseTime=True&loc=Local"`

	// Redis 角色缓存，地址为空时不启用
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RoleCacheTTL  time.Duration `env:"ROLE_CACHE_TTL" envDefault:"10m"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.qq.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"NoReply <no-reply@example.com>"`

	BaseURL  string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// UseRedis 是否配置了 Redis
func (c Config) UseRedis() bool {
	return c.RedisAddr != ""
}

func (c Config) SMTP() pkg.SMTPConfig {
	return pkg.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	}
}

// Load 解析环境变量，缺少或过短的 SECRET_KEY 直接返回错误
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.SecretKey) < pkg.MinSecretLength {
		return nil, fmt.Errorf("SECRET_KEY must be at least %d bytes long, got %d", pkg.MinSecretLength, len(cfg.SecretKey))
	}
	return cfg, nil
}
