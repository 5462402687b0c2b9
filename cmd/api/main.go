package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"Lee_Blog/internal/config"
	"Lee_Blog/internal/logging"
	"Lee_Blog/internal/model"
	"Lee_Blog/internal/pkg"
	"Lee_Blog/internal/repository/mysql"
	"Lee_Blog/internal/repository/redis"
	"Lee_Blog/internal/router"
	"Lee_Blog/internal/service"
)

func main() {
	// .env 可选，不存在时只读环境变量
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, os.Stdout)
	slog.SetDefault(log)

	db, err := mysql.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	tokens, err := pkg.NewTokenService(cfg.SecretKey)
	if err != nil {
		log.Error("failed to create token service", "error", err)
		os.Exit(1)
	}

	// 未配置 Redis 时角色直接查库
	var roleCache service.RoleCache
	if cfg.UseRedis() {
		client, err := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, role cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			roleCache = redis.NewRoleCacheRepository(client, cfg.RoleCacheTTL, log)
		}
	}

	links := model.Links{BaseURL: cfg.BaseURL}
	userRepo := &mysql.UserRepository{DB: db}
	postRepo := &mysql.PostRepository{DB: db}
	followRepo := &mysql.FollowRepository{DB: db}
	commentRepo := &mysql.CommentRepository{DB: db}

	roles := service.NewRoleService(&mysql.RoleRepository{DB: db}, roleCache, log)
	users := service.NewUserService(userRepo, postRepo, followRepo, roles, tokens, service.UserServiceConfig{
		AdminEmail: cfg.AdminEmail,
		Links:      links,
		Log:        log,
	})
	follows := service.NewFollowService(followRepo, userRepo, postRepo, log)

	if len(os.Args) > 1 && os.Args[1] == "deploy" {
		if err = deploy(context.Background(), log, db, roles, follows); err != nil {
			log.Error("deploy failed", "error", err)
			os.Exit(1)
		}
		return
	}

	r := router.InitRouter(router.Deps{
		Users:    users,
		Posts:    service.NewPostService(postRepo, commentRepo, links, log),
		Comments: service.NewCommentService(commentRepo, postRepo, log),
		Follows:  follows,
		Emails:   service.NewEmailService(pkg.NewSMTPMailer(cfg.SMTP()), users, cfg.BaseURL),
		Links:    links,
	})
	log.Info("http server starting", "addr", cfg.HTTPAddr)
	if err = r.Run(cfg.HTTPAddr); err != nil {
		log.Error("http server stopped", "error", err)
		os.Exit(1)
	}
}
