package router

import (
	"Lee_Blog/internal/handler"
	"Lee_Blog/internal/middleware"
	"Lee_Blog/internal/model"
	"Lee_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

// Deps 路由依赖的服务
type Deps struct {
	Users    *service.UserService
	Posts    *service.PostService
	Comments *service.CommentService
	Follows  *service.FollowService
	Emails   *service.EmailService
	Links    model.Links
}

func InitRouter(d Deps) *gin.Engine {
	r := gin.Default()

	token := handler.NewTokenHandler(d.Users)
	auth := handler.NewAuthHandler(d.Users, d.Emails)
	user := handler.NewUserHandler(d.Users, d.Posts, d.Follows)
	post := handler.NewPostHandler(d.Posts, d.Comments, d.Links)
	follow := handler.NewFollowHandler(d.Users, d.Follows)

	v1 := r.Group("/api/v1")

	// 令牌接口走 Basic 认证，不挂 Bearer 中间件
	v1.POST("/tokens", token.Issue)

	// 账号相关接口，未确认邮箱的用户也可以访问
	authGroup := v1.Group("/auth")
	authGroup.Use(middleware.AuthMiddleware(d.Users))
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/reset", auth.RequestReset)
		authGroup.POST("/reset/:token", auth.ResetPassword)
	}
	memberAuth := authGroup.Group("")
	memberAuth.Use(middleware.RequireMember())
	{
		memberAuth.POST("/confirm", auth.ResendConfirmation)
		memberAuth.POST("/confirm/:token", auth.Confirm)
		memberAuth.POST("/change-password", auth.ChangePassword)
		memberAuth.POST("/change-email", auth.RequestEmailChange)
		memberAuth.POST("/change-email/:token", auth.ChangeEmail)
	}

	api := v1.Group("")
	api.Use(middleware.AuthMiddleware(d.Users), middleware.RequireConfirmed())
	{
		api.GET("/users/:id", user.Get)
		api.GET("/users/:id/posts", user.Posts)
		api.GET("/users/:id/timeline", user.Timeline)
		api.GET("/users/:id/relation", follow.Relation)

		api.GET("/posts/:id", post.Get)
		api.GET("/posts/:id/comments", post.Comments)
	}

	// 写接口需要登录
	write := api.Group("")
	write.Use(middleware.RequireMember())
	{
		write.POST("/posts", post.Create)
		write.PUT("/posts/:id", post.Edit)
		write.POST("/posts/:id/comments", post.AddComment)

		write.POST("/comments/:id/disable", post.Moderate(true))
		write.POST("/comments/:id/enable", post.Moderate(false))

		write.POST("/users/:id/follow", follow.Follow)
		write.DELETE("/users/:id/follow", follow.Unfollow)
	}

	return r
}
