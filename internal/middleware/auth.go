package middleware

import (
	"net/http"
	"strings"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

const ContextPrincipalKey = "principal"

// AuthMiddleware 解析 Bearer 令牌并注入 Principal，没有 Authorization 头时按游客处理
func AuthMiddleware(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(ContextPrincipalKey, model.Principal(model.Guest{}))
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			return
		}

		user, err := users.AuthenticateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			return
		}
		// 每次通过认证都刷新最后访问时间
		if err = users.Ping(c.Request.Context(), user); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
			return
		}
		p, err := users.Principal(c.Request.Context(), user)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
			return
		}
		c.Set(ContextPrincipalKey, p)
		c.Next()
	}
}

// RequireMember 只允许登录用户通过
func RequireMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFrom(c).Authenticated(); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireConfirmed 拒绝未确认邮箱的登录用户，游客放行
func RequireConfirmed() gin.HandlerFunc {
	return func(c *gin.Context) {
		if u, ok := PrincipalFrom(c).Authenticated(); ok && !u.Confirmed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "unconfirmed account"})
			return
		}
		c.Next()
	}
}

// PrincipalFrom 取出当前请求的 Principal，未经过中间件时为游客
func PrincipalFrom(c *gin.Context) model.Principal {
	if v, ok := c.Get(ContextPrincipalKey); ok {
		if p, ok2 := v.(model.Principal); ok2 {
			return p
		}
	}
	return model.Guest{}
}
