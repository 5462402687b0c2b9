package handler

import (
	"net/http"
	"time"

	"Lee_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthTokenTTL API 令牌有效期
const AuthTokenTTL = time.Hour

type TokenHandler struct {
	users *service.UserService
}

func NewTokenHandler(users *service.UserService) *TokenHandler {
	return &TokenHandler{users: users}
}

// Issue 用 Basic 认证的邮箱和密码换取 API 令牌
func (h *TokenHandler) Issue(c *gin.Context) {
	email, password, ok := c.Request.BasicAuth()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing credentials"})
		return
	}
	user, err := h.users.Login(c.Request.Context(), email, password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid credentials"})
		return
	}
	token, err := h.users.GenerateAuthToken(user, AuthTokenTTL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expiration": int(AuthTokenTTL.Seconds())})
}
