package handler

import (
	"net/http"

	"Lee_Blog/internal/middleware"
	"Lee_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler 注册、邮箱确认、找回密码、修改密码和邮箱
type AuthHandler struct {
	users  *service.UserService
	emails *service.EmailService
}

func NewAuthHandler(users *service.UserService, emails *service.EmailService) *AuthHandler {
	return &AuthHandler{users: users, emails: emails}
}

// RegisterReq 注册请求体
type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ResetReq 凭令牌重置密码
type ResetReq struct {
	Email       string `json:"email" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type emailReq struct {
	Email string `json:"email" binding:"required"`
}

// Register 注册并发送确认邮件
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if err = h.emails.SendConfirmation(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusAccepted, gin.H{"msg": "registered, confirmation email failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "ok"})
}

// Confirm 确认邮箱，令牌主体必须是当前用户
func (h *AuthHandler) Confirm(c *gin.Context) {
	user, _ := middleware.PrincipalFrom(c).Authenticated()
	if err := h.users.Confirm(c.Request.Context(), user, c.Param("token")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "account confirmed"})
}

// ResendConfirmation 重新发送确认邮件
func (h *AuthHandler) ResendConfirmation(c *gin.Context) {
	user, _ := middleware.PrincipalFrom(c).Authenticated()
	if user.Confirmed {
		c.JSON(http.StatusOK, gin.H{"msg": "account already confirmed"})
		return
	}
	if err := h.emails.SendConfirmation(c.Request.Context(), user); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"msg": "confirmation email sent"})
}

// RequestReset 发送重置密码邮件，邮箱是否存在都返回同样的结果
func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req emailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.emails.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"msg": "reset email sent"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	user, err := h.users.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// 不区分邮箱不存在和令牌无效
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid or expired token"})
		return
	}
	if err = h.users.ResetPassword(c.Request.Context(), user, c.Param("token"), req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "reset password successfully"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	user, _ := middleware.PrincipalFrom(c).Authenticated()
	if err := h.users.ChangePassword(c.Request.Context(), user, req.OldPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "change password successfully"})
}

// RequestEmailChange 向新邮箱发送确认链接
func (h *AuthHandler) RequestEmailChange(c *gin.Context) {
	var req emailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	user, _ := middleware.PrincipalFrom(c).Authenticated()
	if err := h.emails.SendEmailChange(c.Request.Context(), user, req.Email); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"msg": "confirmation email sent"})
}

func (h *AuthHandler) ChangeEmail(c *gin.Context) {
	user, _ := middleware.PrincipalFrom(c).Authenticated()
	if err := h.users.ChangeEmail(c.Request.Context(), user, c.Param("token")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "email address updated"})
}
