package handler

import (
	"errors"
	"net/http"
	"strconv"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/pkg"
	"Lee_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

// writeError 业务错误映射为 HTTP 状态码
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, model.ErrEmptyBody), errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	case errors.Is(err, pkg.ErrTokenInvalid), errors.Is(err, service.ErrSubjectMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid or expired token"})
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
}

func paramID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
		return 0, false
	}
	return id, true
}

type bodyReq struct {
	Body string `json:"body"`
}
