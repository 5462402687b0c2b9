package handler

import (
	"context"
	"net/http"
	"strconv"

	"Lee_Blog/internal/middleware"
	"Lee_Blog/internal/model"
	"Lee_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	users   *service.UserService
	follows *service.FollowService
}

func NewFollowHandler(users *service.UserService, follows *service.FollowService) *FollowHandler {
	return &FollowHandler{users: users, follows: follows}
}

// Follow 当前用户关注 :id（幂等）
func (h *FollowHandler) Follow(c *gin.Context) {
	h.change(c, h.follows.Follow)
}

// Unfollow 当前用户取消关注 :id
func (h *FollowHandler) Unfollow(c *gin.Context) {
	h.change(c, h.follows.Unfollow)
}

func (h *FollowHandler) change(c *gin.Context, op func(context.Context, *model.User, *model.User) (bool, error)) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	target, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	me, _ := middleware.PrincipalFrom(c).Authenticated()
	changed, err := op(c.Request.Context(), me, target)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

// Relation 获取 :id 与 other 之间的关注关系
func (h *FollowHandler) Relation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	otherID, err := strconv.ParseUint(c.Query("other"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	u, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	other, err := h.users.GetUser(c.Request.Context(), otherID)
	if err != nil {
		writeError(c, err)
		return
	}
	following, err := h.follows.IsFollowing(c.Request.Context(), u, other)
	if err != nil {
		writeError(c, err)
		return
	}
	followedBy, err := h.follows.IsFollowedBy(c.Request.Context(), u, other)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following, "followed_by": followedBy})
}
