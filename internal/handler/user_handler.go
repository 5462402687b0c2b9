package handler

import (
	"net/http"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users   *service.UserService
	posts   *service.PostService
	follows *service.FollowService
}

func NewUserHandler(users *service.UserService, posts *service.PostService, follows *service.FollowService) *UserHandler {
	return &UserHandler{users: users, posts: posts, follows: follows}
}

// Get 用户公开信息
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	view, err := h.users.PublicView(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Posts 用户发布的文章
func (h *UserHandler) Posts(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	posts, err := h.posts.ListByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	h.writePosts(c, posts)
}

// Timeline 用户关注的人发布的文章
func (h *UserHandler) Timeline(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	// 先收集完再查评论数，遍历期间连接被结果集占用
	var posts []model.Post
	for post, err := range h.follows.FollowedPosts(c.Request.Context(), user) {
		if err != nil {
			writeError(c, err)
			return
		}
		posts = append(posts, post)
	}
	h.writePosts(c, posts)
}

func (h *UserHandler) writePosts(c *gin.Context, posts []model.Post) {
	views := make([]model.PostView, 0, len(posts))
	for i := range posts {
		v, err := h.posts.PublicView(c.Request.Context(), &posts[i])
		if err != nil {
			writeError(c, err)
			return
		}
		views = append(views, v)
	}
	c.JSON(http.StatusOK, gin.H{"posts": views, "count": len(views)})
}
