package handler

import (
	"net/http"

	"Lee_Blog/internal/middleware"
	"Lee_Blog/internal/model"
	"Lee_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts    *service.PostService
	comments *service.CommentService
	links    model.Links
}

func NewPostHandler(posts *service.PostService, comments *service.CommentService, links model.Links) *PostHandler {
	return &PostHandler{posts: posts, comments: comments, links: links}
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	post, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	h.writePost(c, http.StatusOK, post)
}

// Create 发布文章，需要 WRITE_ARTICLES 权限
func (h *PostHandler) Create(c *gin.Context) {
	var req bodyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	post, err := h.posts.CreatePost(c.Request.Context(), middleware.PrincipalFrom(c), req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", h.links.Post(post.ID))
	h.writePost(c, http.StatusCreated, post)
}

// Edit 作者或管理员修改正文
func (h *PostHandler) Edit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req bodyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	post, err := h.posts.EditPost(c.Request.Context(), middleware.PrincipalFrom(c), id, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	h.writePost(c, http.StatusOK, post)
}

// Comments 文章下的评论
func (h *PostHandler) Comments(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	post, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	comments, err := h.comments.ListByPost(c.Request.Context(), post.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	views := make([]model.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, comments[i].ToPublicView(h.links))
	}
	c.JSON(http.StatusOK, gin.H{"comments": views, "count": len(views)})
}

// AddComment 发表评论，需要 COMMENT 权限
func (h *PostHandler) AddComment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req bodyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	comment, err := h.comments.AddComment(c.Request.Context(), middleware.PrincipalFrom(c), id, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", h.links.PostComments(id))
	c.JSON(http.StatusCreated, comment.ToPublicView(h.links))
}

func (h *PostHandler) writePost(c *gin.Context, status int, post *model.Post) {
	view, err := h.posts.PublicView(c.Request.Context(), post)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, view)
}

// Moderate 屏蔽或恢复评论，需要 MODERATE_COMMENTS 权限
func (h *PostHandler) Moderate(disabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		comment, err := h.comments.SetDisabled(c.Request.Context(), middleware.PrincipalFrom(c), id, disabled)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, comment.ToPublicView(h.links))
	}
}
