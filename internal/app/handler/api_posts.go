package handler

import (
	"net/http"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/middleware"
	"growthtrack/internal/app/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// GET /api/posts
func (h *Handler) ApiListPosts(ctx *gin.Context) {
	q, err := h.parseListQuery(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	posts, total, err := h.Repository.ListPosts(q.Search, q.Page, q.Size, q.OrderDesc)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	pages := int(total) / q.Size
	if int(total)%q.Size != 0 {
		pages++
	}
	ctx.JSON(http.StatusOK, gin.H{
		"posts":      posts,
		"page":       q.Page,
		"total":      total,
		"totalPages": pages,
		"message":    "ok",
	})
}

// POST /api/posts
func (h *Handler) ApiCreatePost(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	type requestBody struct {
		Title   string `json:"title" binding:"required,min=3,max=150"`
		Content string `json:"content" binding:"required,min=1"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	post := &ds.Post{AuthorID: userID, Title: body.Title, Content: body.Content}
	if err := h.Repository.CreatePost(post); err != nil {
		h.errorHandler(ctx, err)
		return
	}

	created, err := h.Repository.GetPostByID(post.ID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"post": created, "message": "post created"})
}

// GET /api/posts/:id
func (h *Handler) ApiGetPost(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	post, err := h.Repository.GetPostByID(id)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"post": post, "message": "ok"})
}

// DELETE /api/posts/:id — автор или админ
func (h *Handler) ApiDeletePost(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)
	role, _ := middleware.GetCurrentRole(ctx)

	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	post, err := h.Repository.GetPostByID(id)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	if post.AuthorID != userID && role != ds.RoleAdmin {
		h.errorHandler(ctx, apperr.Forbidden("only the author or an admin may delete the post"))
		return
	}

	if err := h.Repository.SoftDeletePost(id); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": id, "message": "post deleted"})
}

// GET /api/posts/:id/comments
func (h *Handler) ApiListComments(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	// пост должен существовать и быть неудаленным
	if _, err := h.Repository.GetPostByID(id); err != nil {
		h.errorHandler(ctx, err)
		return
	}

	comments, err := h.Repository.ListCommentsByPost(id)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"comments": comments, "message": "ok"})
}

// POST /api/posts/:id/comments
func (h *Handler) ApiCreateComment(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	if _, err := h.Repository.GetPostByID(id); err != nil {
		h.errorHandler(ctx, err)
		return
	}

	type requestBody struct {
		Content string `json:"content" binding:"required,min=1,max=2000"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	comment := &ds.Comment{PostID: id, AuthorID: userID, Content: body.Content}
	if err := h.Repository.CreateComment(comment); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"comment": comment, "message": "comment created"})
}

// DELETE /api/comments/:id — автор или админ
func (h *Handler) ApiDeleteComment(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)
	role, _ := middleware.GetCurrentRole(ctx)

	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	comment, err := h.Repository.GetCommentByID(id)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	if comment.AuthorID != userID && role != ds.RoleAdmin {
		h.errorHandler(ctx, apperr.Forbidden("only the author or an admin may delete the comment"))
		return
	}

	if err := h.Repository.SoftDeleteComment(id); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": id, "message": "comment deleted"})
}
