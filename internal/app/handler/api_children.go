package handler

import (
	"net/http"
	"time"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

// POST /api/children
func (h *Handler) ApiCreateChild(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	type requestBody struct {
		Name      string    `json:"name" binding:"required,min=1,max=100"`
		BirthDate time.Time `json:"birth_date" binding:"required"`
		Gender    string    `json:"gender" binding:"omitempty,oneof=male female"`
		Relation  string    `json:"relation" binding:"max=50"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	child := &ds.Child{
		Name:      body.Name,
		BirthDate: body.BirthDate,
		Gender:    body.Gender,
	}
	created, err := h.Service.CreateChild(userID, child, body.Relation)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"child": created, "message": "child created"})
}

// GET /api/children — свои дети; админ с ?search= видит всех
func (h *Handler) ApiListChildren(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)
	role, _ := middleware.GetCurrentRole(ctx)

	if role == ds.RoleAdmin {
		children, err := h.Repository.SearchChildren(ctx.Query("search"))
		if err != nil {
			h.errorHandler(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"children": children, "message": "ok"})
		return
	}

	children, err := h.Repository.ListChildrenByGuardian(userID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"children": children, "message": "ok"})
}

// GET /api/children/:id
func (h *Handler) ApiGetChild(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	child, err := h.Service.GetChild(id, userID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"child": child, "message": "ok"})
}

// PUT /api/children/:id
func (h *Handler) ApiUpdateChild(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	type requestBody struct {
		Name      *string    `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
		BirthDate *time.Time `json:"birth_date,omitempty"`
		Gender    *string    `json:"gender,omitempty" binding:"omitempty,oneof=male female"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	fields := map[string]interface{}{}
	if body.Name != nil {
		fields["name"] = *body.Name
	}
	if body.BirthDate != nil {
		fields["birth_date"] = *body.BirthDate
	}
	if body.Gender != nil {
		fields["gender"] = *body.Gender
	}

	child, err := h.Service.UpdateChild(id, userID, fields)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"child": child, "message": "child updated"})
}

// DELETE /api/children/:id
func (h *Handler) ApiDeleteChild(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	if err := h.Service.DeleteChild(id, userID); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": id, "message": "child deleted"})
}

// POST /api/children/:id/photo — загрузка фото в MinIO
func (h *Handler) ApiUploadChildPhoto(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	// проверка доступа та же, что и для чтения
	if _, err := h.Service.GetChild(id, userID); err != nil {
		h.errorHandler(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		h.validationError(ctx, err)
		return
	}

	key, publicURL, err := h.Storage.UploadChildPhoto(ctx.Request.Context(), fileHeader, id)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	child, err := h.Service.UpdateChild(id, userID, map[string]interface{}{
		"photo_key": key,
		"photo_url": publicURL,
	})
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"child": child, "message": "photo uploaded"})
}

// POST /api/children/:id/guardians
func (h *Handler) ApiAddGuardian(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	type requestBody struct {
		UserID   uint   `json:"user_id" binding:"required"`
		Relation string `json:"relation" binding:"max=50"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	if err := h.Service.AddGuardian(id, userID, body.UserID, body.Relation); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "guardian added"})
}
