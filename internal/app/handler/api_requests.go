package handler

import (
	"net/http"

	"growthtrack/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

// POST /api/requests
func (h *Handler) ApiCreateRequest(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	type requestBody struct {
		ChildIDs []uint `json:"childIds" binding:"required,min=1"`
		DoctorID uint   `json:"doctorId" binding:"required"`
		Title    string `json:"title" binding:"required,min=6,max=100"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	req, err := h.Service.CreateRequest(userID, body.DoctorID, body.ChildIDs, body.Title)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"request": req, "message": "request created"})
}

// GET /api/requests — только админ, удаленные включены
func (h *Handler) ApiListAllRequests(ctx *gin.Context) {
	q, err := h.parseListQuery(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	page, err := h.Service.ListAllRequests(q)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"requests":   page.Items,
		"page":       page.Page,
		"total":      page.Total,
		"totalPages": page.TotalPages,
		"message":    "ok",
	})
}

// GET /api/requests/users/:id
func (h *Handler) ApiListUserRequests(ctx *gin.Context) {
	requesterID, _ := middleware.GetCurrentUserID(ctx)

	userID, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	q, err := h.parseListQuery(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	page, err := h.Service.ListUserRequests(userID, requesterID, q, ctx.Query("as"))
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"requests":   page.Items,
		"page":       page.Page,
		"total":      page.Total,
		"totalPages": page.TotalPages,
		"message":    "ok",
	})
}

// GET /api/requests/:id
func (h *Handler) ApiGetRequest(ctx *gin.Context) {
	requesterID, _ := middleware.GetCurrentUserID(ctx)

	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	req, err := h.Service.GetRequest(id, requesterID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"request": req, "message": "ok"})
}

// PUT /api/requests/status/:id
func (h *Handler) ApiUpdateRequestStatus(ctx *gin.Context) {
	requesterID, _ := middleware.GetCurrentUserID(ctx)

	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	type requestBody struct {
		Status string `json:"status" binding:"required"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	req, err := h.Service.UpdateRequestStatus(id, requesterID, body.Status)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"request": req, "message": "status updated"})
}

// DELETE /api/requests/:id — мягкое удаление владельцем
func (h *Handler) ApiDeleteRequest(ctx *gin.Context) {
	requesterID, _ := middleware.GetCurrentUserID(ctx)

	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	req, err := h.Service.DeleteRequest(id, requesterID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"request": req, "message": "request deleted"})
}
