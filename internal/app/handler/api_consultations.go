package handler

import (
	"net/http"

	"growthtrack/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/consultations
func (h *Handler) ApiListConsultations(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	q, err := h.parseListQuery(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	page, err := h.Service.ListConsultations(userID, q)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"consultations": page.Items,
		"page":          page.Page,
		"total":         page.Total,
		"totalPages":    page.TotalPages,
		"message":       "ok",
	})
}

// GET /api/consultations/:id
func (h *Handler) ApiGetConsultation(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	c, err := h.Service.GetConsultation(id, userID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"consultation": c, "message": "ok"})
}

// PUT /api/consultations/:id/complete
func (h *Handler) ApiCompleteConsultation(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	type requestBody struct {
		Summary string `json:"summary" binding:"required,min=1,max=2000"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	c, err := h.Service.CompleteConsultation(id, userID, body.Summary)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"consultation": c, "message": "consultation completed"})
}
