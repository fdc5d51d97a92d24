package handler

import (
	"net/http"
	"time"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/plans — публичный список тарифов
func (h *Handler) ApiListPlans(ctx *gin.Context) {
	plans, err := h.Repository.ListActivePlans()
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"plans": plans, "message": "ok"})
}

// POST /api/plans — только админ
func (h *Handler) ApiCreatePlan(ctx *gin.Context) {
	type requestBody struct {
		Name         string `json:"name" binding:"required,min=3,max=100"`
		MaxChildren  int    `json:"max_children" binding:"required,gte=1"`
		PriceCents   int64  `json:"price_cents" binding:"gte=0"`
		DurationDays int    `json:"duration_days" binding:"required,gte=1"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	plan := &ds.MembershipPlan{
		Name:         body.Name,
		MaxChildren:  body.MaxChildren,
		PriceCents:   body.PriceCents,
		DurationDays: body.DurationDays,
		IsActive:     true,
	}
	if err := h.Repository.CreatePlan(plan); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"plan": plan, "message": "plan created"})
}

// PUT /api/plans/:id — только админ
func (h *Handler) ApiUpdatePlan(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	type requestBody struct {
		Name         *string `json:"name,omitempty" binding:"omitempty,min=3,max=100"`
		MaxChildren  *int    `json:"max_children,omitempty" binding:"omitempty,gte=1"`
		PriceCents   *int64  `json:"price_cents,omitempty" binding:"omitempty,gte=0"`
		DurationDays *int    `json:"duration_days,omitempty" binding:"omitempty,gte=1"`
		IsActive     *bool   `json:"is_active,omitempty"`
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
	if body.MaxChildren != nil {
		fields["max_children"] = *body.MaxChildren
	}
	if body.PriceCents != nil {
		fields["price_cents"] = *body.PriceCents
	}
	if body.DurationDays != nil {
		fields["duration_days"] = *body.DurationDays
	}
	if body.IsActive != nil {
		fields["is_active"] = *body.IsActive
	}

	if err := h.Repository.UpdatePlan(id, fields); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"updated": id, "message": "plan updated"})
}

// POST /api/subscriptions — оформить подписку; списание фиксируется
// в PaidCents, интеграции с платежным шлюзом нет.
func (h *Handler) ApiSubscribe(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	type requestBody struct {
		PlanID uint `json:"plan_id" binding:"required"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	plan, err := h.Repository.GetPlanByID(body.PlanID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	now := time.Now()
	sub := &ds.Subscription{
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    ds.SubscriptionActive,
		StartsAt:  now,
		ExpiresAt: now.AddDate(0, 0, plan.DurationDays),
		PaidCents: plan.PriceCents,
	}
	if err := h.Repository.CreateSubscription(sub); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"subscription": sub, "message": "subscribed"})
}

// GET /api/subscriptions/my
func (h *Handler) ApiMySubscriptions(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	subs, err := h.Repository.ListSubscriptionsByUser(userID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"subscriptions": subs, "message": "ok"})
}
