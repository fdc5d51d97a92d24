package handler

import (
	"net/http"
	"strconv"

	"growthtrack/internal/app/config"
	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/middleware"
	"growthtrack/internal/app/pkg/apperr"
	"growthtrack/internal/app/pkg/auth"
	"growthtrack/internal/app/pkg/storage"
	"growthtrack/internal/app/repository"
	"growthtrack/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Repository     *repository.Repository
	Service        *service.Service
	Config         *config.Config
	JWTService     *auth.JWTService
	SessionService *auth.SessionService
	Storage        *storage.MinIO
}

func NewHandler(r *repository.Repository, svc *service.Service, cfg *config.Config,
	jwtSvc *auth.JWTService, sessionSvc *auth.SessionService, store *storage.MinIO) *Handler {
	return &Handler{
		Repository:     r,
		Service:        svc,
		Config:         cfg,
		JWTService:     jwtSvc,
		SessionService: sessionSvc,
		Storage:        store,
	}
}

// RegisterHandler Функция, в которой мы отдельно регистрируем маршруты
func (h *Handler) RegisterHandler(router *gin.Engine) {
	authMw := middleware.AuthMiddleware(&middleware.AuthService{
		JWT:     h.JWTService,
		Session: h.SessionService,
	})

	api := router.Group("/api")

	api.POST("/users/register", h.ApiRegisterUser)
	api.POST("/users/login", h.ApiLogin)
	api.GET("/plans", h.ApiListPlans)

	authed := api.Group("", authMw)

	authed.POST("/users/logout", h.ApiLogout)
	authed.GET("/users/profile", h.ApiGetProfile)
	authed.PUT("/users/profile", h.ApiUpdateProfile)

	authed.POST("/children", middleware.RequireRoles(ds.RoleMember), h.ApiCreateChild)
	authed.GET("/children", h.ApiListChildren)
	authed.GET("/children/:id", h.ApiGetChild)
	authed.PUT("/children/:id", h.ApiUpdateChild)
	authed.DELETE("/children/:id", h.ApiDeleteChild)
	authed.POST("/children/:id/photo", h.ApiUploadChildPhoto)
	authed.POST("/children/:id/guardians", h.ApiAddGuardian)
	authed.POST("/children/:id/growth", h.ApiAddGrowthRecord)
	authed.GET("/children/:id/growth", h.ApiListGrowthRecords)
	authed.GET("/growth/export", middleware.RequireRoles(ds.RoleAdmin), h.ApiExportGrowthRecords)

	authed.POST("/requests", middleware.RequireRoles(ds.RoleMember), h.ApiCreateRequest)
	authed.GET("/requests", middleware.RequireRoles(ds.RoleAdmin), h.ApiListAllRequests)
	authed.GET("/requests/users/:id", h.ApiListUserRequests)
	authed.GET("/requests/:id", h.ApiGetRequest)
	authed.PUT("/requests/status/:id", h.ApiUpdateRequestStatus)
	authed.DELETE("/requests/:id", middleware.RequireRoles(ds.RoleMember), h.ApiDeleteRequest)

	authed.GET("/consultations", h.ApiListConsultations)
	authed.GET("/consultations/:id", h.ApiGetConsultation)
	authed.PUT("/consultations/:id/complete", middleware.RequireRoles(ds.RoleDoctor, ds.RoleAdmin), h.ApiCompleteConsultation)

	authed.GET("/posts", h.ApiListPosts)
	authed.POST("/posts", h.ApiCreatePost)
	authed.GET("/posts/:id", h.ApiGetPost)
	authed.DELETE("/posts/:id", h.ApiDeletePost)
	authed.GET("/posts/:id/comments", h.ApiListComments)
	authed.POST("/posts/:id/comments", h.ApiCreateComment)
	authed.DELETE("/comments/:id", h.ApiDeleteComment)

	authed.POST("/plans", middleware.RequireRoles(ds.RoleAdmin), h.ApiCreatePlan)
	authed.PUT("/plans/:id", middleware.RequireRoles(ds.RoleAdmin), h.ApiUpdatePlan)
	authed.POST("/subscriptions", middleware.RequireRoles(ds.RoleMember), h.ApiSubscribe)
	authed.GET("/subscriptions/my", h.ApiMySubscriptions)
}

// errorHandler для более удобного вывода ошибок
func (h *Handler) errorHandler(ctx *gin.Context, err error) {
	ae := apperr.From(err)
	if ae.Code >= http.StatusInternalServerError {
		logrus.Error(ae.Error())
	}
	ctx.JSON(ae.Code, gin.H{"message": ae.Message})
}

// validationError ошибки биндинга тела/запроса
func (h *Handler) validationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"message":          "validation failed",
		"validationErrors": err.Error(),
	})
}

// parseListQuery общий контракт query-параметров листинга.
func (h *Handler) parseListQuery(ctx *gin.Context) (service.ListQuery, error) {
	q := service.ListQuery{Page: 1, Size: 10}

	if v := ctx.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return q, apperr.BadRequest("page must be a positive integer")
		}
		q.Page = n
	}
	if v := ctx.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return q, apperr.BadRequest("size must be a positive integer")
		}
		q.Size = n
	}

	q.Search = ctx.Query("search")
	q.Status = ctx.Query("status")

	switch ctx.DefaultQuery("order", "ascending") {
	case "ascending":
	case "descending":
		q.OrderDesc = true
	default:
		return q, apperr.BadRequest("order must be ascending or descending")
	}

	// единственное поддерживаемое поле сортировки
	if v := ctx.DefaultQuery("sortBy", "date"); v != "date" {
		return q, apperr.BadRequest("sortBy supports only date")
	}

	return q, nil
}

func parseIDParam(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.BadRequest("invalid id")
	}
	return uint(id), nil
}
