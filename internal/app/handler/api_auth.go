package handler

import (
	"net/http"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/middleware"
	"growthtrack/internal/app/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ApiRegisterUser регистрация нового участника
// @Summary Регистрация нового участника
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{login=string,password=string,full_name=string} true "Данные для регистрации"
// @Success 200 {object} object{user=ds.User,token=string,session_id=string}
// @Failure 400 {object} object{message=string}
// @Router /api/users/register [post]
func (h *Handler) ApiRegisterUser(ctx *gin.Context) {
	type requestBody struct {
		Login    string `json:"login" binding:"required,min=3,max=50"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"full_name" binding:"max=150"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	// Логин должен быть свободен
	if existing, err := h.Repository.GetUserByLogin(body.Login); err == nil && existing != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "user already exists"})
		return
	}

	// Хешируем пароль
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	// Самостоятельная регистрация дает только роль участника;
	// врачей и админов заводит администратор или seed.
	user := &ds.User{
		Login:    body.Login,
		Password: string(hashedPassword),
		Role:     ds.RoleMember,
		FullName: body.FullName,
	}

	if err := h.Repository.CreateUser(user); err != nil {
		h.errorHandler(ctx, err)
		return
	}

	token, sessionID, err := h.issueCredentials(ctx, user)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":       user,
		"token":      token,
		"session_id": sessionID,
		"message":    "registered",
	})
}

// ApiLogin вход пользователя
// @Summary Вход пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{login=string,password=string} true "Данные для входа"
// @Success 200 {object} object{user=ds.User,token=string,session_id=string}
// @Failure 401 {object} object{message=string}
// @Router /api/users/login [post]
func (h *Handler) ApiLogin(ctx *gin.Context) {
	type requestBody struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	user, err := h.Repository.GetUserByLogin(body.Login)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}

	token, sessionID, err := h.issueCredentials(ctx, user)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":       user,
		"token":      token,
		"session_id": sessionID,
		"message":    "logged in",
	})
}

// issueCredentials генерирует JWT и redis-сессию с cookie.
func (h *Handler) issueCredentials(ctx *gin.Context, user *ds.User) (token, sessionID string, err error) {
	token, err = h.JWTService.Generate(user.ID, user.Login, user.Role)
	if err != nil {
		return "", "", err
	}

	if h.SessionService != nil {
		sessionID = uuid.New().String()
		sessionData := auth.SessionData{
			UserID: user.ID,
			Login:  user.Login,
			Role:   user.Role,
		}
		if err := h.SessionService.Create(ctx.Request.Context(), sessionID, sessionData); err != nil {
			return "", "", err
		}
		ctx.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	}
	return token, sessionID, nil
}

// ApiLogout выход пользователя
// @Summary Выход пользователя
// @Tags auth
// @Security BearerAuth
// @Security CookieAuth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /api/users/logout [post]
func (h *Handler) ApiLogout(ctx *gin.Context) {
	// Удаляем сессию из Redis
	if sessionID, err := ctx.Cookie("session_id"); err == nil && sessionID != "" && h.SessionService != nil {
		_ = h.SessionService.Delete(ctx.Request.Context(), sessionID)
	}

	// Удаляем cookie
	ctx.SetCookie("session_id", "", -1, "/", "", false, true)

	ctx.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ApiGetProfile получение профиля текущего пользователя
// @Summary Получение профиля текущего пользователя
// @Tags auth
// @Security BearerAuth
// @Security CookieAuth
// @Produce json
// @Success 200 {object} object{user=ds.User}
// @Failure 401 {object} object{message=string}
// @Router /api/users/profile [get]
func (h *Handler) ApiGetProfile(ctx *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user, "message": "ok"})
}

// ApiUpdateProfile обновление профиля текущего пользователя
// @Summary Обновление профиля
// @Tags auth
// @Security BearerAuth
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body object{login=string,full_name=string} true "Новые данные профиля"
// @Success 200 {object} object{user=ds.User}
// @Failure 400 {object} object{message=string}
// @Router /api/users/profile [put]
func (h *Handler) ApiUpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	type requestBody struct {
		Login    *string `json:"login,omitempty"`
		FullName *string `json:"full_name,omitempty"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	fields := map[string]interface{}{}
	if body.Login != nil {
		fields["login"] = *body.Login
	}
	if body.FullName != nil {
		fields["full_name"] = *body.FullName
	}

	if len(fields) > 0 {
		if err := h.Repository.UpdateUser(userID, fields); err != nil {
			h.errorHandler(ctx, err)
			return
		}
	}

	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"user": user, "message": "profile updated"})
}
