package middleware

import (
	"net/http"
	"strings"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/auth"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey = "user_id"
	LoginKey  = "login"
	RoleKey   = "role"
)

// AuthService содержит сервисы для аутентификации
type AuthService struct {
	JWT     *auth.JWTService
	Session *auth.SessionService
}

// AuthMiddleware проверяет аутентификацию через JWT или сессии
func AuthMiddleware(authSvc *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Пытаемся получить JWT из заголовка Authorization
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := authSvc.JWT.Validate(tokenString)
			if err == nil {
				c.Set(UserIDKey, claims.UserID)
				c.Set(LoginKey, claims.Login)
				c.Set(RoleKey, claims.Role)
				c.Next()
				return
			}
		}

		// Пытаемся получить сессию из cookie
		sessionID, err := c.Cookie("session_id")
		if err == nil && sessionID != "" && authSvc.Session != nil {
			sessionData, err := authSvc.Session.Get(c.Request.Context(), sessionID)
			if err == nil && sessionData != nil {
				c.Set(UserIDKey, sessionData.UserID)
				c.Set(LoginKey, sessionData.Login)
				c.Set(RoleKey, sessionData.Role)
				// Продлеваем сессию при каждом запросе
				_ = authSvc.Session.Extend(c.Request.Context(), sessionID)
				c.Next()
				return
			}
		}

		// Если не авторизован
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		c.Abort()
	}
}

// RequireRoles пускает дальше только перечисленные роли
func RequireRoles(roles ...ds.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetCurrentRole(c)
		if ok {
			for _, allowed := range roles {
				if role == allowed {
					c.Next()
					return
				}
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"message": "insufficient role"})
		c.Abort()
	}
}

// GetCurrentUserID получает ID текущего пользователя из контекста
func GetCurrentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetCurrentLogin получает логин текущего пользователя из контекста
func GetCurrentLogin(c *gin.Context) (string, bool) {
	login, exists := c.Get(LoginKey)
	if !exists {
		return "", false
	}
	return login.(string), true
}

// GetCurrentRole получает роль текущего пользователя из контекста
func GetCurrentRole(c *gin.Context) (ds.Role, bool) {
	role, exists := c.Get(RoleKey)
	if !exists {
		return "", false
	}
	return role.(ds.Role), true
}
