package auth

import (
	"errors"
	"time"

	"growthtrack/internal/app/ds"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// JWTClaims кастомные claims для JWT
type JWTClaims struct {
	UserID uint    `json:"user_id"`
	Login  string  `json:"login"`
	Role   ds.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService управляет JWT токенами
type JWTService struct {
	secret []byte
}

// NewJWTService создает новый сервис JWT
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// Generate создает JWT токен
func (j *JWTService) Generate(userID uint, login string, role ds.Role) (string, error) {
	claims := JWTClaims{
		UserID: userID,
		Login:  login,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// Validate проверяет и парсит JWT токен
func (j *JWTService) Validate(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return j.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
