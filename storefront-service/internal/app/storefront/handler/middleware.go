package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims структура claims для JWT токена
type JWTClaims struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	RoleID      int      `json:"role_id"`
	RoleName    string   `json:"role_name"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// AuthMiddleware проверяет JWT токен в запросах для Gin
type AuthMiddleware struct {
	jwtSecret string
}

// NewAuthMiddleware создает новый middleware для аутентификации
func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate проверяет JWT токен и добавляет данные пользователя в контекст Gin
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, errMsg := m.parseToken(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errMsg})
			c.Abort()
			return
		}

		// Добавляем данные пользователя в контекст Gin
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role_id", claims.RoleID)
		c.Set("role_name", claims.RoleName)
		c.Set("permissions", claims.Permissions)

		c.Next()
	}
}

// RequireAdmin пропускает только пользователей с ролью admin.
// Применяется после Authenticate
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleName, exists := c.Get("role_name")
		if !exists || roleName != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// parseToken извлекает и валидирует JWT из заголовка Authorization.
// Возвращает nil claims и текст ошибки при любой проблеме с токеном
func (m *AuthMiddleware) parseToken(c *gin.Context) (*JWTClaims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "Authorization header required"
	}

	// Проверяем формат "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "Invalid authorization header format"
	}

	token, err := jwt.ParseWithClaims(parts[1], &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(m.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, "Invalid or expired token"
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, "Invalid token claims"
	}

	return claims, ""
}
