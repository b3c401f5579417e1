// Package middleware содержит HTTP middleware платёжного сервиса.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"example.com/payment-system/pkg/jwt"
	"example.com/payment-system/pkg/logger"
)

// TokenValidator — интерфейс для валидации токенов.
// Позволяет мокировать в тестах вместо реального валидатора.
type TokenValidator interface {
	Validate(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware — middleware для проверки JWT токенов.
// Проверяет подпись, срок действия, издателя и blacklist.
type AuthMiddleware struct {
	validator TokenValidator
	adminRole string
}

// NewAuthMiddleware создаёт новый middleware для аутентификации.
func NewAuthMiddleware(validator TokenValidator, adminRole string) *AuthMiddleware {
	if adminRole == "" {
		adminRole = "admin"
	}
	return &AuthMiddleware{
		validator: validator,
		adminRole: adminRole,
	}
}

// Handle возвращает Gin handler function для аутентификации.
func (m *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log := logger.FromContext(ctx)

		token := extractBearerToken(c)
		if token == "" {
			log.Debug().Msg("Отсутствует токен авторизации")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Требуется авторизация",
			})
			return
		}

		claims, err := m.validator.Validate(ctx, token)
		if err != nil {
			log.Warn().Err(err).Msg("Ошибка валидации токена")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Невалидный токен",
			})
			return
		}

		// Сохраняем данные пользователя в контекст Gin
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		log.Debug().
			Str("user_id", claims.UserID).
			Str("role", claims.Role).
			Msg("Пользователь аутентифицирован")

		c.Next()
	}
}

// RequireAdmin возвращает handler, пропускающий только администраторов.
// Используется после Handle: роль берётся из Gin context.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != m.adminRole {
			log := logger.FromContext(c.Request.Context())
			log.Warn().
				Str("role", role).
				Msg("Недостаточно прав для операции")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Операция доступна только администратору",
			})
			return
		}

		c.Next()
	}
}

// extractBearerToken извлекает токен из заголовка Authorization.
func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
