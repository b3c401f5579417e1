package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"example.com/payment-system/pkg/jwt"
)

// mockValidator — мок валидатора токенов.
type mockValidator struct {
	claims *jwt.Claims
	err    error
}

func (m *mockValidator) Validate(_ context.Context, _ string) (*jwt.Claims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

func authRequest(mw *AuthMiddleware, authHeader string, handlers ...gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/payments/123", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	mw.Handle()(c)
	for _, h := range handlers {
		if c.IsAborted() {
			break
		}
		h(c)
	}
	return w
}

func TestAuthMiddleware_Handle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("валидный токен пропускается", func(t *testing.T) {
		mw := NewAuthMiddleware(&mockValidator{
			claims: &jwt.Claims{UserID: "user-1", Role: "admin"},
		}, "admin")

		w := authRequest(mw, "Bearer valid-token")

		assert.NotEqual(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("отсутствие токена — 401", func(t *testing.T) {
		mw := NewAuthMiddleware(&mockValidator{}, "admin")

		w := authRequest(mw, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthorized")
	})

	t.Run("невалидный формат заголовка — 401", func(t *testing.T) {
		mw := NewAuthMiddleware(&mockValidator{
			claims: &jwt.Claims{UserID: "user-1"},
		}, "admin")

		w := authRequest(mw, "Token abc")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ошибка валидации — 401", func(t *testing.T) {
		mw := NewAuthMiddleware(&mockValidator{
			err: errors.New("токен просрочен"),
		}, "admin")

		w := authRequest(mw, "Bearer expired-token")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("администратор проходит", func(t *testing.T) {
		mw := NewAuthMiddleware(&mockValidator{
			claims: &jwt.Claims{UserID: "user-1", Role: "admin"},
		}, "admin")

		called := false
		w := authRequest(mw, "Bearer token", mw.RequireAdmin(), func(c *gin.Context) {
			called = true
		})

		assert.NotEqual(t, http.StatusForbidden, w.Code)
		assert.True(t, called, "handler должен быть вызван")
	})

	t.Run("обычный пользователь — 403", func(t *testing.T) {
		mw := NewAuthMiddleware(&mockValidator{
			claims: &jwt.Claims{UserID: "user-2", Role: "customer"},
		}, "admin")

		called := false
		w := authRequest(mw, "Bearer token", mw.RequireAdmin(), func(c *gin.Context) {
			called = true
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, called, "handler не должен быть вызван")
	})
}

func TestExtractBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"стандартный Bearer", "Bearer abc123", "abc123"},
		{"регистронезависимый префикс", "bearer abc123", "abc123"},
		{"пустой заголовок", "", ""},
		{"без префикса", "abc123", ""},
		{"чужая схема", "Basic dXNlcjpwYXNz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			assert.Equal(t, tt.expected, extractBearerToken(c))
		})
	}
}
