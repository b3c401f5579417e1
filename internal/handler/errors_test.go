package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"example.com/payment-system/internal/domain"
)

func TestHandleDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "невалидная сумма — 400",
			err:        domain.ErrInvalidAmount,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_argument",
		},
		{
			name:       "невалидная страна — 400",
			err:        domain.ErrInvalidCountry,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_argument",
		},
		{
			name:       "обёрнутая доменная ошибка сохраняет маппинг",
			err:        fmt.Errorf("%w: %q", domain.ErrInvalidStatus, "BOGUS"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_argument",
		},
		{
			name:       "не найден — 404",
			err:        domain.ErrPaymentNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "недопустимый переход — 409",
			err:        domain.ErrInvalidTransition,
			wantStatus: http.StatusConflict,
			wantCode:   "invalid_transition",
		},
		{
			name:       "неизвестная ошибка — 500",
			err:        errors.New("что-то сломалось"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
		{
			name:       "nil ошибка — 500 (баг в вызывающем коде)",
			err:        nil,
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/payments", nil)

			HandleDomainError(c, tt.err, "TestMethod")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
		})
	}
}
