// Package handler содержит HTTP обработчики для REST API платежей.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/payment-system/internal/domain"
	"example.com/payment-system/pkg/logger"
)

// ErrorResponse — стандартный формат ошибки API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleDomainError преобразует доменную ошибку в HTTP ответ.
// Используется всеми handlers для единообразной обработки ошибок.
// ВАЖНО: err не должен быть nil — это баг в вызывающем коде.
func HandleDomainError(c *gin.Context, err error, method string) {
	// Guard: nil ошибка — баг в вызывающем коде, логируем и возвращаем 500.
	if err == nil {
		logger.Error().Str("method", method).Msg("HandleDomainError вызван с nil ошибкой — баг в коде")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Внутренняя ошибка сервера",
		})
		return
	}

	log := logger.FromContext(c.Request.Context())

	// Маппинг доменных ошибок в HTTP статусы.
	var httpStatus int
	var errorCode string

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidCountry),
		errors.Is(err, domain.ErrInvalidStatus):
		httpStatus = http.StatusBadRequest
		errorCode = "invalid_argument"
	case errors.Is(err, domain.ErrPaymentNotFound):
		httpStatus = http.StatusNotFound
		errorCode = "not_found"
	case errors.Is(err, domain.ErrInvalidTransition):
		httpStatus = http.StatusConflict
		errorCode = "invalid_transition"
	default:
		httpStatus = http.StatusInternalServerError
		errorCode = "internal_error"
		log.Error().
			Err(err).
			Str("method", method).
			Msg("Внутренняя ошибка")
	}

	c.JSON(httpStatus, ErrorResponse{
		Error:   errorCode,
		Message: err.Error(),
	})
}
