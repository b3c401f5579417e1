// Package handler содержит HTTP обработчики для REST API платежей.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/payment-system/internal/domain"
	"example.com/payment-system/internal/service"
	"example.com/payment-system/pkg/logger"
)

// PaymentHandler — обработчик платежей.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler создаёт новый обработчик платежей.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// === Request/Response DTOs ===

// CreatePaymentRequest — запрос на создание платежа.
type CreatePaymentRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Country string  `json:"country" binding:"required"`
	IsVip   bool    `json:"is_vip"`
}

// PaymentResponse — информация о платеже в ответе.
type PaymentResponse struct {
	ID               string `json:"id"`
	OriginalPrice    int64  `json:"original_price"`
	DiscountedAmount *int64 `json:"discounted_amount,omitempty"`
	FinalAmount      *int64 `json:"final_amount,omitempty"`
	Country          string `json:"country"`
	IsVip            bool   `json:"is_vip"`
	Status           string `json:"status"`
	CreatedAt        int64  `json:"created_at"`
	UpdatedAt        int64  `json:"updated_at"`
}

// ListPaymentsResponse — ответ на запрос списка платежей.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int               `json:"total"`
}

// DeletePaymentResponse — ответ на удаление платежа.
type DeletePaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// toPaymentResponse конвертирует доменную сущность в response DTO.
func toPaymentResponse(p *domain.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:            p.ID,
		OriginalPrice: p.OriginalPrice.Amount(),
		Country:       p.Country.String(),
		IsVip:         p.IsVip,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt.Unix(),
		UpdatedAt:     p.UpdatedAt.Unix(),
	}

	if p.DiscountedAmount != nil {
		amount := p.DiscountedAmount.Amount()
		resp.DiscountedAmount = &amount
	}
	if p.FinalAmount != nil {
		amount := p.FinalAmount.Amount()
		resp.FinalAmount = &amount
	}

	return resp
}

// === Handlers ===

// CreatePayment создаёт и завершает платёж.
// POST /api/v1/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debug().Err(err).Msg("Невалидный запрос на создание платежа")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Невалидные данные запроса",
		})
		return
	}

	payment, err := h.paymentService.CreatePayment(ctx, service.CreatePaymentRequest{
		Amount:  req.Amount,
		Country: req.Country,
		IsVip:   req.IsVip,
	})
	if err != nil {
		HandleDomainError(c, err, "CreatePayment")
		return
	}

	c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

// RefundPayment выполняет возврат платежа.
// POST /api/v1/payments/:id/refund
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	ctx := c.Request.Context()
	paymentID := c.Param("id")

	payment, err := h.paymentService.RefundPayment(ctx, paymentID)
	if err != nil {
		HandleDomainError(c, err, "RefundPayment")
		return
	}

	c.JSON(http.StatusOK, toPaymentResponse(payment))
}

// GetPayment возвращает платёж по ID.
// GET /api/v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	ctx := c.Request.Context()
	paymentID := c.Param("id")

	payment, err := h.paymentService.GetPayment(ctx, paymentID)
	if err != nil {
		HandleDomainError(c, err, "GetPayment")
		return
	}

	c.JSON(http.StatusOK, toPaymentResponse(payment))
}

// ListPayments возвращает список платежей.
// GET /api/v1/payments?status=COMPLETED
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	ctx := c.Request.Context()
	status := c.Query("status")

	payments, err := h.paymentService.ListPayments(ctx, status)
	if err != nil {
		HandleDomainError(c, err, "ListPayments")
		return
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, toPaymentResponse(p))
	}

	c.JSON(http.StatusOK, ListPaymentsResponse{
		Payments: responses,
		Total:    len(responses),
	})
}

// DeletePayment удаляет платёж.
// DELETE /api/v1/payments/:id (только администратор)
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	ctx := c.Request.Context()
	paymentID := c.Param("id")

	if err := h.paymentService.DeletePayment(ctx, paymentID); err != nil {
		HandleDomainError(c, err, "DeletePayment")
		return
	}

	c.JSON(http.StatusOK, DeletePaymentResponse{
		Success: true,
		Message: "Платёж удалён",
	})
}
