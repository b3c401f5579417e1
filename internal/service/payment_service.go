// Package service содержит бизнес-логику жизненного цикла платежа.
package service

import (
	"context"
	"fmt"

	"example.com/payment-system/internal/domain"
	"example.com/payment-system/internal/event"
	"example.com/payment-system/internal/policy"
	"example.com/payment-system/internal/repository"
	"example.com/payment-system/pkg/logger"
)

// =============================================================================
// Интерфейс сервиса
// =============================================================================

// CreatePaymentRequest — запрос на создание платежа.
type CreatePaymentRequest struct {
	Amount  float64 // Исходная цена
	Country string  // Страна происхождения (ISO-код)
	IsVip   bool    // VIP-клиент
}

// PaymentService — интерфейс бизнес-логики платежей.
type PaymentService interface {
	// CreatePayment создаёт платёж, рассчитывает скидку и налог
	// и завершает его. Возвращает сохранённый платёж в COMPLETED.
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error)

	// RefundPayment выполняет возврат завершённого платежа.
	RefundPayment(ctx context.Context, paymentID string) (*domain.Payment, error)

	// GetPayment возвращает платёж по ID.
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments возвращает платежи, отфильтрованные по статусу.
	// Пустой статус возвращает все платежи.
	ListPayments(ctx context.Context, status string) ([]*domain.Payment, error)

	// DeletePayment удаляет платёж по ID.
	DeletePayment(ctx context.Context, paymentID string) error
}

// =============================================================================
// Реализация сервиса
// =============================================================================

// paymentService — реализация PaymentService.
type paymentService struct {
	repo     repository.PaymentRepository
	discount policy.DiscountPolicy
	taxes    *policy.PolicyRegistry
	bus      *event.Bus
}

// NewPaymentService создаёт новый сервис платежей.
func NewPaymentService(
	repo repository.PaymentRepository,
	discount policy.DiscountPolicy,
	taxes *policy.PolicyRegistry,
	bus *event.Bus,
) PaymentService {
	return &paymentService{
		repo:     repo,
		discount: discount,
		taxes:    taxes,
		bus:      bus,
	}
}

// CreatePayment создаёт и завершает платёж.
// Порядок расчёта фиксирован: сначала скидка от исходной цены,
// затем налог страны от суммы со скидкой.
func (s *paymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error) {
	log := logger.Ctx(ctx)

	// 1. Валидируем входные данные через конструкторы value objects
	price, err := domain.NewMoney(req.Amount)
	if err != nil {
		log.Warn().Err(err).Float64("amount", req.Amount).Msg("Невалидная сумма платежа")
		return nil, err
	}

	country, err := domain.NewCountryCode(req.Country)
	if err != nil {
		log.Warn().Err(err).Str("country", req.Country).Msg("Невалидный код страны")
		return nil, err
	}

	// 2. Создаём платёж в статусе PENDING
	payment := domain.NewPayment(price, country, req.IsVip)

	// 3. Рассчитываем: скидка от исходной цены, налог от суммы со скидкой
	discounted := s.discount.Apply(payment.OriginalPrice, payment.IsVip)
	final := s.taxes.Resolve(payment.Country).Apply(discounted)

	// 4. Переводим в COMPLETED
	if err := payment.Complete(discounted, final); err != nil {
		log.Error().Err(err).Msg("Ошибка перехода в COMPLETED")
		return nil, fmt.Errorf("ошибка перехода в COMPLETED: %w", err)
	}

	// 5. Сохраняем — платёж получает ID при первом сохранении
	if err := s.repo.Save(ctx, payment); err != nil {
		log.Error().Err(err).Msg("Ошибка сохранения платежа")
		return nil, fmt.Errorf("ошибка сохранения платежа: %w", err)
	}

	log.Info().
		Str("payment_id", payment.ID).
		Str("country", payment.Country.String()).
		Bool("is_vip", payment.IsVip).
		Int64("original_price", payment.OriginalPrice.Amount()).
		Int64("final_amount", final.Amount()).
		Msg("Платёж завершён")

	// 6. Уведомляем наблюдателей строго после успешного сохранения
	s.bus.PublishCompleted(ctx, domain.NewPaymentCompletedEvent(payment.ID, final))

	return payment, nil
}

// RefundPayment выполняет возврат платежа.
func (s *paymentService) RefundPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	log := logger.Ctx(ctx)

	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := payment.Refund(); err != nil {
		log.Warn().
			Err(err).
			Str("payment_id", paymentID).
			Str("status", string(payment.Status)).
			Msg("Невозможно выполнить возврат")
		return nil, err
	}

	if err := s.repo.Save(ctx, payment); err != nil {
		log.Error().Err(err).Str("payment_id", paymentID).Msg("Ошибка сохранения возврата")
		return nil, fmt.Errorf("ошибка сохранения возврата: %w", err)
	}

	log.Info().
		Str("payment_id", paymentID).
		Int64("refunded_amount", payment.FinalAmount.Amount()).
		Msg("Возврат платежа выполнен")

	s.bus.PublishRefunded(ctx, domain.NewPaymentRefundedEvent(payment.ID, *payment.FinalAmount))

	return payment, nil
}

// GetPayment возвращает платёж по ID.
func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return s.repo.FindByID(ctx, paymentID)
}

// ListPayments возвращает платежи, отфильтрованные по статусу.
func (s *paymentService) ListPayments(ctx context.Context, status string) ([]*domain.Payment, error) {
	if status == "" {
		return s.repo.FindAll(ctx)
	}

	parsed, err := domain.ParsePaymentStatus(status)
	if err != nil {
		return nil, err
	}

	return s.repo.FindByStatus(ctx, parsed)
}

// DeletePayment удаляет платёж по ID.
func (s *paymentService) DeletePayment(ctx context.Context, paymentID string) error {
	log := logger.Ctx(ctx)

	if err := s.repo.DeleteByID(ctx, paymentID); err != nil {
		return err
	}

	log.Info().Str("payment_id", paymentID).Msg("Платёж удалён")
	return nil
}
