package event

import (
	"context"

	"example.com/payment-system/internal/domain"
	"example.com/payment-system/pkg/logger"
)

// LoggingObserver логирует каждое событие платежа.
// Срабатывает всегда, независимо от суммы.
type LoggingObserver struct{}

// NewLoggingObserver создаёт логирующий наблюдатель.
func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{}
}

// OnPaymentCompleted записывает итоговую сумму завершённого платежа.
func (o *LoggingObserver) OnPaymentCompleted(ctx context.Context, e domain.PaymentCompletedEvent) error {
	logger.Ctx(ctx).Info().
		Str("payment_id", e.PaymentID).
		Int64("final_amount", e.FinalAmount.Amount()).
		Time("occurred_at", e.OccurredAt).
		Msg("Платёж завершён")
	return nil
}

// OnPaymentRefunded записывает возвращённую сумму.
func (o *LoggingObserver) OnPaymentRefunded(ctx context.Context, e domain.PaymentRefundedEvent) error {
	logger.Ctx(ctx).Info().
		Str("payment_id", e.PaymentID).
		Int64("refunded_amount", e.RefundedAmount.Amount()).
		Time("occurred_at", e.OccurredAt).
		Msg("Платёж возвращён")
	return nil
}
