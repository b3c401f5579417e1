// Package event содержит синхронную шину доменных событий платежа
// и её наблюдателей. Публикация выполняется строго после успешного
// сохранения агрегата; доставка best-effort, без персистентности.
package event

import (
	"context"

	"example.com/payment-system/internal/domain"
	"example.com/payment-system/pkg/logger"
)

// CompletedObserver получает уведомление о завершении платежа.
type CompletedObserver interface {
	OnPaymentCompleted(ctx context.Context, e domain.PaymentCompletedEvent) error
}

// RefundedObserver получает уведомление о возврате платежа.
type RefundedObserver interface {
	OnPaymentRefunded(ctx context.Context, e domain.PaymentRefundedEvent) error
}

// Bus — синхронная шина доменных событий.
// Наблюдатели передаются при создании (никакого component scanning) и
// уведомляются в порядке регистрации, на стеке вызова публикующего.
// Ошибка или паника одного наблюдателя логируется и не мешает остальным:
// нотификация best-effort и не влияет на результат операции.
type Bus struct {
	completed []CompletedObserver
	refunded  []RefundedObserver
}

// NewBus создаёт шину с явными списками наблюдателей.
// Порядок слайсов определяет порядок уведомления.
func NewBus(completed []CompletedObserver, refunded []RefundedObserver) *Bus {
	return &Bus{
		completed: completed,
		refunded:  refunded,
	}
}

// PublishCompleted синхронно уведомляет всех наблюдателей завершения.
// Каждый наблюдатель получает событие ровно один раз.
func (b *Bus) PublishCompleted(ctx context.Context, e domain.PaymentCompletedEvent) {
	for _, obs := range b.completed {
		b.notifyCompleted(ctx, obs, e)
	}
}

// PublishRefunded синхронно уведомляет всех наблюдателей возврата.
func (b *Bus) PublishRefunded(ctx context.Context, e domain.PaymentRefundedEvent) {
	for _, obs := range b.refunded {
		b.notifyRefunded(ctx, obs, e)
	}
}

// notifyCompleted изолирует ошибку и панику одного наблюдателя.
func (b *Bus) notifyCompleted(ctx context.Context, obs CompletedObserver, e domain.PaymentCompletedEvent) {
	log := logger.Ctx(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("payment_id", e.PaymentID).
				Msg("Паника наблюдателя при обработке события завершения")
		}
	}()

	if err := obs.OnPaymentCompleted(ctx, e); err != nil {
		log.Warn().
			Err(err).
			Str("payment_id", e.PaymentID).
			Msg("Наблюдатель не обработал событие завершения платежа")
	}
}

// notifyRefunded изолирует ошибку и панику одного наблюдателя.
func (b *Bus) notifyRefunded(ctx context.Context, obs RefundedObserver, e domain.PaymentRefundedEvent) {
	log := logger.Ctx(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("payment_id", e.PaymentID).
				Msg("Паника наблюдателя при обработке события возврата")
		}
	}()

	if err := obs.OnPaymentRefunded(ctx, e); err != nil {
		log.Warn().
			Err(err).
			Str("payment_id", e.PaymentID).
			Msg("Наблюдатель не обработал событие возврата платежа")
	}
}
