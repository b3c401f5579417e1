package event

import (
	"context"

	"example.com/payment-system/internal/domain"
	"example.com/payment-system/pkg/metrics"
)

// MetricsObserver обновляет Prometheus-метрики по событиям платежей.
type MetricsObserver struct{}

// NewMetricsObserver создаёт наблюдатель метрик.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnPaymentCompleted увеличивает счётчик завершённых платежей
// и фиксирует итоговую сумму в гистограмме.
func (o *MetricsObserver) OnPaymentCompleted(_ context.Context, e domain.PaymentCompletedEvent) error {
	metrics.PaymentsCompletedTotal.Inc()
	metrics.PaymentFinalAmount.Observe(float64(e.FinalAmount.Amount()))
	return nil
}

// OnPaymentRefunded увеличивает счётчик возвращённых платежей.
func (o *MetricsObserver) OnPaymentRefunded(_ context.Context, _ domain.PaymentRefundedEvent) error {
	metrics.PaymentsRefundedTotal.Inc()
	return nil
}
