// Package kafka предоставляет обёртку над kafka-go для публикации
// событий платежей. Producer поддерживает headers и трассировку.
package kafka

import (
	"context"

	"example.com/payment-system/pkg/logger"
)

// Топики событий платежей.
const (
	// TopicPaymentCompleted — события успешного завершения платежа.
	TopicPaymentCompleted = "payment.completed"

	// TopicPaymentRefunded — события возврата платежа.
	TopicPaymentRefunded = "payment.refunded"
)

// Ключи headers сообщений Kafka.
const (
	// HeaderTraceID — идентификатор трассировки для distributed tracing.
	HeaderTraceID = "trace_id"

	// HeaderCorrelationID — идентификатор корреляции бизнес-операции.
	HeaderCorrelationID = "correlation_id"

	// HeaderTimestamp — временная метка создания сообщения.
	HeaderTimestamp = "timestamp"
)

// Config содержит настройки подключения к Kafka.
type Config struct {
	// Brokers — список адресов брокеров Kafka.
	Brokers []string
}

// TraceIDFromContext извлекает trace_id из context.
// Делегирует в pkg/logger для единообразной работы с контекстом.
func TraceIDFromContext(ctx context.Context) string {
	return logger.TraceIDFromContext(ctx)
}

// CorrelationIDFromContext извлекает correlation_id из context.
func CorrelationIDFromContext(ctx context.Context) string {
	return logger.CorrelationIDFromContext(ctx)
}
