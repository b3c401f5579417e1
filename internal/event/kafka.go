package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"example.com/payment-system/internal/domain"
	"example.com/payment-system/pkg/circuitbreaker"
	"example.com/payment-system/pkg/kafka"
)

// completedMessage — wire-формат события завершения платежа.
type completedMessage struct {
	PaymentID   string    `json:"payment_id"`
	FinalAmount int64     `json:"final_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// refundedMessage — wire-формат события возврата платежа.
type refundedMessage struct {
	PaymentID      string    `json:"payment_id"`
	RefundedAmount int64     `json:"refunded_amount"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// KafkaObserver публикует события платежей в Kafka для внешних
// потребителей. Доставка best-effort: ошибки логируются шиной,
// Circuit Breaker защищает от зависаний при недоступном брокере.
type KafkaObserver struct {
	producer *kafka.Producer
	breaker  *circuitbreaker.Breaker
}

// NewKafkaObserver создаёт наблюдатель публикации в Kafka.
func NewKafkaObserver(producer *kafka.Producer) *KafkaObserver {
	return &KafkaObserver{
		producer: producer,
		breaker:  circuitbreaker.New("kafka-payment-events"),
	}
}

// OnPaymentCompleted публикует событие в payment.completed.
// Ключ сообщения — ID платежа: события одного платежа попадают
// в одну партицию и сохраняют порядок.
func (o *KafkaObserver) OnPaymentCompleted(ctx context.Context, e domain.PaymentCompletedEvent) error {
	payload, err := json.Marshal(completedMessage{
		PaymentID:   e.PaymentID,
		FinalAmount: e.FinalAmount.Amount(),
		OccurredAt:  e.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("ошибка сериализации события завершения: %w", err)
	}

	return o.breaker.Execute(func() error {
		return o.producer.Send(ctx, kafka.TopicPaymentCompleted, []byte(e.PaymentID), payload)
	})
}

// OnPaymentRefunded публикует событие в payment.refunded.
func (o *KafkaObserver) OnPaymentRefunded(ctx context.Context, e domain.PaymentRefundedEvent) error {
	payload, err := json.Marshal(refundedMessage{
		PaymentID:      e.PaymentID,
		RefundedAmount: e.RefundedAmount.Amount(),
		OccurredAt:     e.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("ошибка сериализации события возврата: %w", err)
	}

	return o.breaker.Execute(func() error {
		return o.producer.Send(ctx, kafka.TopicPaymentRefunded, []byte(e.PaymentID), payload)
	})
}
